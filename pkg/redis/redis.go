package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Choigapju/BootApplication/config"
	"github.com/Choigapju/BootApplication/internal/dto"
)

// Client Redis 客户端封装
// 当前用于课程统计缓存与上传限流；连接失败时调用方以 nil 降级运行，
// 所有方法对 nil 接收者安全
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 课程统计缓存 ──

const (
	statsPrefix = "program:stats:"
	statsTTL    = 5 * time.Minute
)

// GetProgramStats 读取课程统计缓存，未命中或缓存不可用返回 ok=false
func (c *Client) GetProgramStats(ctx context.Context, programID string) (*dto.ProgramStatsResponse, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, statsPrefix+programID).Bytes()
	if err != nil {
		return nil, false
	}
	var stats dto.ProgramStatsResponse
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

// SetProgramStats 写入课程统计缓存（尽力而为，失败仅告警）
func (c *Client) SetProgramStats(ctx context.Context, programID string, stats *dto.ProgramStatsResponse) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, statsPrefix+programID, raw, statsTTL).Err(); err != nil {
		c.logger.Warn("写入统计缓存失败", zap.String("program_id", programID), zap.Error(err))
	}
}

// InvalidateProgramStats 使课程统计缓存失效
// 导入完成、报名记录变更、课程删除后调用
func (c *Client) InvalidateProgramStats(ctx context.Context, programID string) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, statsPrefix+programID).Err(); err != nil {
		c.logger.Warn("清除统计缓存失败", zap.String("program_id", programID), zap.Error(err))
	}
}

// ── 限流 ──

// CheckRateLimit 固定窗口计数限流
// 返回 true 表示放行；窗口内首个请求设定过期时间
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if c == nil {
		return true, nil
	}
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
