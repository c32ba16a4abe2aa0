package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Choigapju/BootApplication/config"
	"github.com/Choigapju/BootApplication/internal/dto"
	"github.com/Choigapju/BootApplication/internal/model"
	"github.com/Choigapju/BootApplication/internal/registry"
	"github.com/Choigapju/BootApplication/internal/repository"
	"github.com/Choigapju/BootApplication/pkg/redis"
)

// ── 导入模块业务错误 ──
//
// 前两类让调用方能区分"改文件名"和"没有这门课程"两种提示；
// ErrStorageFailure 表示整批回滚，与行级跳过严格区分。
var (
	ErrFilenameUnresolved = errors.New("无法从文件名解析课程与期数")
	ErrProgramNotFound    = errors.New("课程不存在")
	ErrStorageFailure     = errors.New("批量入库失败")
)

// ── 行终态 ──
//
// 每行从 pending 出发，终态互斥：
// accepted / missing_field / duplicate / parse_error
const (
	skipReasonMissingField = "missing_field"
	skipReasonDuplicate    = "duplicate"
	skipReasonParseError   = "parse_error"
)

// IngestService 文件导入业务接口
type IngestService interface {
	// Ingest 把上传的表格导入为报名记录
	// fallbackProgramID 在文件名解析失败时兜底（来自请求参数），为空则直接失败
	Ingest(ctx context.Context, fileBytes []byte, originalFilename, fallbackProgramID string) (*dto.IngestResultResponse, error)
}

type ingestService struct {
	cfg    *config.Config
	repo   *repository.Repository
	cache  *redis.Client
	logger *zap.Logger
}

// NewIngestService 创建 IngestService 实例
func NewIngestService(cfg *config.Config, repo *repository.Repository, cache *redis.Client, logger *zap.Logger) IngestService {
	return &ingestService{cfg: cfg, repo: repo, cache: cache, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Ingest — 导入主流程
// ═══════════════════════════════════════════════════════════
//
// 1. 文件名 → (课程, 期数)；失败时用 fallbackProgramID 兜底
// 2. 字节流 → 行列矩阵 → 列映射（整个数据集判定一次）
// 3. 逐行：规范化 → 组装记录 → 库内/批内判重 → 终态
// 4. 接受的记录单事务整批写入；唯一约束冲突整批回滚
//
// 行按文件顺序处理：批内同一身份键首现者胜，后续行判重跳过。

func (s *ingestService) Ingest(ctx context.Context, fileBytes []byte, originalFilename, fallbackProgramID string) (*dto.IngestResultResponse, error) {
	// 1. 解析课程与期数
	programID, cohort, ok := ResolveCohort(originalFilename)
	if !ok {
		if fallbackProgramID == "" {
			return nil, ErrFilenameUnresolved
		}
		// 兜底课程必须出自注册表或已存在，不能凭空创建
		if !registry.Known(fallbackProgramID) {
			if _, err := s.repo.Program.GetByID(ctx, fallbackProgramID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrProgramNotFound
				}
				s.logger.Error("查询课程失败", zap.String("program_id", fallbackProgramID), zap.Error(err))
				return nil, err
			}
		}
		programID = fallbackProgramID
		cohort = 0 // 期数未解析，留空
	}

	program, err := s.repo.Program.GetOrCreate(ctx, programID, registry.DisplayName(programID))
	if err != nil {
		s.logger.Error("查询/创建课程失败", zap.String("program_id", programID), zap.Error(err))
		return nil, err
	}

	// 2. 读表并判定列形态
	rows, err := ParseTable(fileBytes, originalFilename)
	if err != nil {
		return nil, err
	}
	mapper, err := NewColumnMapper(rows)
	if err != nil {
		return nil, err
	}

	// 3. 读取已入库身份键
	policy := s.cfg.Upload.DedupePolicy
	var cohortPtr *int
	if cohort > 0 {
		cohortPtr = &cohort
	}
	existingKeys, err := s.repo.Applicant.FindIdentityKeys(ctx, program.ProgramID, cohortPtr, policy)
	if err != nil {
		s.logger.Error("读取已有身份键失败", zap.String("program_id", program.ProgramID), zap.Error(err))
		return nil, err
	}

	// 4. 逐行处理
	result := &dto.IngestResultResponse{
		SkippedCounts: map[string]int{},
		ErrorMessages: []string{},
		ProgramID:     program.ProgramID,
		CohortNumber:  cohort,
	}
	seenKeys := make(map[string]struct{})
	now := time.Now()

	var accepted []model.Applicant
	for i, row := range mapper.DataRows(rows) {
		rowNum := mapper.headerRow + i + 2 // 文件中的自然行号（1 起，含表头）

		applicant, skipReason, msg := s.buildRow(mapper, row, program.ProgramID, cohortPtr, now)
		if skipReason != "" {
			result.SkippedCounts[skipReason]++
			if msg != "" {
				result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("第%d行: %s", rowNum, msg))
			}
			continue
		}

		key := applicant.Key(policy)
		if _, dup := existingKeys[key]; dup {
			result.SkippedCounts[skipReasonDuplicate]++
			result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("第%d行: 重复报名 %s(%s)", rowNum, applicant.Name, applicant.Phone))
			continue
		}
		if _, dup := seenKeys[key]; dup {
			result.SkippedCounts[skipReasonDuplicate]++
			result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("第%d行: 批内重复 %s(%s)", rowNum, applicant.Name, applicant.Phone))
			continue
		}

		seenKeys[key] = struct{}{}
		accepted = append(accepted, *applicant)
	}

	// 5. 整批原子写入
	if err := s.persistBatch(ctx, accepted); err != nil {
		s.logger.Error("整批写入失败，已回滚",
			zap.String("program_id", program.ProgramID),
			zap.Int("count", len(accepted)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	result.AcceptedCount = len(accepted)

	// 统计缓存失效（cache 为 nil 时为空操作）
	s.cache.InvalidateProgramStats(ctx, program.ProgramID)

	s.logger.Info("导入完成",
		zap.String("program_id", program.ProgramID),
		zap.Int("cohort", cohort),
		zap.Int("accepted", result.AcceptedCount),
		zap.Any("skipped", result.SkippedCounts),
	)
	return result, nil
}

// buildRow 单行的规范化与组装
// 返回 skipReason 非空表示该行进入对应跳过终态（判重在调用方做）
func (s *ingestService) buildRow(mapper *ColumnMapper, row []string, programID string, cohort *int, now time.Time) (applicant *model.Applicant, skipReason, msg string) {
	// 行级故障一律降级为 parse_error，单行问题绝不中断整批
	defer func() {
		if r := recover(); r != nil {
			applicant = nil
			skipReason = skipReasonParseError
			msg = fmt.Sprintf("行处理异常: %v", r)
		}
	}()

	if !mapper.UsableRow(row) {
		return nil, skipReasonMissingField, ""
	}

	name := mapper.Field(row, fieldName)
	rawPhone := mapper.Field(row, fieldPhone)
	if name == "" || rawPhone == "" {
		return nil, skipReasonMissingField, ""
	}

	// 年龄：显式"나이"列优先，非数字视为行级解析错误；
	// 否则由生年月日推算（推算失败静默置 0）
	age := 0
	if rawAge := mapper.Field(row, fieldAge); rawAge != "" {
		n, err := strconv.Atoi(rawAge)
		if err != nil || n < 0 {
			return nil, skipReasonParseError, fmt.Sprintf("年龄字段无法解析: %q (%s)", rawAge, name)
		}
		age = n
	} else {
		age = AgeFromBirthdate(mapper.Field(row, fieldBirthdate), now)
	}

	contactDate := now
	return &model.Applicant{
		Name:              name,
		Gender:            InferGender(name, mapper.Field(row, fieldGender)),
		Age:               age,
		Phone:             NormalizePhone(rawPhone),
		Email:             mapper.Field(row, fieldEmail),
		ProgramID:         programID,
		CohortNumber:      cohort,
		Status:            model.StatusApplying,
		ConsideringReason: mapper.Field(row, fieldReason),
		LastContactDate:   &contactDate,
		Notes:             "",
		UpdatedAt:         now,
	}, "", ""
}

// persistBatch 单事务整批写入接受的记录
// 库内判重只是提前拒绝的优化；并发上传竞争同一身份键时，
// 唯一索引是最终裁决，冲突则整批失败回滚
func (s *ingestService) persistBatch(ctx context.Context, accepted []model.Applicant) error {
	if len(accepted) == 0 {
		return nil
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)
	if err := txRepo.Applicant.CreateBatch(ctx, accepted); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return err
		}
	}
	return nil
}
