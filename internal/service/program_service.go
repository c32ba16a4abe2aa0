package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Choigapju/BootApplication/internal/dto"
	"github.com/Choigapju/BootApplication/internal/model"
	"github.com/Choigapju/BootApplication/internal/registry"
	"github.com/Choigapju/BootApplication/internal/repository"
	"github.com/Choigapju/BootApplication/pkg/redis"
)

// ── 课程模块业务错误 ──

var ErrProgramNotExists = errors.New("课程不存在")

// ProgramService 课程业务接口
type ProgramService interface {
	List(ctx context.Context) ([]dto.ProgramResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProgramResponse, error)
	// Stats 课程报名现况统计（含 considering 原因分布）
	Stats(ctx context.Context, id string) (*dto.ProgramStatsResponse, error)
	// Delete 删除课程并级联清除其报名记录（管理操作）
	Delete(ctx context.Context, id string) error
	// SeedRegistry 按静态注册表预置课程记录（启动时调用）
	SeedRegistry(ctx context.Context) error
}

type programService struct {
	repo   *repository.Repository
	cache  *redis.Client
	logger *zap.Logger
}

// NewProgramService 创建 ProgramService 实例
func NewProgramService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) ProgramService {
	return &programService{repo: repo, cache: cache, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *programService) List(ctx context.Context) ([]dto.ProgramResponse, error) {
	programs, err := s.repo.Program.List(ctx)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ProgramResponse, 0, len(programs))
	for i := range programs {
		resp, err := s.toProgramResponse(ctx, &programs[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *programService) GetByID(ctx context.Context, id string) (*dto.ProgramResponse, error) {
	program, err := s.repo.Program.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgramNotExists
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toProgramResponse(ctx, program)
}

// ────────────────────── Stats ──────────────────────

func (s *programService) Stats(ctx context.Context, id string) (*dto.ProgramStatsResponse, error) {
	if _, err := s.repo.Program.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgramNotExists
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 先查缓存，未命中再聚合；缓存不可用时直接走库
	if cached, ok := s.cache.GetProgramStats(ctx, id); ok {
		return cached, nil
	}

	statusCount, err := s.repo.Applicant.CountByStatus(ctx, id)
	if err != nil {
		s.logger.Error("统计报名状态失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	reasons, err := s.repo.Applicant.ConsideringReasons(ctx, id)
	if err != nil {
		s.logger.Error("统计考虑原因失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	var total int64
	for _, n := range statusCount {
		total += n
	}
	// 五个状态全量返回，缺失的补 0
	for _, status := range []string{
		model.StatusApplying, model.StatusAccepted, model.StatusConsidering,
		model.StatusRegistered, model.StatusCanceled,
	} {
		if _, ok := statusCount[status]; !ok {
			statusCount[status] = 0
		}
	}

	stats := &dto.ProgramStatsResponse{
		ProgramID:          id,
		Total:              total,
		StatusCount:        statusCount,
		ConsideringReasons: reasons,
	}
	s.cache.SetProgramStats(ctx, id, stats)
	return stats, nil
}

// ────────────────────── Delete ──────────────────────

func (s *programService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Program.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProgramNotExists
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Program.Delete(ctx, id); err != nil {
		s.logger.Error("删除课程失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.cache.InvalidateProgramStats(ctx, id)
	s.logger.Info("课程已删除（含级联报名记录）", zap.String("id", id))
	return nil
}

// ────────────────────── SeedRegistry ──────────────────────

func (s *programService) SeedRegistry(ctx context.Context) error {
	for id, name := range registry.All() {
		if _, err := s.repo.Program.GetOrCreate(ctx, id, name); err != nil {
			return err
		}
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *programService) toProgramResponse(ctx context.Context, program *model.Program) (*dto.ProgramResponse, error) {
	count, err := s.repo.Program.CountApplicants(ctx, program.ProgramID)
	if err != nil {
		s.logger.Error("统计报名人数失败", zap.String("id", program.ProgramID), zap.Error(err))
		return nil, err
	}

	resp := &dto.ProgramResponse{
		ID:                  program.ProgramID,
		Name:                program.Name,
		DefaultCohortNumber: program.DefaultCohortNumber,
		ApplicantCount:      count,
	}
	if program.RecruitmentStartDate != nil {
		resp.RecruitmentStartDate = program.RecruitmentStartDate.Format("2006-01-02")
	}
	if program.RecruitmentEndDate != nil {
		resp.RecruitmentEndDate = program.RecruitmentEndDate.Format("2006-01-02")
	}
	return resp, nil
}
