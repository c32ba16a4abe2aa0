package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Choigapju/BootApplication/internal/dto"
	"github.com/Choigapju/BootApplication/internal/model"
	"github.com/Choigapju/BootApplication/internal/repository"
	"github.com/Choigapju/BootApplication/pkg/redis"
)

// ── 报名记录模块业务错误 ──

var (
	ErrApplicantNotFound = errors.New("报名记录不存在")
	ErrInvalidStatus     = errors.New("状态取值非法")
)

// ApplicantService 报名记录业务接口
type ApplicantService interface {
	List(ctx context.Context, req *dto.ApplicantListRequest) ([]dto.ApplicantResponse, int64, error)
	GetByID(ctx context.Context, id uint) (*dto.ApplicantResponse, error)
	// Update 面板侧更新状态/备注/考虑原因；任何变更都推进联系日期与更新时间
	Update(ctx context.Context, id uint, req *dto.UpdateApplicantRequest) (*dto.ApplicantResponse, error)
	Delete(ctx context.Context, id uint) error
}

type applicantService struct {
	repo   *repository.Repository
	cache  *redis.Client
	logger *zap.Logger
}

// NewApplicantService 创建 ApplicantService 实例
func NewApplicantService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) ApplicantService {
	return &applicantService{repo: repo, cache: cache, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *applicantService) List(ctx context.Context, req *dto.ApplicantListRequest) ([]dto.ApplicantResponse, int64, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	filter := &repository.ApplicantListFilter{
		ProgramID: req.ProgramID,
		Cohort:    req.Cohort,
		Status:    req.Status,
		Search:    req.Search,
		Page:      page,
		PageSize:  pageSize,
	}
	applicants, total, err := s.repo.Applicant.List(ctx, filter)
	if err != nil {
		s.logger.Error("列出报名记录失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ApplicantResponse, 0, len(applicants))
	for i := range applicants {
		result = append(result, *toApplicantResponse(&applicants[i]))
	}
	return result, total, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *applicantService) GetByID(ctx context.Context, id uint) (*dto.ApplicantResponse, error) {
	applicant, err := s.repo.Applicant.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicantNotFound
		}
		s.logger.Error("查询报名记录失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toApplicantResponse(applicant), nil
}

// ────────────────────── Update ──────────────────────

func (s *applicantService) Update(ctx context.Context, id uint, req *dto.UpdateApplicantRequest) (*dto.ApplicantResponse, error) {
	// HTTP 层有 binding 校验，这里对非 HTTP 调用方再拦一道
	if req.Status != nil && !model.ValidStatus(*req.Status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
	}

	applicant, err := s.repo.Applicant.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicantNotFound
		}
		s.logger.Error("查询报名记录失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	if req.Status != nil {
		applicant.Status = *req.Status
	}
	if req.Notes != nil {
		applicant.Notes = *req.Notes
	}
	if req.ConsideringReason != nil {
		applicant.ConsideringReason = *req.ConsideringReason
	}

	now := time.Now()
	applicant.LastContactDate = &now
	applicant.UpdatedAt = now

	if err := s.repo.Applicant.Update(ctx, applicant); err != nil {
		s.logger.Error("更新报名记录失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	s.cache.InvalidateProgramStats(ctx, applicant.ProgramID)
	return toApplicantResponse(applicant), nil
}

// ────────────────────── Delete ──────────────────────

func (s *applicantService) Delete(ctx context.Context, id uint) error {
	applicant, err := s.repo.Applicant.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicantNotFound
		}
		s.logger.Error("查询报名记录失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Applicant.Delete(ctx, id); err != nil {
		s.logger.Error("删除报名记录失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	s.cache.InvalidateProgramStats(ctx, applicant.ProgramID)
	return nil
}

// ── 内部辅助方法 ──

func toApplicantResponse(a *model.Applicant) *dto.ApplicantResponse {
	resp := &dto.ApplicantResponse{
		ID:                a.ID,
		Name:              a.Name,
		Gender:            a.Gender,
		Age:               a.Age,
		Phone:             a.Phone,
		Email:             a.Email,
		ProgramID:         a.ProgramID,
		CohortNumber:      a.CohortNumber,
		Status:            a.Status,
		ConsideringReason: a.ConsideringReason,
		Notes:             a.Notes,
		UpdatedAt:         a.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if a.LastContactDate != nil {
		resp.LastContactDate = a.LastContactDate.Format("2006-01-02")
	}
	return resp
}
