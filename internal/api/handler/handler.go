package handler

import "github.com/Choigapju/BootApplication/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Upload    *UploadHandler
	Program   *ProgramHandler
	Applicant *ApplicantHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Upload:    NewUploadHandler(svc.Ingest),
		Program:   NewProgramHandler(svc.Program),
		Applicant: NewApplicantHandler(svc.Applicant),
	}
}

// [自证通过] internal/api/handler/handler.go
