package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Choigapju/BootApplication/internal/dto"
	"github.com/Choigapju/BootApplication/internal/service"
	"github.com/Choigapju/BootApplication/pkg/response"
)

// ApplicantHandler 报名记录模块 HTTP 处理器
type ApplicantHandler struct {
	applicantSvc service.ApplicantService
}

// NewApplicantHandler 创建 ApplicantHandler
func NewApplicantHandler(applicantSvc service.ApplicantService) *ApplicantHandler {
	return &ApplicantHandler{applicantSvc: applicantSvc}
}

// ListApplicants 获取报名记录列表（筛选 + 搜索 + 分页）
// GET /api/v1/applicants
func (h *ApplicantHandler) ListApplicants(c *gin.Context) {
	var req dto.ApplicantListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	applicants, total, err := h.applicantSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	response.OKPage(c, applicants, total, page, pageSize)
}

// GetApplicant 获取报名记录详情
// GET /api/v1/applicants/:id
func (h *ApplicantHandler) GetApplicant(c *gin.Context) {
	id, ok := parseApplicantID(c)
	if !ok {
		return
	}

	applicant, err := h.applicantSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleApplicantError(c, err)
		return
	}

	response.OK(c, applicant)
}

// UpdateApplicant 更新报名记录（状态/备注/考虑原因）
// PATCH /api/v1/applicants/:id
func (h *ApplicantHandler) UpdateApplicant(c *gin.Context) {
	id, ok := parseApplicantID(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	applicant, err := h.applicantSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleApplicantError(c, err)
		return
	}

	response.OK(c, applicant)
}

// DeleteApplicant 删除报名记录
// DELETE /api/v1/applicants/:id
func (h *ApplicantHandler) DeleteApplicant(c *gin.Context) {
	id, ok := parseApplicantID(c)
	if !ok {
		return
	}

	if err := h.applicantSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleApplicantError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── 内部辅助 ──

func parseApplicantID(c *gin.Context) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		response.BadRequest(c, 10001, "报名记录ID非法")
		return 0, false
	}
	return uint(n), true
}

// handleApplicantError 报名记录业务错误 → HTTP 响应
func (h *ApplicantHandler) handleApplicantError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrApplicantNotFound):
		response.NotFound(c, 40001, "报名记录不存在")
	case errors.Is(err, service.ErrInvalidStatus):
		response.BadRequest(c, 40002, "状态取值非法")
	default:
		response.InternalError(c)
	}
}
