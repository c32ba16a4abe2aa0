package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Choigapju/BootApplication/internal/service"
	"github.com/Choigapju/BootApplication/pkg/response"
)

// ProgramHandler 课程模块 HTTP 处理器
type ProgramHandler struct {
	programSvc service.ProgramService
}

// NewProgramHandler 创建 ProgramHandler
func NewProgramHandler(programSvc service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programSvc: programSvc}
}

// ListPrograms 获取课程列表
// GET /api/v1/programs
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	programs, err := h.programSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": programs})
}

// GetProgram 获取课程详情
// GET /api/v1/programs/:id
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	program, err := h.programSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleProgramError(c, err)
		return
	}

	response.OK(c, program)
}

// GetProgramStats 获取课程报名现况统计
// GET /api/v1/programs/:id/stats
func (h *ProgramHandler) GetProgramStats(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	stats, err := h.programSvc.Stats(c.Request.Context(), id)
	if err != nil {
		h.handleProgramError(c, err)
		return
	}

	response.OK(c, stats)
}

// DeleteProgram 删除课程（级联清除报名记录）
// DELETE /api/v1/programs/:id
func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	if err := h.programSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleProgramError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleProgramError 课程业务错误 → HTTP 响应
func (h *ProgramHandler) handleProgramError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrProgramNotExists) {
		response.NotFound(c, 30001, "课程不存在")
		return
	}
	response.InternalError(c)
}
