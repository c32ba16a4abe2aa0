package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Choigapju/BootApplication/internal/service"
	"github.com/Choigapju/BootApplication/pkg/response"
)

// UploadHandler 报名表上传 HTTP 处理器
type UploadHandler struct {
	ingestSvc service.IngestService
}

// NewUploadHandler 创建 UploadHandler
func NewUploadHandler(ingestSvc service.IngestService) *UploadHandler {
	return &UploadHandler{ingestSvc: ingestSvc}
}

// Upload 上传报名表并导入
// POST /api/v1/uploads
// multipart 字段：file（必填）、program_id（可选，文件名解析失败时兜底）
//
// 行级跳过仍返回 200，计数随结果返回；
// 五类整批失败各有独立错误码，便于前端区分提示文案。
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 20001, "缺少上传文件")
		return
	}
	fallbackProgramID := c.PostForm("program_id")

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 20002, "无法读取上传文件")
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, 20002, "无法读取上传文件")
		return
	}

	result, err := h.ingestSvc.Ingest(c.Request.Context(), fileBytes, fileHeader.Filename, fallbackProgramID)
	if err != nil {
		h.handleIngestError(c, err)
		return
	}

	response.OK(c, result)
}

// handleIngestError 导入业务错误 → HTTP 响应
func (h *UploadHandler) handleIngestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFilenameUnresolved):
		// 提示改文件名，与数据问题区分
		response.ErrorWithDetails(c, http.StatusBadRequest, 20010, "文件名无法解析", err.Error())
	case errors.Is(err, service.ErrProgramNotFound):
		response.NotFound(c, 20011, "课程不存在")
	case errors.Is(err, service.ErrTableUnreadable):
		response.ErrorWithDetails(c, http.StatusBadRequest, 20012, "表格内容不可读", err.Error())
	case errors.Is(err, service.ErrColumnsMissing):
		response.ErrorWithDetails(c, http.StatusBadRequest, 20014, "表头缺少必需列", err.Error())
	case errors.Is(err, service.ErrStorageFailure):
		// 整批已回滚，本次上传未写入任何记录
		response.Error(c, http.StatusConflict, 20013, "入库失败，本批已回滚")
	default:
		response.InternalError(c)
	}
}
