package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Choigapju/BootApplication/internal/dto"
	"github.com/Choigapju/BootApplication/internal/service"
	"github.com/Choigapju/BootApplication/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock IngestService ──

type mockIngestService struct {
	result *dto.IngestResultResponse
	err    error

	// 记录最近一次调用的参数，便于断言透传
	gotFilename string
	gotFallback string
}

func (m *mockIngestService) Ingest(_ context.Context, _ []byte, filename, fallback string) (*dto.IngestResultResponse, error) {
	m.gotFilename = filename
	m.gotFallback = fallback
	return m.result, m.err
}

// ── Mock ProgramService ──

type mockProgramService struct {
	listResult  []dto.ProgramResponse
	listErr     error
	getResult   *dto.ProgramResponse
	getErr      error
	statsResult *dto.ProgramStatsResponse
	statsErr    error
	deleteErr   error
	seedErr     error
}

func (m *mockProgramService) List(_ context.Context) ([]dto.ProgramResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockProgramService) GetByID(_ context.Context, _ string) (*dto.ProgramResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockProgramService) Stats(_ context.Context, _ string) (*dto.ProgramStatsResponse, error) {
	return m.statsResult, m.statsErr
}
func (m *mockProgramService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockProgramService) SeedRegistry(_ context.Context) error {
	return m.seedErr
}

// ── Mock ApplicantService ──

type mockApplicantService struct {
	listResult   []dto.ApplicantResponse
	listTotal    int64
	listErr      error
	getResult    *dto.ApplicantResponse
	getErr       error
	updateResult *dto.ApplicantResponse
	updateErr    error
	deleteErr    error
}

func (m *mockApplicantService) List(_ context.Context, _ *dto.ApplicantListRequest) ([]dto.ApplicantResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockApplicantService) GetByID(_ context.Context, _ uint) (*dto.ApplicantResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockApplicantService) Update(_ context.Context, _ uint, _ *dto.UpdateApplicantRequest) (*dto.ApplicantResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockApplicantService) Delete(_ context.Context, _ uint) error {
	return m.deleteErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// multipartUpload 构造带 file 字段的 multipart 请求体
func multipartUpload(t *testing.T, filename string, content []byte, fields map[string]string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("构造 multipart 失败: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("构造 multipart 失败: %v", err)
	}
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

// ═══════════════════════════════════════════════════════════
// UploadHandler Tests
// ═══════════════════════════════════════════════════════════

func TestUploadHandler_Upload_Success(t *testing.T) {
	mock := &mockIngestService{
		result: &dto.IngestResultResponse{
			AcceptedCount: 2,
			SkippedCounts: map[string]int{"duplicate": 1},
			ErrorMessages: []string{},
			ProgramID:     "frontend",
			CohortNumber:  14,
		},
	}
	h := NewUploadHandler(mock)

	body, contentType := multipartUpload(t, "kdt-frontend-14th.csv", []byte("이름,연락처\n김철수,01012345678\n"), nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/uploads", body)
	req.Header.Set("Content-Type", contentType)

	r := gin.New()
	r.POST("/api/v1/uploads", h.Upload)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
	if mock.gotFilename != "kdt-frontend-14th.csv" {
		t.Errorf("文件名应原样透传，实际=%s", mock.gotFilename)
	}
}

func TestUploadHandler_Upload_FallbackField(t *testing.T) {
	mock := &mockIngestService{
		result: &dto.IngestResultResponse{ProgramID: "frontend"},
	}
	h := NewUploadHandler(mock)

	body, contentType := multipartUpload(t, "random.csv", []byte("이름,연락처\n"), map[string]string{
		"program_id": "frontend",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/uploads", body)
	req.Header.Set("Content-Type", contentType)

	r := gin.New()
	r.POST("/api/v1/uploads", h.Upload)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.gotFallback != "frontend" {
		t.Errorf("program_id 应透传为兜底课程，实际=%s", mock.gotFallback)
	}
}

func TestUploadHandler_Upload_MissingFile(t *testing.T) {
	h := NewUploadHandler(&mockIngestService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/uploads", bytes.NewReader(nil))

	r := gin.New()
	r.POST("/api/v1/uploads", h.Upload)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 20001 {
		t.Errorf("expected error code 20001, got %d", resp.Code)
	}
}

func TestUploadHandler_Upload_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"文件名无法解析", service.ErrFilenameUnresolved, http.StatusBadRequest, 20010},
		{"课程不存在", service.ErrProgramNotFound, http.StatusNotFound, 20011},
		{"表格不可读", service.ErrTableUnreadable, http.StatusBadRequest, 20012},
		{"表头缺少必需列", service.ErrColumnsMissing, http.StatusBadRequest, 20014},
		{"整批回滚", service.ErrStorageFailure, http.StatusConflict, 20013},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUploadHandler(&mockIngestService{err: tt.err})

			body, contentType := multipartUpload(t, "kdt-frontend-14th.csv", []byte("x"), nil)
			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/v1/uploads", body)
			req.Header.Set("Content-Type", contentType)

			r := gin.New()
			r.POST("/api/v1/uploads", h.Upload)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected error code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// ProgramHandler Tests
// ═══════════════════════════════════════════════════════════

func TestProgramHandler_ListPrograms(t *testing.T) {
	mock := &mockProgramService{
		listResult: []dto.ProgramResponse{
			{ID: "frontend", Name: "프론트엔드", ApplicantCount: 10},
		},
	}
	h := NewProgramHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/programs", nil)

	r := gin.New()
	r.GET("/api/v1/programs", h.ListPrograms)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestProgramHandler_GetProgram_NotFound(t *testing.T) {
	mock := &mockProgramService{getErr: service.ErrProgramNotExists}
	h := NewProgramHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/programs/nonexistent", nil)

	r := gin.New()
	r.GET("/api/v1/programs/:id", h.GetProgram)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 30001 {
		t.Errorf("expected error code 30001, got %d", resp.Code)
	}
}

func TestProgramHandler_GetProgramStats(t *testing.T) {
	mock := &mockProgramService{
		statsResult: &dto.ProgramStatsResponse{
			ProgramID:   "frontend",
			Total:       5,
			StatusCount: map[string]int64{"applying": 3, "accepted": 2},
		},
	}
	h := NewProgramHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/programs/frontend/stats", nil)

	r := gin.New()
	r.GET("/api/v1/programs/:id/stats", h.GetProgramStats)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestProgramHandler_DeleteProgram(t *testing.T) {
	h := NewProgramHandler(&mockProgramService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/api/v1/programs/frontend", nil)

	r := gin.New()
	r.DELETE("/api/v1/programs/:id", h.DeleteProgram)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ApplicantHandler Tests
// ═══════════════════════════════════════════════════════════

func TestApplicantHandler_ListApplicants(t *testing.T) {
	mock := &mockApplicantService{
		listResult: []dto.ApplicantResponse{
			{ID: 1, Name: "김철수", Status: "applying"},
		},
		listTotal: 1,
	}
	h := NewApplicantHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/applicants?program_id=frontend&page=1&page_size=20", nil)

	r := gin.New()
	r.GET("/api/v1/applicants", h.ListApplicants)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestApplicantHandler_ListApplicants_InvalidStatus(t *testing.T) {
	h := NewApplicantHandler(&mockApplicantService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/applicants?status=unknown", nil)

	r := gin.New()
	r.GET("/api/v1/applicants", h.ListApplicants)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestApplicantHandler_GetApplicant_BadID(t *testing.T) {
	h := NewApplicantHandler(&mockApplicantService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/applicants/abc", nil)

	r := gin.New()
	r.GET("/api/v1/applicants/:id", h.GetApplicant)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestApplicantHandler_UpdateApplicant_Success(t *testing.T) {
	mock := &mockApplicantService{
		updateResult: &dto.ApplicantResponse{ID: 1, Name: "김철수", Status: "accepted"},
	}
	h := NewApplicantHandler(mock)

	status := "accepted"
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/api/v1/applicants/1", jsonBody(dto.UpdateApplicantRequest{
		Status: &status,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PATCH("/api/v1/applicants/:id", h.UpdateApplicant)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestApplicantHandler_UpdateApplicant_InvalidStatus(t *testing.T) {
	h := NewApplicantHandler(&mockApplicantService{})

	status := "bogus"
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/api/v1/applicants/1", jsonBody(dto.UpdateApplicantRequest{
		Status: &status,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PATCH("/api/v1/applicants/:id", h.UpdateApplicant)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestApplicantHandler_DeleteApplicant_NotFound(t *testing.T) {
	mock := &mockApplicantService{deleteErr: service.ErrApplicantNotFound}
	h := NewApplicantHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/api/v1/applicants/99", nil)

	r := gin.New()
	r.DELETE("/api/v1/applicants/:id", h.DeleteApplicant)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 40001 {
		t.Errorf("expected error code 40001, got %d", resp.Code)
	}
}
