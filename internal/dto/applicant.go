package dto

// ── 报名记录模块 DTO ──

// ApplicantListRequest 报名记录列表查询参数
type ApplicantListRequest struct {
	ProgramID string `form:"program_id"`
	Cohort    *int   `form:"cohort"`
	Status    string `form:"status"   binding:"omitempty,oneof=applying accepted considering registered canceled"`
	Search    string `form:"search"`
	Page      int    `form:"page,default=1"      binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// UpdateApplicantRequest 更新报名记录请求（仅面板可编辑字段）
type UpdateApplicantRequest struct {
	Status            *string `json:"status"             binding:"omitempty,oneof=applying accepted considering registered canceled"`
	Notes             *string `json:"notes"`
	ConsideringReason *string `json:"considering_reason"`
}

// ApplicantResponse 报名记录响应
type ApplicantResponse struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	Gender            string `json:"gender"`
	Age               int    `json:"age"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	ProgramID         string `json:"program_id"`
	CohortNumber      *int   `json:"cohort_number"`
	Status            string `json:"status"`
	ConsideringReason string `json:"considering_reason,omitempty"`
	LastContactDate   string `json:"last_contact_date,omitempty"`
	Notes             string `json:"notes,omitempty"`
	UpdatedAt         string `json:"updated_at"`
}
