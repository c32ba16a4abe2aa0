package dto

// ── 课程模块 DTO ──

// ProgramResponse 课程信息响应
type ProgramResponse struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	DefaultCohortNumber  *int   `json:"default_cohort_number,omitempty"`
	RecruitmentStartDate string `json:"recruitment_start_date,omitempty"`
	RecruitmentEndDate   string `json:"recruitment_end_date,omitempty"`
	ApplicantCount       int64  `json:"applicant_count"`
}

// ProgramStatsResponse 课程报名现况统计响应
type ProgramStatsResponse struct {
	ProgramID          string           `json:"program_id"`
	Total              int64            `json:"total"`
	StatusCount        map[string]int64 `json:"status_count"`
	ConsideringReasons map[string]int64 `json:"considering_reasons"`
}
