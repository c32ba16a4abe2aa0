package dto

// ── 文件导入模块 DTO ──

// IngestResultResponse 一次导入的汇总结果
// 行级跳过不视为请求失败，计数与原因一并返回
type IngestResultResponse struct {
	AcceptedCount int            `json:"accepted_count"`
	SkippedCounts map[string]int `json:"skipped_counts"`
	ErrorMessages []string       `json:"error_messages"`
	ProgramID     string         `json:"resolved_program_id"`
	CohortNumber  int            `json:"resolved_cohort_number"`
}
