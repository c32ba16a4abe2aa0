package database

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Choigapju/BootApplication/config"
)

func TestDedupeIndexStatements_CoverAllPolicies(t *testing.T) {
	// 配置层放行的每个策略都必须有对应的存储层唯一索引
	for _, policy := range []string{
		config.DedupePolicyPhone,
		config.DedupePolicyEmailPhone,
		config.DedupePolicyPhoneCohort,
	} {
		stmt, ok := dedupeIndexStatements[policy]
		if !ok {
			t.Errorf("策略 %s 缺少唯一索引语句", policy)
			continue
		}
		if !strings.Contains(stmt, dedupeIndexName(policy)) {
			t.Errorf("策略 %s 的索引名不符约定", policy)
		}
		if !strings.Contains(stmt, "WHERE phone <> ''") {
			t.Errorf("策略 %s 的索引应豁免空手机号", policy)
		}
	}
}

func TestDedupeIndexStatements_PolicyColumns(t *testing.T) {
	// 索引列与身份键的构成一一对应
	if stmt := dedupeIndexStatements[config.DedupePolicyPhone]; strings.Contains(stmt, "cohort_number") || strings.Contains(stmt, "email") {
		t.Error("phone 策略索引不应包含期数或邮箱列")
	}
	if stmt := dedupeIndexStatements[config.DedupePolicyEmailPhone]; !strings.Contains(stmt, "lower(email)") {
		t.Error("email_phone 策略索引应按小写邮箱判重")
	}
	if stmt := dedupeIndexStatements[config.DedupePolicyPhoneCohort]; !strings.Contains(stmt, "COALESCE(cohort_number, 0)") {
		t.Error("phone_cohort 策略索引应把空期数按 0 处理")
	}
}

func TestEnsureDedupeIndex_UnknownPolicy(t *testing.T) {
	// 未知策略在触库前直接失败
	err := EnsureDedupeIndex(nil, "by_name", zap.NewNop())
	if err == nil {
		t.Error("未知策略应报错")
	}
}
