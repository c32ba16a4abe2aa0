package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Choigapju/BootApplication/internal/model"
)

// ProgramRepository 课程数据访问接口
type ProgramRepository interface {
	GetByID(ctx context.Context, id string) (*model.Program, error)
	List(ctx context.Context) ([]model.Program, error)
	// GetOrCreate 按 program_id 查询，不存在时创建
	GetOrCreate(ctx context.Context, id string, name string) (*model.Program, error)
	// Delete 删除课程并级联清除其全部报名记录
	Delete(ctx context.Context, id string) error
	CountApplicants(ctx context.Context, id string) (int64, error)
}

type programRepo struct {
	db *gorm.DB
}

// NewProgramRepo 创建 ProgramRepository 实例
func NewProgramRepo(db *gorm.DB) ProgramRepository {
	return &programRepo{db: db}
}

func (r *programRepo) GetByID(ctx context.Context, id string) (*model.Program, error) {
	var program model.Program
	err := r.db.WithContext(ctx).
		Where("program_id = ?", id).
		First(&program).Error
	if err != nil {
		return nil, err
	}
	return &program, nil
}

func (r *programRepo) List(ctx context.Context) ([]model.Program, error) {
	var programs []model.Program
	err := r.db.WithContext(ctx).
		Order("program_id ASC").
		Find(&programs).Error
	return programs, err
}

func (r *programRepo) GetOrCreate(ctx context.Context, id string, name string) (*model.Program, error) {
	var program model.Program
	err := r.db.WithContext(ctx).
		Where("program_id = ?", id).
		First(&program).Error
	if err == nil {
		return &program, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	program = model.Program{ProgramID: id, Name: name}
	// 并发创建同一课程时以已存在记录为准
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&program).Error
	if err != nil {
		return nil, err
	}
	return &program, nil
}

func (r *programRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("program_id = ?", id).Delete(&model.Applicant{}).Error; err != nil {
			return err
		}
		return tx.Where("program_id = ?", id).Delete(&model.Program{}).Error
	})
}

func (r *programRepo) CountApplicants(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Applicant{}).
		Where("program_id = ?", id).
		Count(&count).Error
	return count, err
}
