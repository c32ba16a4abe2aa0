package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Choigapju/BootApplication/internal/model"
)

// ApplicantListFilter 报名记录列表筛选条件
type ApplicantListFilter struct {
	ProgramID string
	Cohort    *int
	Status    string
	Search    string // 对 name/phone/email 做模糊匹配
	Page      int
	PageSize  int
}

// ApplicantRepository 报名记录数据访问接口
type ApplicantRepository interface {
	// FindIdentityKeys 读取指定课程（及期数）下已入库记录的身份键集合
	FindIdentityKeys(ctx context.Context, programID string, cohort *int, policy string) (map[string]struct{}, error)
	// CreateBatch 整批写入；任一记录违反唯一约束时整批失败
	CreateBatch(ctx context.Context, applicants []model.Applicant) error
	GetByID(ctx context.Context, id uint) (*model.Applicant, error)
	List(ctx context.Context, filter *ApplicantListFilter) ([]model.Applicant, int64, error)
	Update(ctx context.Context, applicant *model.Applicant) error
	Delete(ctx context.Context, id uint) error
	CountByStatus(ctx context.Context, programID string) (map[string]int64, error)
	// ConsideringReasons 统计 considering 状态记录的原因分布
	ConsideringReasons(ctx context.Context, programID string) (map[string]int64, error)
}

type applicantRepo struct {
	db *gorm.DB
}

// NewApplicantRepo 创建 ApplicantRepository 实例
func NewApplicantRepo(db *gorm.DB) ApplicantRepository {
	return &applicantRepo{db: db}
}

func (r *applicantRepo) FindIdentityKeys(ctx context.Context, programID string, cohort *int, policy string) (map[string]struct{}, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Applicant{}).
		Where("program_id = ?", programID)
	// phone_cohort 策略下仅取目标期数的记录即可判重
	if policy == "phone_cohort" && cohort != nil {
		query = query.Where("cohort_number = ?", *cohort)
	}

	var rows []model.Applicant
	if err := query.Select("phone", "email", "cohort_number").Find(&rows).Error; err != nil {
		return nil, err
	}

	keys := make(map[string]struct{}, len(rows))
	for i := range rows {
		keys[rows[i].Key(policy)] = struct{}{}
	}
	return keys, nil
}

func (r *applicantRepo) CreateBatch(ctx context.Context, applicants []model.Applicant) error {
	if len(applicants) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&applicants).Error
}

func (r *applicantRepo) GetByID(ctx context.Context, id uint) (*model.Applicant, error) {
	var applicant model.Applicant
	err := r.db.WithContext(ctx).
		Preload("Program").
		Where("id = ?", id).
		First(&applicant).Error
	if err != nil {
		return nil, err
	}
	return &applicant, nil
}

func (r *applicantRepo) List(ctx context.Context, filter *ApplicantListFilter) ([]model.Applicant, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Applicant{})

	if filter.ProgramID != "" {
		query = query.Where("program_id = ?", filter.ProgramID)
	}
	if filter.Cohort != nil {
		query = query.Where("cohort_number = ?", *filter.Cohort)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var applicants []model.Applicant
	err := query.
		Order("id ASC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&applicants).Error
	return applicants, total, err
}

func (r *applicantRepo) Update(ctx context.Context, applicant *model.Applicant) error {
	return r.db.WithContext(ctx).Save(applicant).Error
}

func (r *applicantRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Applicant{}).Error
}

func (r *applicantRepo) CountByStatus(ctx context.Context, programID string) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.Applicant{}).
		Select("status, COUNT(*) AS count").
		Where("program_id = ?", programID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (r *applicantRepo) ConsideringReasons(ctx context.Context, programID string) (map[string]int64, error) {
	type row struct {
		Reason string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.Applicant{}).
		Select("considering_reason AS reason, COUNT(*) AS count").
		Where("program_id = ? AND status = ? AND considering_reason <> ''", programID, model.StatusConsidering).
		Group("considering_reason").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	reasons := make(map[string]int64, len(rows))
	for _, r := range rows {
		reasons[r.Reason] = r.Count
	}
	return reasons, nil
}
