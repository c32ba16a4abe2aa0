package service

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/Choigapju/BootApplication/internal/model"
	"github.com/Choigapju/BootApplication/internal/repository"
)

// ── Mock ProgramRepository ──

type mockProgramRepo struct {
	programs map[string]*model.Program
}

func newMockProgramRepo() *mockProgramRepo {
	return &mockProgramRepo{programs: make(map[string]*model.Program)}
}

func (m *mockProgramRepo) GetByID(_ context.Context, id string) (*model.Program, error) {
	if p, ok := m.programs[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProgramRepo) List(_ context.Context) ([]model.Program, error) {
	ids := make([]string, 0, len(m.programs))
	for id := range m.programs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]model.Program, 0, len(ids))
	for _, id := range ids {
		result = append(result, *m.programs[id])
	}
	return result, nil
}

func (m *mockProgramRepo) GetOrCreate(_ context.Context, id string, name string) (*model.Program, error) {
	if p, ok := m.programs[id]; ok {
		return p, nil
	}
	p := &model.Program{ProgramID: id, Name: name}
	m.programs[id] = p
	return p, nil
}

func (m *mockProgramRepo) Delete(_ context.Context, id string) error {
	delete(m.programs, id)
	return nil
}

func (m *mockProgramRepo) CountApplicants(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

// ── Mock ApplicantRepository ──

type mockApplicantRepo struct {
	applicants map[uint]*model.Applicant
	nextID     uint

	// createBatchErr 非 nil 时 CreateBatch 直接返回该错误（模拟约束冲突）
	createBatchErr error
}

func newMockApplicantRepo() *mockApplicantRepo {
	return &mockApplicantRepo{applicants: make(map[uint]*model.Applicant), nextID: 1}
}

func (m *mockApplicantRepo) FindIdentityKeys(_ context.Context, programID string, cohort *int, policy string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	for _, a := range m.applicants {
		if a.ProgramID != programID {
			continue
		}
		if policy == "phone_cohort" && cohort != nil {
			if a.CohortNumber == nil || *a.CohortNumber != *cohort {
				continue
			}
		}
		keys[a.Key(policy)] = struct{}{}
	}
	return keys, nil
}

func (m *mockApplicantRepo) CreateBatch(_ context.Context, applicants []model.Applicant) error {
	if m.createBatchErr != nil {
		return m.createBatchErr
	}
	for i := range applicants {
		a := applicants[i]
		a.ID = m.nextID
		m.nextID++
		m.applicants[a.ID] = &a
	}
	return nil
}

func (m *mockApplicantRepo) GetByID(_ context.Context, id uint) (*model.Applicant, error) {
	if a, ok := m.applicants[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicantRepo) List(_ context.Context, filter *repository.ApplicantListFilter) ([]model.Applicant, int64, error) {
	ids := make([]uint, 0, len(m.applicants))
	for id := range m.applicants {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var matched []model.Applicant
	for _, id := range ids {
		a := m.applicants[id]
		if filter.ProgramID != "" && a.ProgramID != filter.ProgramID {
			continue
		}
		if filter.Cohort != nil && (a.CohortNumber == nil || *a.CohortNumber != *filter.Cohort) {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		matched = append(matched, *a)
	}

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.PageSize
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *mockApplicantRepo) Update(_ context.Context, applicant *model.Applicant) error {
	if _, ok := m.applicants[applicant.ID]; !ok {
		return fmt.Errorf("记录不存在: %d", applicant.ID)
	}
	m.applicants[applicant.ID] = applicant
	return nil
}

func (m *mockApplicantRepo) Delete(_ context.Context, id uint) error {
	delete(m.applicants, id)
	return nil
}

func (m *mockApplicantRepo) CountByStatus(_ context.Context, programID string) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, a := range m.applicants {
		if a.ProgramID == programID {
			counts[a.Status]++
		}
	}
	return counts, nil
}

func (m *mockApplicantRepo) ConsideringReasons(_ context.Context, programID string) (map[string]int64, error) {
	reasons := make(map[string]int64)
	for _, a := range m.applicants {
		if a.ProgramID == programID && a.Status == model.StatusConsidering && a.ConsideringReason != "" {
			reasons[a.ConsideringReason]++
		}
	}
	return reasons, nil
}
