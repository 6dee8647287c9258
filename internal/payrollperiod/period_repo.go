package payrollperiod

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Find(ctx context.Context, companyID string, month, year int) (*PayrollPeriod, error)
	FindAll(ctx context.Context, companyID string) ([]PayrollPeriod, error)
	Create(ctx context.Context, p *PayrollPeriod) error
	Update(ctx context.Context, p *PayrollPeriod) error
	CreateAudit(ctx context.Context, a *PeriodAudit) error
	FindAudits(ctx context.Context, companyID, periodID string) ([]PeriodAudit, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Find(ctx context.Context, companyID string, month, year int) (*PayrollPeriod, error) {
	var p PayrollPeriod
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("month = ? AND year = ?", month, year).
		First(&p).Error
	return &p, err
}

func (r *repository) FindAll(ctx context.Context, companyID string) ([]PayrollPeriod, error) {
	var rows []PayrollPeriod
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("year DESC, month DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Create(ctx context.Context, p *PayrollPeriod) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) Update(ctx context.Context, p *PayrollPeriod) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) CreateAudit(ctx context.Context, a *PeriodAudit) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindAudits(ctx context.Context, companyID, periodID string) ([]PeriodAudit, error) {
	var rows []PeriodAudit
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("period_id = ?", periodID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}
