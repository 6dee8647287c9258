package advance

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, a *Advance) error
	FindByEmployee(ctx context.Context, companyID, employeeID string) ([]Advance, error)
	FindActiveByEmployee(ctx context.Context, companyID, employeeID string) ([]Advance, error)
	Update(ctx context.Context, a *Advance) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Advance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByEmployee(ctx context.Context, companyID, employeeID string) ([]Advance, error) {
	var rows []Advance
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindActiveByEmployee(ctx context.Context, companyID, employeeID string) ([]Advance, error) {
	var rows []Advance
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusActive).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *Advance) error {
	return r.db.WithContext(ctx).Save(a).Error
}
