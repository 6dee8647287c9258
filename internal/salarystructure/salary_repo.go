package salarystructure

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	FindByEmployee(ctx context.Context, companyID, employeeID string) (*SalaryStructure, error)
	Upsert(ctx context.Context, s *SalaryStructure) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByEmployee(ctx context.Context, companyID, employeeID string) (*SalaryStructure, error) {
	var s SalaryStructure
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		First(&s).Error
	return &s, err
}

func (r *repository) Upsert(ctx context.Context, s *SalaryStructure) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "company_id"}, {Name: "employee_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"fixed_basic", "fixed_hra", "fixed_conveyance",
				"custom_earnings", "custom_deductions",
				"epf_enabled", "esi_enabled", "vpf_amount",
				"effective_date", "updated_at",
			}),
		}).
		Create(s).Error
}
