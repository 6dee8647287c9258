package payroll

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Upsert(ctx context.Context, p *Payslip) error
	FindByPeriod(ctx context.Context, companyID, employeeID string, month, year int) (*Payslip, error)
	FindAllByPeriod(ctx context.Context, companyID string, month, year int) ([]Payslip, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Upsert menimpa slip periode yang sama: recompute idempoten, nomor
// slip yang sudah terbit dipertahankan.
func (r *repository) Upsert(ctx context.Context, p *Payslip) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "company_id"}, {Name: "employee_id"}, {Name: "month"}, {Name: "year"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"gross_salary", "total_deductions", "net_salary",
				"breakdown", "generated_by", "updated_at",
			}),
		}).
		Create(p).Error
}

func (r *repository) FindByPeriod(ctx context.Context, companyID, employeeID string, month, year int) (*Payslip, error) {
	var p Payslip
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("month = ? AND year = ?", month, year).
		First(&p).Error
	return &p, err
}

func (r *repository) FindAllByPeriod(ctx context.Context, companyID string, month, year int) ([]Payslip, error) {
	var rows []Payslip
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("month = ? AND year = ?", month, year).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}
