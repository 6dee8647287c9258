package policy

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByCompany(ctx context.Context, companyID string) (*CompanySettings, error)
	Upsert(ctx context.Context, s *CompanySettings) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) FindByCompany(ctx context.Context, companyID string) (*CompanySettings, error) {
	var s CompanySettings
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Upsert(ctx context.Context, s *CompanySettings) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "company_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"weekend_days",
				"default_ot_rate",
				"max_ot_hours_per_day",
				"standard_working_days",
				"standard_working_hours_per_day",
				"timezone",
				"updated_at",
			}),
		}).
		Create(s).Error
}
