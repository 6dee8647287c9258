package notification

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindByEmployee(ctx context.Context, companyID, employeeID string, limit, offset int) ([]Notification, error)
	CountAll(ctx context.Context, companyID, employeeID string) (int64, error)
	CountUnread(ctx context.Context, companyID, employeeID string) (int64, error)
	MarkRead(ctx context.Context, companyID, employeeID, id string, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindByEmployee(ctx context.Context, companyID, employeeID string, limit, offset int) ([]Notification, error) {
	var rows []Notification
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountAll(ctx context.Context, companyID, employeeID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Notification{}).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Count(&n).Error
	return n, err
}

func (r *repository) CountUnread(ctx context.Context, companyID, employeeID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Notification{}).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("read_at IS NULL").
		Count(&n).Error
	return n, err
}

func (r *repository) MarkRead(ctx context.Context, companyID, employeeID, id string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&Notification{}).
		Where("id = ?", id).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("read_at IS NULL").
		Update("read_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
