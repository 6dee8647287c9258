package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, a *AttendanceDay) error
	FindByID(ctx context.Context, companyID, id string) (*AttendanceDay, error)
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*AttendanceDay, error)
	FindBySessionID(ctx context.Context, companyID, sessionID string) (*AttendanceDay, error)
	FindMonth(ctx context.Context, companyID, employeeID string, month, year int) ([]AttendanceDay, error)
	FindRange(ctx context.Context, companyID string, from, to time.Time, employeeID string) ([]AttendanceDay, error)
	FindWithPendingSessions(ctx context.Context, companyID string) ([]AttendanceDay, error)
	// UpdateVersioned menulis balik record hanya kalau kolom version
	// belum berubah sejak dibaca. ErrVersionConflict kalau kalah balapan.
	UpdateVersioned(ctx context.Context, a *AttendanceDay) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *AttendanceDay) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*AttendanceDay, error) {
	var a AttendanceDay
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("id = ?", id).
		First(&a).Error
	return &a, err
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*AttendanceDay, error) {
	var a AttendanceDay
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	return &a, err
}

// FindBySessionID mencari hari yang memuat sesi via containment JSONB,
// jadi tidak perlu tabel sesi terpisah.
func (r *repository) FindBySessionID(ctx context.Context, companyID, sessionID string) (*AttendanceDay, error) {
	probe, err := json.Marshal([]map[string]string{{"session_id": sessionID}})
	if err != nil {
		return nil, err
	}
	var a AttendanceDay
	err = r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("ot_sessions @> ?", string(probe)).
		First(&a).Error
	return &a, err
}

func (r *repository) FindMonth(ctx context.Context, companyID, employeeID string, month, year int) ([]AttendanceDay, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	var rows []AttendanceDay
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("attendance_date >= ? AND attendance_date < ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindRange(ctx context.Context, companyID string, from, to time.Time, employeeID string) ([]AttendanceDay, error) {
	q := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("attendance_date >= ? AND attendance_date <= ?", from.Format("2006-01-02"), to.Format("2006-01-02"))
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}
	var rows []AttendanceDay
	err := q.Order("attendance_date ASC, employee_id ASC").Find(&rows).Error
	return rows, err
}

// FindWithPendingSessions mengambil hari yang punya minimal satu sesi
// PENDING_REVIEW untuk antrian review admin.
func (r *repository) FindWithPendingSessions(ctx context.Context, companyID string) ([]AttendanceDay, error) {
	probe := fmt.Sprintf(`[{"status":%q}]`, SessionPendingReview)
	var rows []AttendanceDay
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("ot_sessions @> ?", probe).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateVersioned(ctx context.Context, a *AttendanceDay) error {
	readVersion := a.Version
	a.Version = readVersion + 1
	res := r.db.WithContext(ctx).
		Model(&AttendanceDay{}).
		Where("id = ?", a.ID).
		Where("version = ?", readVersion).
		Updates(map[string]interface{}{
			"clock_in":            a.ClockIn,
			"clock_out":           a.ClockOut,
			"status":              a.Status,
			"admin_review_status": a.AdminReviewStatus,
			"ot_sessions":         a.OTSessions,
			"total_ot_hours":      a.TotalOTHours,
			"version":             a.Version,
			"updated_at":          time.Now(),
		})
	if res.Error != nil {
		a.Version = readVersion
		return res.Error
	}
	if res.RowsAffected == 0 {
		a.Version = readVersion
		return ErrVersionConflict
	}
	return nil
}

// IsNotFound membungkus pengecekan gorm supaya layer service tidak
// mengimpor gorm langsung.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
