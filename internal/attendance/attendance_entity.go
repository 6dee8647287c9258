package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Status kehadiran harian. Lembur tidak pernah meng-imply kehadiran:
// record yang dibuat otomatis oleh sesi lembur berstatus absent sampai
// karyawan benar-benar clock in.
const (
	StatusPresent       = "present"
	StatusAbsent        = "absent"
	StatusHalfDay       = "half_day"
	StatusLate          = "late"
	StatusOvertime      = "overtime"
	StatusEarlyCheckout = "early_checkout"
	StatusHoliday       = "holiday"
	StatusWeeklyOff     = "weekly_off"
)

const ReviewPending = "pending"

// AttendanceDay adalah aggregate: satu record per (employee, tanggal)
// yang memiliki daftar sesi lembur tertanam sebagai kolom JSONB.
// Mutasi daftar sesi ditulis whole-record dengan optimistic concurrency
// lewat kolom version, sehingga invariant satu-sesi-aktif ditegakkan
// di satu tempat.
type AttendanceDay struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID      uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index:idx_attendance_days_key,unique"`
	EmployeeID     uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index:idx_attendance_days_key,unique"`
	AttendanceDate time.Time  `gorm:"column:attendance_date;type:date;not null;index:idx_attendance_days_key,unique"`
	ClockIn        *time.Time `gorm:"column:clock_in;type:timestamptz"`
	ClockOut       *time.Time `gorm:"column:clock_out;type:timestamptz"`
	Status         string     `gorm:"column:status;type:varchar(20);not null;default:'absent'"`

	// AdminReviewStatus = pending menahan kontribusi hari ini ke payroll
	// sampai sengketa kehadirannya diselesaikan. Terpisah dari review sesi OT.
	AdminReviewStatus *string `gorm:"column:admin_review_status;type:varchar(20)"`

	OTSessions   datatypes.JSONSlice[OTSession] `gorm:"column:ot_sessions"`
	TotalOTHours float64                        `gorm:"column:total_ot_hours;not null;default:0"`

	Version   int64 `gorm:"column:version;not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (AttendanceDay) TableName() string {
	return "attendance_days"
}
