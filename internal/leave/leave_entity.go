package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Leave menampung tiga jenis pengajuan: casual_leave dan unpaid_leave
// memakai rentang tanggal penuh, permission memakai satu tanggal plus
// rentang jam (izin sebagian hari).
type Leave struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_company_status"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_employee_dates"`

	LeaveType string    `gorm:"type:varchar(30);not null;default:'casual_leave'"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text"`

	// Hanya terisi untuk leave_type = permission.
	PermissionStart *string  `gorm:"type:varchar(5)"`
	PermissionEnd   *string  `gorm:"type:varchar(5)"`
	PermissionHours *float64 `gorm:"type:numeric(4,2)"`

	AffectsPayroll bool `gorm:"not null;default:true"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leaves_company_status"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason *string    `gorm:"type:text"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ApprovedAt *time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index:idx_leaves_deleted_at"`
}

func (Leave) TableName() string {
	return "leaves"
}

const (
	TypeCasual     = "casual_leave"
	TypePermission = "permission"
	TypeUnpaid     = "unpaid_leave"
)

// IsFullDay melaporkan apakah leave memblokir seluruh hari kerja.
// Permission hanya memotong sebagian jam sehingga tidak pernah full day.
func (l Leave) IsFullDay() bool {
	return l.LeaveType == TypeCasual || l.LeaveType == TypeUnpaid
}

// Covers melaporkan apakah rentang leave mencakup tanggal tersebut.
func (l Leave) Covers(date time.Time) bool {
	d := date.Format("2006-01-02")
	return l.StartDate.Format("2006-01-02") <= d && d <= l.EndDate.Format("2006-01-02")
}
