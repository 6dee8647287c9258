package holiday

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Holiday adalah satu tanggal libur perusahaan. DepartmentID nil berarti
// berlaku untuk seluruh company; AllowOT menentukan apakah lembur boleh
// dimulai pada tanggal tersebut.
type Holiday struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_holidays_company_date"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`
	HolidayDate  time.Time  `gorm:"type:date;not null;index:idx_holidays_company_date"`
	Name         string     `gorm:"type:varchar(150);not null"`
	AllowOT      bool       `gorm:"column:allow_ot;not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Holiday) TableName() string {
	return "holidays"
}

// AppliesTo melaporkan apakah libur ini berlaku untuk department tersebut.
func (h Holiday) AppliesTo(departmentID string) bool {
	if h.DepartmentID == nil {
		return true
	}
	return h.DepartmentID.String() == departmentID
}
