package policy

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CompanySettings adalah singleton per company: kebijakan lembur dan
// standar payroll. Diubah hanya lewat endpoint admin, dibaca oleh
// state machine sesi lembur dan mesin kalkulasi payroll.
type CompanySettings struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	WeekendDays                datatypes.JSONSlice[int] `gorm:"column:weekend_days"`
	DefaultOTRate              float64                  `gorm:"column:default_ot_rate;not null;default:1.0"`
	MaxOTHoursPerDay           float64                  `gorm:"column:max_ot_hours_per_day;not null;default:5.0"`
	StandardWorkingDays        float64                  `gorm:"column:standard_working_days;not null;default:26"`
	StandardWorkingHoursPerDay float64                  `gorm:"column:standard_working_hours_per_day;not null;default:8"`
	Timezone                   string                   `gorm:"type:varchar(50);not null;default:'Asia/Kolkata'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CompanySettings) TableName() string {
	return "company_settings"
}
