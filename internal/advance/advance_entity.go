package advance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive = "active"
	StatusClosed = "closed"
)

// Advance adalah kasbon karyawan yang dicicil lewat potongan payroll
// bulanan. Jendela potongan berjalan DeductionMonths bulan sejak
// (StartMonth, StartYear) inklusif.
type Advance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index" json:"employee_id"`

	Amount            float64 `gorm:"not null" json:"amount"`
	InstallmentAmount float64 `gorm:"not null" json:"installment_amount"`
	StartMonth        int     `gorm:"not null" json:"start_month"`
	StartYear         int     `gorm:"not null" json:"start_year"`
	DeductionMonths   int     `gorm:"not null" json:"deduction_months"`

	Status    string    `gorm:"type:varchar(10);not null;default:'active'" json:"status"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Advance) TableName() string {
	return "salary_advances"
}

// CoversMonth melaporkan apakah bulan payroll jatuh dalam jendela potongan.
func (a *Advance) CoversMonth(month, year int) bool {
	if a.Status != StatusActive {
		return false
	}
	idx := (year-a.StartYear)*12 + (month - a.StartMonth)
	return idx >= 0 && idx < a.DeductionMonths
}
