package payroll

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Payslip adalah hasil perhitungan yang dipersist per (karyawan, bulan,
// tahun). Breakdown lengkap disimpan sebagai JSONB supaya slip lama
// tetap bisa dirender walau rumus berubah; recompute menimpa baris yang
// sama (idempoten), tidak menumpuk versi.
type Payslip struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_payslip_period,priority:1" json:"company_id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_payslip_period,priority:2" json:"employee_id"`
	Month      int       `gorm:"not null;uniqueIndex:uniq_payslip_period,priority:3" json:"month"`
	Year       int       `gorm:"not null;uniqueIndex:uniq_payslip_period,priority:4" json:"year"`

	PayslipNumber string `gorm:"type:varchar(30);not null" json:"payslip_number"`

	GrossSalary     float64 `gorm:"not null" json:"gross_salary"`
	TotalDeductions float64 `gorm:"not null" json:"total_deductions"`
	NetSalary       float64 `gorm:"not null" json:"net_salary"`

	Breakdown datatypes.JSON `gorm:"type:jsonb;not null" json:"breakdown"`

	GeneratedBy uuid.UUID `gorm:"type:uuid;not null" json:"generated_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Payslip) TableName() string {
	return "payslips"
}
