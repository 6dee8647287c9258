package salarystructure

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SalaryStructure adalah komponen gaji tetap per karyawan. Semua angka
// dalam satuan rupee per bulan. Custom earnings/deductions adalah peta
// nama→jumlah yang ikut dipro-rata seragam oleh engine payroll.
type SalaryStructure struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_company_employee_salary,priority:1" json:"company_id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_company_employee_salary,priority:2" json:"employee_id"`

	FixedBasic      float64 `gorm:"not null" json:"fixed_basic"`
	FixedHRA        float64 `gorm:"column:fixed_hra;not null" json:"fixed_hra"`
	FixedConveyance float64 `gorm:"not null" json:"fixed_conveyance"`

	CustomEarnings   datatypes.JSONMap `gorm:"type:jsonb" json:"custom_earnings"`
	CustomDeductions datatypes.JSONMap `gorm:"type:jsonb" json:"custom_deductions"`

	EPFEnabled bool    `gorm:"column:epf_enabled;not null;default:true" json:"epf_enabled"`
	ESIEnabled bool    `gorm:"column:esi_enabled;not null;default:true" json:"esi_enabled"`
	VPFAmount  float64 `gorm:"column:vpf_amount;not null;default:0" json:"vpf_amount"`

	EffectiveDate time.Time `gorm:"type:date;not null" json:"effective_date"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SalaryStructure) TableName() string {
	return "salary_structures"
}

// FixedTotal adalah basis untuk dailySalary dan hourlyRate.
func (s *SalaryStructure) FixedTotal() float64 {
	return s.FixedBasic + s.FixedHRA + s.FixedConveyance
}

// EarningsMap dan DeductionsMap menormalkan JSONMap ke map[string]float64;
// nilai non-numerik diabaikan.
func (s *SalaryStructure) EarningsMap() map[string]float64 {
	return toAmountMap(s.CustomEarnings)
}

func (s *SalaryStructure) DeductionsMap() map[string]float64 {
	return toAmountMap(s.CustomDeductions)
}

func toAmountMap(m datatypes.JSONMap) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if f, ok := v.(float64); ok {
			out[k] = f
		}
	}
	return out
}
