package salarystructure

import "time"

type UpsertSalaryRequest struct {
	EmployeeID       string             `json:"employee_id" binding:"required,uuid"`
	FixedBasic       float64            `json:"fixed_basic" binding:"required,gte=0"`
	FixedHRA         float64            `json:"fixed_hra" binding:"gte=0"`
	FixedConveyance  float64            `json:"fixed_conveyance" binding:"gte=0"`
	CustomEarnings   map[string]float64 `json:"custom_earnings"`
	CustomDeductions map[string]float64 `json:"custom_deductions"`
	EPFEnabled       *bool              `json:"epf_enabled"`
	ESIEnabled       *bool              `json:"esi_enabled"`
	VPFAmount        float64            `json:"vpf_amount" binding:"gte=0"`
	EffectiveDate    string             `json:"effective_date" binding:"required"`
}

type SalaryResponse struct {
	ID               string             `json:"id"`
	EmployeeID       string             `json:"employee_id"`
	FixedBasic       float64            `json:"fixed_basic"`
	FixedHRA         float64            `json:"fixed_hra"`
	FixedConveyance  float64            `json:"fixed_conveyance"`
	CustomEarnings   map[string]float64 `json:"custom_earnings"`
	CustomDeductions map[string]float64 `json:"custom_deductions"`
	EPFEnabled       bool               `json:"epf_enabled"`
	ESIEnabled       bool               `json:"esi_enabled"`
	VPFAmount        float64            `json:"vpf_amount"`
	EffectiveDate    string             `json:"effective_date"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

func mapToResponse(s SalaryStructure) SalaryResponse {
	return SalaryResponse{
		ID:               s.ID.String(),
		EmployeeID:       s.EmployeeID.String(),
		FixedBasic:       s.FixedBasic,
		FixedHRA:         s.FixedHRA,
		FixedConveyance:  s.FixedConveyance,
		CustomEarnings:   s.EarningsMap(),
		CustomDeductions: s.DeductionsMap(),
		EPFEnabled:       s.EPFEnabled,
		ESIEnabled:       s.ESIEnabled,
		VPFAmount:        s.VPFAmount,
		EffectiveDate:    s.EffectiveDate.Format("2006-01-02"),
		UpdatedAt:        s.UpdatedAt,
	}
}
