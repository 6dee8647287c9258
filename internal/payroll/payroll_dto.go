package payroll

import "time"

type ComputePayrollRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Month      int    `json:"month" binding:"required,min=1,max=12"`
	Year       int    `json:"year" binding:"required,min=2000"`
}

type PayslipResponse struct {
	ID            string           `json:"id"`
	EmployeeID    string           `json:"employee_id"`
	PayslipNumber string           `json:"payslip_number"`
	Month         int              `json:"month"`
	Year          int              `json:"year"`
	Breakdown     PayrollBreakdown `json:"breakdown"`
	GeneratedAt   time.Time        `json:"generated_at"`
}
