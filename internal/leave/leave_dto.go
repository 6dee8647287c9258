package leave

type CreateLeaveRequest struct {
	EmployeeID      string `json:"employee_id" binding:"required"`
	LeaveType       string `json:"leave_type" binding:"required"`
	StartDate       string `json:"start_date" binding:"required"`
	EndDate         string `json:"end_date" binding:"required"`
	Reason          string `json:"reason"`
	PermissionStart string `json:"permission_start"`
	PermissionEnd   string `json:"permission_end"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type LeaveResponse struct {
	ID              string   `json:"id"`
	CompanyID       string   `json:"company_id"`
	EmployeeID      string   `json:"employee_id"`
	LeaveType       string   `json:"leave_type"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	TotalDays       int      `json:"total_days"`
	Reason          string   `json:"reason,omitempty"`
	PermissionStart *string  `json:"permission_start,omitempty"`
	PermissionEnd   *string  `json:"permission_end,omitempty"`
	PermissionHours *float64 `json:"permission_hours,omitempty"`
	AffectsPayroll  bool     `json:"affects_payroll"`
	Status          string   `json:"status"`
	RejectionReason *string  `json:"rejection_reason,omitempty"`
}
