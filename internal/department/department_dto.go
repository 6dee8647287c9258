package department

type CreateDepartmentRequest struct {
	Name               string  `json:"name" binding:"required"`
	WorkStart          string  `json:"work_start"`
	WorkEnd            string  `json:"work_end"`
	WorkingHoursPerDay float64 `json:"working_hours_per_day"`
}

type UpdateDepartmentRequest struct {
	Name               string  `json:"name" binding:"required"`
	WorkStart          string  `json:"work_start"`
	WorkEnd            string  `json:"work_end"`
	WorkingHoursPerDay float64 `json:"working_hours_per_day"`
}

type DepartmentResponse struct {
	ID                 string  `json:"id"`
	CompanyID          string  `json:"company_id"`
	Name               string  `json:"name"`
	WorkStart          string  `json:"work_start"`
	WorkEnd            string  `json:"work_end"`
	WorkingHoursPerDay float64 `json:"working_hours_per_day"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}
