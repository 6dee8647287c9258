package employee

type CreateEmployeeRequest struct {
	FullName     string `json:"full_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	DepartmentID string `json:"department_id" binding:"omitempty,uuid"`
}

type UpdateEmployeeRequest struct {
	FullName     string `json:"full_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	DepartmentID string `json:"department_id" binding:"omitempty,uuid"`
}

type EmployeeResponse struct {
	ID           string `json:"id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	CompanyID    string `json:"company_id"`
	DepartmentID string `json:"department_id,omitempty"`
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:        e.ID.String(),
		FullName:  e.FullName,
		Email:     e.Email,
		CompanyID: e.CompanyID.String(),
	}
	if e.DepartmentID != nil {
		resp.DepartmentID = e.DepartmentID.String()
	}
	return resp
}
