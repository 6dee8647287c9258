package report

import (
	"net/http"
	"time"

	"go-otpay/internal/shared/apperror"
	"go-otpay/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const maxReportRangeDays = 92

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) SessionReport(c *gin.Context) {
	companyID := c.GetString("company_id")

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "from harus format YYYY-MM-DD", nil)
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "to harus format YYYY-MM-DD", nil)
		return
	}
	if to.Before(from) {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "to tidak boleh sebelum from", nil)
		return
	}
	if to.Sub(from) > maxReportRangeDays*24*time.Hour {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "rentang laporan maksimal 92 hari", nil)
		return
	}

	filter := Filter{
		EmployeeID:   c.Query("employee_id"),
		DepartmentID: c.Query("department_id"),
	}
	resp, err := h.service.SessionReport(c.Request.Context(), companyID, from, to, filter)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
