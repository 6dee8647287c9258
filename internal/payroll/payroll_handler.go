package payroll

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go-otpay/internal/shared/apperror"
	"go-otpay/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Compute(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	companyID := c.GetString("company_id")
	actorID := c.GetString("employee_id")

	var req ComputePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Compute(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func parsePeriod(c *gin.Context) (month, year int, ok bool) {
	month, merr := strconv.Atoi(c.Query("month"))
	year, yerr := strconv.Atoi(c.Query("year"))
	if merr != nil || yerr != nil || month < 1 || month > 12 {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "month dan year wajib diisi", nil)
		return 0, 0, false
	}
	return month, year, true
}

func (h *Handler) GetPayslip(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.Param("employeeId")

	month, year, ok := parsePeriod(c)
	if !ok {
		return
	}

	resp, err := h.service.GetPayslip(c.Request.Context(), companyID, employeeID, month, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAllForPeriod(c *gin.Context) {
	companyID := c.GetString("company_id")

	month, year, ok := parsePeriod(c)
	if !ok {
		return
	}

	resp, err := h.service.GetAllForPeriod(c.Request.Context(), companyID, month, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DownloadPayslipPDF(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.Param("employeeId")

	month, year, ok := parsePeriod(c)
	if !ok {
		return
	}

	pdf, err := h.service.RenderPayslipPDF(c.Request.Context(), companyID, employeeID, month, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=payslip.pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}
