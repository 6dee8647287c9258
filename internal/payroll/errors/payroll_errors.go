package payrollerrors

import (
	"net/http"

	"go-otpay/internal/shared/apperror"
)

var (
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"month must be 1-12 and year must be reasonable",
		http.StatusBadRequest,
	)
	ErrSalaryStructureMissing = apperror.New(
		apperror.CodeInvalidState,
		"employee has no salary structure, payroll cannot be computed",
		http.StatusConflict,
	)
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found for this period",
		http.StatusNotFound,
	)
)
