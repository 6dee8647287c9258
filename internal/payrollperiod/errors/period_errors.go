package perioderrors

import (
	"net/http"

	"go-otpay/internal/shared/apperror"
)

var (
	ErrPeriodLocked = apperror.New(
		"PERIOD_LOCKED",
		"payroll period is locked",
		http.StatusConflict,
	)
	ErrPeriodNotLocked = apperror.New(
		apperror.CodeInvalidState,
		"payroll period is not locked",
		http.StatusConflict,
	)
	ErrPeriodAlreadyLocked = apperror.New(
		"PERIOD_LOCKED",
		"payroll period is already locked",
		http.StatusConflict,
	)
	ErrPeriodProcessed = apperror.New(
		apperror.CodeInvalidState,
		"payroll period has been processed and cannot be unlocked",
		http.StatusConflict,
	)
	ErrUnlockReasonTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"unlock reason must be at least 10 characters",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"month must be 1-12 and year must be reasonable",
		http.StatusBadRequest,
	)
)
