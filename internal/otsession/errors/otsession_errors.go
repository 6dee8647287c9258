package oterrors

import (
	"net/http"

	"go-otpay/internal/shared/apperror"
)

// Setiap pelanggaran guard punya kode yang bisa dibedakan mesin; klien
// tidak boleh perlu mem-parse pesan untuk tahu kenapa ditolak.
var (
	ErrLeaveBlocked = apperror.New(
		"LEAVE_BLOCKED",
		"an approved full-day leave covers today, overtime cannot start",
		http.StatusConflict,
	)
	ErrPeriodLocked = apperror.New(
		"PERIOD_LOCKED",
		"payroll period for this date is locked",
		http.StatusConflict,
	)
	ErrHolidayBlocked = apperror.New(
		"HOLIDAY_BLOCKED",
		"overtime is not allowed on this holiday",
		http.StatusConflict,
	)
	ErrActiveSessionExists = apperror.New(
		"ACTIVE_SESSION_EXISTS",
		"an overtime session is already in progress for today",
		http.StatusConflict,
	)
	ErrSessionNotFound = apperror.New(
		"SESSION_NOT_FOUND",
		"overtime session not found",
		http.StatusNotFound,
	)
	ErrAttendanceNotFound = apperror.New(
		"ATTENDANCE_NOT_FOUND",
		"no attendance record for today, clock in before claiming post-shift overtime",
		http.StatusNotFound,
	)
	ErrInvalidStateTransition = apperror.New(
		"INVALID_STATE_TRANSITION",
		"overtime session is not in a reviewable or endable state",
		http.StatusConflict,
	)
	ErrStorageUnavailable = apperror.New(
		"STORAGE_UNAVAILABLE",
		"could not persist overtime session after repeated conflicts",
		http.StatusServiceUnavailable,
	)
	ErrAdjustedHoursRequired = apperror.New(
		apperror.CodeInvalidInput,
		"adjusted_hours is required and must be >= 0 for ADJUSTED review",
		http.StatusBadRequest,
	)
	ErrInvalidReviewAction = apperror.New(
		apperror.CodeInvalidInput,
		"action must be APPROVED, ADJUSTED, or REJECTED",
		http.StatusBadRequest,
	)
)
