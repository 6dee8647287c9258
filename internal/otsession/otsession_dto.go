package otsession

import (
	"time"

	"go-otpay/internal/attendance"
)

type StartSessionRequest struct {
	Location *attendance.GeoPoint `json:"location"`
	ImageRef string               `json:"image_ref"`
	Reason   string               `json:"reason"`
}

type EndSessionRequest struct {
	Location *attendance.GeoPoint `json:"location"`
	ImageRef string               `json:"image_ref"`
	Reason   string               `json:"reason"`
}

type ReviewSessionRequest struct {
	Action        string   `json:"action" binding:"required"`
	AdjustedHours *float64 `json:"adjusted_hours"`
	Notes         string   `json:"notes"`
}

type StartSessionResponse struct {
	SessionID string `json:"session_id"`
	OTType    string `json:"ot_type"`
	StartTime string `json:"start_time"`
	Status    string `json:"status"`
}

type EndSessionResponse struct {
	SessionID    string  `json:"session_id"`
	OTHours      float64 `json:"ot_hours"`
	Status       string  `json:"status"`
	TotalOTHours float64 `json:"total_ot_hours"`
	// Jam tetap utuh saat melewati batas; flag ini yang memberi tahu klien
	// bahwa sesi masuk antrian review.
	ExceedsDailyLimit bool `json:"exceeds_daily_limit"`
	ReviewRequired    bool `json:"review_required"`
}

// PendingReviewFilter mempersempit antrian review; field nil/kosong
// berarti tidak difilter.
type PendingReviewFilter struct {
	From         *time.Time
	To           *time.Time
	DepartmentID string
}

// PendingReviewItem adalah satu baris antrian review admin.
type PendingReviewItem struct {
	EmployeeID     string                       `json:"employee_id"`
	AttendanceDate string                       `json:"attendance_date"`
	TotalOTHours   float64                      `json:"total_ot_hours"`
	Session        attendance.OTSessionResponse `json:"session"`
}
