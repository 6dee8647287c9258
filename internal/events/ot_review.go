package events

import "time"

const (
	OTReviewRequiredTopic = "hr.ot.review.required.v1"
	OTReviewedTopic       = "hr.ot.reviewed.v1"
)

// OTReviewRequiredEvent terbit saat sesi lembur berakhir melewati cap
// harian dan butuh keputusan admin.
type OTReviewRequiredEvent struct {
	EventType      string    `json:"event_type"`
	SessionID      string    `json:"session_id"`
	EmployeeID     string    `json:"employee_id"`
	CompanyID      string    `json:"company_id"`
	AttendanceDate string    `json:"attendance_date"`
	OTHours        float64   `json:"ot_hours"`
	ProjectedTotal float64   `json:"projected_total"`
	MaxOTHours     float64   `json:"max_ot_hours"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// OTReviewedEvent terbit setelah admin memutuskan sesi PENDING_REVIEW.
type OTReviewedEvent struct {
	EventType     string    `json:"event_type"`
	SessionID     string    `json:"session_id"`
	EmployeeID    string    `json:"employee_id"`
	CompanyID     string    `json:"company_id"`
	ReviewAction  string    `json:"review_action"`
	OTHours       float64   `json:"ot_hours"`
	OriginalHours *float64  `json:"original_hours,omitempty"`
	ReviewedBy    string    `json:"reviewed_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}
