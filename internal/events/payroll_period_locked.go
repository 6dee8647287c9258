package events

import "time"

const PayrollPeriodLockedTopic = "hr.payroll.period.locked.v1"

type PayrollPeriodLockedEvent struct {
	EventType      string    `json:"event_type"`
	PeriodID       string    `json:"period_id"`
	CompanyID      string    `json:"company_id"`
	Month          int       `json:"month"`
	Year           int       `json:"year"`
	LockedBy       string    `json:"locked_by"`
	LockedSessions int       `json:"locked_sessions"`
	OccurredAt     time.Time `json:"occurred_at"`
}
