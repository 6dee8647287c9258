package payrollperiod

import "time"

type LockPeriodRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required,min=2000"`
}

type UnlockPeriodRequest struct {
	Month  int    `json:"month" binding:"required,min=1,max=12"`
	Year   int    `json:"year" binding:"required,min=2000"`
	Reason string `json:"reason" binding:"required"`
}

type PeriodResponse struct {
	ID       string     `json:"id"`
	Month    int        `json:"month"`
	Year     int        `json:"year"`
	Status   string     `json:"status"`
	LockedAt *time.Time `json:"locked_at,omitempty"`
	LockedBy *string    `json:"locked_by,omitempty"`
}

type PeriodAuditResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	ActorID   string    `json:"actor_id"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func mapToResponse(p PayrollPeriod) PeriodResponse {
	resp := PeriodResponse{
		ID:       p.ID.String(),
		Month:    p.Month,
		Year:     p.Year,
		Status:   p.Status,
		LockedAt: p.LockedAt,
	}
	if p.LockedBy != nil {
		lb := p.LockedBy.String()
		resp.LockedBy = &lb
	}
	return resp
}

func mapAuditToResponse(a PeriodAudit) PeriodAuditResponse {
	return PeriodAuditResponse{
		ID:        a.ID.String(),
		Action:    a.Action,
		ActorID:   a.ActorID.String(),
		Reason:    a.Reason,
		CreatedAt: a.CreatedAt,
	}
}
