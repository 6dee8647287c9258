package attendance

import "time"

type ClockInRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Notes     *string  `json:"notes"`
}

type ClockOutRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Notes     *string  `json:"notes"`
}

type OTSessionResponse struct {
	SessionID       string     `json:"session_id"`
	SessionNumber   int        `json:"session_number"`
	OTType          string     `json:"ot_type"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	OTHours         float64    `json:"ot_hours"`
	OriginalOTHours *float64   `json:"original_ot_hours,omitempty"`
	Reason          string     `json:"reason,omitempty"`
	Status          string     `json:"status"`
	ReviewedBy      *string    `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	ReviewAction    *string    `json:"review_action,omitempty"`
	ReviewNotes     *string    `json:"review_notes,omitempty"`
}

type AttendanceDayResponse struct {
	ID             string              `json:"id"`
	EmployeeID     string              `json:"employee_id"`
	AttendanceDate string              `json:"attendance_date"`
	ClockIn        *time.Time          `json:"clock_in,omitempty"`
	ClockOut       *time.Time          `json:"clock_out,omitempty"`
	Status         string              `json:"status"`
	OTSessions     []OTSessionResponse `json:"ot_sessions"`
	TotalOTHours   float64             `json:"total_ot_hours"`
}

func MapSessionToResponse(s OTSession) OTSessionResponse {
	return OTSessionResponse{
		SessionID:       s.SessionID,
		SessionNumber:   s.SessionNumber,
		OTType:          s.OTType,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		OTHours:         s.OTHours,
		OriginalOTHours: s.OriginalOTHours,
		Reason:          s.Reason,
		Status:          s.Status,
		ReviewedBy:      s.ReviewedBy,
		ReviewedAt:      s.ReviewedAt,
		ReviewAction:    s.ReviewAction,
		ReviewNotes:     s.ReviewNotes,
	}
}

func MapToResponse(a AttendanceDay) AttendanceDayResponse {
	sessions := make([]OTSessionResponse, 0, len(a.OTSessions))
	for _, s := range a.OTSessions {
		sessions = append(sessions, MapSessionToResponse(s))
	}
	return AttendanceDayResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format("2006-01-02"),
		ClockIn:        a.ClockIn,
		ClockOut:       a.ClockOut,
		Status:         a.Status,
		OTSessions:     sessions,
		TotalOTHours:   a.TotalOTHours,
	}
}
