package report

type SessionReportRow struct {
	EmployeeID     string   `json:"employee_id"`
	EmployeeName   string   `json:"employee_name,omitempty"`
	AttendanceDate string   `json:"attendance_date"`
	SessionID      string   `json:"session_id"`
	SessionNumber  int      `json:"session_number"`
	OTType         string   `json:"ot_type"`
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time,omitempty"`
	OTHours        float64  `json:"ot_hours"`
	OriginalHours  *float64 `json:"original_ot_hours,omitempty"`
	Status         string   `json:"status"`
}

type SessionReportSummary struct {
	TotalSessions int                `json:"total_sessions"`
	TotalOTHours  float64            `json:"total_ot_hours"`
	ByStatus      map[string]int     `json:"by_status"`
	ByType        map[string]int     `json:"by_type"`
	HoursByType   map[string]float64 `json:"hours_by_type"`
}

type SessionReportResponse struct {
	From    string               `json:"from"`
	To      string               `json:"to"`
	Rows    []SessionReportRow   `json:"rows"`
	Summary SessionReportSummary `json:"summary"`
}
