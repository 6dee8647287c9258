package attendance

import (
	"fmt"
	"time"

	"go-otpay/internal/shared/money"

	"github.com/google/uuid"
)

// Status sesi lembur. "completed" adalah alias legacy untuk APPROVED yang
// masih mungkin ada di data lama; "locked" adalah status terminal yang
// dipasang saat periode payroll dikunci.
const (
	SessionInProgress    = "in_progress"
	SessionApproved      = "APPROVED"
	SessionPendingReview = "PENDING_REVIEW"
	SessionRejected      = "REJECTED"
	SessionCompleted     = "completed"
	SessionLocked        = "locked"
)

// Jenis lembur, ditentukan saat sesi dimulai.
const (
	OTEarlyArrival  = "early_arrival"
	OTLateDeparture = "late_departure"
	OTWeekend       = "weekend"
	OTHoliday       = "holiday"
)

// Aksi review admin. ADJUSTED bukan status istirahat: hasil akhirnya
// APPROVED dengan jam override dan jam asli tersimpan.
const (
	ReviewActionApproved = "APPROVED"
	ReviewActionAdjusted = "ADJUSTED"
	ReviewActionRejected = "REJECTED"
)

type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// OTSession adalah value object yang tertanam di AttendanceDay; tidak
// pernah dialamatkan sendiri di luar induknya. Semua mutasi lewat
// method aggregate di attendance_day.go.
type OTSession struct {
	SessionID     string `json:"session_id"`
	SessionNumber int    `json:"session_number"`
	OTType        string `json:"ot_type"`

	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	OTHours         float64  `json:"ot_hours"`
	OriginalOTHours *float64 `json:"original_ot_hours,omitempty"`

	StartLocation *GeoPoint `json:"start_location,omitempty"`
	EndLocation   *GeoPoint `json:"end_location,omitempty"`
	StartImageRef string    `json:"start_image_ref,omitempty"`
	EndImageRef   string    `json:"end_image_ref,omitempty"`
	Reason        string    `json:"reason,omitempty"`

	Status string `json:"status"`

	ReviewedBy   *string    `json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	ReviewAction *string    `json:"review_action,omitempty"`
	ReviewNotes  *string    `json:"review_notes,omitempty"`
}

// NewSessionID menghasilkan ID sesi unik yang diawali komponen waktu
// supaya mudah diurutkan dan ditelusuri di log.
func NewSessionID(now time.Time) string {
	return fmt.Sprintf("OT%s-%s", now.UTC().Format("20060102T150405"), uuid.New().String()[:8])
}

// CountsTowardTotal melaporkan apakah jam sesi masuk ke total hari dan
// payroll. PENDING_REVIEW, REJECTED, dan in_progress tidak pernah dihitung.
func (s OTSession) CountsTowardTotal() bool {
	switch s.Status {
	case SessionApproved, SessionCompleted, SessionLocked:
		return true
	default:
		return false
	}
}

func (s OTSession) IsTerminal() bool {
	return s.Status == SessionLocked
}

// ElapsedHours menghitung jam berjalan sampai instant tertentu,
// dibulatkan 2 desimal, tidak pernah negatif.
func (s OTSession) ElapsedHours(until time.Time) float64 {
	h := until.Sub(s.StartTime).Hours()
	if h < 0 {
		return 0
	}
	return money.Round2(h)
}
