package attendance

import (
	"errors"
	"time"

	"go-otpay/internal/shared/money"
)

// Error aggregate, dipetakan ke apperror bertipe oleh layer service.
var (
	ErrActiveSessionExists = errors.New("an in-progress OT session already exists for this day")
	ErrSessionNotFound     = errors.New("ot session not found on this day")
	ErrInvalidTransition   = errors.New("invalid ot session state transition")
	ErrAdjustedHoursNeeded = errors.New("adjusted hours required for ADJUSTED review")
	ErrVersionConflict     = errors.New("attendance day was modified concurrently")
)

// ActiveSession mengembalikan sesi in_progress, nil kalau tidak ada.
// Invariannya: maksimal satu.
func (a *AttendanceDay) ActiveSession() *OTSession {
	for i := range a.OTSessions {
		if a.OTSessions[i].Status == SessionInProgress {
			return &a.OTSessions[i]
		}
	}
	return nil
}

// FindSession mencari sesi berdasarkan ID; nil kalau tidak ada.
func (a *AttendanceDay) FindSession(sessionID string) *OTSession {
	for i := range a.OTSessions {
		if a.OTSessions[i].SessionID == sessionID {
			return &a.OTSessions[i]
		}
	}
	return nil
}

// StartOTSession menambahkan sesi in_progress baru. Gagal kalau masih
// ada sesi aktif. Pemanggil wajib menulis balik record dengan
// UpdateVersioned sehingga dua start yang balapan tidak bisa dua-duanya menang.
func (a *AttendanceDay) StartOTSession(s OTSession) error {
	if a.ActiveSession() != nil {
		return ErrActiveSessionExists
	}
	s.Status = SessionInProgress
	s.SessionNumber = len(a.OTSessions) + 1
	a.OTSessions = append(a.OTSessions, s)
	return nil
}

// EndOTSession menutup sesi in_progress. Cap harian adalah pemicu review,
// bukan pemotong: jam terukur disimpan apa adanya dan sesi masuk
// PENDING_REVIEW kalau total terproyeksi melewati cap.
func (a *AttendanceDay) EndOTSession(
	sessionID string,
	endTime time.Time,
	endLocation *GeoPoint,
	endImageRef, reason string,
	maxOTHoursPerDay float64,
) (*OTSession, error) {
	s := a.FindSession(sessionID)
	if s == nil {
		return nil, ErrSessionNotFound
	}
	if s.Status != SessionInProgress {
		return nil, ErrInvalidTransition
	}

	otHours := s.ElapsedHours(endTime)
	priorApproved := 0.0
	for i := range a.OTSessions {
		if a.OTSessions[i].SessionID != sessionID && a.OTSessions[i].CountsTowardTotal() {
			priorApproved += a.OTSessions[i].OTHours
		}
	}

	s.EndTime = &endTime
	s.OTHours = otHours
	s.EndLocation = endLocation
	s.EndImageRef = endImageRef
	if reason != "" {
		s.Reason = reason
	}

	projected := money.Round2(priorApproved + otHours)
	if projected <= maxOTHoursPerDay {
		s.Status = SessionApproved
	} else {
		s.Status = SessionPendingReview
	}

	a.RecomputeOTTotal()
	return s, nil
}

// ReviewOTSession menerapkan aksi admin. REJECTED menyimpan jam untuk
// audit tapi mengeluarkannya dari semua total; ADJUSTED menimpa jam
// dengan nilai admin dan menyimpan jam asli.
func (a *AttendanceDay) ReviewOTSession(
	sessionID, action string,
	adjustedHours *float64,
	notes, reviewer string,
	now time.Time,
) (*OTSession, error) {
	s := a.FindSession(sessionID)
	if s == nil {
		return nil, ErrSessionNotFound
	}
	if s.Status == SessionInProgress || s.IsTerminal() {
		return nil, ErrInvalidTransition
	}

	switch action {
	case ReviewActionApproved:
		s.Status = SessionApproved
	case ReviewActionRejected:
		s.Status = SessionRejected
	case ReviewActionAdjusted:
		if adjustedHours == nil || *adjustedHours < 0 {
			return nil, ErrAdjustedHoursNeeded
		}
		if s.OriginalOTHours == nil {
			orig := s.OTHours
			s.OriginalOTHours = &orig
		}
		s.OTHours = money.Round2(*adjustedHours)
		s.Status = SessionApproved
	default:
		return nil, ErrInvalidTransition
	}

	reviewAction := action
	s.ReviewAction = &reviewAction
	s.ReviewedBy = &reviewer
	s.ReviewedAt = &now
	if notes != "" {
		s.ReviewNotes = &notes
	}

	a.RecomputeOTTotal()
	return s, nil
}

// LockApprovedSessions memindahkan semua sesi APPROVED/completed ke
// status locked saat periode payroll dikunci. Sesi locked tetap
// dihitung dalam total.
func (a *AttendanceDay) LockApprovedSessions() bool {
	changed := false
	for i := range a.OTSessions {
		switch a.OTSessions[i].Status {
		case SessionApproved, SessionCompleted:
			a.OTSessions[i].Status = SessionLocked
			changed = true
		}
	}
	return changed
}

// RecomputeOTTotal menghitung ulang cache total jam dari sesi yang
// dihitung saja.
func (a *AttendanceDay) RecomputeOTTotal() {
	total := 0.0
	for i := range a.OTSessions {
		if a.OTSessions[i].CountsTowardTotal() {
			total += a.OTSessions[i].OTHours
		}
	}
	a.TotalOTHours = money.Round2(total)
}

// AttendanceWeight adalah kontribusi hari ini ke skor kehadiran payroll.
// Hari yang masih disengketakan admin tidak menyumbang apa-apa.
func (a *AttendanceDay) AttendanceWeight() float64 {
	if a.AdminReviewStatus != nil && *a.AdminReviewStatus == ReviewPending {
		return 0
	}
	switch a.Status {
	case StatusHalfDay:
		return 0.5
	case StatusPresent, StatusLate, StatusOvertime, StatusEarlyCheckout, StatusHoliday, StatusWeeklyOff:
		return 1.0
	default:
		return 0
	}
}
