package attendance_test

import (
	"testing"
	"time"

	"go-otpay/internal/attendance"

	"github.com/stretchr/testify/assert"
)

func day() *attendance.AttendanceDay {
	return &attendance.AttendanceDay{
		Status:  attendance.StatusPresent,
		Version: 1,
	}
}

func startAt(hour, minute int) time.Time {
	return time.Date(2026, 8, 10, hour, minute, 0, 0, time.UTC)
}

func TestStartOTSessionRejectsSecondActive(t *testing.T) {
	a := day()

	err := a.StartOTSession(attendance.OTSession{
		SessionID: "OT-one",
		OTType:    attendance.OTLateDeparture,
		StartTime: startAt(18, 0),
	})
	assert.NoError(t, err)

	err = a.StartOTSession(attendance.OTSession{
		SessionID: "OT-two",
		OTType:    attendance.OTLateDeparture,
		StartTime: startAt(18, 5),
	})
	assert.ErrorIs(t, err, attendance.ErrActiveSessionExists)
	assert.Len(t, a.OTSessions, 1)
}

func TestStartOTSessionAllowedAfterPreviousEnded(t *testing.T) {
	a := day()
	assert.NoError(t, a.StartOTSession(attendance.OTSession{SessionID: "OT-one", StartTime: startAt(18, 0)}))

	_, err := a.EndOTSession("OT-one", startAt(19, 30), nil, "", "", 5.0)
	assert.NoError(t, err)

	err = a.StartOTSession(attendance.OTSession{SessionID: "OT-two", StartTime: startAt(20, 0)})
	assert.NoError(t, err)
	assert.Equal(t, 2, a.OTSessions[1].SessionNumber)
}

func TestEndOTSessionAutoApprovesWithinCap(t *testing.T) {
	a := day()
	assert.NoError(t, a.StartOTSession(attendance.OTSession{SessionID: "OT-one", StartTime: startAt(18, 0)}))

	s, err := a.EndOTSession("OT-one", startAt(20, 30), nil, "", "finishing release", 5.0)
	assert.NoError(t, err)
	assert.Equal(t, attendance.SessionApproved, s.Status)
	assert.Equal(t, 2.5, s.OTHours)
	assert.Equal(t, 2.5, a.TotalOTHours)
}

func TestEndOTSessionOverCapGoesToPendingReviewWithMeasuredHours(t *testing.T) {
	a := day()
	// Sudah ada 4.2 jam approved hari ini.
	end1 := startAt(16, 12)
	a.OTSessions = append(a.OTSessions, attendance.OTSession{
		SessionID: "OT-one",
		StartTime: startAt(12, 0),
		EndTime:   &end1,
		OTHours:   4.2,
		Status:    attendance.SessionApproved,
	})

	assert.NoError(t, a.StartOTSession(attendance.OTSession{SessionID: "OT-two", StartTime: startAt(18, 0)}))

	// 1.1 jam lagi: proyeksi 5.3 > cap 5.0, jadi PENDING_REVIEW.
	s, err := a.EndOTSession("OT-two", startAt(19, 6), nil, "", "", 5.0)
	assert.NoError(t, err)
	assert.Equal(t, attendance.SessionPendingReview, s.Status)
	// Jam terukur dipertahankan, tidak dipotong ke sisa cap.
	assert.Equal(t, 1.1, s.OTHours)
	// Hanya sesi approved yang dihitung dalam total.
	assert.Equal(t, 4.2, a.TotalOTHours)
}

func TestEndOTSessionExactlyAtCapAutoApproves(t *testing.T) {
	a := day()
	assert.NoError(t, a.StartOTSession(attendance.OTSession{SessionID: "OT-one", StartTime: startAt(18, 0)}))

	s, err := a.EndOTSession("OT-one", startAt(23, 0), nil, "", "", 5.0)
	assert.NoError(t, err)
	assert.Equal(t, attendance.SessionApproved, s.Status)
	assert.Equal(t, 5.0, s.OTHours)
}

func TestEndOTSessionUnknownOrAlreadyEnded(t *testing.T) {
	a := day()
	assert.NoError(t, a.StartOTSession(attendance.OTSession{SessionID: "OT-one", StartTime: startAt(18, 0)}))
	_, err := a.EndOTSession("OT-missing", startAt(19, 0), nil, "", "", 5.0)
	assert.ErrorIs(t, err, attendance.ErrSessionNotFound)

	_, err = a.EndOTSession("OT-one", startAt(19, 0), nil, "", "", 5.0)
	assert.NoError(t, err)
	_, err = a.EndOTSession("OT-one", startAt(20, 0), nil, "", "", 5.0)
	assert.ErrorIs(t, err, attendance.ErrInvalidTransition)
}

func TestReviewOTSessionApprove(t *testing.T) {
	a := day()
	assert.NoError(t, a.StartOTSession(attendance.OTSession{SessionID: "OT-one", StartTime: startAt(12, 0)}))
	_, err := a.EndOTSession("OT-one", startAt(18, 0), nil, "", "", 5.0)
	assert.NoError(t, err)
	assert.Equal(t, attendance.SessionPendingReview, a.OTSessions[0].Status)

	s, err := a.ReviewOTSession("OT-one", attendance.ReviewActionApproved, nil, "verified with supervisor", "admin-1", startAt(21, 0))
	assert.NoError(t, err)
	assert.Equal(t, attendance.SessionApproved, s.Status)
	assert.Equal(t, 6.0, a.TotalOTHours)
	assert.Equal(t, "admin-1", *s.ReviewedBy)
	assert.Equal(t, "verified with supervisor", *s.ReviewNotes)
}

func TestReviewOTSessionRejectKeepsHoursOutOfTotal(t *testing.T) {
	a := day()
	assert.NoError(t, a.StartOTSession(attendance.OTSession{SessionID: "OT-one", StartTime: startAt(12, 0)}))
	_, err := a.EndOTSession("OT-one", startAt(18, 0), nil, "", "", 5.0)
	assert.NoError(t, err)

	s, err := a.ReviewOTSession("OT-one", attendance.ReviewActionRejected, nil, "", "admin-1", startAt(21, 0))
	assert.NoError(t, err)
	assert.Equal(t, attendance.SessionRejected, s.Status)
	// Jam tetap tercatat untuk audit.
	assert.Equal(t, 6.0, s.OTHours)
	assert.Equal(t, 0.0, a.TotalOTHours)
}

func TestReviewOTSessionAdjustPreservesOriginalHours(t *testing.T) {
	a := day()
	assert.NoError(t, a.StartOTSession(attendance.OTSession{SessionID: "OT-one", StartTime: startAt(12, 0)}))
	_, err := a.EndOTSession("OT-one", startAt(18, 0), nil, "", "", 5.0)
	assert.NoError(t, err)

	adjusted := 4.5
	s, err := a.ReviewOTSession("OT-one", attendance.ReviewActionAdjusted, &adjusted, "", "admin-1", startAt(21, 0))
	assert.NoError(t, err)
	assert.Equal(t, attendance.SessionApproved, s.Status)
	assert.Equal(t, 4.5, s.OTHours)
	assert.Equal(t, 6.0, *s.OriginalOTHours)
	assert.Equal(t, 4.5, a.TotalOTHours)
}

func TestReviewOTSessionAdjustRequiresHours(t *testing.T) {
	a := day()
	assert.NoError(t, a.StartOTSession(attendance.OTSession{SessionID: "OT-one", StartTime: startAt(12, 0)}))
	_, err := a.EndOTSession("OT-one", startAt(18, 0), nil, "", "", 5.0)
	assert.NoError(t, err)

	_, err = a.ReviewOTSession("OT-one", attendance.ReviewActionAdjusted, nil, "", "admin-1", startAt(21, 0))
	assert.ErrorIs(t, err, attendance.ErrAdjustedHoursNeeded)
}

func TestReviewOTSessionGuardsInProgressAndTerminal(t *testing.T) {
	a := day()
	assert.NoError(t, a.StartOTSession(attendance.OTSession{SessionID: "OT-one", StartTime: startAt(18, 0)}))

	_, err := a.ReviewOTSession("OT-one", attendance.ReviewActionApproved, nil, "", "admin-1", startAt(19, 0))
	assert.ErrorIs(t, err, attendance.ErrInvalidTransition)

	_, enderr := a.EndOTSession("OT-one", startAt(19, 0), nil, "", "", 5.0)
	assert.NoError(t, enderr)
	a.LockApprovedSessions()

	_, err = a.ReviewOTSession("OT-one", attendance.ReviewActionRejected, nil, "", "admin-1", startAt(20, 0))
	assert.ErrorIs(t, err, attendance.ErrInvalidTransition)
}

func TestLockApprovedSessionsKeepsTotalsStable(t *testing.T) {
	a := day()
	assert.NoError(t, a.StartOTSession(attendance.OTSession{SessionID: "OT-one", StartTime: startAt(18, 0)}))
	_, err := a.EndOTSession("OT-one", startAt(20, 0), nil, "", "", 5.0)
	assert.NoError(t, err)

	before := a.TotalOTHours
	changed := a.LockApprovedSessions()
	assert.True(t, changed)
	assert.Equal(t, attendance.SessionLocked, a.OTSessions[0].Status)

	a.RecomputeOTTotal()
	assert.Equal(t, before, a.TotalOTHours)
}

func TestLockApprovedSessionsLeavesRejectedAndPending(t *testing.T) {
	a := day()
	a.OTSessions = append(a.OTSessions,
		attendance.OTSession{SessionID: "a", Status: attendance.SessionRejected, OTHours: 2},
		attendance.OTSession{SessionID: "b", Status: attendance.SessionPendingReview, OTHours: 3},
		attendance.OTSession{SessionID: "c", Status: attendance.SessionCompleted, OTHours: 1.5},
	)

	changed := a.LockApprovedSessions()
	assert.True(t, changed)
	assert.Equal(t, attendance.SessionRejected, a.OTSessions[0].Status)
	assert.Equal(t, attendance.SessionPendingReview, a.OTSessions[1].Status)
	// Alias lama "completed" ikut terkunci.
	assert.Equal(t, attendance.SessionLocked, a.OTSessions[2].Status)
}

func TestAttendanceWeight(t *testing.T) {
	cases := []struct {
		status string
		weight float64
	}{
		{attendance.StatusPresent, 1.0},
		{attendance.StatusLate, 1.0},
		{attendance.StatusOvertime, 1.0},
		{attendance.StatusEarlyCheckout, 1.0},
		{attendance.StatusHalfDay, 0.5},
		{attendance.StatusAbsent, 0.0},
	}
	for _, tc := range cases {
		a := &attendance.AttendanceDay{Status: tc.status}
		assert.Equal(t, tc.weight, a.AttendanceWeight(), tc.status)
	}

	pending := attendance.ReviewPending
	disputed := &attendance.AttendanceDay{Status: attendance.StatusPresent, AdminReviewStatus: &pending}
	assert.Equal(t, 0.0, disputed.AttendanceWeight())
}

func TestElapsedHoursRoundsAndNeverNegative(t *testing.T) {
	s := attendance.OTSession{StartTime: startAt(18, 0)}
	assert.Equal(t, 1.1, s.ElapsedHours(startAt(19, 6)))
	assert.Equal(t, 0.0, s.ElapsedHours(startAt(17, 0)))
}
