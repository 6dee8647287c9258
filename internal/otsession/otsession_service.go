package otsession

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-otpay/internal/attendance"
	"go-otpay/internal/department"
	"go-otpay/internal/employee"
	"go-otpay/internal/events"
	"go-otpay/internal/holiday"
	"go-otpay/internal/leave"
	"go-otpay/internal/messaging/kafka"
	oterrors "go-otpay/internal/otsession/errors"
	"go-otpay/internal/payrollperiod"
	"go-otpay/internal/policy"
	"go-otpay/internal/shared/clock"
	"go-otpay/internal/shared/contextutil"
	"go-otpay/internal/shared/money"
)

// Mutasi daftar sesi dicoba ulang saat versi record kalah balapan.
// Di luar batas ini konflik dianggap gangguan storage.
const (
	writeRetryAttempts = 3
	writeRetryBackoff  = 25 * time.Millisecond
)

type Service interface {
	StartSession(ctx context.Context, companyID, employeeID string, req StartSessionRequest) (StartSessionResponse, error)
	EndSession(ctx context.Context, companyID, employeeID, sessionID string, req EndSessionRequest) (EndSessionResponse, error)
	ReviewSession(ctx context.Context, companyID, reviewerID, sessionID string, req ReviewSessionRequest) (attendance.OTSessionResponse, error)
	GetActive(ctx context.Context, companyID, employeeID string) (*attendance.OTSessionResponse, error)
	GetSessionsForDate(ctx context.Context, companyID, employeeID string, date time.Time) ([]attendance.OTSessionResponse, error)
	ListPendingReviews(ctx context.Context, companyID string, filter PendingReviewFilter) ([]PendingReviewItem, error)
}

// EmployeeDirectory dipakai untuk memetakan karyawan ke department saat
// antrian review difilter per department.
type EmployeeDirectory interface {
	FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error)
}

type service struct {
	attRepo   attendance.Repository
	leaveRepo leave.Repository
	policies  policy.Service
	holidays  holiday.Service
	periods   payrollperiod.Service
	depts     department.Service
	employees EmployeeDirectory
	outbox    kafka.OutboxRepository
	clk       clock.Clock
	logger    *zap.Logger
}

func NewService(
	attRepo attendance.Repository,
	leaveRepo leave.Repository,
	policies policy.Service,
	holidays holiday.Service,
	periods payrollperiod.Service,
	depts department.Service,
	employees EmployeeDirectory,
	outbox kafka.OutboxRepository,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("otsession.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("otsession.service")
	}
	return &service{
		attRepo:   attRepo,
		leaveRepo: leaveRepo,
		policies:  policies,
		holidays:  holidays,
		periods:   periods,
		depts:     depts,
		employees: employees,
		outbox:    outbox,
		clk:       clk,
		logger:    l,
	}
}

func (s *service) StartSession(ctx context.Context, companyID, employeeID string, req StartSessionRequest) (StartSessionResponse, error) {
	now := s.clk.Now()
	today := s.clk.Today()

	// Guard berurutan, kegagalan pertama menghentikan evaluasi.
	if _, err := s.leaveRepo.FindApprovedFullDayCovering(ctx, companyID, employeeID, today); err == nil {
		return StartSessionResponse{}, oterrors.ErrLeaveBlocked
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return StartSessionResponse{}, err
	}

	locked, err := s.periods.IsLocked(ctx, companyID, today)
	if err != nil {
		return StartSessionResponse{}, err
	}
	if locked {
		return StartSessionResponse{}, oterrors.ErrPeriodLocked
	}

	dept, err := s.depts.DepartmentFor(ctx, companyID, employeeID)
	if err != nil {
		return StartSessionResponse{}, err
	}
	deptID := ""
	if dept != nil {
		deptID = dept.ID.String()
	}

	hol, err := s.holidays.Lookup(ctx, companyID, deptID, today)
	if err != nil {
		return StartSessionResponse{}, err
	}
	if hol != nil && !hol.AllowOT {
		return StartSessionResponse{}, oterrors.ErrHolidayBlocked
	}

	pol, err := s.policies.PolicyFor(ctx, companyID)
	if err != nil {
		return StartSessionResponse{}, err
	}

	otType := s.classify(ctx, companyID, employeeID, hol, pol, now, today)

	session := attendance.OTSession{
		SessionID:     attendance.NewSessionID(now),
		OTType:        otType,
		StartTime:     now,
		StartLocation: req.Location,
		StartImageRef: req.ImageRef,
		Reason:        req.Reason,
	}

	if err := s.appendSession(ctx, companyID, employeeID, today, session, otType); err != nil {
		return StartSessionResponse{}, err
	}

	s.logger.Info("ot session started",
		zap.String("session_id", session.SessionID),
		zap.String("employee_id", employeeID),
		zap.String("ot_type", otType),
		zap.String("date", today.Format("2006-01-02")))

	return StartSessionResponse{
		SessionID: session.SessionID,
		OTType:    otType,
		StartTime: now.Format(time.RFC3339),
		Status:    attendance.SessionInProgress,
	}, nil
}

// classify menentukan jenis lembur: holiday menang atas weekend, weekend
// menang atas klasifikasi jam kerja normal.
func (s *service) classify(ctx context.Context, companyID, employeeID string, hol *holiday.Holiday, pol policy.Policy, now, today time.Time) string {
	if hol != nil {
		return attendance.OTHoliday
	}
	if pol.IsWeekend(now) {
		return attendance.OTWeekend
	}
	workStart, _, err := s.depts.WorkWindowFor(ctx, companyID, employeeID, today)
	if err == nil && now.Before(workStart) {
		return attendance.OTEarlyArrival
	}
	return attendance.OTLateDeparture
}

// appendSession adalah satu-satunya jalur penambahan sesi in_progress.
// Read-modify-write dengan cek versi menjamin dua start yang balapan
// tidak bisa dua-duanya menang.
func (s *service) appendSession(ctx context.Context, companyID, employeeID string, today time.Time, session attendance.OTSession, otType string) error {
	for attempt := 1; attempt <= writeRetryAttempts; attempt++ {
		day, err := s.attRepo.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
		if err != nil {
			if !attendance.IsNotFound(err) {
				return err
			}
			// Belum check-in: hanya wajar untuk lembur sebelum shift atau
			// di hari libur mingguan. Lembur pasca-shift tanpa check-in
			// adalah kesalahan.
			if otType != attendance.OTEarlyArrival && otType != attendance.OTWeekend {
				return oterrors.ErrAttendanceNotFound
			}
			fresh := &attendance.AttendanceDay{
				ID:             uuid.New(),
				CompanyID:      uuid.MustParse(companyID),
				EmployeeID:     uuid.MustParse(employeeID),
				AttendanceDate: today,
				Status:         attendance.StatusAbsent,
				Version:        1,
			}
			if serr := fresh.StartOTSession(session); serr != nil {
				return oterrors.ErrActiveSessionExists
			}
			if cerr := s.attRepo.Create(ctx, fresh); cerr != nil {
				// Kemungkinan besar balapan create dengan device lain;
				// iterasi berikutnya akan menemukan record yang menang.
				s.logger.Warn("attendance day create raced", zap.Error(cerr))
				time.Sleep(time.Duration(attempt) * writeRetryBackoff)
				continue
			}
			return nil
		}

		if serr := day.StartOTSession(session); serr != nil {
			return oterrors.ErrActiveSessionExists
		}
		err = s.attRepo.UpdateVersioned(ctx, day)
		if err == nil {
			return nil
		}
		if !errors.Is(err, attendance.ErrVersionConflict) {
			return err
		}
		time.Sleep(time.Duration(attempt) * writeRetryBackoff)
	}
	return oterrors.ErrStorageUnavailable
}

func (s *service) EndSession(ctx context.Context, companyID, employeeID, sessionID string, req EndSessionRequest) (EndSessionResponse, error) {
	now := s.clk.Now()

	day, err := s.attRepo.FindBySessionID(ctx, companyID, sessionID)
	if err != nil {
		if attendance.IsNotFound(err) {
			return EndSessionResponse{}, oterrors.ErrSessionNotFound
		}
		return EndSessionResponse{}, err
	}
	if day.EmployeeID.String() != employeeID {
		return EndSessionResponse{}, oterrors.ErrSessionNotFound
	}

	locked, err := s.periods.IsLocked(ctx, companyID, day.AttendanceDate)
	if err != nil {
		return EndSessionResponse{}, err
	}
	if locked {
		return EndSessionResponse{}, oterrors.ErrPeriodLocked
	}

	pol, err := s.policies.PolicyFor(ctx, companyID)
	if err != nil {
		return EndSessionResponse{}, err
	}

	var ended *attendance.OTSession
	for attempt := 1; ; attempt++ {
		sess, serr := day.EndOTSession(sessionID, now, req.Location, req.ImageRef, req.Reason, pol.MaxOTHoursPerDay)
		if serr != nil {
			return EndSessionResponse{}, mapAggregateError(serr)
		}
		uerr := s.attRepo.UpdateVersioned(ctx, day)
		if uerr == nil {
			ended = sess
			break
		}
		if !errors.Is(uerr, attendance.ErrVersionConflict) {
			return EndSessionResponse{}, uerr
		}
		if attempt >= writeRetryAttempts {
			return EndSessionResponse{}, oterrors.ErrStorageUnavailable
		}
		time.Sleep(time.Duration(attempt) * writeRetryBackoff)
		day, err = s.attRepo.FindBySessionID(ctx, companyID, sessionID)
		if err != nil {
			return EndSessionResponse{}, oterrors.ErrSessionNotFound
		}
	}

	if ended.Status == attendance.SessionPendingReview {
		projected := money.Round2(day.TotalOTHours + ended.OTHours)
		s.emitReviewRequired(ctx, companyID, employeeID, day, ended, projected, pol.MaxOTHoursPerDay, now)
	}

	s.logger.Info("ot session ended",
		zap.String("session_id", sessionID),
		zap.String("employee_id", employeeID),
		zap.Float64("ot_hours", ended.OTHours),
		zap.String("status", ended.Status))

	pending := ended.Status == attendance.SessionPendingReview
	return EndSessionResponse{
		SessionID:         sessionID,
		OTHours:           ended.OTHours,
		Status:            ended.Status,
		TotalOTHours:      day.TotalOTHours,
		ExceedsDailyLimit: pending,
		ReviewRequired:    pending,
	}, nil
}

func (s *service) ReviewSession(ctx context.Context, companyID, reviewerID, sessionID string, req ReviewSessionRequest) (attendance.OTSessionResponse, error) {
	switch req.Action {
	case attendance.ReviewActionApproved, attendance.ReviewActionAdjusted, attendance.ReviewActionRejected:
	default:
		return attendance.OTSessionResponse{}, oterrors.ErrInvalidReviewAction
	}

	now := s.clk.Now()

	day, err := s.attRepo.FindBySessionID(ctx, companyID, sessionID)
	if err != nil {
		if attendance.IsNotFound(err) {
			return attendance.OTSessionResponse{}, oterrors.ErrSessionNotFound
		}
		return attendance.OTSessionResponse{}, err
	}

	locked, err := s.periods.IsLocked(ctx, companyID, day.AttendanceDate)
	if err != nil {
		return attendance.OTSessionResponse{}, err
	}
	if locked {
		return attendance.OTSessionResponse{}, oterrors.ErrPeriodLocked
	}

	var reviewed *attendance.OTSession
	for attempt := 1; ; attempt++ {
		sess, serr := day.ReviewOTSession(sessionID, req.Action, req.AdjustedHours, req.Notes, reviewerID, now)
		if serr != nil {
			return attendance.OTSessionResponse{}, mapAggregateError(serr)
		}
		uerr := s.attRepo.UpdateVersioned(ctx, day)
		if uerr == nil {
			reviewed = sess
			break
		}
		if !errors.Is(uerr, attendance.ErrVersionConflict) {
			return attendance.OTSessionResponse{}, uerr
		}
		if attempt >= writeRetryAttempts {
			return attendance.OTSessionResponse{}, oterrors.ErrStorageUnavailable
		}
		time.Sleep(time.Duration(attempt) * writeRetryBackoff)
		day, err = s.attRepo.FindBySessionID(ctx, companyID, sessionID)
		if err != nil {
			return attendance.OTSessionResponse{}, oterrors.ErrSessionNotFound
		}
	}

	s.emitReviewed(ctx, companyID, day, reviewed, reviewerID, now)

	s.logger.Info("ot session reviewed",
		zap.String("session_id", sessionID),
		zap.String("reviewer_id", reviewerID),
		zap.String("action", req.Action),
		zap.String("status", reviewed.Status))

	return attendance.MapSessionToResponse(*reviewed), nil
}

func (s *service) GetActive(ctx context.Context, companyID, employeeID string) (*attendance.OTSessionResponse, error) {
	day, err := s.attRepo.FindByEmployeeAndDate(ctx, companyID, employeeID, s.clk.Today())
	if err != nil {
		if attendance.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	active := day.ActiveSession()
	if active == nil {
		return nil, nil
	}
	resp := attendance.MapSessionToResponse(*active)
	return &resp, nil
}

func (s *service) GetSessionsForDate(ctx context.Context, companyID, employeeID string, date time.Time) ([]attendance.OTSessionResponse, error) {
	day, err := s.attRepo.FindByEmployeeAndDate(ctx, companyID, employeeID, clock.DateOf(date))
	if err != nil {
		if attendance.IsNotFound(err) {
			return []attendance.OTSessionResponse{}, nil
		}
		return nil, err
	}
	out := make([]attendance.OTSessionResponse, 0, len(day.OTSessions))
	for _, sess := range day.OTSessions {
		out = append(out, attendance.MapSessionToResponse(sess))
	}
	return out, nil
}

func (s *service) ListPendingReviews(ctx context.Context, companyID string, filter PendingReviewFilter) ([]PendingReviewItem, error) {
	days, err := s.attRepo.FindWithPendingSessions(ctx, companyID)
	if err != nil {
		return nil, err
	}

	var deptOf map[string]string
	if filter.DepartmentID != "" {
		rows, derr := s.employees.FindAllByCompany(ctx, companyID)
		if derr != nil {
			return nil, derr
		}
		deptOf = make(map[string]string, len(rows))
		for _, e := range rows {
			if e.DepartmentID != nil {
				deptOf[e.ID.String()] = e.DepartmentID.String()
			}
		}
	}

	items := make([]PendingReviewItem, 0, len(days))
	for _, day := range days {
		if filter.From != nil && day.AttendanceDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && day.AttendanceDate.After(*filter.To) {
			continue
		}
		if filter.DepartmentID != "" && deptOf[day.EmployeeID.String()] != filter.DepartmentID {
			continue
		}
		for _, sess := range day.OTSessions {
			if sess.Status != attendance.SessionPendingReview {
				continue
			}
			items = append(items, PendingReviewItem{
				EmployeeID:     day.EmployeeID.String(),
				AttendanceDate: day.AttendanceDate.Format("2006-01-02"),
				TotalOTHours:   day.TotalOTHours,
				Session:        attendance.MapSessionToResponse(sess),
			})
		}
	}
	return items, nil
}

func mapAggregateError(err error) error {
	switch {
	case errors.Is(err, attendance.ErrSessionNotFound):
		return oterrors.ErrSessionNotFound
	case errors.Is(err, attendance.ErrInvalidTransition):
		return oterrors.ErrInvalidStateTransition
	case errors.Is(err, attendance.ErrActiveSessionExists):
		return oterrors.ErrActiveSessionExists
	case errors.Is(err, attendance.ErrAdjustedHoursNeeded):
		return oterrors.ErrAdjustedHoursRequired
	default:
		return err
	}
}

func (s *service) emitReviewRequired(ctx context.Context, companyID, employeeID string, day *attendance.AttendanceDay, sess *attendance.OTSession, projected, maxHours float64, now time.Time) {
	event, err := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx),
		"ot_session", sess.SessionID,
		"ot.review.required", events.OTReviewRequiredTopic,
		events.OTReviewRequiredEvent{
			EventType:      "ot.review.required",
			SessionID:      sess.SessionID,
			EmployeeID:     employeeID,
			CompanyID:      companyID,
			AttendanceDate: day.AttendanceDate.Format("2006-01-02"),
			OTHours:        sess.OTHours,
			ProjectedTotal: projected,
			MaxOTHours:     maxHours,
			OccurredAt:     now,
		},
	)
	if err != nil {
		s.logger.Error("marshal review required event failed", zap.Error(err))
		return
	}
	if oerr := s.outbox.Create(ctx, event); oerr != nil {
		s.logger.Error("enqueue review required event failed", zap.Error(oerr))
	}
}

func (s *service) emitReviewed(ctx context.Context, companyID string, day *attendance.AttendanceDay, sess *attendance.OTSession, reviewerID string, now time.Time) {
	action := ""
	if sess.ReviewAction != nil {
		action = *sess.ReviewAction
	}
	event, err := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx),
		"ot_session", sess.SessionID,
		"ot.reviewed", events.OTReviewedTopic,
		events.OTReviewedEvent{
			EventType:     "ot.reviewed",
			SessionID:     sess.SessionID,
			EmployeeID:    day.EmployeeID.String(),
			CompanyID:     companyID,
			ReviewAction:  action,
			OTHours:       sess.OTHours,
			OriginalHours: sess.OriginalOTHours,
			ReviewedBy:    reviewerID,
			OccurredAt:    now,
		},
	)
	if err != nil {
		s.logger.Error("marshal reviewed event failed", zap.Error(err))
		return
	}
	if oerr := s.outbox.Create(ctx, event); oerr != nil {
		s.logger.Error("enqueue reviewed event failed", zap.Error(oerr))
	}
}
