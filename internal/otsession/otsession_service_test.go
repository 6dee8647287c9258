package otsession_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-otpay/internal/attendance"
	"go-otpay/internal/department"
	"go-otpay/internal/employee"
	"go-otpay/internal/holiday"
	"go-otpay/internal/leave"
	"go-otpay/internal/messaging/kafka"
	"go-otpay/internal/otsession"
	oterrors "go-otpay/internal/otsession/errors"
	"go-otpay/internal/payrollperiod"
	"go-otpay/internal/policy"
	"go-otpay/internal/shared/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

const (
	testCompanyID  = "0b9f9e9a-1111-4d6a-9d3e-aaaaaaaaaaaa"
	testEmployeeID = "0b9f9e9a-2222-4d6a-9d3e-bbbbbbbbbbbb"
	testReviewerID = "0b9f9e9a-3333-4d6a-9d3e-cccccccccccc"
)

// Selasa 2026-08-11 19:30, hari kerja biasa sesudah jam kerja.
var eveningNow = time.Date(2026, 8, 11, 19, 30, 0, 0, time.UTC)

type fakeAttendanceRepo struct {
	createFn                  func(ctx context.Context, a *attendance.AttendanceDay) error
	findByIDFn                func(ctx context.Context, companyID, id string) (*attendance.AttendanceDay, error)
	findByEmployeeAndDateFn   func(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.AttendanceDay, error)
	findBySessionIDFn         func(ctx context.Context, companyID, sessionID string) (*attendance.AttendanceDay, error)
	findMonthFn               func(ctx context.Context, companyID, employeeID string, month, year int) ([]attendance.AttendanceDay, error)
	findRangeFn               func(ctx context.Context, companyID string, from, to time.Time, employeeID string) ([]attendance.AttendanceDay, error)
	findWithPendingSessionsFn func(ctx context.Context, companyID string) ([]attendance.AttendanceDay, error)
	updateVersionedFn         func(ctx context.Context, a *attendance.AttendanceDay) error
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, a *attendance.AttendanceDay) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeAttendanceRepo) FindByID(ctx context.Context, companyID, id string) (*attendance.AttendanceDay, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.AttendanceDay, error) {
	if f.findByEmployeeAndDateFn != nil {
		return f.findByEmployeeAndDateFn(ctx, companyID, employeeID, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) FindBySessionID(ctx context.Context, companyID, sessionID string) (*attendance.AttendanceDay, error) {
	if f.findBySessionIDFn != nil {
		return f.findBySessionIDFn(ctx, companyID, sessionID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) FindMonth(ctx context.Context, companyID, employeeID string, month, year int) ([]attendance.AttendanceDay, error) {
	if f.findMonthFn != nil {
		return f.findMonthFn(ctx, companyID, employeeID, month, year)
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) FindRange(ctx context.Context, companyID string, from, to time.Time, employeeID string) ([]attendance.AttendanceDay, error) {
	if f.findRangeFn != nil {
		return f.findRangeFn(ctx, companyID, from, to, employeeID)
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) FindWithPendingSessions(ctx context.Context, companyID string) ([]attendance.AttendanceDay, error) {
	if f.findWithPendingSessionsFn != nil {
		return f.findWithPendingSessionsFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) UpdateVersioned(ctx context.Context, a *attendance.AttendanceDay) error {
	if f.updateVersionedFn != nil {
		return f.updateVersionedFn(ctx, a)
	}
	return nil
}

type fakeLeaveRepo struct {
	findApprovedFullDayCoveringFn func(ctx context.Context, companyID, employeeID string, date time.Time) (*leave.Leave, error)
}

func (f *fakeLeaveRepo) WithTx(tx *sql.Tx) leave.Repository { return f }
func (f *fakeLeaveRepo) Create(ctx context.Context, l *leave.Leave) error {
	return nil
}
func (f *fakeLeaveRepo) FindAllByCompany(ctx context.Context, companyID string) ([]leave.Leave, error) {
	return nil, nil
}
func (f *fakeLeaveRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*leave.Leave, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeLeaveRepo) Update(ctx context.Context, l *leave.Leave) error { return nil }
func (f *fakeLeaveRepo) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	return false, nil
}
func (f *fakeLeaveRepo) FindApprovedFullDayCovering(ctx context.Context, companyID, employeeID string, date time.Time) (*leave.Leave, error) {
	if f.findApprovedFullDayCoveringFn != nil {
		return f.findApprovedFullDayCoveringFn(ctx, companyID, employeeID, date)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeLeaveRepo) FindApprovedOverlapping(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]leave.Leave, error) {
	return nil, nil
}

type fakePolicyService struct {
	policy policy.Policy
}

func (f *fakePolicyService) PolicyFor(ctx context.Context, companyID string) (policy.Policy, error) {
	return f.policy, nil
}
func (f *fakePolicyService) Get(ctx context.Context, companyID string) (policy.SettingsResponse, error) {
	return policy.SettingsResponse{}, nil
}
func (f *fakePolicyService) Update(ctx context.Context, companyID string, req policy.UpdateSettingsRequest) (policy.SettingsResponse, error) {
	return policy.SettingsResponse{}, nil
}

type fakeHolidayService struct {
	lookupFn func(ctx context.Context, companyID, departmentID string, date time.Time) (*holiday.Holiday, error)
}

func (f *fakeHolidayService) Create(ctx context.Context, companyID string, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	return holiday.HolidayResponse{}, nil
}
func (f *fakeHolidayService) GetRange(ctx context.Context, companyID, from, to string) ([]holiday.HolidayResponse, error) {
	return nil, nil
}
func (f *fakeHolidayService) Delete(ctx context.Context, companyID, id string) error { return nil }
func (f *fakeHolidayService) Lookup(ctx context.Context, companyID, departmentID string, date time.Time) (*holiday.Holiday, error) {
	if f.lookupFn != nil {
		return f.lookupFn(ctx, companyID, departmentID, date)
	}
	return nil, nil
}

type fakePeriodService struct {
	isLockedFn func(ctx context.Context, companyID string, date time.Time) (bool, error)
}

func (f *fakePeriodService) Lock(ctx context.Context, companyID, actorID string, month, year int) (payrollperiod.PeriodResponse, error) {
	return payrollperiod.PeriodResponse{}, nil
}
func (f *fakePeriodService) Unlock(ctx context.Context, companyID, actorID string, month, year int, reason string) (payrollperiod.PeriodResponse, error) {
	return payrollperiod.PeriodResponse{}, nil
}
func (f *fakePeriodService) MarkProcessed(ctx context.Context, companyID string, month, year int) error {
	return nil
}
func (f *fakePeriodService) IsLocked(ctx context.Context, companyID string, date time.Time) (bool, error) {
	if f.isLockedFn != nil {
		return f.isLockedFn(ctx, companyID, date)
	}
	return false, nil
}
func (f *fakePeriodService) GetAll(ctx context.Context, companyID string) ([]payrollperiod.PeriodResponse, error) {
	return nil, nil
}
func (f *fakePeriodService) GetAudits(ctx context.Context, companyID, periodID string) ([]payrollperiod.PeriodAuditResponse, error) {
	return nil, nil
}

type fakeDepartmentService struct {
	workWindowFn    func(ctx context.Context, companyID, employeeID string, date time.Time) (time.Time, time.Time, error)
	departmentForFn func(ctx context.Context, companyID, employeeID string) (*department.Department, error)
}

func (f *fakeDepartmentService) Create(ctx context.Context, companyID string, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	return department.DepartmentResponse{}, nil
}
func (f *fakeDepartmentService) GetAll(ctx context.Context, companyID string) ([]department.DepartmentResponse, error) {
	return nil, nil
}
func (f *fakeDepartmentService) GetByID(ctx context.Context, companyID, id string) (department.DepartmentResponse, error) {
	return department.DepartmentResponse{}, nil
}
func (f *fakeDepartmentService) Update(ctx context.Context, companyID, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	return department.DepartmentResponse{}, nil
}
func (f *fakeDepartmentService) Delete(ctx context.Context, companyID, id string) error { return nil }
func (f *fakeDepartmentService) WorkWindowFor(ctx context.Context, companyID, employeeID string, date time.Time) (time.Time, time.Time, error) {
	if f.workWindowFn != nil {
		return f.workWindowFn(ctx, companyID, employeeID, date)
	}
	// 09:00-18:00 pada tanggal yang diminta.
	start := time.Date(date.Year(), date.Month(), date.Day(), 9, 0, 0, 0, time.UTC)
	end := time.Date(date.Year(), date.Month(), date.Day(), 18, 0, 0, 0, time.UTC)
	return start, end, nil
}
func (f *fakeDepartmentService) DepartmentFor(ctx context.Context, companyID, employeeID string) (*department.Department, error) {
	if f.departmentForFn != nil {
		return f.departmentForFn(ctx, companyID, employeeID)
	}
	return nil, nil
}

type fakeOutboxRepo struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepo) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error                { return nil }
func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

type fakeEmployeeDirectory struct {
	rows []employee.Employee
	err  error
}

func (f *fakeEmployeeDirectory) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return f.rows, f.err
}

type deps struct {
	attRepo   *fakeAttendanceRepo
	leaveRepo *fakeLeaveRepo
	policies  *fakePolicyService
	holidays  *fakeHolidayService
	periods   *fakePeriodService
	depts     *fakeDepartmentService
	employees *fakeEmployeeDirectory
	outbox    *fakeOutboxRepo
}

func newService(now time.Time, d *deps) otsession.Service {
	if d.attRepo == nil {
		d.attRepo = &fakeAttendanceRepo{}
	}
	if d.leaveRepo == nil {
		d.leaveRepo = &fakeLeaveRepo{}
	}
	if d.policies == nil {
		d.policies = &fakePolicyService{policy: policy.Default()}
	}
	if d.holidays == nil {
		d.holidays = &fakeHolidayService{}
	}
	if d.periods == nil {
		d.periods = &fakePeriodService{}
	}
	if d.depts == nil {
		d.depts = &fakeDepartmentService{}
	}
	if d.employees == nil {
		d.employees = &fakeEmployeeDirectory{}
	}
	if d.outbox == nil {
		d.outbox = &fakeOutboxRepo{}
	}
	return otsession.NewService(
		d.attRepo, d.leaveRepo, d.policies, d.holidays, d.periods, d.depts, d.employees, d.outbox,
		clock.Fixed(now),
	)
}

func existingDay(sessions ...attendance.OTSession) *attendance.AttendanceDay {
	day := &attendance.AttendanceDay{
		ID:             uuid.New(),
		CompanyID:      uuid.MustParse(testCompanyID),
		EmployeeID:     uuid.MustParse(testEmployeeID),
		AttendanceDate: clock.DateOf(eveningNow),
		Status:         attendance.StatusPresent,
		OTSessions:     sessions,
		Version:        1,
	}
	day.RecomputeOTTotal()
	return day
}

func TestStartSessionBlockedByFullDayLeave(t *testing.T) {
	d := &deps{
		leaveRepo: &fakeLeaveRepo{
			findApprovedFullDayCoveringFn: func(ctx context.Context, companyID, employeeID string, date time.Time) (*leave.Leave, error) {
				return &leave.Leave{LeaveType: leave.TypeCasual}, nil
			},
		},
	}
	svc := newService(eveningNow, d)

	_, err := svc.StartSession(context.Background(), testCompanyID, testEmployeeID, otsession.StartSessionRequest{})
	assert.ErrorIs(t, err, oterrors.ErrLeaveBlocked)
}

func TestStartSessionBlockedByLockedPeriod(t *testing.T) {
	d := &deps{
		periods: &fakePeriodService{
			isLockedFn: func(ctx context.Context, companyID string, date time.Time) (bool, error) {
				return true, nil
			},
		},
	}
	svc := newService(eveningNow, d)

	_, err := svc.StartSession(context.Background(), testCompanyID, testEmployeeID, otsession.StartSessionRequest{})
	assert.ErrorIs(t, err, oterrors.ErrPeriodLocked)
}

func TestStartSessionBlockedByHolidayWithoutAllowOT(t *testing.T) {
	d := &deps{
		holidays: &fakeHolidayService{
			lookupFn: func(ctx context.Context, companyID, departmentID string, date time.Time) (*holiday.Holiday, error) {
				return &holiday.Holiday{AllowOT: false}, nil
			},
		},
	}
	svc := newService(eveningNow, d)

	_, err := svc.StartSession(context.Background(), testCompanyID, testEmployeeID, otsession.StartSessionRequest{})
	assert.ErrorIs(t, err, oterrors.ErrHolidayBlocked)
}

func TestStartSessionClassifiesHolidayOverWeekend(t *testing.T) {
	// Minggu + holiday dengan allow_ot: holiday menang.
	sunday := time.Date(2026, 8, 16, 10, 0, 0, 0, time.UTC)
	var updated *attendance.AttendanceDay
	d := &deps{
		holidays: &fakeHolidayService{
			lookupFn: func(ctx context.Context, companyID, departmentID string, date time.Time) (*holiday.Holiday, error) {
				return &holiday.Holiday{AllowOT: true}, nil
			},
		},
		attRepo: &fakeAttendanceRepo{
			createFn: func(ctx context.Context, a *attendance.AttendanceDay) error {
				updated = a
				return nil
			},
		},
	}
	svc := newService(sunday, d)

	resp, err := svc.StartSession(context.Background(), testCompanyID, testEmployeeID, otsession.StartSessionRequest{})
	assert.NoError(t, err)
	assert.Equal(t, attendance.OTHoliday, resp.OTType)
	assert.NotNil(t, updated)
}

func TestStartSessionClassifiesWeekend(t *testing.T) {
	sunday := time.Date(2026, 8, 16, 10, 0, 0, 0, time.UTC)
	d := &deps{attRepo: &fakeAttendanceRepo{}}
	svc := newService(sunday, d)

	resp, err := svc.StartSession(context.Background(), testCompanyID, testEmployeeID, otsession.StartSessionRequest{})
	assert.NoError(t, err)
	assert.Equal(t, attendance.OTWeekend, resp.OTType)
}

func TestStartSessionClassifiesEarlyArrival(t *testing.T) {
	morning := time.Date(2026, 8, 11, 7, 0, 0, 0, time.UTC)
	var created *attendance.AttendanceDay
	d := &deps{
		attRepo: &fakeAttendanceRepo{
			createFn: func(ctx context.Context, a *attendance.AttendanceDay) error {
				created = a
				return nil
			},
		},
	}
	svc := newService(morning, d)

	resp, err := svc.StartSession(context.Background(), testCompanyID, testEmployeeID, otsession.StartSessionRequest{})
	assert.NoError(t, err)
	assert.Equal(t, attendance.OTEarlyArrival, resp.OTType)
	// Hari auto-dibuat berstatus absent, bukan present.
	assert.NotNil(t, created)
	assert.Equal(t, attendance.StatusAbsent, created.Status)
	assert.Len(t, created.OTSessions, 1)
	assert.Equal(t, attendance.SessionInProgress, created.OTSessions[0].Status)
}

func TestStartSessionLateDepartureWithoutAttendanceFails(t *testing.T) {
	d := &deps{attRepo: &fakeAttendanceRepo{}}
	svc := newService(eveningNow, d)

	_, err := svc.StartSession(context.Background(), testCompanyID, testEmployeeID, otsession.StartSessionRequest{})
	assert.ErrorIs(t, err, oterrors.ErrAttendanceNotFound)
}

func TestStartSessionRejectsSecondActive(t *testing.T) {
	day := existingDay(attendance.OTSession{
		SessionID: "OT-active",
		Status:    attendance.SessionInProgress,
		StartTime: eveningNow.Add(-time.Hour),
	})
	d := &deps{
		attRepo: &fakeAttendanceRepo{
			findByEmployeeAndDateFn: func(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.AttendanceDay, error) {
				return day, nil
			},
		},
	}
	svc := newService(eveningNow, d)

	_, err := svc.StartSession(context.Background(), testCompanyID, testEmployeeID, otsession.StartSessionRequest{})
	assert.ErrorIs(t, err, oterrors.ErrActiveSessionExists)
}

func TestStartSessionExhaustedConflictsSurfaceStorageUnavailable(t *testing.T) {
	d := &deps{
		attRepo: &fakeAttendanceRepo{
			findByEmployeeAndDateFn: func(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.AttendanceDay, error) {
				return existingDay(), nil
			},
			updateVersionedFn: func(ctx context.Context, a *attendance.AttendanceDay) error {
				return attendance.ErrVersionConflict
			},
		},
	}
	svc := newService(eveningNow, d)

	_, err := svc.StartSession(context.Background(), testCompanyID, testEmployeeID, otsession.StartSessionRequest{})
	assert.ErrorIs(t, err, oterrors.ErrStorageUnavailable)
}

func TestStartSessionRetriesConflictThenSucceeds(t *testing.T) {
	conflicts := 0
	d := &deps{
		attRepo: &fakeAttendanceRepo{
			findByEmployeeAndDateFn: func(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.AttendanceDay, error) {
				return existingDay(), nil
			},
			updateVersionedFn: func(ctx context.Context, a *attendance.AttendanceDay) error {
				if conflicts < 2 {
					conflicts++
					return attendance.ErrVersionConflict
				}
				return nil
			},
		},
	}
	svc := newService(eveningNow, d)

	resp, err := svc.StartSession(context.Background(), testCompanyID, testEmployeeID, otsession.StartSessionRequest{})
	assert.NoError(t, err)
	assert.Equal(t, 2, conflicts)
	assert.NotEmpty(t, resp.SessionID)
}

func TestEndSessionAutoApprovesWithinCap(t *testing.T) {
	day := existingDay(attendance.OTSession{
		SessionID: "OT-one",
		Status:    attendance.SessionInProgress,
		StartTime: eveningNow.Add(-90 * time.Minute),
	})
	var persisted *attendance.AttendanceDay
	outbox := &fakeOutboxRepo{}
	d := &deps{
		attRepo: &fakeAttendanceRepo{
			findBySessionIDFn: func(ctx context.Context, companyID, sessionID string) (*attendance.AttendanceDay, error) {
				return day, nil
			},
			updateVersionedFn: func(ctx context.Context, a *attendance.AttendanceDay) error {
				persisted = a
				return nil
			},
		},
		outbox: outbox,
	}
	svc := newService(eveningNow, d)

	resp, err := svc.EndSession(context.Background(), testCompanyID, testEmployeeID, "OT-one", otsession.EndSessionRequest{})
	assert.NoError(t, err)
	assert.Equal(t, attendance.SessionApproved, resp.Status)
	assert.Equal(t, 1.5, resp.OTHours)
	assert.Equal(t, 1.5, resp.TotalOTHours)
	assert.False(t, resp.ReviewRequired)
	assert.NotNil(t, persisted)
	// Dalam cap: tidak ada event review.
	assert.Empty(t, outbox.created)
}

func TestEndSessionOverCapPendingReviewAndEmitsEvent(t *testing.T) {
	endedAt := eveningNow
	day := existingDay(
		attendance.OTSession{
			SessionID: "OT-prior",
			Status:    attendance.SessionApproved,
			OTHours:   4.2,
			StartTime: endedAt.Add(-8 * time.Hour),
		},
		attendance.OTSession{
			SessionID: "OT-two",
			Status:    attendance.SessionInProgress,
			StartTime: endedAt.Add(-66 * time.Minute), // 1.1 jam
		},
	)
	outbox := &fakeOutboxRepo{}
	d := &deps{
		attRepo: &fakeAttendanceRepo{
			findBySessionIDFn: func(ctx context.Context, companyID, sessionID string) (*attendance.AttendanceDay, error) {
				return day, nil
			},
		},
		outbox: outbox,
	}
	svc := newService(endedAt, d)

	resp, err := svc.EndSession(context.Background(), testCompanyID, testEmployeeID, "OT-two", otsession.EndSessionRequest{})
	assert.NoError(t, err)
	assert.Equal(t, attendance.SessionPendingReview, resp.Status)
	// Jam terukur dipertahankan persis.
	assert.Equal(t, 1.1, resp.OTHours)
	// Total hanya memuat jam approved.
	assert.Equal(t, 4.2, resp.TotalOTHours)
	assert.True(t, resp.ExceedsDailyLimit)
	assert.True(t, resp.ReviewRequired)
	assert.Len(t, outbox.created, 1)
	assert.Equal(t, "ot.review.required", outbox.created[0].EventType)
}

func TestEndSessionWrongEmployeeNotFound(t *testing.T) {
	day := existingDay(attendance.OTSession{
		SessionID: "OT-one",
		Status:    attendance.SessionInProgress,
		StartTime: eveningNow.Add(-time.Hour),
	})
	d := &deps{
		attRepo: &fakeAttendanceRepo{
			findBySessionIDFn: func(ctx context.Context, companyID, sessionID string) (*attendance.AttendanceDay, error) {
				return day, nil
			},
		},
	}
	svc := newService(eveningNow, d)

	_, err := svc.EndSession(context.Background(), testCompanyID, testReviewerID, "OT-one", otsession.EndSessionRequest{})
	assert.ErrorIs(t, err, oterrors.ErrSessionNotFound)
}

func TestEndSessionBlockedByLockedPeriod(t *testing.T) {
	day := existingDay(attendance.OTSession{
		SessionID: "OT-one",
		Status:    attendance.SessionInProgress,
		StartTime: eveningNow.Add(-time.Hour),
	})
	d := &deps{
		attRepo: &fakeAttendanceRepo{
			findBySessionIDFn: func(ctx context.Context, companyID, sessionID string) (*attendance.AttendanceDay, error) {
				return day, nil
			},
		},
		periods: &fakePeriodService{
			isLockedFn: func(ctx context.Context, companyID string, date time.Time) (bool, error) {
				return true, nil
			},
		},
	}
	svc := newService(eveningNow, d)

	_, err := svc.EndSession(context.Background(), testCompanyID, testEmployeeID, "OT-one", otsession.EndSessionRequest{})
	assert.ErrorIs(t, err, oterrors.ErrPeriodLocked)
}

func TestReviewSessionApproveEmitsEvent(t *testing.T) {
	day := existingDay(attendance.OTSession{
		SessionID: "OT-one",
		Status:    attendance.SessionPendingReview,
		OTHours:   6.0,
		StartTime: eveningNow.Add(-7 * time.Hour),
	})
	outbox := &fakeOutboxRepo{}
	d := &deps{
		attRepo: &fakeAttendanceRepo{
			findBySessionIDFn: func(ctx context.Context, companyID, sessionID string) (*attendance.AttendanceDay, error) {
				return day, nil
			},
		},
		outbox: outbox,
	}
	svc := newService(eveningNow, d)

	resp, err := svc.ReviewSession(context.Background(), testCompanyID, testReviewerID, "OT-one", otsession.ReviewSessionRequest{
		Action: attendance.ReviewActionApproved,
	})
	assert.NoError(t, err)
	assert.Equal(t, attendance.SessionApproved, resp.Status)
	assert.Len(t, outbox.created, 1)
	assert.Equal(t, "ot.reviewed", outbox.created[0].EventType)
}

func TestReviewSessionAdjustRequiresHours(t *testing.T) {
	day := existingDay(attendance.OTSession{
		SessionID: "OT-one",
		Status:    attendance.SessionPendingReview,
		OTHours:   6.0,
		StartTime: eveningNow.Add(-7 * time.Hour),
	})
	d := &deps{
		attRepo: &fakeAttendanceRepo{
			findBySessionIDFn: func(ctx context.Context, companyID, sessionID string) (*attendance.AttendanceDay, error) {
				return day, nil
			},
		},
	}
	svc := newService(eveningNow, d)

	_, err := svc.ReviewSession(context.Background(), testCompanyID, testReviewerID, "OT-one", otsession.ReviewSessionRequest{
		Action: attendance.ReviewActionAdjusted,
	})
	assert.ErrorIs(t, err, oterrors.ErrAdjustedHoursRequired)
}

func TestReviewSessionInvalidAction(t *testing.T) {
	svc := newService(eveningNow, &deps{})

	_, err := svc.ReviewSession(context.Background(), testCompanyID, testReviewerID, "OT-one", otsession.ReviewSessionRequest{
		Action: "ESCALATED",
	})
	assert.ErrorIs(t, err, oterrors.ErrInvalidReviewAction)
}

func TestReviewSessionLockedSessionInvalidTransition(t *testing.T) {
	day := existingDay(attendance.OTSession{
		SessionID: "OT-one",
		Status:    attendance.SessionLocked,
		OTHours:   2.0,
		StartTime: eveningNow.Add(-3 * time.Hour),
	})
	d := &deps{
		attRepo: &fakeAttendanceRepo{
			findBySessionIDFn: func(ctx context.Context, companyID, sessionID string) (*attendance.AttendanceDay, error) {
				return day, nil
			},
		},
	}
	svc := newService(eveningNow, d)

	_, err := svc.ReviewSession(context.Background(), testCompanyID, testReviewerID, "OT-one", otsession.ReviewSessionRequest{
		Action: attendance.ReviewActionRejected,
	})
	assert.ErrorIs(t, err, oterrors.ErrInvalidStateTransition)
}

func TestGetActiveNilWhenNoSession(t *testing.T) {
	d := &deps{
		attRepo: &fakeAttendanceRepo{
			findByEmployeeAndDateFn: func(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.AttendanceDay, error) {
				return existingDay(), nil
			},
		},
	}
	svc := newService(eveningNow, d)

	resp, err := svc.GetActive(context.Background(), testCompanyID, testEmployeeID)
	assert.NoError(t, err)
	assert.Nil(t, resp)
}

func TestListPendingReviewsFlattensSessions(t *testing.T) {
	day := existingDay(
		attendance.OTSession{SessionID: "a", Status: attendance.SessionApproved, OTHours: 2},
		attendance.OTSession{SessionID: "b", Status: attendance.SessionPendingReview, OTHours: 3},
	)
	d := &deps{
		attRepo: &fakeAttendanceRepo{
			findWithPendingSessionsFn: func(ctx context.Context, companyID string) ([]attendance.AttendanceDay, error) {
				return []attendance.AttendanceDay{*day}, nil
			},
		},
	}
	svc := newService(eveningNow, d)

	items, err := svc.ListPendingReviews(context.Background(), testCompanyID, otsession.PendingReviewFilter{})
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "b", items[0].Session.SessionID)
}

func TestListPendingReviewsDateRangeFilter(t *testing.T) {
	day := existingDay(
		attendance.OTSession{SessionID: "b", Status: attendance.SessionPendingReview, OTHours: 3},
	)
	d := &deps{
		attRepo: &fakeAttendanceRepo{
			findWithPendingSessionsFn: func(ctx context.Context, companyID string) ([]attendance.AttendanceDay, error) {
				return []attendance.AttendanceDay{*day}, nil
			},
		},
	}
	svc := newService(eveningNow, d)

	// Rentang yang memuat tanggalnya.
	from := day.AttendanceDate.AddDate(0, 0, -1)
	to := day.AttendanceDate.AddDate(0, 0, 1)
	items, err := svc.ListPendingReviews(context.Background(), testCompanyID,
		otsession.PendingReviewFilter{From: &from, To: &to})
	assert.NoError(t, err)
	assert.Len(t, items, 1)

	// Rentang sebelum tanggalnya.
	past := day.AttendanceDate.AddDate(0, 0, -2)
	items, err = svc.ListPendingReviews(context.Background(), testCompanyID,
		otsession.PendingReviewFilter{From: &past, To: &from})
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestListPendingReviewsDepartmentFilter(t *testing.T) {
	deptID := uuid.New()
	otherDeptID := uuid.New()
	day := existingDay(
		attendance.OTSession{SessionID: "b", Status: attendance.SessionPendingReview, OTHours: 3},
	)
	d := &deps{
		attRepo: &fakeAttendanceRepo{
			findWithPendingSessionsFn: func(ctx context.Context, companyID string) ([]attendance.AttendanceDay, error) {
				return []attendance.AttendanceDay{*day}, nil
			},
		},
		employees: &fakeEmployeeDirectory{rows: []employee.Employee{
			{ID: uuid.MustParse(testEmployeeID), DepartmentID: &deptID},
		}},
	}
	svc := newService(eveningNow, d)

	items, err := svc.ListPendingReviews(context.Background(), testCompanyID,
		otsession.PendingReviewFilter{DepartmentID: deptID.String()})
	assert.NoError(t, err)
	assert.Len(t, items, 1)

	items, err = svc.ListPendingReviews(context.Background(), testCompanyID,
		otsession.PendingReviewFilter{DepartmentID: otherDeptID.String()})
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestStartSessionLeaveGuardStorageErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	d := &deps{
		leaveRepo: &fakeLeaveRepo{
			findApprovedFullDayCoveringFn: func(ctx context.Context, companyID, employeeID string, date time.Time) (*leave.Leave, error) {
				return nil, boom
			},
		},
	}
	svc := newService(eveningNow, d)

	_, err := svc.StartSession(context.Background(), testCompanyID, testEmployeeID, otsession.StartSessionRequest{})
	assert.ErrorIs(t, err, boom)
}
