package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-otpay/internal/shared/apperror"
	"go-otpay/internal/shared/clock"
)

const lateGrace = 15 * time.Minute

// WorkWindowLookup dipenuhi oleh service department.
type WorkWindowLookup interface {
	WorkWindowFor(ctx context.Context, companyID, employeeID string, date time.Time) (start, end time.Time, err error)
}

type Service interface {
	ClockIn(ctx context.Context, companyID, employeeID string, req ClockInRequest) (AttendanceDayResponse, error)
	ClockOut(ctx context.Context, companyID, employeeID string, req ClockOutRequest) (AttendanceDayResponse, error)
	GetDay(ctx context.Context, companyID, employeeID string, date time.Time) (AttendanceDayResponse, error)
	GetMonth(ctx context.Context, companyID, employeeID string, month, year int) ([]AttendanceDayResponse, error)
}

type service struct {
	repo   Repository
	clk    clock.Clock
	dept   WorkWindowLookup
	logger *zap.Logger
}

func NewService(repo Repository, clk clock.Clock, dept WorkWindowLookup, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{repo: repo, clk: clk, dept: dept, logger: l}
}

func (s *service) ClockIn(ctx context.Context, companyID, employeeID string, req ClockInRequest) (AttendanceDayResponse, error) {
	now := s.clk.Now()
	today := s.clk.Today()

	existing, err := s.repo.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil && !IsNotFound(err) {
		return AttendanceDayResponse{}, err
	}
	if err == nil && existing.ClockIn != nil {
		return AttendanceDayResponse{}, apperror.New(apperror.CodeConflict, "already clocked in for today", 409)
	}

	status := StatusPresent
	if workStart, _, werr := s.dept.WorkWindowFor(ctx, companyID, employeeID, today); werr == nil {
		if now.After(workStart.Add(lateGrace)) {
			status = StatusLate
		}
	}

	if err == nil {
		// Hari sudah ada (mis. auto-dibuat oleh sesi OT), isi clock in saja.
		existing.ClockIn = &now
		if existing.Status == StatusAbsent {
			existing.Status = status
		}
		if uerr := s.repo.UpdateVersioned(ctx, existing); uerr != nil {
			return AttendanceDayResponse{}, uerr
		}
		return MapToResponse(*existing), nil
	}

	row := &AttendanceDay{
		ID:             uuid.New(),
		CompanyID:      uuid.MustParse(companyID),
		EmployeeID:     uuid.MustParse(employeeID),
		AttendanceDate: today,
		ClockIn:        &now,
		Status:         status,
		Version:        1,
	}
	if cerr := s.repo.Create(ctx, row); cerr != nil {
		return AttendanceDayResponse{}, cerr
	}
	s.logger.Info("clock in recorded",
		zap.String("employee_id", employeeID),
		zap.String("date", today.Format("2006-01-02")),
		zap.String("status", status))
	return MapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, companyID, employeeID string, req ClockOutRequest) (AttendanceDayResponse, error) {
	now := s.clk.Now()
	today := s.clk.Today()

	row, err := s.repo.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil {
		if IsNotFound(err) {
			return AttendanceDayResponse{}, apperror.New(apperror.CodeNotFound, "clock in not found for today", 404)
		}
		return AttendanceDayResponse{}, err
	}
	if row.ClockIn == nil {
		return AttendanceDayResponse{}, apperror.New(apperror.CodeNotFound, "clock in not found for today", 404)
	}
	if row.ClockOut != nil {
		return AttendanceDayResponse{}, apperror.New(apperror.CodeConflict, "already clocked out for today", 409)
	}

	row.ClockOut = &now
	if row.Status == StatusPresent {
		if _, workEnd, werr := s.dept.WorkWindowFor(ctx, companyID, employeeID, today); werr == nil && now.Before(workEnd) {
			row.Status = StatusEarlyCheckout
		}
	}

	if uerr := s.repo.UpdateVersioned(ctx, row); uerr != nil {
		return AttendanceDayResponse{}, uerr
	}
	return MapToResponse(*row), nil
}

func (s *service) GetDay(ctx context.Context, companyID, employeeID string, date time.Time) (AttendanceDayResponse, error) {
	row, err := s.repo.FindByEmployeeAndDate(ctx, companyID, employeeID, clock.DateOf(date))
	if err != nil {
		if IsNotFound(err) {
			return AttendanceDayResponse{}, apperror.New(apperror.CodeNotFound, "attendance record not found", 404)
		}
		return AttendanceDayResponse{}, err
	}
	return MapToResponse(*row), nil
}

func (s *service) GetMonth(ctx context.Context, companyID, employeeID string, month, year int) ([]AttendanceDayResponse, error) {
	rows, err := s.repo.FindMonth(ctx, companyID, employeeID, month, year)
	if err != nil {
		return nil, err
	}
	out := make([]AttendanceDayResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, MapToResponse(r))
	}
	return out, nil
}
