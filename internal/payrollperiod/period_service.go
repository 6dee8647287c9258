package payrollperiod

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-otpay/internal/attendance"
	"go-otpay/internal/events"
	"go-otpay/internal/messaging/kafka"
	perioderrors "go-otpay/internal/payrollperiod/errors"
	"go-otpay/internal/shared/clock"
	"go-otpay/internal/shared/contextutil"
)

const minUnlockReasonLen = 10

const lockRetryAttempts = 3

type Service interface {
	Lock(ctx context.Context, companyID, actorID string, month, year int) (PeriodResponse, error)
	Unlock(ctx context.Context, companyID, actorID string, month, year int, reason string) (PeriodResponse, error)
	MarkProcessed(ctx context.Context, companyID string, month, year int) error
	// IsLocked membaca status periode segar dari storage; dipakai sebagai
	// guard oleh operasi sesi lembur dan payroll.
	IsLocked(ctx context.Context, companyID string, date time.Time) (bool, error)
	GetAll(ctx context.Context, companyID string) ([]PeriodResponse, error)
	GetAudits(ctx context.Context, companyID, periodID string) ([]PeriodAuditResponse, error)
}

type service struct {
	repo    Repository
	attRepo attendance.Repository
	outbox  kafka.OutboxRepository
	clk     clock.Clock
	logger  *zap.Logger
}

func NewService(repo Repository, attRepo attendance.Repository, outbox kafka.OutboxRepository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("payrollperiod.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrollperiod.service")
	}
	return &service{repo: repo, attRepo: attRepo, outbox: outbox, clk: clk, logger: l}
}

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 || year < 2000 || year > 2200 {
		return perioderrors.ErrInvalidPeriod
	}
	return nil
}

func (s *service) findOrCreate(ctx context.Context, companyID string, month, year int) (*PayrollPeriod, error) {
	p, err := s.repo.Find(ctx, companyID, month, year)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	p = &PayrollPeriod{
		ID:        uuid.New(),
		CompanyID: uuid.MustParse(companyID),
		Month:     month,
		Year:      year,
		Status:    StatusOpen,
	}
	if cerr := s.repo.Create(ctx, p); cerr != nil {
		return nil, cerr
	}
	return p, nil
}

func (s *service) Lock(ctx context.Context, companyID, actorID string, month, year int) (PeriodResponse, error) {
	if err := validatePeriod(month, year); err != nil {
		return PeriodResponse{}, err
	}

	p, err := s.findOrCreate(ctx, companyID, month, year)
	if err != nil {
		return PeriodResponse{}, err
	}
	if p.IsLocked() {
		return PeriodResponse{}, perioderrors.ErrPeriodAlreadyLocked
	}

	now := s.clk.Now()
	actor := uuid.MustParse(actorID)
	p.Status = StatusLocked
	p.LockedAt = &now
	p.LockedBy = &actor
	if err := s.repo.Update(ctx, p); err != nil {
		return PeriodResponse{}, err
	}

	lockedSessions, err := s.lockMonthSessions(ctx, companyID, month, year)
	if err != nil {
		s.logger.Error("lock month sessions failed",
			zap.String("company_id", companyID),
			zap.Int("month", month),
			zap.Int("year", year),
			zap.Error(err))
		return PeriodResponse{}, err
	}

	audit := &PeriodAudit{
		ID:        uuid.New(),
		PeriodID:  p.ID,
		CompanyID: p.CompanyID,
		Action:    AuditActionLock,
		ActorID:   actor,
	}
	if err := s.repo.CreateAudit(ctx, audit); err != nil {
		return PeriodResponse{}, err
	}

	event, err := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx),
		"payroll_period", p.ID.String(),
		"payroll.period.locked", events.PayrollPeriodLockedTopic,
		events.PayrollPeriodLockedEvent{
			EventType:      "payroll.period.locked",
			PeriodID:       p.ID.String(),
			CompanyID:      companyID,
			Month:          month,
			Year:           year,
			LockedBy:       actorID,
			LockedSessions: lockedSessions,
			OccurredAt:     now,
		},
	)
	if err != nil {
		s.logger.Error("marshal period locked event failed", zap.Error(err))
	} else if oerr := s.outbox.Create(ctx, event); oerr != nil {
		s.logger.Error("enqueue period locked event failed", zap.Error(oerr))
	}

	s.logger.Info("payroll period locked",
		zap.String("company_id", companyID),
		zap.Int("month", month),
		zap.Int("year", year),
		zap.Int("locked_sessions", lockedSessions))

	return mapToResponse(*p), nil
}

// lockMonthSessions memindahkan semua sesi APPROVED/completed bulan itu
// ke status locked. Konflik versi per hari dicoba ulang beberapa kali;
// total jam tidak berubah karena sesi locked tetap dihitung.
func (s *service) lockMonthSessions(ctx context.Context, companyID string, month, year int) (int, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	days, err := s.attRepo.FindRange(ctx, companyID, from, to, "")
	if err != nil {
		return 0, err
	}

	locked := 0
	for i := range days {
		day := &days[i]
		for attempt := 1; ; attempt++ {
			before := countLockable(day)
			if before == 0 {
				break
			}
			day.LockApprovedSessions()
			err := s.attRepo.UpdateVersioned(ctx, day)
			if err == nil {
				locked += before
				break
			}
			if !errors.Is(err, attendance.ErrVersionConflict) {
				return locked, err
			}
			if attempt >= lockRetryAttempts {
				return locked, err
			}
			time.Sleep(time.Duration(attempt) * 25 * time.Millisecond)
			fresh, ferr := s.attRepo.FindByID(ctx, companyID, day.ID.String())
			if ferr != nil {
				return locked, ferr
			}
			*day = *fresh
		}
	}
	return locked, nil
}

func countLockable(day *attendance.AttendanceDay) int {
	n := 0
	for i := range day.OTSessions {
		switch day.OTSessions[i].Status {
		case attendance.SessionApproved, attendance.SessionCompleted:
			n++
		}
	}
	return n
}

func (s *service) Unlock(ctx context.Context, companyID, actorID string, month, year int, reason string) (PeriodResponse, error) {
	if err := validatePeriod(month, year); err != nil {
		return PeriodResponse{}, err
	}
	if len(strings.TrimSpace(reason)) < minUnlockReasonLen {
		return PeriodResponse{}, perioderrors.ErrUnlockReasonTooShort
	}

	p, err := s.repo.Find(ctx, companyID, month, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PeriodResponse{}, perioderrors.ErrPeriodNotLocked
		}
		return PeriodResponse{}, err
	}
	if p.Status == StatusProcessed {
		return PeriodResponse{}, perioderrors.ErrPeriodProcessed
	}
	if p.Status != StatusLocked {
		return PeriodResponse{}, perioderrors.ErrPeriodNotLocked
	}

	p.Status = StatusOpen
	p.LockedAt = nil
	p.LockedBy = nil
	if err := s.repo.Update(ctx, p); err != nil {
		return PeriodResponse{}, err
	}

	audit := &PeriodAudit{
		ID:        uuid.New(),
		PeriodID:  p.ID,
		CompanyID: p.CompanyID,
		Action:    AuditActionUnlock,
		ActorID:   uuid.MustParse(actorID),
		Reason:    reason,
	}
	if err := s.repo.CreateAudit(ctx, audit); err != nil {
		return PeriodResponse{}, err
	}

	s.logger.Info("payroll period unlocked",
		zap.String("company_id", companyID),
		zap.Int("month", month),
		zap.Int("year", year),
		zap.String("actor_id", actorID))

	return mapToResponse(*p), nil
}

func (s *service) MarkProcessed(ctx context.Context, companyID string, month, year int) error {
	p, err := s.repo.Find(ctx, companyID, month, year)
	if err != nil {
		return err
	}
	p.Status = StatusProcessed
	return s.repo.Update(ctx, p)
}

func (s *service) IsLocked(ctx context.Context, companyID string, date time.Time) (bool, error) {
	p, err := s.repo.Find(ctx, companyID, int(date.Month()), date.Year())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return p.IsLocked(), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]PeriodResponse, error) {
	rows, err := s.repo.FindAll(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]PeriodResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, mapToResponse(p))
	}
	return out, nil
}

func (s *service) GetAudits(ctx context.Context, companyID, periodID string) ([]PeriodAuditResponse, error) {
	rows, err := s.repo.FindAudits(ctx, companyID, periodID)
	if err != nil {
		return nil, err
	}
	out := make([]PeriodAuditResponse, 0, len(rows))
	for _, a := range rows {
		out = append(out, mapAuditToResponse(a))
	}
	return out, nil
}
