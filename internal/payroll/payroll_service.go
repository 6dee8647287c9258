package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-otpay/internal/advance"
	"go-otpay/internal/attendance"
	"go-otpay/internal/department"
	"go-otpay/internal/events"
	"go-otpay/internal/leave"
	"go-otpay/internal/messaging/kafka"
	payrollerrors "go-otpay/internal/payroll/errors"
	"go-otpay/internal/policy"
	"go-otpay/internal/salarystructure"
	"go-otpay/internal/shared/apperror"
	"go-otpay/internal/shared/clock"
	"go-otpay/internal/shared/contextutil"
	"go-otpay/internal/shared/counter"
)

type Service interface {
	// Compute menghitung dan mempersist slip untuk satu karyawan.
	// Idempoten: snapshot sama menghasilkan slip identik, baris periode
	// yang sama ditimpa, bukan ditumpuk.
	Compute(ctx context.Context, companyID, actorID string, req ComputePayrollRequest) (PayslipResponse, error)
	GetPayslip(ctx context.Context, companyID, employeeID string, month, year int) (PayslipResponse, error)
	GetAllForPeriod(ctx context.Context, companyID string, month, year int) ([]PayslipResponse, error)
	RenderPayslipPDF(ctx context.Context, companyID, employeeID string, month, year int) ([]byte, error)
}

type service struct {
	repo     Repository
	calc     Calculator
	attRepo  attendance.Repository
	leaves   leave.Repository
	salaries salarystructure.Service
	policies policy.Service
	depts    department.Service
	advances advance.Service
	counter  counter.Repository
	outbox   kafka.OutboxRepository
	clk      clock.Clock
	logger   *zap.Logger
}

func NewService(
	repo Repository,
	attRepo attendance.Repository,
	leaves leave.Repository,
	salaries salarystructure.Service,
	policies policy.Service,
	depts department.Service,
	advances advance.Service,
	counterRepo counter.Repository,
	outbox kafka.OutboxRepository,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		repo:     repo,
		calc:     NewCalculator(),
		attRepo:  attRepo,
		leaves:   leaves,
		salaries: salaries,
		policies: policies,
		depts:    depts,
		advances: advances,
		counter:  counterRepo,
		outbox:   outbox,
		clk:      clk,
		logger:   l,
	}
}

// assembleInput mengambil semua snapshot di satu tempat supaya Compute
// murni terhadap input.
func (s *service) assembleInput(ctx context.Context, companyID, employeeID string, month, year int) (PayrollInput, error) {
	st, err := s.salaries.StructureFor(ctx, companyID, employeeID)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == apperror.CodeNotFound {
			return PayrollInput{}, payrollerrors.ErrSalaryStructureMissing
		}
		return PayrollInput{}, err
	}

	days, err := s.attRepo.FindMonth(ctx, companyID, employeeID, month, year)
	if err != nil {
		return PayrollInput{}, err
	}

	monthStart, monthEnd := monthBounds(month, year)
	leaves, err := s.leaves.FindApprovedOverlapping(ctx, companyID, employeeID, monthStart, monthEnd)
	if err != nil {
		return PayrollInput{}, err
	}

	pol, err := s.policies.PolicyFor(ctx, companyID)
	if err != nil {
		return PayrollInput{}, err
	}

	hoursPerDay := 0.0
	dept, err := s.depts.DepartmentFor(ctx, companyID, employeeID)
	if err != nil {
		return PayrollInput{}, err
	}
	if dept != nil && dept.WorkingHoursPerDay > 0 {
		hoursPerDay = float64(dept.WorkingHoursPerDay)
	}

	advanceDeduction, err := s.advances.InstallmentsFor(ctx, companyID, employeeID, month, year)
	if err != nil {
		return PayrollInput{}, err
	}

	return PayrollInput{
		Month:              month,
		Year:               year,
		Days:               days,
		Leaves:             leaves,
		Structure:          *st,
		Policy:             pol,
		WorkingHoursPerDay: hoursPerDay,
		AdvanceDeduction:   advanceDeduction,
	}, nil
}

func (s *service) Compute(ctx context.Context, companyID, actorID string, req ComputePayrollRequest) (PayslipResponse, error) {
	if req.Month < 1 || req.Month > 12 || req.Year < 2000 {
		return PayslipResponse{}, payrollerrors.ErrInvalidPeriod
	}

	input, err := s.assembleInput(ctx, companyID, req.EmployeeID, req.Month, req.Year)
	if err != nil {
		return PayslipResponse{}, err
	}

	breakdown := s.calc.Compute(input)
	raw, err := json.Marshal(breakdown)
	if err != nil {
		return PayslipResponse{}, err
	}

	slip := &Payslip{
		ID:              uuid.New(),
		CompanyID:       uuid.MustParse(companyID),
		EmployeeID:      uuid.MustParse(req.EmployeeID),
		Month:           req.Month,
		Year:            req.Year,
		GrossSalary:     breakdown.GrossSalary,
		TotalDeductions: breakdown.TotalDeductions,
		NetSalary:       breakdown.NetSalary,
		Breakdown:       raw,
		GeneratedBy:     uuid.MustParse(actorID),
	}

	// Nomor slip hanya terbit sekali per periode; recompute memakai nomor lama.
	existing, err := s.repo.FindByPeriod(ctx, companyID, req.EmployeeID, req.Month, req.Year)
	switch {
	case err == nil:
		slip.ID = existing.ID
		slip.PayslipNumber = existing.PayslipNumber
	case errors.Is(err, gorm.ErrRecordNotFound):
		seq, cerr := s.counter.GetNextValue(ctx, companyID, "payslip_number")
		if cerr != nil {
			return PayslipResponse{}, cerr
		}
		slip.PayslipNumber = fmt.Sprintf("PS-%04d%02d-%05d", req.Year, req.Month, seq)
	default:
		return PayslipResponse{}, err
	}

	if err := s.repo.Upsert(ctx, slip); err != nil {
		return PayslipResponse{}, err
	}

	event, eerr := kafka.NewOutboxEvent(
		contextutil.GetRequestID(ctx),
		"payslip", slip.ID.String(),
		"payroll.payslip.requested", events.PayrollPayslipRequestedTopic,
		events.PayrollPayslipRequestedEvent{
			EventType:   "payroll.payslip.requested",
			PayrollID:   slip.ID.String(),
			EmployeeID:  req.EmployeeID,
			CompanyID:   companyID,
			Month:       req.Month,
			Year:        req.Year,
			NetSalary:   breakdown.NetSalary,
			RequestedBy: actorID,
			OccurredAt:  s.clk.Now(),
		},
	)
	if eerr != nil {
		s.logger.Error("marshal payslip requested event failed", zap.Error(eerr))
	} else if oerr := s.outbox.Create(ctx, event); oerr != nil {
		s.logger.Error("enqueue payslip requested event failed", zap.Error(oerr))
	}

	s.logger.Info("payroll computed",
		zap.String("employee_id", req.EmployeeID),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
		zap.Float64("net_salary", breakdown.NetSalary))

	return mapToResponse(*slip, breakdown), nil
}

func (s *service) GetPayslip(ctx context.Context, companyID, employeeID string, month, year int) (PayslipResponse, error) {
	slip, err := s.repo.FindByPeriod(ctx, companyID, employeeID, month, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, payrollerrors.ErrPayslipNotFound
		}
		return PayslipResponse{}, err
	}
	var breakdown PayrollBreakdown
	if err := json.Unmarshal(slip.Breakdown, &breakdown); err != nil {
		return PayslipResponse{}, err
	}
	return mapToResponse(*slip, breakdown), nil
}

func (s *service) GetAllForPeriod(ctx context.Context, companyID string, month, year int) ([]PayslipResponse, error) {
	rows, err := s.repo.FindAllByPeriod(ctx, companyID, month, year)
	if err != nil {
		return nil, err
	}
	out := make([]PayslipResponse, 0, len(rows))
	for _, slip := range rows {
		var breakdown PayrollBreakdown
		if err := json.Unmarshal(slip.Breakdown, &breakdown); err != nil {
			return nil, err
		}
		out = append(out, mapToResponse(slip, breakdown))
	}
	return out, nil
}

func (s *service) RenderPayslipPDF(ctx context.Context, companyID, employeeID string, month, year int) ([]byte, error) {
	resp, err := s.GetPayslip(ctx, companyID, employeeID, month, year)
	if err != nil {
		return nil, err
	}
	return renderPayslipPDF(resp)
}

func mapToResponse(slip Payslip, breakdown PayrollBreakdown) PayslipResponse {
	return PayslipResponse{
		ID:            slip.ID.String(),
		EmployeeID:    slip.EmployeeID.String(),
		PayslipNumber: slip.PayslipNumber,
		Month:         slip.Month,
		Year:          slip.Year,
		Breakdown:     breakdown,
		GeneratedAt:   slip.UpdatedAt,
	}
}

func monthBounds(month, year int) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}
