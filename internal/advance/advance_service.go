package advance

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"go-otpay/internal/shared/apperror"
)

type CreateAdvanceRequest struct {
	EmployeeID        string  `json:"employee_id" binding:"required,uuid"`
	Amount            float64 `json:"amount" binding:"required,gt=0"`
	InstallmentAmount float64 `json:"installment_amount" binding:"required,gt=0"`
	StartMonth        int     `json:"start_month" binding:"required,min=1,max=12"`
	StartYear         int     `json:"start_year" binding:"required,min=2000"`
	DeductionMonths   int     `json:"deduction_months" binding:"required,min=1"`
	Notes             string  `json:"notes"`
}

type AdvanceResponse struct {
	ID                string    `json:"id"`
	EmployeeID        string    `json:"employee_id"`
	Amount            float64   `json:"amount"`
	InstallmentAmount float64   `json:"installment_amount"`
	StartMonth        int       `json:"start_month"`
	StartYear         int       `json:"start_year"`
	DeductionMonths   int       `json:"deduction_months"`
	Status            string    `json:"status"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type Service interface {
	Create(ctx context.Context, companyID string, req CreateAdvanceRequest) (AdvanceResponse, error)
	GetByEmployee(ctx context.Context, companyID, employeeID string) ([]AdvanceResponse, error)
	// InstallmentsFor menjumlahkan cicilan yang jendela potongannya
	// mencakup bulan payroll tersebut.
	InstallmentsFor(ctx context.Context, companyID, employeeID string, month, year int) (float64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateAdvanceRequest) (AdvanceResponse, error) {
	if req.InstallmentAmount*float64(req.DeductionMonths) < req.Amount {
		return AdvanceResponse{}, apperror.New(
			apperror.CodeInvalidInput,
			"installments over the deduction window do not cover the advance amount",
			http.StatusBadRequest,
		)
	}

	row := &Advance{
		ID:                uuid.New(),
		CompanyID:         uuid.MustParse(companyID),
		EmployeeID:        uuid.MustParse(req.EmployeeID),
		Amount:            req.Amount,
		InstallmentAmount: req.InstallmentAmount,
		StartMonth:        req.StartMonth,
		StartYear:         req.StartYear,
		DeductionMonths:   req.DeductionMonths,
		Status:            StatusActive,
		Notes:             req.Notes,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return AdvanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetByEmployee(ctx context.Context, companyID, employeeID string) ([]AdvanceResponse, error) {
	rows, err := s.repo.FindByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	out := make([]AdvanceResponse, 0, len(rows))
	for _, a := range rows {
		out = append(out, mapToResponse(a))
	}
	return out, nil
}

func (s *service) InstallmentsFor(ctx context.Context, companyID, employeeID string, month, year int) (float64, error) {
	rows, err := s.repo.FindActiveByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for i := range rows {
		if rows[i].CoversMonth(month, year) {
			total += rows[i].InstallmentAmount
		}
	}
	return total, nil
}

func mapToResponse(a Advance) AdvanceResponse {
	return AdvanceResponse{
		ID:                a.ID.String(),
		EmployeeID:        a.EmployeeID.String(),
		Amount:            a.Amount,
		InstallmentAmount: a.InstallmentAmount,
		StartMonth:        a.StartMonth,
		StartYear:         a.StartYear,
		DeductionMonths:   a.DeductionMonths,
		Status:            a.Status,
		Notes:             a.Notes,
		CreatedAt:         a.CreatedAt,
	}
}
