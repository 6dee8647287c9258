package salarystructure

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"go-otpay/internal/shared/apperror"
)

var ErrSalaryNotFound = apperror.New(
	apperror.CodeNotFound,
	"salary structure not found for this employee",
	http.StatusNotFound,
)

type Service interface {
	Upsert(ctx context.Context, companyID string, req UpsertSalaryRequest) (SalaryResponse, error)
	GetByEmployee(ctx context.Context, companyID, employeeID string) (SalaryResponse, error)
	// StructureFor dipakai engine payroll; tidak memetakan ke DTO.
	StructureFor(ctx context.Context, companyID, employeeID string) (*SalaryStructure, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Upsert(ctx context.Context, companyID string, req UpsertSalaryRequest) (SalaryResponse, error) {
	effective, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return SalaryResponse{}, apperror.New(apperror.CodeInvalidInput, "effective_date must be YYYY-MM-DD", http.StatusBadRequest)
	}

	row := &SalaryStructure{
		ID:               uuid.New(),
		CompanyID:        uuid.MustParse(companyID),
		EmployeeID:       uuid.MustParse(req.EmployeeID),
		FixedBasic:       req.FixedBasic,
		FixedHRA:         req.FixedHRA,
		FixedConveyance:  req.FixedConveyance,
		CustomEarnings:   toJSONMap(req.CustomEarnings),
		CustomDeductions: toJSONMap(req.CustomDeductions),
		EPFEnabled:       true,
		ESIEnabled:       true,
		VPFAmount:        req.VPFAmount,
		EffectiveDate:    effective,
	}
	if req.EPFEnabled != nil {
		row.EPFEnabled = *req.EPFEnabled
	}
	if req.ESIEnabled != nil {
		row.ESIEnabled = *req.ESIEnabled
	}

	if err := s.repo.Upsert(ctx, row); err != nil {
		return SalaryResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetByEmployee(ctx context.Context, companyID, employeeID string) (SalaryResponse, error) {
	row, err := s.repo.FindByEmployee(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryResponse{}, ErrSalaryNotFound
		}
		return SalaryResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) StructureFor(ctx context.Context, companyID, employeeID string) (*SalaryStructure, error) {
	row, err := s.repo.FindByEmployee(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSalaryNotFound
		}
		return nil, err
	}
	return row, nil
}

func toJSONMap(m map[string]float64) datatypes.JSONMap {
	out := datatypes.JSONMap{}
	for k, v := range m {
		out[k] = v
	}
	return out
}
