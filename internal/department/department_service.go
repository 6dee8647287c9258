package department

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-otpay/internal/shared/clock"
)

type Service interface {
	Create(ctx context.Context, companyID string, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, companyID string) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, companyID, id string) (DepartmentResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	WorkWindowFor(ctx context.Context, companyID, employeeID string, date time.Time) (time.Time, time.Time, error)
	// DepartmentFor mengembalikan department karyawan, nil kalau belum punya.
	DepartmentFor(ctx context.Context, companyID, employeeID string) (*Department, error)
}

type service struct {
	db   *sql.DB
	repo Repository
	clk  clock.Clock
}

func NewService(db *sql.DB, repo Repository, clk clock.Clock) Service {
	return &service{db: db, repo: repo, clk: clk}
}

// WorkWindowFor mengembalikan jam mulai dan selesai kerja karyawan pada
// tanggal tertentu, dievaluasi pada zona kanonik. Karyawan tanpa
// department memakai jendela default 09:00-18:00.
func (s *service) WorkWindowFor(ctx context.Context, companyID, employeeID string, date time.Time) (time.Time, time.Time, error) {
	dept, err := s.repo.FindByEmployee(ctx, companyID, employeeID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, time.Time{}, err
		}
		dept = &Department{WorkStart: "09:00", WorkEnd: "18:00"}
	}
	start, end := dept.WorkWindow(date, s.clk.Location())
	return start, end, nil
}

func (s *service) DepartmentFor(ctx context.Context, companyID, employeeID string) (*Department, error) {
	dept, err := s.repo.FindByEmployee(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return dept, nil
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateDepartmentRequest,
) (DepartmentResponse, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept := &Department{
		ID:                 uuid.New(),
		Name:               req.Name,
		CompanyID:          uuid.MustParse(companyID),
		WorkStart:          orDefault(req.WorkStart, "09:00"),
		WorkEnd:            orDefault(req.WorkEnd, "18:00"),
		WorkingHoursPerDay: req.WorkingHoursPerDay,
	}
	if dept.WorkingHoursPerDay <= 0 {
		dept.WorkingHoursPerDay = 8
	}

	if err := qtx.Create(ctx, dept); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
) ([]DepartmentResponse, error) {

	depts, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(depts), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (DepartmentResponse, error) {

	dept, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateDepartmentRequest,
) (DepartmentResponse, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return DepartmentResponse{}, err
	}

	dept.Name = req.Name
	if req.WorkStart != "" {
		dept.WorkStart = req.WorkStart
	}
	if req.WorkEnd != "" {
		dept.WorkEnd = req.WorkEnd
	}
	if req.WorkingHoursPerDay > 0 {
		dept.WorkingHoursPerDay = req.WorkingHoursPerDay
	}

	if err := qtx.Update(ctx, dept); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}

	return tx.Commit()
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func mapToResponse(d Department) DepartmentResponse {
	return DepartmentResponse{
		ID:                 d.ID.String(),
		CompanyID:          d.CompanyID.String(),
		Name:               d.Name,
		WorkStart:          d.WorkStart,
		WorkEnd:            d.WorkEnd,
		WorkingHoursPerDay: d.WorkingHoursPerDay,
		CreatedAt:          d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          d.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	resp := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		resp[i] = mapToResponse(d)
	}
	return resp
}
