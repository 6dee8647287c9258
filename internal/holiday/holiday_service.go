package holiday

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"go-otpay/internal/shared/apperror"

	"github.com/google/uuid"
)

var errInvalidDate = apperror.New(
	apperror.CodeInvalidInput,
	"invalid date format, expected YYYY-MM-DD",
	http.StatusBadRequest,
)

type CreateHolidayRequest struct {
	Date         string `json:"date" binding:"required"`
	Name         string `json:"name" binding:"required"`
	DepartmentID string `json:"department_id"`
	AllowOT      bool   `json:"allow_ot"`
}

type HolidayResponse struct {
	ID           string  `json:"id"`
	CompanyID    string  `json:"company_id"`
	DepartmentID *string `json:"department_id,omitempty"`
	Date         string  `json:"date"`
	Name         string  `json:"name"`
	AllowOT      bool    `json:"allow_ot"`
}

type Service interface {
	Create(ctx context.Context, companyID string, req CreateHolidayRequest) (HolidayResponse, error)
	GetRange(ctx context.Context, companyID, from, to string) ([]HolidayResponse, error)
	Delete(ctx context.Context, companyID, id string) error

	// Lookup dipakai state machine sesi lembur: libur pertama yang berlaku
	// untuk department tersebut pada tanggal itu, nil kalau tidak ada.
	Lookup(ctx context.Context, companyID, departmentID string, date time.Time) (*Holiday, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateHolidayRequest) (HolidayResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HolidayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return HolidayResponse{}, apperror.ErrInvalidInput
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return HolidayResponse{}, errInvalidDate
	}

	h := &Holiday{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		HolidayDate: date,
		Name:        req.Name,
		AllowOT:     req.AllowOT,
	}
	if req.DepartmentID != "" {
		deptUUID, err := uuid.Parse(req.DepartmentID)
		if err != nil {
			return HolidayResponse{}, apperror.ErrInvalidInput
		}
		h.DepartmentID = &deptUUID
	}

	if err := qtx.Create(ctx, h); err != nil {
		return HolidayResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return HolidayResponse{}, err
	}

	return mapToResponse(*h), nil
}

func (s *service) GetRange(ctx context.Context, companyID, from, to string) ([]HolidayResponse, error) {
	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, errInvalidDate
	}
	toDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, errInvalidDate
	}
	if fromDate.After(toDate) {
		return nil, errInvalidDate
	}

	rows, err := s.repo.FindRange(ctx, companyID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	resp := make([]HolidayResponse, len(rows))
	for i, h := range rows {
		resp[i] = mapToResponse(h)
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	return s.repo.Delete(ctx, companyID, id)
}

func (s *service) Lookup(ctx context.Context, companyID, departmentID string, date time.Time) (*Holiday, error) {
	rows, err := s.repo.FindByDate(ctx, companyID, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	// Libur spesifik department menang atas libur company-wide.
	var companyWide *Holiday
	for i := range rows {
		h := rows[i]
		if h.DepartmentID != nil {
			if h.AppliesTo(departmentID) {
				return &h, nil
			}
			continue
		}
		if companyWide == nil {
			companyWide = &h
		}
	}
	return companyWide, nil
}

func mapToResponse(h Holiday) HolidayResponse {
	resp := HolidayResponse{
		ID:        h.ID.String(),
		CompanyID: h.CompanyID.String(),
		Date:      h.HolidayDate.Format("2006-01-02"),
		Name:      h.Name,
		AllowOT:   h.AllowOT,
	}
	if h.DepartmentID != nil {
		v := h.DepartmentID.String()
		resp.DepartmentID = &v
	}
	return resp
}
