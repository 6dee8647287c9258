package employee

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	employeeerrors "go-otpay/internal/employee/errors"
	"go-otpay/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const employeeOptionsKeyPrefix = "employees:options:"

func optionsKey(companyID string) string {
	return employeeOptionsKeyPrefix + companyID
}

type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	// GetOptions adalah daftar ringan untuk dropdown; di-cache di redis
	// dan dilindungi singleflight supaya cache miss tidak menumpuk query.
	GetOptions(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) invalidateOptions(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, optionsKey(companyID)).Err(); err != nil {
		s.logger.Warn("invalidate employee options cache failed",
			zap.String("company_id", companyID),
			zap.Error(err))
	}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	e := &Employee{
		ID:        uuid.New(),
		CompanyID: uuid.MustParse(companyID),
		FullName:  req.FullName,
		Email:     req.Email,
	}
	if req.DepartmentID != "" {
		dept := uuid.MustParse(req.DepartmentID)
		e.DepartmentID = &dept
	}

	if err := s.repo.Create(ctx, e); err != nil {
		if isUniqueViolation(err) {
			return EmployeeResponse{}, employeeerrors.ErrEmailTaken
		}
		s.logger.Error("create employee failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, companyID)
	s.logger.Info("employee created",
		zap.String("request_id", rid),
		zap.String("employee_id", e.ID.String()))
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]EmployeeResponse, 0, len(rows))
	for _, e := range rows {
		out = append(out, mapToResponse(e))
	}
	return out, nil
}

func (s *service) GetOptions(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
	key := optionsKey(companyID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			var out []EmployeeResponse
			if uerr := json.Unmarshal([]byte(cached), &out); uerr == nil {
				return out, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("read employee options cache failed", zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		rows, err := s.repo.FindAllByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}
		out := make([]EmployeeResponse, 0, len(rows))
		for _, e := range rows {
			out = append(out, mapToResponse(e))
		}
		if s.rdb != nil {
			if payload, merr := json.Marshal(out); merr == nil {
				_ = s.rdb.Set(ctx, key, payload, 10*time.Minute).Err()
			}
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error) {
	e, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	e, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	e.FullName = req.FullName
	e.Email = req.Email
	e.DepartmentID = nil
	if req.DepartmentID != "" {
		dept := uuid.MustParse(req.DepartmentID)
		e.DepartmentID = &dept
	}

	if err := s.repo.Update(ctx, e); err != nil {
		if isUniqueViolation(err) {
			return EmployeeResponse{}, employeeerrors.ErrEmailTaken
		}
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, companyID)
	return mapToResponse(*e), nil
}

// isUniqueViolation mengenali pelanggaran unique constraint baik dari
// translate error gorm maupun error mentah driver postgres.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrEmployeeNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	s.invalidateOptions(ctx, companyID)
	return nil
}
