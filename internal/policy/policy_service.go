package policy

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	policyerrors "go-otpay/internal/policy/errors"
)

type Service interface {
	// PolicyFor mengembalikan snapshot kebijakan untuk company.
	// Company tanpa settings mendapat Default(); tidak pernah error not-found.
	PolicyFor(ctx context.Context, companyID string) (Policy, error)
	Get(ctx context.Context, companyID string) (SettingsResponse, error)
	Update(ctx context.Context, companyID string, req UpdateSettingsRequest) (SettingsResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("policy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("policy.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) PolicyFor(ctx context.Context, companyID string) (Policy, error) {
	settings, err := s.repo.FindByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Info("company settings missing, using defaults",
				zap.String("company_id", companyID),
			)
			return Default(), nil
		}
		return Policy{}, err
	}
	return fromSettings(settings), nil
}

func (s *service) Get(ctx context.Context, companyID string) (SettingsResponse, error) {
	p, err := s.PolicyFor(ctx, companyID)
	if err != nil {
		return SettingsResponse{}, err
	}
	return mapToResponse(companyID, p), nil
}

func (s *service) Update(ctx context.Context, companyID string, req UpdateSettingsRequest) (SettingsResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SettingsResponse{}, policyerrors.ErrInvalidCompanyID
	}

	settings := &CompanySettings{
		ID:                         uuid.New(),
		CompanyID:                  companyUUID,
		WeekendDays:                datatypes.NewJSONSlice(req.WeekendDays),
		DefaultOTRate:              req.DefaultOTRate,
		MaxOTHoursPerDay:           req.MaxOTHoursPerDay,
		StandardWorkingDays:        req.StandardWorkingDays,
		StandardWorkingHoursPerDay: req.StandardWorkingHoursPerDay,
		Timezone:                   req.Timezone,
	}
	if settings.Timezone == "" {
		settings.Timezone = Default().Timezone
	}

	if err := s.repo.Upsert(ctx, settings); err != nil {
		s.logger.Error("update company settings failed",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
		return SettingsResponse{}, err
	}

	s.logger.Info("company settings updated", zap.String("company_id", companyID))
	return mapToResponse(companyID, fromSettings(settings)), nil
}

func mapToResponse(companyID string, p Policy) SettingsResponse {
	return SettingsResponse{
		CompanyID:                  companyID,
		WeekendDays:                p.WeekendDays,
		DefaultOTRate:              p.DefaultOTRate,
		MaxOTHoursPerDay:           p.MaxOTHoursPerDay,
		StandardWorkingDays:        p.StandardWorkingDays,
		StandardWorkingHoursPerDay: p.StandardWorkingHoursPerDay,
		Timezone:                   p.Timezone,
	}
}
