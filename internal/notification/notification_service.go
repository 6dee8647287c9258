package notification

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go-otpay/internal/events"
	"go-otpay/internal/shared/apperror"
	"go-otpay/internal/shared/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

var errNotificationNotFound = apperror.New(
	apperror.CodeNotFound,
	"notification not found",
	http.StatusNotFound,
)

type Service interface {
	// ListForEmployee mengembalikan halaman inbox plus total baris untuk
	// meta pagination di handler.
	ListForEmployee(ctx context.Context, companyID, employeeID string, page, limit int) (InboxResponse, int64, error)
	MarkRead(ctx context.Context, companyID, employeeID, id string) error

	// Dipanggil consumer kafka, bukan HTTP path.
	NotifyReviewRequired(ctx context.Context, event events.OTReviewRequiredEvent) error
	NotifyReviewed(ctx context.Context, event events.OTReviewedEvent) error
}

type service struct {
	repo   Repository
	clk    clock.Clock
	logger *zap.Logger
}

func NewService(repo Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, clk: clk, logger: l}
}

func (s *service) ListForEmployee(ctx context.Context, companyID, employeeID string, page, limit int) (InboxResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	rows, err := s.repo.FindByEmployee(ctx, companyID, employeeID, limit, (page-1)*limit)
	if err != nil {
		return InboxResponse{}, 0, err
	}
	total, err := s.repo.CountAll(ctx, companyID, employeeID)
	if err != nil {
		return InboxResponse{}, 0, err
	}
	unread, err := s.repo.CountUnread(ctx, companyID, employeeID)
	if err != nil {
		return InboxResponse{}, 0, err
	}

	items := make([]NotificationResponse, 0, len(rows))
	for _, n := range rows {
		items = append(items, mapToResponse(n))
	}
	return InboxResponse{Items: items, UnreadCount: unread}, total, nil
}

func (s *service) MarkRead(ctx context.Context, companyID, employeeID, id string) error {
	if err := s.repo.MarkRead(ctx, companyID, employeeID, id, s.clk.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotificationNotFound
		}
		return err
	}
	return nil
}

func (s *service) NotifyReviewRequired(ctx context.Context, event events.OTReviewRequiredEvent) error {
	n := &Notification{
		ID:         uuid.New(),
		CompanyID:  uuid.MustParse(event.CompanyID),
		EmployeeID: uuid.MustParse(event.EmployeeID),
		Type:       TypeOTReviewRequired,
		Title:      "Sesi lembur menunggu review",
		Body: fmt.Sprintf(
			"Sesi lembur %s (%.2f jam) melewati batas harian %.2f jam dan menunggu keputusan admin.",
			event.AttendanceDate, event.OTHours, event.MaxOTHours),
		RefID: event.SessionID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("store review required notification failed",
			zap.String("session_id", event.SessionID),
			zap.Error(err))
		return err
	}
	return nil
}

func (s *service) NotifyReviewed(ctx context.Context, event events.OTReviewedEvent) error {
	body := fmt.Sprintf("Sesi lembur Anda diputuskan: %s (%.2f jam dihitung).",
		event.ReviewAction, event.OTHours)
	if event.OriginalHours != nil {
		body = fmt.Sprintf("Sesi lembur Anda disesuaikan dari %.2f menjadi %.2f jam (%s).",
			*event.OriginalHours, event.OTHours, event.ReviewAction)
	}

	n := &Notification{
		ID:         uuid.New(),
		CompanyID:  uuid.MustParse(event.CompanyID),
		EmployeeID: uuid.MustParse(event.EmployeeID),
		Type:       TypeOTReviewed,
		Title:      "Hasil review sesi lembur",
		Body:       body,
		RefID:      event.SessionID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("store reviewed notification failed",
			zap.String("session_id", event.SessionID),
			zap.Error(err))
		return err
	}
	return nil
}
