package consumer

import (
	"context"
	"encoding/json"

	"go-otpay/internal/events"
	"go-otpay/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeOTReviewRequired mengubah event review-required menjadi
// notifikasi untuk karyawan pemilik sesi. Gagal simpan = tidak commit,
// kafka akan mengirim ulang; notifikasi duplikat lebih murah daripada hilang.
func ConsumeOTReviewRequired(
	ctx context.Context,
	reader *kafkago.Reader,
	notifications notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.ot_review_required")
	log.Info("ot review required consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("ot review required consumer stopped")
				return
			}
			log.Error("fetch ot review required message failed", zap.Error(err))
			continue
		}

		var event events.OTReviewRequiredEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode ot review required event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notifications.NotifyReviewRequired(ctx, event); err != nil {
			log.Error("notify review required failed",
				zap.String("session_id", event.SessionID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit ot review required message failed", zap.Error(err))
			continue
		}

		log.Info("review required notification stored",
			zap.String("session_id", event.SessionID),
			zap.String("employee_id", event.EmployeeID),
		)
	}
}

// ConsumeOTReviewed memberi tahu karyawan hasil keputusan admin atas
// sesi PENDING_REVIEW miliknya.
func ConsumeOTReviewed(
	ctx context.Context,
	reader *kafkago.Reader,
	notifications notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.ot_reviewed")
	log.Info("ot reviewed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("ot reviewed consumer stopped")
				return
			}
			log.Error("fetch ot reviewed message failed", zap.Error(err))
			continue
		}

		var event events.OTReviewedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode ot reviewed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notifications.NotifyReviewed(ctx, event); err != nil {
			log.Error("notify reviewed failed",
				zap.String("session_id", event.SessionID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit ot reviewed message failed", zap.Error(err))
			continue
		}

		log.Info("reviewed notification stored",
			zap.String("session_id", event.SessionID),
			zap.String("employee_id", event.EmployeeID),
			zap.String("action", event.ReviewAction),
		)
	}
}
