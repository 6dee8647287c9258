package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeOTReviewRequired = "ot_review_required"
	TypeOTReviewed       = "ot_reviewed"
)

// Notification adalah inbox sederhana per karyawan, diisi oleh consumer
// kafka dari event lembur. RefID menunjuk session_id sumbernya supaya
// klien bisa deep-link ke sesinya.
type Notification struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_recipient"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_recipient"`

	Type  string `gorm:"type:varchar(40);not null"`
	Title string `gorm:"type:varchar(200);not null"`
	Body  string `gorm:"type:text"`
	RefID string `gorm:"type:varchar(60);index"`

	ReadAt    *time.Time
	CreatedAt time.Time
}

func (Notification) TableName() string {
	return "notifications"
}
