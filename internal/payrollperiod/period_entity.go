package payrollperiod

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusOpen      = "open"
	StatusLocked    = "locked"
	StatusProcessed = "processed"
)

const (
	AuditActionLock   = "lock"
	AuditActionUnlock = "unlock"
)

// PayrollPeriod adalah gerbang tulis untuk satu bulan payroll. Selama
// locked, semua operasi yang mengubah data lembur bulan itu ditolak.
type PayrollPeriod struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uniq_company_period,priority:1" json:"company_id"`
	Month     int        `gorm:"not null;uniqueIndex:uniq_company_period,priority:2" json:"month"`
	Year      int        `gorm:"not null;uniqueIndex:uniq_company_period,priority:3" json:"year"`
	Status    string     `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	LockedAt  *time.Time `json:"locked_at,omitempty"`
	LockedBy  *uuid.UUID `gorm:"type:uuid" json:"locked_by,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PayrollPeriod) TableName() string {
	return "payroll_periods"
}

func (p *PayrollPeriod) IsLocked() bool {
	return p.Status == StatusLocked || p.Status == StatusProcessed
}

// Contains melaporkan apakah tanggal jatuh di dalam periode ini.
func (p *PayrollPeriod) Contains(date time.Time) bool {
	return int(date.Month()) == p.Month && date.Year() == p.Year
}

// PeriodAudit mencatat setiap lock/unlock beserta alasannya.
type PeriodAudit struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PeriodID  uuid.UUID `gorm:"type:uuid;not null;index" json:"period_id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Action    string    `gorm:"type:varchar(10);not null" json:"action"`
	ActorID   uuid.UUID `gorm:"type:uuid;not null" json:"actor_id"`
	Reason    string    `gorm:"type:text" json:"reason"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PeriodAudit) TableName() string {
	return "payroll_period_audits"
}
