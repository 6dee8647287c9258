package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Email      string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Password   string    `gorm:"type:varchar(255);not null"`
	Name       string    `gorm:"type:varchar(150);not null"`
	Role       string    `gorm:"type:varchar(30);not null;default:'EMPLOYEE'"`
	IsActive   bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
