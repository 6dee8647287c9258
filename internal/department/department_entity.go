package department

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Department struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null"`

	// Jendela kerja harian, format "HH:MM". Dipakai untuk klasifikasi
	// lembur early_arrival/late_departure dan tarif per jam payroll.
	WorkStart          string  `gorm:"type:varchar(5);not null;default:'09:00'"`
	WorkEnd            string  `gorm:"type:varchar(5);not null;default:'18:00'"`
	WorkingHoursPerDay float64 `gorm:"not null;default:8"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Department) TableName() string {
	return "departments"
}

// WorkWindow mengembalikan jam mulai dan selesai kerja pada tanggal tertentu
// di lokasi waktu yang diberikan. Format jam yang rusak jatuh ke 09:00-18:00.
func (d Department) WorkWindow(date time.Time, loc *time.Location) (time.Time, time.Time) {
	start := parseClock(d.WorkStart, 9, 0)
	end := parseClock(d.WorkEnd, 18, 0)

	y, m, day := date.Date()
	return time.Date(y, m, day, start.h, start.m, 0, 0, loc),
		time.Date(y, m, day, end.h, end.m, 0, 0, loc)
}

type clockTime struct {
	h, m int
}

func parseClock(v string, defaultH, defaultM int) clockTime {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return clockTime{h: defaultH, m: defaultM}
	}
	return clockTime{h: t.Hour(), m: t.Minute()}
}
