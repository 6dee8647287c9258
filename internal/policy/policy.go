package policy

import "time"

// Policy adalah snapshot kebijakan yang immutable. Kedua core menerima
// value ini sebagai input eksplisit, bukan membaca singleton global,
// supaya hasil kalkulasi selalu bisa direproduksi dari inputnya.
type Policy struct {
	WeekendDays                []int
	DefaultOTRate              float64
	MaxOTHoursPerDay           float64
	StandardWorkingDays        float64
	StandardWorkingHoursPerDay float64
	Timezone                   string
}

// Default dipakai ketika company belum punya settings tersimpan.
// Payroll tidak boleh gagal hanya karena konfigurasi belum diisi.
func Default() Policy {
	return Policy{
		WeekendDays:                []int{0}, // Sunday
		DefaultOTRate:              1.0,
		MaxOTHoursPerDay:           5.0,
		StandardWorkingDays:        26,
		StandardWorkingHoursPerDay: 8,
		Timezone:                   "Asia/Kolkata",
	}
}

func (p Policy) IsWeekend(t time.Time) bool {
	wd := int(t.Weekday())
	for _, d := range p.WeekendDays {
		if d == wd {
			return true
		}
	}
	return false
}

func fromSettings(s *CompanySettings) Policy {
	p := Default()
	if s == nil {
		return p
	}
	if len(s.WeekendDays) > 0 {
		p.WeekendDays = append([]int(nil), s.WeekendDays...)
	}
	if s.DefaultOTRate > 0 {
		p.DefaultOTRate = s.DefaultOTRate
	}
	if s.MaxOTHoursPerDay > 0 {
		p.MaxOTHoursPerDay = s.MaxOTHoursPerDay
	}
	if s.StandardWorkingDays > 0 {
		p.StandardWorkingDays = s.StandardWorkingDays
	}
	if s.StandardWorkingHoursPerDay > 0 {
		p.StandardWorkingHoursPerDay = s.StandardWorkingHoursPerDay
	}
	if s.Timezone != "" {
		p.Timezone = s.Timezone
	}
	return p
}
