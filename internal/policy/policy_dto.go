package policy

type UpdateSettingsRequest struct {
	WeekendDays                []int   `json:"weekend_days" binding:"required,dive,min=0,max=6"`
	DefaultOTRate              float64 `json:"default_ot_rate" binding:"required,gt=0"`
	MaxOTHoursPerDay           float64 `json:"max_ot_hours_per_day" binding:"required,gt=0"`
	StandardWorkingDays        float64 `json:"standard_working_days" binding:"required,gt=0"`
	StandardWorkingHoursPerDay float64 `json:"standard_working_hours_per_day" binding:"required,gt=0"`
	Timezone                   string  `json:"timezone"`
}

type SettingsResponse struct {
	CompanyID                  string  `json:"company_id"`
	WeekendDays                []int   `json:"weekend_days"`
	DefaultOTRate              float64 `json:"default_ot_rate"`
	MaxOTHoursPerDay           float64 `json:"max_ot_hours_per_day"`
	StandardWorkingDays        float64 `json:"standard_working_days"`
	StandardWorkingHoursPerDay float64 `json:"standard_working_hours_per_day"`
	Timezone                   string  `json:"timezone"`
}
