package payroll

import (
	"time"

	"go-otpay/internal/attendance"
	"go-otpay/internal/leave"
	"go-otpay/internal/policy"
	"go-otpay/internal/salarystructure"
	"go-otpay/internal/shared/money"
)

// Konstanta statuter India. EPF dihitung dari basic tetap (bukan yang
// sudah dipro-rata) supaya kontribusi tetap patuh berapapun kehadiran;
// ESI dibulatkan ke atas sesuai konvensi statuter.
const (
	epfCeiling      = 15000.0
	epfEmployeeRate = 0.12
	esiEmployeeRate = 0.0075
	esiThreshold    = 21000.0
)

// PayrollInput adalah snapshot lengkap untuk satu (karyawan, bulan, tahun).
// Compute murni terhadap input ini: snapshot sama, hasil sama.
type PayrollInput struct {
	Month int
	Year  int

	Days      []attendance.AttendanceDay
	Leaves    []leave.Leave
	Structure salarystructure.SalaryStructure
	Policy    policy.Policy

	// Jam kerja harian department; 0 berarti pakai default company.
	WorkingHoursPerDay float64

	AdvanceDeduction float64
}

type PayrollBreakdown struct {
	Month int `json:"month"`
	Year  int `json:"year"`

	AttendanceScore  float64 `json:"attendance_score"`
	PaidLeaveDays    float64 `json:"paid_leave_days"`
	UnpaidLeaveDays  float64 `json:"unpaid_leave_days"`
	TotalWorkingDays float64 `json:"total_working_days"`
	ProRataRatio     float64 `json:"pro_rata_ratio"`

	DailySalary float64 `json:"daily_salary"`
	HourlyRate  float64 `json:"hourly_rate"`

	EarnedBasic      float64 `json:"earned_basic"`
	EarnedHRA        float64 `json:"earned_hra"`
	EarnedConveyance float64 `json:"earned_conveyance"`

	WeightedOTHours float64 `json:"weighted_ot_hours"`
	OvertimePay     float64 `json:"overtime_pay"`
	// Sesi yang masih menunggu review admin tidak ikut dibayar; jumlahnya
	// dilaporkan supaya admin tahu slip ini belum final.
	PendingReviewSessions int `json:"pending_review_sessions"`

	CustomEarnings map[string]float64 `json:"custom_earnings"`
	GrossSalary    float64            `json:"gross_salary"`

	EPF                  float64            `json:"epf"`
	ESI                  float64            `json:"esi"`
	VPF                  float64            `json:"vpf"`
	CustomDeductions     map[string]float64 `json:"custom_deductions"`
	UnpaidLeaveDeduction float64            `json:"unpaid_leave_deduction"`
	AdvanceDeduction     float64            `json:"advance_deduction"`
	TotalDeductions      float64            `json:"total_deductions"`

	NetSalary float64 `json:"net_salary"`
}

// Calculator adalah fungsi murni: tidak membaca clock, storage, atau
// state lain di luar PayrollInput.
type Calculator struct{}

func NewCalculator() Calculator {
	return Calculator{}
}

func (Calculator) Compute(in PayrollInput) PayrollBreakdown {
	pol := in.Policy
	st := in.Structure

	stdDays := float64(pol.StandardWorkingDays)
	hoursPerDay := in.WorkingHoursPerDay
	if hoursPerDay <= 0 {
		hoursPerDay = float64(pol.StandardWorkingHoursPerDay)
	}

	monthStart := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	// 1. Skor kehadiran berbobot.
	attendanceScore := 0.0
	for i := range in.Days {
		attendanceScore += in.Days[i].AttendanceWeight()
	}

	// 2. Hari cuti dibayar: casual full-day diklip ke batas bulan,
	// permission dikonversi jam → pecahan hari.
	paidLeaveDays := 0.0
	unpaidLeaveDays := 0.0
	for i := range in.Leaves {
		l := &in.Leaves[i]
		if l.Status != leave.StatusApproved || !l.AffectsPayroll {
			continue
		}
		switch l.LeaveType {
		case leave.TypeCasual:
			paidLeaveDays += overlapDays(l.StartDate, l.EndDate, monthStart, monthEnd)
		case leave.TypePermission:
			if l.PermissionHours != nil && !l.StartDate.Before(monthStart) && !l.StartDate.After(monthEnd) {
				paidLeaveDays += *l.PermissionHours / hoursPerDay
			}
		case leave.TypeUnpaid:
			unpaidLeaveDays += overlapDays(l.StartDate, l.EndDate, monthStart, monthEnd)
		}
	}

	// 3–4. Total hari kerja dan rasio pro-rata tunggal yang dipakai
	// seragam untuk semua komponen tetap.
	totalWorkingDays := attendanceScore + paidLeaveDays
	ratio := 0.0
	if stdDays > 0 {
		ratio = totalWorkingDays / stdDays
	}

	fixedTotal := st.FixedTotal()
	dailySalary := 0.0
	hourlyRate := 0.0
	if stdDays > 0 {
		dailySalary = fixedTotal / stdDays
		if hoursPerDay > 0 {
			hourlyRate = dailySalary / hoursPerDay
		}
	}

	// 5. Komponen tetap yang diperoleh.
	earnedBasic := st.FixedBasic * ratio
	earnedHRA := st.FixedHRA * ratio
	earnedConveyance := st.FixedConveyance * ratio

	// 6–7. Jam lembur berbobot, dibulatkan 2 desimal sebelum dikonversi
	// ke upah supaya drift float tidak menumpuk lintas sesi.
	weightedHours := 0.0
	pendingSessions := 0
	for i := range in.Days {
		for j := range in.Days[i].OTSessions {
			s := &in.Days[i].OTSessions[j]
			if s.CountsTowardTotal() {
				weightedHours += s.OTHours * pol.DefaultOTRate
			} else if s.Status == attendance.SessionPendingReview {
				pendingSessions++
			}
		}
	}
	weightedHours = money.Round2(weightedHours)
	overtimePay := weightedHours * hourlyRate

	// 8. Gross.
	customEarnings := map[string]float64{}
	customEarningsTotal := 0.0
	for name, amount := range st.EarningsMap() {
		earned := amount * ratio
		customEarnings[name] = money.Round(earned)
		customEarningsTotal += earned
	}
	gross := earnedBasic + earnedHRA + earnedConveyance + customEarningsTotal + overtimePay

	// 9. Potongan statuter.
	epf := 0.0
	if st.EPFEnabled {
		base := st.FixedBasic
		if base > epfCeiling {
			base = epfCeiling
		}
		epf = base * epfEmployeeRate
	}
	esi := 0.0
	if st.ESIEnabled && gross <= esiThreshold {
		esi = money.Ceil(gross * esiEmployeeRate)
	}
	vpf := st.VPFAmount

	// 10. Potongan cuti tak dibayar memakai rumus dailySalary yang sama
	// dengan rasio pro-rata, sehingga potongan dan pro-rata konsisten.
	unpaidDeduction := unpaidLeaveDays * dailySalary

	customDeductions := map[string]float64{}
	customDeductionsTotal := 0.0
	for name, amount := range st.DeductionsMap() {
		d := amount * ratio
		customDeductions[name] = money.Round(d)
		customDeductionsTotal += d
	}

	// 11–12. Advance dan net.
	totalDeductions := epf + esi + vpf + customDeductionsTotal + unpaidDeduction + in.AdvanceDeduction
	net := gross - totalDeductions

	// Pembulatan ke satuan mata uang hanya pada titik presentasi; rasio
	// dan subtotal antara tetap presisi penuh. Jam dan hari tetap 2 desimal.
	return PayrollBreakdown{
		Month:                 in.Month,
		Year:                  in.Year,
		AttendanceScore:       attendanceScore,
		PaidLeaveDays:         money.Round2(paidLeaveDays),
		UnpaidLeaveDays:       money.Round2(unpaidLeaveDays),
		TotalWorkingDays:      money.Round2(totalWorkingDays),
		ProRataRatio:          ratio,
		DailySalary:           money.Round(dailySalary),
		HourlyRate:            money.Round(hourlyRate),
		EarnedBasic:           money.Round(earnedBasic),
		EarnedHRA:             money.Round(earnedHRA),
		EarnedConveyance:      money.Round(earnedConveyance),
		WeightedOTHours:       weightedHours,
		OvertimePay:           money.Round(overtimePay),
		PendingReviewSessions: pendingSessions,
		CustomEarnings:        customEarnings,
		GrossSalary:           money.Round(gross),
		EPF:                   money.Round(epf),
		ESI:                   esi,
		VPF:                   money.Round(vpf),
		CustomDeductions:      customDeductions,
		UnpaidLeaveDeduction:  money.Round(unpaidDeduction),
		AdvanceDeduction:      money.Round(in.AdvanceDeduction),
		TotalDeductions:       money.Round(totalDeductions),
		NetSalary:             money.Round(net),
	}
}

// overlapDays menghitung hari inklusif dari irisan [start,end] dengan
// [monthStart,monthEnd].
func overlapDays(start, end, monthStart, monthEnd time.Time) float64 {
	// Rentang yang sepenuhnya di luar bulan akan terklip ke batas yang
	// sama dan terhitung 1 hari; tolak dulu sebelum mengklip.
	if end.Before(monthStart) || start.After(monthEnd) {
		return 0
	}
	s := clipDate(start, monthStart, monthEnd)
	e := clipDate(end, monthStart, monthEnd)
	if e.Before(s) {
		return 0
	}
	return e.Sub(s).Hours()/24 + 1
}

func clipDate(d, lo, hi time.Time) time.Time {
	if d.Before(lo) {
		return lo
	}
	if d.After(hi) {
		return hi
	}
	return d
}
