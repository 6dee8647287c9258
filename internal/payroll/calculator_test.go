package payroll

import (
	"testing"
	"time"

	"go-otpay/internal/attendance"
	"go-otpay/internal/leave"
	"go-otpay/internal/policy"
	"go-otpay/internal/salarystructure"

	"github.com/stretchr/testify/assert"
)

func testStructure() salarystructure.SalaryStructure {
	return salarystructure.SalaryStructure{
		FixedBasic:      15000,
		FixedHRA:        8000,
		FixedConveyance: 3000,
		EPFEnabled:      true,
		ESIEnabled:      true,
	}
}

func presentDays(n int, month, year int) []attendance.AttendanceDay {
	days := make([]attendance.AttendanceDay, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, attendance.AttendanceDay{
			AttendanceDate: time.Date(year, time.Month(month), i+1, 0, 0, 0, 0, time.UTC),
			Status:         attendance.StatusPresent,
		})
	}
	return days
}

func approvedSession(hours float64) attendance.OTSession {
	return attendance.OTSession{
		SessionID: "OT-test",
		OTType:    attendance.OTLateDeparture,
		OTHours:   hours,
		Status:    attendance.SessionApproved,
	}
}

func baseInput(days []attendance.AttendanceDay) PayrollInput {
	return PayrollInput{
		Month:     8,
		Year:      2026,
		Days:      days,
		Structure: testStructure(),
		Policy: policy.Policy{
			WeekendDays:                []int{0},
			DefaultOTRate:              1.5,
			MaxOTHoursPerDay:           5.0,
			StandardWorkingDays:        26,
			StandardWorkingHoursPerDay: 8,
		},
	}
}

func TestCompute_FullAttendanceWithOvertime(t *testing.T) {
	days := presentDays(26, 8, 2026)
	days[3].OTSessions = append(days[3].OTSessions, approvedSession(4.0))

	b := NewCalculator().Compute(baseInput(days))

	assert.Equal(t, 26.0, b.AttendanceScore)
	assert.Equal(t, 1.0, b.ProRataRatio)
	assert.Equal(t, 1000.0, b.DailySalary)
	assert.Equal(t, 125.0, b.HourlyRate)

	assert.Equal(t, 15000.0, b.EarnedBasic)
	assert.Equal(t, 8000.0, b.EarnedHRA)
	assert.Equal(t, 3000.0, b.EarnedConveyance)

	// 4h * rate 1.5 = 6 jam berbobot * 125/jam.
	assert.Equal(t, 6.0, b.WeightedOTHours)
	assert.Equal(t, 750.0, b.OvertimePay)
	assert.Equal(t, 26750.0, b.GrossSalary)

	// Basic tepat di ceiling EPF; gross di atas ambang ESI.
	assert.Equal(t, 1800.0, b.EPF)
	assert.Equal(t, 0.0, b.ESI)
	assert.Equal(t, 24950.0, b.NetSalary)
}

func TestCompute_OnlyApprovedSessionsEarnOvertime(t *testing.T) {
	days := presentDays(26, 8, 2026)
	days[0].OTSessions = append(days[0].OTSessions,
		approvedSession(2.0),
		attendance.OTSession{SessionID: "p", OTHours: 3.0, Status: attendance.SessionPendingReview},
		attendance.OTSession{SessionID: "r", OTHours: 4.0, Status: attendance.SessionRejected},
		attendance.OTSession{SessionID: "ip", Status: attendance.SessionInProgress},
	)
	days[1].OTSessions = append(days[1].OTSessions,
		attendance.OTSession{SessionID: "lk", OTHours: 1.0, Status: attendance.SessionLocked},
		attendance.OTSession{SessionID: "cp", OTHours: 1.0, Status: attendance.SessionCompleted},
	)

	b := NewCalculator().Compute(baseInput(days))

	// 2 + 1 + 1 jam dihitung, * rate 1.5. PENDING/REJECTED/in_progress nol.
	assert.Equal(t, 6.0, b.WeightedOTHours)
	assert.Equal(t, 750.0, b.OvertimePay)
	assert.Equal(t, 1, b.PendingReviewSessions)
}

func TestCompute_UnpaidLeaveDeductionMatchesProRataLoss(t *testing.T) {
	full := NewCalculator().Compute(baseInput(presentDays(26, 8, 2026)))

	in := baseInput(presentDays(25, 8, 2026))
	in.Leaves = []leave.Leave{{
		LeaveType:      leave.TypeUnpaid,
		Status:         leave.StatusApproved,
		AffectsPayroll: true,
		StartDate:      time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC),
	}}
	b := NewCalculator().Compute(in)

	assert.Equal(t, 1.0, b.UnpaidLeaveDays)
	assert.Equal(t, b.DailySalary, b.UnpaidLeaveDeduction)

	// Komponen tetap yang hilang karena satu hari absen = satu dailySalary.
	lostFixed := full.GrossSalary - b.GrossSalary
	assert.InDelta(t, b.DailySalary, lostFixed, 0.01)
}

func TestCompute_PaidLeaveCountsTowardProRata(t *testing.T) {
	in := baseInput(presentDays(24, 8, 2026))
	in.Leaves = []leave.Leave{{
		LeaveType:      leave.TypeCasual,
		Status:         leave.StatusApproved,
		AffectsPayroll: true,
		StartDate:      time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
	}}
	b := NewCalculator().Compute(in)

	assert.Equal(t, 2.0, b.PaidLeaveDays)
	assert.Equal(t, 26.0, b.TotalWorkingDays)
	assert.Equal(t, 1.0, b.ProRataRatio)
	assert.Equal(t, 26000.0, b.GrossSalary)
}

func TestCompute_CasualLeaveClippedToMonth(t *testing.T) {
	in := baseInput(nil)
	in.Leaves = []leave.Leave{{
		LeaveType:      leave.TypeCasual,
		Status:         leave.StatusApproved,
		AffectsPayroll: true,
		StartDate:      time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
	}}
	b := NewCalculator().Compute(in)

	// Hanya 1–3 Agustus yang jatuh di bulan ini.
	assert.Equal(t, 3.0, b.PaidLeaveDays)
}

func TestCompute_PermissionHoursBecomeFractionalDay(t *testing.T) {
	hours := 4.0
	in := baseInput(presentDays(25, 8, 2026))
	in.Leaves = []leave.Leave{{
		LeaveType:       leave.TypePermission,
		Status:          leave.StatusApproved,
		AffectsPayroll:  true,
		StartDate:       time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC),
		PermissionHours: &hours,
	}}
	b := NewCalculator().Compute(in)

	assert.Equal(t, 0.5, b.PaidLeaveDays)
	assert.Equal(t, 25.5, b.TotalWorkingDays)
}

func TestCompute_PendingOrRejectedLeaveIgnored(t *testing.T) {
	in := baseInput(presentDays(20, 8, 2026))
	in.Leaves = []leave.Leave{
		{
			LeaveType: leave.TypeCasual, Status: "PENDING", AffectsPayroll: true,
			StartDate: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			LeaveType: leave.TypeUnpaid, Status: leave.StatusApproved, AffectsPayroll: false,
			StartDate: time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC),
		},
	}
	b := NewCalculator().Compute(in)

	assert.Equal(t, 0.0, b.PaidLeaveDays)
	assert.Equal(t, 0.0, b.UnpaidLeaveDays)
}

func TestCompute_AttendanceWeights(t *testing.T) {
	pending := attendance.ReviewPending
	in := baseInput([]attendance.AttendanceDay{
		{Status: attendance.StatusPresent},
		{Status: attendance.StatusHalfDay},
		{Status: attendance.StatusLate},
		{Status: attendance.StatusAbsent},
		{Status: attendance.StatusPresent, AdminReviewStatus: &pending},
	})
	b := NewCalculator().Compute(in)

	// 1 + 0.5 + 1 + 0 + 0 (tertahan review admin).
	assert.Equal(t, 2.5, b.AttendanceScore)
}

func TestCompute_EPFCappedAtCeiling(t *testing.T) {
	in := baseInput(presentDays(26, 8, 2026))
	in.Structure.FixedBasic = 20000

	b := NewCalculator().Compute(in)

	assert.Equal(t, 1800.0, b.EPF)
}

func TestCompute_ESIRoundedUpWithinThreshold(t *testing.T) {
	in := baseInput(presentDays(26, 8, 2026))
	in.Structure = salarystructure.SalaryStructure{
		FixedBasic: 12010, FixedHRA: 4000, FixedConveyance: 2000,
		EPFEnabled: true, ESIEnabled: true,
	}

	b := NewCalculator().Compute(in)

	// 18010 * 0.0075 = 135.075, dibulatkan ke atas.
	assert.Equal(t, 18010.0, b.GrossSalary)
	assert.Equal(t, 136.0, b.ESI)
}

func TestCompute_StatutoryDisabled(t *testing.T) {
	in := baseInput(presentDays(26, 8, 2026))
	in.Structure.EPFEnabled = false
	in.Structure.ESIEnabled = false
	in.Structure.VPFAmount = 500

	b := NewCalculator().Compute(in)

	assert.Equal(t, 0.0, b.EPF)
	assert.Equal(t, 0.0, b.ESI)
	assert.Equal(t, 500.0, b.VPF)
}

func TestCompute_CustomComponentsProRated(t *testing.T) {
	in := baseInput(presentDays(13, 8, 2026))
	in.Structure.CustomEarnings = map[string]interface{}{"special_allowance": 2000.0}
	in.Structure.CustomDeductions = map[string]interface{}{"canteen": 400.0}

	b := NewCalculator().Compute(in)

	assert.Equal(t, 0.5, b.ProRataRatio)
	assert.Equal(t, 1000.0, b.CustomEarnings["special_allowance"])
	assert.Equal(t, 200.0, b.CustomDeductions["canteen"])
}

func TestCompute_AdvanceDeductionPassesThrough(t *testing.T) {
	in := baseInput(presentDays(26, 8, 2026))
	in.AdvanceDeduction = 1500

	b := NewCalculator().Compute(in)

	assert.Equal(t, 1500.0, b.AdvanceDeduction)
	assert.Equal(t, b.GrossSalary-b.TotalDeductions, b.NetSalary)
}

func TestCompute_Deterministic(t *testing.T) {
	days := presentDays(22, 8, 2026)
	days[5].OTSessions = append(days[5].OTSessions, approvedSession(3.37))
	in := baseInput(days)
	in.Structure.VPFAmount = 250
	in.AdvanceDeduction = 800

	calc := NewCalculator()
	first := calc.Compute(in)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, calc.Compute(in))
	}
}

func TestCompute_CurrencyRoundedToWholeUnits(t *testing.T) {
	days := presentDays(26, 8, 2026)
	days[25].Status = attendance.StatusHalfDay
	in := baseInput(days)
	in.Structure = salarystructure.SalaryStructure{
		FixedBasic: 10000,
		EPFEnabled: true,
	}

	b := NewCalculator().Compute(in)

	// 25.5/26 * 10000 = 9807.6923; nominal rupiah dibulatkan ke satuan,
	// jam dan hari tetap 2 desimal.
	assert.Equal(t, 25.5, b.AttendanceScore)
	assert.Equal(t, 9808.0, b.EarnedBasic)
	assert.Equal(t, 9808.0, b.GrossSalary)
	assert.Equal(t, 1200.0, b.EPF)
	assert.Equal(t, 8608.0, b.NetSalary)
	assert.Equal(t, 385.0, b.DailySalary)
}

func TestCompute_LeaveOutsideMonthIgnored(t *testing.T) {
	in := baseInput(presentDays(26, 8, 2026))
	in.Leaves = []leave.Leave{
		{
			LeaveType: leave.TypeUnpaid, Status: leave.StatusApproved, AffectsPayroll: true,
			StartDate: time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 7, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			LeaveType: leave.TypeCasual, Status: leave.StatusApproved, AffectsPayroll: true,
			StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	b := NewCalculator().Compute(in)

	assert.Equal(t, 0.0, b.UnpaidLeaveDays)
	assert.Equal(t, 0.0, b.PaidLeaveDays)
	assert.Equal(t, 0.0, b.UnpaidLeaveDeduction)
}

func TestCompute_ZeroStandardDays(t *testing.T) {
	in := baseInput(presentDays(10, 8, 2026))
	in.Policy.StandardWorkingDays = 0

	b := NewCalculator().Compute(in)

	assert.Equal(t, 0.0, b.ProRataRatio)
	assert.Equal(t, 0.0, b.DailySalary)
	assert.Equal(t, 0.0, b.GrossSalary)
}
