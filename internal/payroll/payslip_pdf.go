package payroll

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

type payslipRow struct {
	label string
	value string
}

func amountRow(label string, v float64) payslipRow {
	return payslipRow{label: label, value: fmt.Sprintf("%.2f", v)}
}

func renderPayslipPDF(p PayslipResponse) ([]byte, error) {
	b := p.Breakdown

	earnings := []payslipRow{
		amountRow("Basic", b.EarnedBasic),
		amountRow("HRA", b.EarnedHRA),
		amountRow("Conveyance", b.EarnedConveyance),
		{label: "Overtime", value: fmt.Sprintf("%.2f jam x %.2f = %.2f", b.WeightedOTHours, b.HourlyRate, b.OvertimePay)},
		amountRow("Gross", b.GrossSalary),
	}
	deductions := []payslipRow{
		amountRow("EPF", b.EPF),
		amountRow("ESI", b.ESI),
		amountRow("VPF", b.VPF),
		amountRow("Unpaid leave", b.UnpaidLeaveDeduction),
		amountRow("Advance", b.AdvanceDeduction),
		amountRow("Total deductions", b.TotalDeductions),
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("PAYSLIP %s", p.PayslipNumber), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Employee: %s", p.EmployeeID), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Period: %02d/%04d", p.Month, p.Year), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Working days: %.2f (kehadiran %.2f + cuti dibayar %.2f)",
		b.TotalWorkingDays, b.AttendanceScore, b.PaidLeaveDays), "", 1, "", false, 0, "")
	pdf.Ln(4)

	writeSection := func(title string, rows []payslipRow) {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, title, "B", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, row := range rows {
			pdf.CellFormat(90, 7, row.label, "", 0, "", false, 0, "")
			pdf.CellFormat(90, 7, row.value, "", 1, "R", false, 0, "")
		}
		pdf.Ln(3)
	}
	writeSection("Earnings", earnings)
	writeSection("Deductions", deductions)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(90, 9, "NET SALARY", "T", 0, "", false, 0, "")
	pdf.CellFormat(90, 9, fmt.Sprintf("%.2f", b.NetSalary), "T", 1, "R", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}
