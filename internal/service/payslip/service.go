package payslip

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/workpay-hr/payroll-backend-go/internal/domain/payroll"
)

type PayslipService interface {
	Render(ctx context.Context, recordID string) ([]byte, string, error)
}

type payslipServiceImpl struct {
	payrollRepo payroll.PayrollRepository
}

func NewPayslipService(payrollRepo payroll.PayrollRepository) PayslipService {
	return &payslipServiceImpl{payrollRepo: payrollRepo}
}

// Render produces a payslip PDF for a stored payroll record and returns the
// document bytes plus a suggested filename.
func (s *payslipServiceImpl) Render(ctx context.Context, recordID string) ([]byte, string, error) {
	rec, err := s.payrollRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, "", err
	}

	employeeName := ""
	employeeCode := ""
	if rec.EmployeeName != nil {
		employeeName = *rec.EmployeeName
	}
	if rec.EmployeeCode != nil {
		employeeCode = *rec.EmployeeCode
	}
	period := time.Date(rec.PeriodYear, time.Month(rec.PeriodMonth), 1, 0, 0, 0, 0, time.UTC)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", employeeName, employeeCode))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", period.Format("January 2006")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", rec.Status))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Basic salary: %s", rec.BasicSalary.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Allowances: %s", rec.TotalAllowances.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Overtime (%s h): %s", rec.OvertimeHours.StringFixed(2), rec.OvertimeAmount.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Gross pay: %s", rec.GrossPay.StringFixed(2)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Income tax: %s", rec.Deductions.Tax.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Provident fund: %s", rec.Deductions.PF.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("ESI: %s", rec.Deductions.ESI.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Professional fee: %s", rec.Deductions.Professional.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Unpaid leave: %s", rec.Deductions.UnpaidLeave.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Other: %s", rec.Deductions.Other.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total deductions: %s", rec.TotalDeductions.StringFixed(2)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Net pay: %s", rec.NetPay.StringFixed(2)))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Working days: %d   Attendance days: %d   Leave days: %s",
		rec.WorkingDays, rec.AttendanceDays, rec.LeaveDays.StringFixed(1)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render payslip: %w", err)
	}

	filename := fmt.Sprintf("payslip-%s-%04d-%02d.pdf", employeeCode, rec.PeriodYear, rec.PeriodMonth)
	return buf.Bytes(), filename, nil
}
