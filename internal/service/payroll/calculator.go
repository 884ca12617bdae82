package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/workpay-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/workpay-hr/payroll-backend-go/internal/domain/employee"
	"github.com/workpay-hr/payroll-backend-go/internal/domain/leave"
	"github.com/workpay-hr/payroll-backend-go/internal/domain/payroll"
)

// Statutory deduction parameters. PF is capped at a fixed monthly amount and
// ESI only applies up to the gross-pay ceiling.
var (
	pfRate        = decimal.NewFromFloat(0.12)
	pfMonthlyCap  = decimal.NewFromInt(1800)
	esiRate       = decimal.NewFromFloat(0.0075)
	esiGrossLimit = decimal.NewFromInt(21000)

	standardDailyHours = decimal.NewFromInt(8)
	overtimeMultiplier = decimal.NewFromFloat(1.5)
)

// taxBracket applies to annualized gross income. Tax for a bracket is
// baseAmount plus rate on the excess over the lower bound.
type taxBracket struct {
	lowerBound decimal.Decimal
	baseAmount decimal.Decimal
	rate       decimal.Decimal
}

// Progressive brackets, highest lower-bound first.
var taxBrackets = []taxBracket{
	{lowerBound: decimal.NewFromInt(1000000), baseAmount: decimal.NewFromInt(112500), rate: decimal.NewFromFloat(0.30)},
	{lowerBound: decimal.NewFromInt(500000), baseAmount: decimal.NewFromInt(12500), rate: decimal.NewFromFloat(0.20)},
	{lowerBound: decimal.NewFromInt(250000), baseAmount: decimal.Zero, rate: decimal.NewFromFloat(0.05)},
}

type Calculator struct {
}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate produces the full payroll breakdown for one employee over the
// calendar month [year, month]. Deterministic: the same inputs always yield
// the same monetary outputs. The attendance and leave slices are expected to
// be period-restricted already; records outside the month are ignored.
func (c *Calculator) Calculate(
	emp employee.Employee,
	attendances []attendance.Attendance,
	leaves []leave.LeaveRequest,
	month, year int,
) (payroll.Breakdown, error) {
	if month < 1 || month > 12 {
		return payroll.Breakdown{}, payroll.ErrInvalidPeriod
	}
	if emp.BasicSalary.IsNegative() {
		return payroll.Breakdown{}, payroll.ErrInvalidSalaryConfiguration
	}

	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, -1)

	workingDays := CountWorkingDays(year, month)
	if workingDays == 0 {
		return payroll.Breakdown{}, payroll.ErrZeroWorkingDays
	}

	attendanceDays := 0
	overtimeHours := decimal.Zero
	for _, att := range attendances {
		if att.Date.Before(periodStart) || att.Date.After(periodEnd) {
			continue
		}
		if att.CheckInTime == nil {
			continue
		}
		attendanceDays++
		if att.HoursWorked.GreaterThan(standardDailyHours) {
			overtimeHours = overtimeHours.Add(att.HoursWorked.Sub(standardDailyHours))
		}
	}

	leaveDays := decimal.Zero
	for _, lv := range leaves {
		if lv.Status != leave.LeaveStatusApproved {
			continue
		}
		leaveDays = leaveDays.Add(leaveDaysInPeriod(lv, periodStart, periodEnd))
	}

	dailyRate := emp.BasicSalary.DivRound(decimal.NewFromInt(int64(workingDays)), 4)
	hourlyRate := dailyRate.DivRound(standardDailyHours, 4)

	totalAllowances := emp.Allowances.Total()
	overtimeAmount := overtimeHours.Mul(hourlyRate).Mul(overtimeMultiplier).Round(2)
	grossPay := emp.BasicSalary.Add(totalAllowances).Add(overtimeAmount)

	deductions := payroll.Deductions{
		Tax:          monthlyIncomeTax(grossPay),
		PF:           providentFund(grossPay),
		ESI:          employeeStateInsurance(grossPay),
		Professional: emp.DeductionConfig.ProfessionalFee,
		Other:        emp.DeductionConfig.Other,
		UnpaidLeave:  unpaidLeaveDeduction(leaveDays, emp.LeaveEntitlement.Annual, dailyRate),
	}

	totalDeductions := deductions.Total()

	// Net pay is deliberately not clamped at zero: an over-deducted period
	// must surface as negative instead of being masked.
	netPay := grossPay.Sub(totalDeductions)

	return payroll.Breakdown{
		BasicSalary:     emp.BasicSalary,
		Allowances:      emp.Allowances,
		TotalAllowances: totalAllowances,
		Deductions:      deductions,
		TotalDeductions: totalDeductions,
		OvertimeHours:   overtimeHours,
		OvertimeAmount:  overtimeAmount,
		GrossPay:        grossPay,
		NetPay:          netPay,
		WorkingDays:     workingDays,
		AttendanceDays:  attendanceDays,
		LeaveDays:       leaveDays,
	}, nil
}

// CountWorkingDays counts Monday-Friday dates in the calendar month. No
// public-holiday calendar is applied.
func CountWorkingDays(year, month int) int {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	count := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

// leaveDaysInPeriod counts the days of a leave request that fall inside the
// pay period. A request fully inside the period contributes its recorded
// number_of_days (which may be fractional for half days); one spanning a
// period boundary contributes number_of_days pro-rated by the share of the
// request's calendar span inside the period, so a request never contributes
// more days across all periods than it records.
func leaveDaysInPeriod(lv leave.LeaveRequest, periodStart, periodEnd time.Time) decimal.Decimal {
	start := lv.StartDate
	end := lv.EndDate
	if end.Before(periodStart) || start.After(periodEnd) {
		return decimal.Zero
	}

	clippedStart := start
	clippedEnd := end
	clipped := false
	if clippedStart.Before(periodStart) {
		clippedStart = periodStart
		clipped = true
	}
	if clippedEnd.After(periodEnd) {
		clippedEnd = periodEnd
		clipped = true
	}

	if !clipped {
		return lv.NumberOfDays
	}

	spanDays := decimal.NewFromInt(int64(end.Sub(start).Hours()/24) + 1)
	overlapDays := decimal.NewFromInt(int64(clippedEnd.Sub(clippedStart).Hours()/24) + 1)
	return lv.NumberOfDays.Mul(overlapDays).DivRound(spanDays, 1)
}

// monthlyIncomeTax applies the progressive bracket table to the annualized
// gross and divides the annual tax back down to a monthly amount.
func monthlyIncomeTax(grossPay decimal.Decimal) decimal.Decimal {
	annualGross := grossPay.Mul(decimal.NewFromInt(12))

	for _, bracket := range taxBrackets {
		if annualGross.GreaterThan(bracket.lowerBound) {
			annualTax := bracket.baseAmount.Add(annualGross.Sub(bracket.lowerBound).Mul(bracket.rate))
			return annualTax.DivRound(decimal.NewFromInt(12), 2)
		}
	}

	return decimal.Zero
}

func providentFund(grossPay decimal.Decimal) decimal.Decimal {
	pf := grossPay.Mul(pfRate).Round(2)
	if pf.GreaterThan(pfMonthlyCap) {
		return pfMonthlyCap
	}
	return pf
}

func employeeStateInsurance(grossPay decimal.Decimal) decimal.Decimal {
	if grossPay.GreaterThan(esiGrossLimit) {
		return decimal.Zero
	}
	return grossPay.Mul(esiRate).Round(2)
}

// unpaidLeaveDeduction deducts leave days beyond the annual entitlement at
// the daily rate. Total leave days across all types are compared against the
// annual entitlement only, matching established payout behavior.
func unpaidLeaveDeduction(leaveDays decimal.Decimal, annualEntitlement int, dailyRate decimal.Decimal) decimal.Decimal {
	excess := leaveDays.Sub(decimal.NewFromInt(int64(annualEntitlement)))
	if excess.IsPositive() {
		return excess.Mul(dailyRate).Round(2)
	}
	return decimal.Zero
}
