package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpay-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/workpay-hr/payroll-backend-go/internal/domain/employee"
	"github.com/workpay-hr/payroll-backend-go/internal/domain/leave"
	"github.com/workpay-hr/payroll-backend-go/internal/domain/payroll"
)

func testEmployee(basicSalary int64) employee.Employee {
	return employee.Employee{
		ID:               "emp-1",
		EmployeeCode:     "EMP001",
		FullName:         "Test Employee",
		EmploymentStatus: employee.EmploymentStatusActive,
		BasicSalary:      decimal.NewFromInt(basicSalary),
		LeaveEntitlement: employee.LeaveEntitlement{Annual: 18},
	}
}

func attendanceOn(day time.Time, hours float64) attendance.Attendance {
	checkIn := day.Add(9 * time.Hour)
	checkOut := checkIn.Add(time.Duration(hours * float64(time.Hour)))
	return attendance.Attendance{
		EmployeeID:   "emp-1",
		Date:         day,
		CheckInTime:  &checkIn,
		CheckOutTime: &checkOut,
		HoursWorked:  decimal.NewFromFloat(hours),
	}
}

func TestCountWorkingDays(t *testing.T) {
	// September 2025 starts on a Monday and has 30 days.
	assert.Equal(t, 22, CountWorkingDays(2025, 9))
	// August 2025 starts on a Friday and has 31 days.
	assert.Equal(t, 21, CountWorkingDays(2025, 8))
	// February 2027 starts on a Monday: exactly four full weeks.
	assert.Equal(t, 20, CountWorkingDays(2027, 2))
}

func TestCalculateBaseline(t *testing.T) {
	// 22000 basic over September 2025 (22 working days): daily rate 1000,
	// PF caps at 1800, ESI does not apply above 21000 gross, monthly tax
	// on a 264000 annualized gross is 58.33.
	calc := NewCalculator()
	emp := testEmployee(22000)

	result, err := calc.Calculate(emp, nil, nil, 9, 2025)
	require.NoError(t, err)

	assert.Equal(t, 22, result.WorkingDays)
	assert.True(t, result.GrossPay.Equal(decimal.NewFromInt(22000)), "gross = %s", result.GrossPay)
	assert.True(t, result.Deductions.PF.Equal(decimal.NewFromInt(1800)), "pf = %s", result.Deductions.PF)
	assert.True(t, result.Deductions.ESI.IsZero(), "esi = %s", result.Deductions.ESI)
	assert.True(t, result.Deductions.Tax.Equal(decimal.NewFromFloat(58.33)), "tax = %s", result.Deductions.Tax)
	assert.True(t, result.TotalDeductions.Equal(decimal.NewFromFloat(1858.33)), "total deductions = %s", result.TotalDeductions)
	assert.True(t, result.NetPay.Equal(decimal.NewFromFloat(20141.67)), "net = %s", result.NetPay)
}

func TestCalculateIsDeterministic(t *testing.T) {
	calc := NewCalculator()
	emp := testEmployee(37500)
	emp.Allowances = employee.Allowances{
		House:     decimal.NewFromInt(5000),
		Transport: decimal.NewFromInt(1200),
	}
	atts := []attendance.Attendance{
		attendanceOn(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), 9.5),
		attendanceOn(time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC), 8),
	}

	first, err := calc.Calculate(emp, atts, nil, 9, 2025)
	require.NoError(t, err)
	second, err := calc.Calculate(emp, atts, nil, 9, 2025)
	require.NoError(t, err)

	assert.True(t, first.NetPay.Equal(second.NetPay))
	assert.True(t, first.GrossPay.Equal(second.GrossPay))
	assert.True(t, first.TotalDeductions.Equal(second.TotalDeductions))
}

func TestCalculateOvertime(t *testing.T) {
	// September 2025: daily rate 1000, hourly rate 125. Two hours over the
	// 8-hour day pay out at 1.5x: 2 * 125 * 1.5 = 375.
	calc := NewCalculator()
	emp := testEmployee(22000)
	atts := []attendance.Attendance{
		attendanceOn(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), 10),
	}

	result, err := calc.Calculate(emp, atts, nil, 9, 2025)
	require.NoError(t, err)

	assert.Equal(t, 1, result.AttendanceDays)
	assert.True(t, result.OvertimeHours.Equal(decimal.NewFromInt(2)), "overtime hours = %s", result.OvertimeHours)
	assert.True(t, result.OvertimeAmount.Equal(decimal.NewFromInt(375)), "overtime amount = %s", result.OvertimeAmount)
	assert.True(t, result.GrossPay.Equal(decimal.NewFromInt(22375)), "gross = %s", result.GrossPay)
}

func TestCalculateOvertimeIgnoresShortDays(t *testing.T) {
	calc := NewCalculator()
	emp := testEmployee(22000)
	atts := []attendance.Attendance{
		attendanceOn(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), 6),
		attendanceOn(time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC), 8),
	}

	result, err := calc.Calculate(emp, atts, nil, 9, 2025)
	require.NoError(t, err)

	assert.Equal(t, 2, result.AttendanceDays)
	assert.True(t, result.OvertimeHours.IsZero())
	assert.True(t, result.OvertimeAmount.IsZero())
}

func TestCalculateSkipsRecordsOutsidePeriod(t *testing.T) {
	calc := NewCalculator()
	emp := testEmployee(22000)
	atts := []attendance.Attendance{
		attendanceOn(time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC), 10),
		attendanceOn(time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), 10),
	}

	result, err := calc.Calculate(emp, atts, nil, 9, 2025)
	require.NoError(t, err)

	assert.Equal(t, 0, result.AttendanceDays)
	assert.True(t, result.OvertimeHours.IsZero())
}

func TestCalculateSkipsMissingCheckIn(t *testing.T) {
	calc := NewCalculator()
	emp := testEmployee(22000)
	atts := []attendance.Attendance{
		{
			EmployeeID:  "emp-1",
			Date:        time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			HoursWorked: decimal.Zero,
		},
	}

	result, err := calc.Calculate(emp, atts, nil, 9, 2025)
	require.NoError(t, err)

	assert.Equal(t, 0, result.AttendanceDays)
}

func TestCalculateUnpaidLeave(t *testing.T) {
	// Entitlement 2 annual days, 4 approved leave days taken: two excess
	// days at the 1000 daily rate.
	calc := NewCalculator()
	emp := testEmployee(22000)
	emp.LeaveEntitlement.Annual = 2
	leaves := []leave.LeaveRequest{
		{
			EmployeeID:   "emp-1",
			Type:         leave.LeaveTypeAnnual,
			StartDate:    time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2025, 9, 11, 0, 0, 0, 0, time.UTC),
			NumberOfDays: decimal.NewFromInt(4),
			Status:       leave.LeaveStatusApproved,
		},
	}

	result, err := calc.Calculate(emp, nil, leaves, 9, 2025)
	require.NoError(t, err)

	assert.True(t, result.LeaveDays.Equal(decimal.NewFromInt(4)), "leave days = %s", result.LeaveDays)
	assert.True(t, result.Deductions.UnpaidLeave.Equal(decimal.NewFromInt(2000)), "unpaid leave = %s", result.Deductions.UnpaidLeave)
}

func TestCalculateLeaveWithinEntitlementCostsNothing(t *testing.T) {
	calc := NewCalculator()
	emp := testEmployee(22000)
	leaves := []leave.LeaveRequest{
		{
			EmployeeID:   "emp-1",
			Type:         leave.LeaveTypeSick,
			StartDate:    time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2025, 9, 9, 0, 0, 0, 0, time.UTC),
			NumberOfDays: decimal.NewFromInt(2),
			Status:       leave.LeaveStatusApproved,
		},
	}

	result, err := calc.Calculate(emp, nil, leaves, 9, 2025)
	require.NoError(t, err)

	assert.True(t, result.LeaveDays.Equal(decimal.NewFromInt(2)))
	assert.True(t, result.Deductions.UnpaidLeave.IsZero())
}

func TestCalculateIgnoresUnapprovedLeave(t *testing.T) {
	calc := NewCalculator()
	emp := testEmployee(22000)
	leaves := []leave.LeaveRequest{
		{
			EmployeeID:   "emp-1",
			StartDate:    time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2025, 9, 12, 0, 0, 0, 0, time.UTC),
			NumberOfDays: decimal.NewFromInt(5),
			Status:       leave.LeaveStatusPending,
		},
	}

	result, err := calc.Calculate(emp, nil, leaves, 9, 2025)
	require.NoError(t, err)

	assert.True(t, result.LeaveDays.IsZero())
}

func TestCalculateClipsLeaveSpanningPeriodBoundary(t *testing.T) {
	// Leave runs Aug 28 - Sep 2, 6 recorded days over a 6-day span: the two
	// September days contribute 6 * 2/6 = 2 toward the September period.
	calc := NewCalculator()
	emp := testEmployee(22000)
	leaves := []leave.LeaveRequest{
		{
			EmployeeID:   "emp-1",
			StartDate:    time.Date(2025, 8, 28, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC),
			NumberOfDays: decimal.NewFromInt(6),
			Status:       leave.LeaveStatusApproved,
		},
	}

	result, err := calc.Calculate(emp, nil, leaves, 9, 2025)
	require.NoError(t, err)

	assert.True(t, result.LeaveDays.Equal(decimal.NewFromInt(2)), "leave days = %s", result.LeaveDays)
}

func TestCalculateProRatesBoundaryLeaveByRecordedDays(t *testing.T) {
	// Leave runs Aug 29 - Sep 8 (11 calendar days, weekends included) but
	// records only 7 working days. Each period gets the recorded count
	// pro-rated by its share of the span: September 7 * 8/11 = 5.1, August
	// 7 * 3/11 = 1.9. The two periods together never exceed the recorded 7.
	calc := NewCalculator()
	emp := testEmployee(22000)
	emp.LeaveEntitlement.Annual = 0
	leaves := []leave.LeaveRequest{
		{
			EmployeeID:   "emp-1",
			StartDate:    time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC),
			NumberOfDays: decimal.NewFromInt(7),
			Status:       leave.LeaveStatusApproved,
		},
	}

	september, err := calc.Calculate(emp, nil, leaves, 9, 2025)
	require.NoError(t, err)
	august, err := calc.Calculate(emp, nil, leaves, 8, 2025)
	require.NoError(t, err)

	assert.True(t, september.LeaveDays.Equal(decimal.NewFromFloat(5.1)), "september leave days = %s", september.LeaveDays)
	assert.True(t, august.LeaveDays.Equal(decimal.NewFromFloat(1.9)), "august leave days = %s", august.LeaveDays)

	total := september.LeaveDays.Add(august.LeaveDays)
	assert.True(t, total.LessThanOrEqual(decimal.NewFromInt(7)), "total leave days = %s", total)

	// September daily rate is 1000 (22000 / 22 working days), so the excess
	// over a zero entitlement deducts 5.1 * 1000.
	assert.True(t, september.Deductions.UnpaidLeave.Equal(decimal.NewFromInt(5100)), "unpaid leave = %s", september.Deductions.UnpaidLeave)
}

func TestCalculateHalfDayLeave(t *testing.T) {
	calc := NewCalculator()
	emp := testEmployee(22000)
	emp.LeaveEntitlement.Annual = 0
	leaves := []leave.LeaveRequest{
		{
			EmployeeID:   "emp-1",
			StartDate:    time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC),
			NumberOfDays: decimal.NewFromFloat(0.5),
			Status:       leave.LeaveStatusApproved,
		},
	}

	result, err := calc.Calculate(emp, nil, leaves, 9, 2025)
	require.NoError(t, err)

	assert.True(t, result.LeaveDays.Equal(decimal.NewFromFloat(0.5)))
	// Half an excess day at the 1000 daily rate.
	assert.True(t, result.Deductions.UnpaidLeave.Equal(decimal.NewFromInt(500)), "unpaid leave = %s", result.Deductions.UnpaidLeave)
}

func TestCalculateNetPayCanGoNegative(t *testing.T) {
	calc := NewCalculator()
	emp := testEmployee(1000)
	emp.LeaveEntitlement.Annual = 0
	emp.DeductionConfig.Other = decimal.NewFromInt(5000)

	result, err := calc.Calculate(emp, nil, nil, 9, 2025)
	require.NoError(t, err)

	assert.True(t, result.NetPay.IsNegative(), "net = %s", result.NetPay)
}

func TestCalculateInvalidInputs(t *testing.T) {
	calc := NewCalculator()

	_, err := calc.Calculate(testEmployee(22000), nil, nil, 0, 2025)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)

	_, err = calc.Calculate(testEmployee(22000), nil, nil, 13, 2025)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)

	emp := testEmployee(0)
	emp.BasicSalary = decimal.NewFromInt(-1)
	_, err = calc.Calculate(emp, nil, nil, 9, 2025)
	assert.ErrorIs(t, err, payroll.ErrInvalidSalaryConfiguration)
}

func TestMonthlyIncomeTaxBrackets(t *testing.T) {
	cases := []struct {
		name     string
		gross    float64
		expected float64
	}{
		{"below exemption limit", 20000, 0},            // annual 240000
		{"at exemption limit", 20833.33, 0},            // annual 249999.96
		{"five percent bracket", 25000, 208.33},        // annual 300000: 2500/12
		{"twenty percent bracket", 50000, 2708.33},     // annual 600000: 32500/12
		{"thirty percent bracket", 100000, 14375},      // annual 1200000: 172500/12
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := monthlyIncomeTax(decimal.NewFromFloat(tc.gross))
			assert.True(t, got.Equal(decimal.NewFromFloat(tc.expected)), "tax = %s, want %v", got, tc.expected)
		})
	}
}

func TestProvidentFund(t *testing.T) {
	// 12% of gross, capped at 1800 per month.
	assert.True(t, providentFund(decimal.NewFromInt(10000)).Equal(decimal.NewFromInt(1200)))
	assert.True(t, providentFund(decimal.NewFromInt(15000)).Equal(decimal.NewFromInt(1800)))
	assert.True(t, providentFund(decimal.NewFromInt(50000)).Equal(decimal.NewFromInt(1800)))
}

func TestEmployeeStateInsurance(t *testing.T) {
	// 0.75% of gross, zero above the 21000 ceiling.
	assert.True(t, employeeStateInsurance(decimal.NewFromInt(20000)).Equal(decimal.NewFromInt(150)))
	assert.True(t, employeeStateInsurance(decimal.NewFromInt(21000)).Equal(decimal.NewFromFloat(157.5)))
	assert.True(t, employeeStateInsurance(decimal.NewFromInt(21001)).IsZero())
}
