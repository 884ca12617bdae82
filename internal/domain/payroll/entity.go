package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/workpay-hr/payroll-backend-go/internal/domain/employee"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusPending  PayrollStatus = "pending"
	PayrollStatusApproved PayrollStatus = "approved"
	PayrollStatusRejected PayrollStatus = "rejected"
)

// CanTransitionTo reports whether the approve/reject state machine allows
// moving from s to target. Only pending records may move; approved and
// rejected are terminal.
func (s PayrollStatus) CanTransitionTo(target PayrollStatus) bool {
	if s != PayrollStatusPending {
		return false
	}
	return target == PayrollStatusApproved || target == PayrollStatusRejected
}

// Deductions - per-record deduction breakdown
type Deductions struct {
	Tax          decimal.Decimal
	PF           decimal.Decimal
	ESI          decimal.Decimal
	Professional decimal.Decimal
	Other        decimal.Decimal
	UnpaidLeave  decimal.Decimal
}

func (d Deductions) Total() decimal.Decimal {
	return d.Tax.Add(d.PF).Add(d.ESI).Add(d.Professional).Add(d.Other).Add(d.UnpaidLeave)
}

// Breakdown is the calculator output: every monetary and count field of a
// payroll record, before any lifecycle metadata is attached.
type Breakdown struct {
	BasicSalary     decimal.Decimal
	Allowances      employee.Allowances
	TotalAllowances decimal.Decimal
	Deductions      Deductions
	TotalDeductions decimal.Decimal
	OvertimeHours   decimal.Decimal
	OvertimeAmount  decimal.Decimal
	GrossPay        decimal.Decimal
	NetPay          decimal.Decimal
	WorkingDays     int
	AttendanceDays  int
	LeaveDays       decimal.Decimal
}

// PayrollRecord - one generated breakdown per (employee, month, year)
type PayrollRecord struct {
	ID               string
	EmployeeID       string
	PeriodMonth      int
	PeriodYear       int
	BasicSalary      decimal.Decimal
	Allowances       employee.Allowances
	TotalAllowances  decimal.Decimal
	Deductions       Deductions
	TotalDeductions  decimal.Decimal
	OvertimeHours    decimal.Decimal
	OvertimeAmount   decimal.Decimal
	GrossPay         decimal.Decimal
	NetPay           decimal.Decimal
	WorkingDays      int
	AttendanceDays   int
	LeaveDays        decimal.Decimal
	Status           PayrollStatus
	GeneratedBy      string
	GeneratedAt      time.Time
	ApprovedBy       *string
	ApprovedAt       *time.Time
	ApproverComments *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	EmployeeName   *string
	EmployeeCode   *string
	DepartmentName *string
}
