package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

type LeaveType string

const (
	LeaveTypeAnnual    LeaveType = "annual"
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypeCasual    LeaveType = "casual"
	LeaveTypeMaternity LeaveType = "maternity"
	LeaveTypePaternity LeaveType = "paternity"
)

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

// LeaveRequest - only approved requests are visible to the payroll engine.
type LeaveRequest struct {
	ID           string
	EmployeeID   string
	Type         LeaveType
	StartDate    time.Time
	EndDate      time.Time
	NumberOfDays decimal.Decimal
	Status       LeaveStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
