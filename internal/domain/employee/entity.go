package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	DepartmentID     *string
	EmployeeCode     string
	FullName         string
	Email            string
	PhoneNumber      *string
	HireDate         time.Time
	EmploymentStatus EmploymentStatus
	BasicSalary      decimal.Decimal
	Allowances       Allowances
	DeductionConfig  DeductionConfig
	LeaveEntitlement LeaveEntitlement
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time

	// Joined fields
	DepartmentName *string
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// Allowances - fixed monthly amounts added on top of the basic salary
type Allowances struct {
	House     decimal.Decimal
	Transport decimal.Decimal
	Medical   decimal.Decimal
	Food      decimal.Decimal
	Other     decimal.Decimal
}

func (a Allowances) Total() decimal.Decimal {
	return a.House.Add(a.Transport).Add(a.Medical).Add(a.Food).Add(a.Other)
}

// DeductionConfig - recurring deductions independent of attendance
type DeductionConfig struct {
	ProfessionalFee decimal.Decimal
	Other           decimal.Decimal
}

// LeaveEntitlement - annual allocation in days per leave type
type LeaveEntitlement struct {
	Annual    int
	Sick      int
	Casual    int
	Maternity int
	Paternity int
}
