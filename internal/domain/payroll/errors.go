package payroll

import "errors"

var (
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this period")
	ErrInvalidStatusTransition    = errors.New("payroll record is not pending")
	ErrInvalidSalaryConfiguration = errors.New("employee salary configuration is invalid")
	ErrZeroWorkingDays            = errors.New("pay period has no working days")
	ErrInvalidPeriod              = errors.New("invalid payroll period")
)
