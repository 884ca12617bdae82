package payroll

import "context"

// PayrollRepository defines data access methods for payroll records.
// Uniqueness per (employee_id, period_month, period_year) is enforced by the
// uk_employee_period constraint; Create surfaces a violation as
// ErrPayrollRecordAlreadyExists so generation never relies on a racy
// check-then-insert.
type PayrollRepository interface {
	Create(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (PayrollRecord, error)
	List(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, int64, error)

	// UpdateStatus performs the pending -> approved|rejected transition and
	// returns ErrInvalidStatusTransition when the record exists but is no
	// longer pending.
	UpdateStatus(ctx context.Context, id string, status PayrollStatus, approverID string, comments *string) (PayrollRecord, error)

	GetSummary(ctx context.Context, month, year int) (PayrollSummaryResponse, error)
}
