package employee

import "context"

// EmployeeRepository defines the read surface the payroll engine needs from
// the employee directory.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetActive(ctx context.Context, departmentID *string) ([]Employee, error)
}
