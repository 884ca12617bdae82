package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines the read surface the payroll engine needs from
// the attendance ledger.
type AttendanceRepository interface {
	// ListByEmployeeAndDateRange retrieves all records for an employee with
	// dates in [start, end] inclusive.
	ListByEmployeeAndDateRange(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)
}
