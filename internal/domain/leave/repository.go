package leave

import (
	"context"
	"time"
)

// LeaveRepository defines the read surface the payroll engine needs from the
// leave ledger. Both payroll generation and leave-balance reporting must go
// through ListApprovedByEmployeeAndDateRange so day counting never diverges.
type LeaveRepository interface {
	// ListApprovedByEmployeeAndDateRange retrieves approved requests whose
	// [start_date, end_date] interval overlaps [start, end].
	ListApprovedByEmployeeAndDateRange(ctx context.Context, employeeID string, start, end time.Time) ([]LeaveRequest, error)
}
