package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attendance - one record per employee per calendar day. A record without a
// check-in represents an absence; hours_worked is zero when either stamp is
// missing.
type Attendance struct {
	ID           string
	EmployeeID   string
	Date         time.Time
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	HoursWorked  decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
