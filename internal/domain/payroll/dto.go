package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/workpay-hr/payroll-backend-go/internal/pkg/validator"
)

// ========== GENERATION DTOs ==========

type GeneratePayrollRequest struct {
	EmployeeID  string `json:"employee_id"`
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 2000 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be 2000 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GenerateBulkRequest struct {
	PeriodMonth  int     `json:"period_month"`
	PeriodYear   int     `json:"period_year"`
	DepartmentID *string `json:"department_id,omitempty"` // nil = all active employees
}

func (r *GenerateBulkRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 2000 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be 2000 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BulkFailure carries the reason a single employee's generation failed.
// Individual failures never abort the batch.
type BulkFailure struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Reason       string `json:"reason"`
}

type GenerateBulkResponse struct {
	PeriodMonth int                     `json:"period_month"`
	PeriodYear  int                     `json:"period_year"`
	Successful  []PayrollRecordResponse `json:"successful"`
	Failed      []BulkFailure           `json:"failed"`
}

// ========== LIFECYCLE DTOs ==========

type UpdateStatusRequest struct {
	ID       string  `json:"-"`
	Comments *string `json:"comments,omitempty"`
}

// ========== RECORD DTOs ==========

type AllowancesResponse struct {
	House     decimal.Decimal `json:"house"`
	Transport decimal.Decimal `json:"transport"`
	Medical   decimal.Decimal `json:"medical"`
	Food      decimal.Decimal `json:"food"`
	Other     decimal.Decimal `json:"other"`
}

type DeductionsResponse struct {
	Tax          decimal.Decimal `json:"tax"`
	PF           decimal.Decimal `json:"pf"`
	ESI          decimal.Decimal `json:"esi"`
	Professional decimal.Decimal `json:"professional"`
	Other        decimal.Decimal `json:"other"`
	UnpaidLeave  decimal.Decimal `json:"unpaid_leave"`
}

type PayrollRecordResponse struct {
	ID               string             `json:"id"`
	EmployeeID       string             `json:"employee_id"`
	EmployeeName     string             `json:"employee_name,omitempty"`
	EmployeeCode     string             `json:"employee_code,omitempty"`
	DepartmentName   *string            `json:"department_name,omitempty"`
	PeriodMonth      int                `json:"period_month"`
	PeriodYear       int                `json:"period_year"`
	BasicSalary      decimal.Decimal    `json:"basic_salary"`
	Allowances       AllowancesResponse `json:"allowances"`
	TotalAllowances  decimal.Decimal    `json:"total_allowances"`
	Deductions       DeductionsResponse `json:"deductions"`
	TotalDeductions  decimal.Decimal    `json:"total_deductions"`
	OvertimeHours    decimal.Decimal    `json:"overtime_hours"`
	OvertimeAmount   decimal.Decimal    `json:"overtime_amount"`
	GrossPay         decimal.Decimal    `json:"gross_pay"`
	NetPay           decimal.Decimal    `json:"net_pay"`
	WorkingDays      int                `json:"working_days"`
	AttendanceDays   int                `json:"attendance_days"`
	LeaveDays        decimal.Decimal    `json:"leave_days"`
	Status           string             `json:"status"`
	GeneratedBy      string             `json:"generated_by"`
	GeneratedAt      string             `json:"generated_at"`
	ApprovedBy       *string            `json:"approved_by,omitempty"`
	ApprovedAt       *string            `json:"approved_at,omitempty"`
	ApproverComments *string            `json:"approver_comments,omitempty"`
}

type PayrollFilter struct {
	PeriodMonth  *int    `json:"period_month,omitempty"`
	PeriodYear   *int    `json:"period_year,omitempty"`
	Status       *string `json:"status,omitempty"`
	EmployeeID   *string `json:"employee_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	Page         int     `json:"page"`
	Limit        int     `json:"limit"`
	SortBy       string  `json:"sort_by"`
	SortOrder    string  `json:"sort_order"`
}

type ListPayrollRecordResponse struct {
	Data       []PayrollRecordResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}

type PayrollSummaryResponse struct {
	PeriodMonth      int             `json:"period_month"`
	PeriodYear       int             `json:"period_year"`
	TotalEmployees   int             `json:"total_employees"`
	TotalBasicSalary decimal.Decimal `json:"total_basic_salary"`
	TotalAllowances  decimal.Decimal `json:"total_allowances"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	TotalOvertime    decimal.Decimal `json:"total_overtime"`
	TotalGrossPay    decimal.Decimal `json:"total_gross_pay"`
	TotalNetPay      decimal.Decimal `json:"total_net_pay"`
	PendingCount     int             `json:"pending_count"`
	ApprovedCount    int             `json:"approved_count"`
	RejectedCount    int             `json:"rejected_count"`
}

// MapToRecordResponse converts a record entity to its API shape.
func MapToRecordResponse(r PayrollRecord) PayrollRecordResponse {
	var approvedAtStr *string
	if r.ApprovedAt != nil {
		str := r.ApprovedAt.Format(time.RFC3339)
		approvedAtStr = &str
	}

	employeeName := ""
	employeeCode := ""
	if r.EmployeeName != nil {
		employeeName = *r.EmployeeName
	}
	if r.EmployeeCode != nil {
		employeeCode = *r.EmployeeCode
	}

	return PayrollRecordResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		EmployeeName:   employeeName,
		EmployeeCode:   employeeCode,
		DepartmentName: r.DepartmentName,
		PeriodMonth:    r.PeriodMonth,
		PeriodYear:     r.PeriodYear,
		BasicSalary:    r.BasicSalary,
		Allowances: AllowancesResponse{
			House:     r.Allowances.House,
			Transport: r.Allowances.Transport,
			Medical:   r.Allowances.Medical,
			Food:      r.Allowances.Food,
			Other:     r.Allowances.Other,
		},
		TotalAllowances: r.TotalAllowances,
		Deductions: DeductionsResponse{
			Tax:          r.Deductions.Tax,
			PF:           r.Deductions.PF,
			ESI:          r.Deductions.ESI,
			Professional: r.Deductions.Professional,
			Other:        r.Deductions.Other,
			UnpaidLeave:  r.Deductions.UnpaidLeave,
		},
		TotalDeductions:  r.TotalDeductions,
		OvertimeHours:    r.OvertimeHours,
		OvertimeAmount:   r.OvertimeAmount,
		GrossPay:         r.GrossPay,
		NetPay:           r.NetPay,
		WorkingDays:      r.WorkingDays,
		AttendanceDays:   r.AttendanceDays,
		LeaveDays:        r.LeaveDays,
		Status:           string(r.Status),
		GeneratedBy:      r.GeneratedBy,
		GeneratedAt:      r.GeneratedAt.Format(time.RFC3339),
		ApprovedBy:       r.ApprovedBy,
		ApprovedAt:       approvedAtStr,
		ApproverComments: r.ApproverComments,
	}
}

func MapToRecordResponses(records []PayrollRecord) []PayrollRecordResponse {
	result := make([]PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, MapToRecordResponse(r))
	}
	return result
}
