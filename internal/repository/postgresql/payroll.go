package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/workpay-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/workpay-hr/payroll-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	pr.id, pr.employee_id, pr.period_month, pr.period_year, pr.basic_salary,
	pr.allowance_house, pr.allowance_transport, pr.allowance_medical, pr.allowance_food, pr.allowance_other,
	pr.total_allowances,
	pr.deduction_tax, pr.deduction_pf, pr.deduction_esi, pr.deduction_professional,
	pr.deduction_other, pr.deduction_unpaid_leave, pr.total_deductions,
	pr.overtime_hours, pr.overtime_amount, pr.gross_pay, pr.net_pay,
	pr.working_days, pr.attendance_days, pr.leave_days,
	pr.status, pr.generated_by, pr.generated_at, pr.approved_by, pr.approved_at, pr.approver_comments,
	pr.created_at, pr.updated_at
`

func scanPayrollRecord(row pgx.Row, withEmployee bool) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	dest := []interface{}{
		&rec.ID, &rec.EmployeeID, &rec.PeriodMonth, &rec.PeriodYear, &rec.BasicSalary,
		&rec.Allowances.House, &rec.Allowances.Transport, &rec.Allowances.Medical, &rec.Allowances.Food, &rec.Allowances.Other,
		&rec.TotalAllowances,
		&rec.Deductions.Tax, &rec.Deductions.PF, &rec.Deductions.ESI, &rec.Deductions.Professional,
		&rec.Deductions.Other, &rec.Deductions.UnpaidLeave, &rec.TotalDeductions,
		&rec.OvertimeHours, &rec.OvertimeAmount, &rec.GrossPay, &rec.NetPay,
		&rec.WorkingDays, &rec.AttendanceDays, &rec.LeaveDays,
		&rec.Status, &rec.GeneratedBy, &rec.GeneratedAt, &rec.ApprovedBy, &rec.ApprovedAt, &rec.ApproverComments,
		&rec.CreatedAt, &rec.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &rec.EmployeeName, &rec.EmployeeCode, &rec.DepartmentName)
	}
	err := row.Scan(dest...)
	return rec, err
}

func (r *payrollRepository) Create(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO payroll_records (
			employee_id, period_month, period_year, basic_salary,
			allowance_house, allowance_transport, allowance_medical, allowance_food, allowance_other,
			total_allowances,
			deduction_tax, deduction_pf, deduction_esi, deduction_professional,
			deduction_other, deduction_unpaid_leave, total_deductions,
			overtime_hours, overtime_amount, gross_pay, net_pay,
			working_days, attendance_days, leave_days,
			status, generated_by, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
		RETURNING %s
	`, strings.ReplaceAll(payrollColumns, "pr.", ""))

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query,
		record.EmployeeID, record.PeriodMonth, record.PeriodYear, record.BasicSalary,
		record.Allowances.House, record.Allowances.Transport, record.Allowances.Medical, record.Allowances.Food, record.Allowances.Other,
		record.TotalAllowances,
		record.Deductions.Tax, record.Deductions.PF, record.Deductions.ESI, record.Deductions.Professional,
		record.Deductions.Other, record.Deductions.UnpaidLeave, record.TotalDeductions,
		record.OvertimeHours, record.OvertimeAmount, record.GrossPay, record.NetPay,
		record.WorkingDays, record.AttendanceDays, record.LeaveDays,
		record.Status, record.GeneratedBy, record.GeneratedAt,
	), false)
	if err != nil {
		if strings.Contains(err.Error(), "uk_employee_period") {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, e.full_name as employee_name, e.employee_code, d.name as department_name
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		LEFT JOIN departments d ON e.department_id = d.id
		WHERE pr.id = $1
	`, payrollColumns)

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_records pr
		WHERE pr.employee_id = $1 AND pr.period_month = $2 AND pr.period_year = $3
	`, payrollColumns)

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, month, year), false)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		LEFT JOIN departments d ON e.department_id = d.id
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.PeriodMonth != nil {
		baseQuery += fmt.Sprintf(" AND pr.period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		baseQuery += fmt.Sprintf(" AND pr.period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND pr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND pr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.DepartmentID != nil {
		baseQuery += fmt.Sprintf(" AND e.department_id = $%d", argIdx)
		args = append(args, *filter.DepartmentID)
		argIdx++
	}

	// Count query
	var totalCount int64
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	// Sort
	sortColumn := "pr.created_at"
	if filter.SortBy != "" {
		allowedColumns := map[string]string{
			"created_at":    "pr.created_at",
			"period":        "pr.period_year DESC, pr.period_month",
			"employee_name": "e.full_name",
			"net_pay":       "pr.net_pay",
		}
		if col, ok := allowedColumns[filter.SortBy]; ok {
			sortColumn = col
		}
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	// Pagination
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`
		SELECT %s, e.full_name as employee_name, e.employee_code, d.name as department_name
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, payrollColumns, baseQuery, sortColumn, sortOrder, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayrollRecord(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, totalCount, nil
}

// UpdateStatus moves a pending record to approved or rejected. The status
// guard lives in the WHERE clause so a concurrent transition cannot apply
// twice; a zero-row result is disambiguated into not-found vs. not-pending.
func (r *payrollRepository) UpdateStatus(ctx context.Context, id string, status payroll.PayrollStatus, approverID string, comments *string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE payroll_records pr
		SET status = $2, approved_by = $3, approved_at = NOW(), approver_comments = $4, updated_at = NOW()
		WHERE pr.id = $1 AND pr.status = $5
		RETURNING %s
	`, payrollColumns)

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id, status, approverID, comments, payroll.PayrollStatusPending), false)
	if err != nil {
		if err == pgx.ErrNoRows {
			var current string
			checkErr := q.QueryRow(ctx, `SELECT status FROM payroll_records WHERE id = $1`, id).Scan(&current)
			if checkErr == pgx.ErrNoRows {
				return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
			}
			if checkErr != nil {
				return payroll.PayrollRecord{}, fmt.Errorf("failed to check payroll record status: %w", checkErr)
			}
			return payroll.PayrollRecord{}, payroll.ErrInvalidStatusTransition
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to update payroll record status: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) GetSummary(ctx context.Context, month, year int) (payroll.PayrollSummaryResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) as total_employees,
			COALESCE(SUM(basic_salary), 0),
			COALESCE(SUM(total_allowances), 0),
			COALESCE(SUM(total_deductions), 0),
			COALESCE(SUM(overtime_amount), 0),
			COALESCE(SUM(gross_pay), 0),
			COALESCE(SUM(net_pay), 0),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'rejected')
		FROM payroll_records
		WHERE period_month = $1 AND period_year = $2
	`

	summary := payroll.PayrollSummaryResponse{
		PeriodMonth: month,
		PeriodYear:  year,
	}
	err := q.QueryRow(ctx, query, month, year).Scan(
		&summary.TotalEmployees,
		&summary.TotalBasicSalary,
		&summary.TotalAllowances,
		&summary.TotalDeductions,
		&summary.TotalOvertime,
		&summary.TotalGrossPay,
		&summary.TotalNetPay,
		&summary.PendingCount,
		&summary.ApprovedCount,
		&summary.RejectedCount,
	)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}

	return summary, nil
}
