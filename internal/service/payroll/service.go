package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/workpay-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/workpay-hr/payroll-backend-go/internal/domain/employee"
	"github.com/workpay-hr/payroll-backend-go/internal/domain/leave"
	"github.com/workpay-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/workpay-hr/payroll-backend-go/internal/pkg/database"
	"github.com/workpay-hr/payroll-backend-go/internal/repository/postgresql"
)

// bulkConcurrency bounds the per-employee fan-out during bulk generation.
// Units of work are independent: each only reads its own employee's data and
// writes its own record.
const bulkConcurrency = 8

type PayrollServiceImpl struct {
	db             *database.DB
	calculator     *Calculator
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRepository
}

func NewPayrollService(
	db *database.DB,
	calculator *Calculator,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:             db,
		calculator:     calculator,
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
	}
}

// Helper to get the acting user's id from JWT context
func getUserIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// withTransaction runs fn with every repository call bound to one database
// transaction through the querier context key. Without a configured pool fn
// runs directly against the injected repositories.
func (s *PayrollServiceImpl) withTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		return fn(txCtx)
	})
}

// ========== GENERATION ==========

func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.generateForEmployee(ctx, req.EmployeeID, req.PeriodMonth, req.PeriodYear, userID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return payroll.MapToRecordResponse(record), nil
}

// generateForEmployee recomputes the breakdown from source records on every
// call; nothing is cached between invocations. The fetches and the insert run
// in one transaction so the stored record reflects a single snapshot.
// Uniqueness per period is left to the insert's uk_employee_period constraint
// so concurrent generates for the same tuple cannot both succeed.
func (s *PayrollServiceImpl) generateForEmployee(ctx context.Context, employeeID string, month, year int, generatedBy string) (payroll.PayrollRecord, error) {
	var created payroll.PayrollRecord

	err := s.withTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByID(ctx, employeeID)
		if err != nil {
			return err
		}

		periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		periodEnd := periodStart.AddDate(0, 1, -1)

		attendances, err := s.attendanceRepo.ListByEmployeeAndDateRange(ctx, employeeID, periodStart, periodEnd)
		if err != nil {
			return fmt.Errorf("failed to list attendance records: %w", err)
		}

		leaves, err := s.leaveRepo.ListApprovedByEmployeeAndDateRange(ctx, employeeID, periodStart, periodEnd)
		if err != nil {
			return fmt.Errorf("failed to list approved leave records: %w", err)
		}

		breakdown, err := s.calculator.Calculate(emp, attendances, leaves, month, year)
		if err != nil {
			return err
		}

		record := payroll.PayrollRecord{
			EmployeeID:      employeeID,
			PeriodMonth:     month,
			PeriodYear:      year,
			BasicSalary:     breakdown.BasicSalary,
			Allowances:      breakdown.Allowances,
			TotalAllowances: breakdown.TotalAllowances,
			Deductions:      breakdown.Deductions,
			TotalDeductions: breakdown.TotalDeductions,
			OvertimeHours:   breakdown.OvertimeHours,
			OvertimeAmount:  breakdown.OvertimeAmount,
			GrossPay:        breakdown.GrossPay,
			NetPay:          breakdown.NetPay,
			WorkingDays:     breakdown.WorkingDays,
			AttendanceDays:  breakdown.AttendanceDays,
			LeaveDays:       breakdown.LeaveDays,
			Status:          payroll.PayrollStatusPending,
			GeneratedBy:     generatedBy,
			GeneratedAt:     time.Now().UTC(),
		}

		created, err = s.payrollRepo.Create(ctx, record)
		return err
	})
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	return created, nil
}

func (s *PayrollServiceImpl) GenerateBulk(ctx context.Context, req payroll.GenerateBulkRequest) (payroll.GenerateBulkResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GenerateBulkResponse{}, err
	}

	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return payroll.GenerateBulkResponse{}, err
	}

	employees, err := s.employeeRepo.GetActive(ctx, req.DepartmentID)
	if err != nil {
		return payroll.GenerateBulkResponse{}, fmt.Errorf("failed to get active employees: %w", err)
	}

	type outcome struct {
		record payroll.PayrollRecord
		err    error
	}
	outcomes := make([]outcome, len(employees))

	// Best effort: per-employee failures are data in the response, never an
	// error for the batch, and successes are not rolled back.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bulkConcurrency)
	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			record, genErr := s.generateForEmployee(gctx, emp.ID, req.PeriodMonth, req.PeriodYear, userID)
			outcomes[i] = outcome{record: record, err: genErr}
			return nil
		})
	}
	_ = g.Wait()

	resp := payroll.GenerateBulkResponse{
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
		Successful:  []payroll.PayrollRecordResponse{},
		Failed:      []payroll.BulkFailure{},
	}
	for i, out := range outcomes {
		if out.err != nil {
			resp.Failed = append(resp.Failed, payroll.BulkFailure{
				EmployeeID:   employees[i].ID,
				EmployeeName: employees[i].FullName,
				Reason:       out.err.Error(),
			})
			continue
		}
		resp.Successful = append(resp.Successful, payroll.MapToRecordResponse(out.record))
	}

	return resp, nil
}

// ========== LIFECYCLE ==========

func (s *PayrollServiceImpl) Approve(ctx context.Context, req payroll.UpdateStatusRequest) (payroll.PayrollRecordResponse, error) {
	return s.updateStatus(ctx, req, payroll.PayrollStatusApproved)
}

func (s *PayrollServiceImpl) Reject(ctx context.Context, req payroll.UpdateStatusRequest) (payroll.PayrollRecordResponse, error) {
	return s.updateStatus(ctx, req, payroll.PayrollStatusRejected)
}

func (s *PayrollServiceImpl) updateStatus(ctx context.Context, req payroll.UpdateStatusRequest, status payroll.PayrollStatus) (payroll.PayrollRecordResponse, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	// The transition UPDATE and its not-pending disambiguation read share one
	// transaction.
	var updated payroll.PayrollRecord
	err = s.withTransaction(ctx, func(ctx context.Context) error {
		var txErr error
		updated, txErr = s.payrollRepo.UpdateStatus(ctx, req.ID, status, userID, req.Comments)
		return txErr
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return payroll.MapToRecordResponse(updated), nil
}

// ========== QUERIES ==========

func (s *PayrollServiceImpl) GetRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return payroll.MapToRecordResponse(record), nil
}

func (s *PayrollServiceImpl) ListRecords(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	records, totalCount, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	return payroll.ListPayrollRecordResponse{
		Data:       payroll.MapToRecordResponses(records),
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) GetSummary(ctx context.Context, month, year int) (payroll.PayrollSummaryResponse, error) {
	return s.payrollRepo.GetSummary(ctx, month, year)
}
