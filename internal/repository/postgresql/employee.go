package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/workpay-hr/payroll-backend-go/internal/domain/employee"
	"github.com/workpay-hr/payroll-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.department_id, e.employee_code, e.full_name, e.email, e.phone_number,
	e.hire_date, e.employment_status, e.basic_salary,
	e.allowance_house, e.allowance_transport, e.allowance_medical, e.allowance_food, e.allowance_other,
	e.deduction_professional_fee, e.deduction_other,
	e.leave_entitlement_annual, e.leave_entitlement_sick, e.leave_entitlement_casual,
	e.leave_entitlement_maternity, e.leave_entitlement_paternity,
	e.created_at, e.updated_at, e.deleted_at,
	d.name as department_name
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.DepartmentID, &emp.EmployeeCode, &emp.FullName, &emp.Email, &emp.PhoneNumber,
		&emp.HireDate, &emp.EmploymentStatus, &emp.BasicSalary,
		&emp.Allowances.House, &emp.Allowances.Transport, &emp.Allowances.Medical, &emp.Allowances.Food, &emp.Allowances.Other,
		&emp.DeductionConfig.ProfessionalFee, &emp.DeductionConfig.Other,
		&emp.LeaveEntitlement.Annual, &emp.LeaveEntitlement.Sick, &emp.LeaveEntitlement.Casual,
		&emp.LeaveEntitlement.Maternity, &emp.LeaveEntitlement.Paternity,
		&emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
		&emp.DepartmentName,
	)
	return emp, err
}

func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees e
		LEFT JOIN departments d ON e.department_id = d.id
		WHERE e.id = $1 AND e.deleted_at IS NULL
	`, employeeColumns)

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

func (e *employeeRepositoryImpl) GetActive(ctx context.Context, departmentID *string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees e
		LEFT JOIN departments d ON e.department_id = d.id
		WHERE e.employment_status = $1 AND e.deleted_at IS NULL
	`, employeeColumns)
	args := []interface{}{employee.EmploymentStatusActive}

	if departmentID != nil {
		query += " AND e.department_id = $2"
		args = append(args, *departmentID)
	}
	query += " ORDER BY e.employee_code"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, nil
}
