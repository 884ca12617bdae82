package main

import (
	"fmt"
	"net/http"

	"github.com/workpay-hr/payroll-backend-go/internal/config"
	appHTTP "github.com/workpay-hr/payroll-backend-go/internal/handler/http"
	"github.com/workpay-hr/payroll-backend-go/internal/pkg/database"
	"github.com/workpay-hr/payroll-backend-go/internal/pkg/jwt"
	"github.com/workpay-hr/payroll-backend-go/internal/repository/postgresql"
	payrollService "github.com/workpay-hr/payroll-backend-go/internal/service/payroll"
	payslipService "github.com/workpay-hr/payroll-backend-go/internal/service/payslip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	calculator := payrollService.NewCalculator()
	payrollSvc := payrollService.NewPayrollService(db, calculator, payrollRepo, employeeRepo, attendanceRepo, leaveRepo)
	payslipSvc := payslipService.NewPayslipService(payrollRepo)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc, payslipSvc)

	router := appHTTP.NewRouter(JWTService, payrollHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
