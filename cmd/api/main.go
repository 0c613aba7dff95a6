package main

import (
	"fmt"
	"net/http"

	"github.com/prolyhq/payroll-backend-go/internal/config"
	appHTTP "github.com/prolyhq/payroll-backend-go/internal/handler/http"
	"github.com/prolyhq/payroll-backend-go/internal/pkg/database"
	"github.com/prolyhq/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/prolyhq/payroll-backend-go/internal/service/attendance"
	complianceService "github.com/prolyhq/payroll-backend-go/internal/service/compliance"
	employeeService "github.com/prolyhq/payroll-backend-go/internal/service/employee"
	payrollService "github.com/prolyhq/payroll-backend-go/internal/service/payroll"
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
	periodRepo := postgresql.NewPeriodRepository(db)
	entryRepo := postgresql.NewEntryRepository(db)
	transactionRepo := postgresql.NewTransactionRepository(db)
	rateTableRepo := postgresql.NewRateTableRepository(db)

	deductionCalculator := complianceService.NewCalculator(rateTableRepo)

	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, cfg.Payroll)
	complianceSvc := complianceService.NewComplianceService(db, rateTableRepo, deductionCalculator, cfg.App.UploadDir)
	payrollSvc := payrollService.NewPayrollService(
		db,
		periodRepo,
		entryRepo,
		transactionRepo,
		employeeRepo,
		attendanceRepo,
		deductionCalculator,
		cfg.Payroll,
	)

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	complianceHandler := appHTTP.NewComplianceHandler(complianceSvc)

	router := appHTTP.NewRouter(
		cfg,
		employeeHandler,
		attendanceHandler,
		payrollHandler,
		complianceHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
