package app

import (
	"database/sql"
	"path/filepath"

	"go-otpay/internal/advance"
	"go-otpay/internal/attendance"
	"go-otpay/internal/auth"
	"go-otpay/internal/department"
	"go-otpay/internal/employee"
	"go-otpay/internal/holiday"
	"go-otpay/internal/leave"
	"go-otpay/internal/messaging/kafka"
	"go-otpay/internal/notification"
	"go-otpay/internal/otsession"
	"go-otpay/internal/payroll"
	"go-otpay/internal/payrollperiod"
	"go-otpay/internal/policy"
	"go-otpay/internal/rbac"
	"go-otpay/internal/rbac/infra"
	"go-otpay/internal/report"
	"go-otpay/internal/salarystructure"
	"go-otpay/internal/shared/clock"
	"go-otpay/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	clk clock.Clock,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	policyRepo := policy.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	salaryRepo := salarystructure.NewRepository(gormDB)
	advanceRepo := advance.NewRepository(gormDB)
	periodRepo := payrollperiod.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	authService := auth.NewService(authRepo, rbacService)
	departmentService := department.NewService(db, departmentRepo, clk)
	attendanceService := attendance.NewService(attendanceRepo, clk, departmentService)
	policyService := policy.NewService(policyRepo)
	holidayService := holiday.NewService(db, holidayRepo)
	leaveService := leave.NewService(db, leaveRepo)
	periodService := payrollperiod.NewService(periodRepo, attendanceRepo, outboxRepo, clk)
	otsessionService := otsession.NewService(
		attendanceRepo,
		leaveRepo,
		policyService,
		holidayService,
		periodService,
		departmentService,
		employeeRepo,
		outboxRepo,
		clk,
	)
	salaryService := salarystructure.NewService(salaryRepo)
	advanceService := advance.NewService(advanceRepo)
	payrollService := payroll.NewService(
		payrollRepo,
		attendanceRepo,
		leaveRepo,
		salaryService,
		policyService,
		departmentService,
		advanceService,
		counterRepo,
		outboxRepo,
		clk,
	)
	employeeService := employee.NewService(employeeRepo, rdb)
	notificationService := notification.NewService(notificationRepo, clk)
	reportService := report.NewService(attendanceRepo, employeeRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService)
	policyHandler := policy.NewHandler(policyService)
	holidayHandler := holiday.NewHandler(holidayService)
	salaryHandler := salarystructure.NewHandler(salaryService)
	advanceHandler := advance.NewHandler(advanceService)
	otsessionHandler := otsession.NewHandler(otsessionService)
	periodHandler := payrollperiod.NewHandler(periodService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	notificationHandler := notification.NewHandler(notificationService)
	reportHandler := report.NewHandler(reportService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		department.RegisterRoutes(api, departmentHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		policy.RegisterRoutes(api, policyHandler, rbacService)
		holiday.RegisterRoutes(api, holidayHandler, rbacService)
		salarystructure.RegisterRoutes(api, salaryHandler, rbacService)
		advance.RegisterRoutes(api, advanceHandler, rbacService)
		otsession.RegisterRoutes(api, otsessionHandler, rbacService)
		payrollperiod.RegisterRoutes(api, periodHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		notification.RegisterRoutes(api, notificationHandler)
		report.RegisterRoutes(api, reportHandler, rbacService)
	}

	return nil
}
