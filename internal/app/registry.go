package app

import (
	"go-hrms/internal/attendance"
	"go-hrms/internal/audit"
	"go-hrms/internal/auth"
	"go-hrms/internal/config"
	"go-hrms/internal/dashboard"
	"go-hrms/internal/department"
	"go-hrms/internal/document"
	"go-hrms/internal/employee"
	"go-hrms/internal/leave"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/middleware"
	"go-hrms/internal/notification"
	"go-hrms/internal/payroll"
	"go-hrms/internal/performance"
	"go-hrms/internal/rbac"
	"go-hrms/internal/rbac/infra"
	"go-hrms/internal/report"
	"go-hrms/internal/session"
	"go-hrms/internal/shared/storage"
	"go-hrms/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(db)
	auditRepo := audit.NewRepository(db)
	dashboardRepo := dashboard.NewRepository(db)
	departmentRepo := department.NewRepository(db)
	documentRepo := document.NewRepository(db)
	employeeRepo := employee.NewRepository(db)
	leaveRepo := leave.NewRepository(db)
	notificationRepo := notification.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(db)
	performanceRepo := performance.NewRepository(db)
	reportRepo := report.NewRepository(db)
	userRepo := user.NewRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, logger)
	if err != nil {
		return err
	}

	// --- Shared infrastructure ---
	fileStorage, err := storage.NewLocalStorage(cfg.Upload.Dir)
	if err != nil {
		return err
	}
	sessions := session.NewManager(
		session.NewRedisStore(rdb, cfg.Session.TTL),
		session.NewSigner(cfg.Session.Secret, cfg.Session.TTL),
		session.Options{CookieName: cfg.Session.CookieName, TTL: cfg.Session.TTL, Secure: cfg.Session.Secure},
		logger,
	)
	recorder := audit.NewRecorder(auditRepo, logger)
	outbox := notification.NewOutbox(outboxRepo, cfg.Kafka.NotificationTopic)

	// --- Services ---
	authService := auth.NewService(db, userRepo, employeeRepo, departmentRepo, recorder, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, employeeRepo, recorder, logger)
	auditService := audit.NewService(auditRepo, logger)
	dashboardService := dashboard.NewService(dashboardRepo, logger)
	departmentService := department.NewService(db, departmentRepo, rdb, recorder, logger)
	documentService := document.NewService(db, documentRepo, fileStorage, outbox, recorder, logger)
	employeeService := employee.NewService(db, employeeRepo, userRepo, recorder, employee.Defaults{
		EmployeePassword: cfg.Defaults.EmployeePassword,
		HRPassword:       cfg.Defaults.HRPassword,
	}, logger)
	leaveService := leave.NewService(db, leaveRepo, outbox, recorder, logger)
	notificationService := notification.NewService(db, notificationRepo, logger)
	payrollService := payroll.NewService(db, payrollRepo, recorder, logger)
	performanceService := performance.NewService(db, performanceRepo, employeeRepo, outbox, recorder, logger)
	reportService := report.NewService(reportRepo, logger)
	userService := user.NewService(userRepo, recorder, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, sessions, logger)
	attendanceHandler := attendance.NewHandler(attendanceService)
	auditHandler := audit.NewHandler(auditService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	departmentHandler := department.NewHandler(departmentService, logger)
	documentHandler := document.NewHandler(documentService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	notificationHandler := notification.NewHandler(notificationService)
	payrollHandler := payroll.NewHandler(payrollService, logger)
	performanceHandler := performance.NewHandler(performanceService)
	rbacHandler := rbac.NewHandler(rbacService)
	reportHandler := report.NewHandler(reportService)
	userHandler := user.NewHandler(userService, logger)

	// --- Request pipeline ---
	router.Use(
		middleware.RequestID(),
		middleware.LoadSession(sessions),
		middleware.ContextLogger(logger),
		middleware.NotificationCount(notificationService),
		middleware.MaxBodySize(cfg.Upload.MaxBytes),
	)

	// --- Routes Registration ---
	r := router.Group("")
	{
		auth.RegisterRoutes(r, authHandler, rbacService)
		attendance.RegisterRoutes(r, attendanceHandler, rbacService)
		audit.RegisterRoutes(r, auditHandler, rbacService)
		dashboard.RegisterRoutes(r, dashboardHandler, rbacService)
		department.RegisterRoutes(r, departmentHandler, rbacService)
		document.RegisterRoutes(r, documentHandler, rbacService)
		employee.RegisterRoutes(r, employeeHandler, rbacService)
		leave.RegisterRoutes(r, leaveHandler, rbacService)
		notification.RegisterRoutes(r, notificationHandler, rbacService)
		payroll.RegisterRoutes(r, payrollHandler, rbacService, rdb)
		performance.RegisterRoutes(r, performanceHandler, rbacService)
		rbac.RegisterRoutes(r, rbacHandler, rbacService)
		report.RegisterRoutes(r, reportHandler, rbacService)
		user.RegisterRoutes(r, userHandler, rbacService)
	}

	return nil
}
