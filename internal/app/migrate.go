package app

import (
	"context"

	"go-hrms/internal/attendance"
	"go-hrms/internal/audit"
	"go-hrms/internal/config"
	"go-hrms/internal/department"
	"go-hrms/internal/document"
	"go-hrms/internal/employee"
	"go-hrms/internal/identity"
	"go-hrms/internal/leave"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/notification"
	"go-hrms/internal/payroll"
	"go-hrms/internal/performance"
	"go-hrms/internal/shared/connection"
	"go-hrms/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedDepartments exist on every installation; registration falls back to
// them when assigning a department.
var SeedDepartments = []string{"Human Resources", "IT"}

// Models lists every table owned by the application, parents first.
func Models() []any {
	return []any{
		&user.User{},
		&department.Department{},
		&employee.Employee{},
		&attendance.Attendance{},
		&leave.LeaveRequest{},
		&payroll.Payroll{},
		&document.Document{},
		&performance.PerformanceReview{},
		&notification.Notification{},
		&audit.AuditLog{},
		&kafka.OutboxEvent{},
	}
}

// RunMigrate creates or updates the schema and seeds reference data.
func RunMigrate(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.migrate")

	db, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := db.AutoMigrate(Models()...); err != nil {
		log.Error("auto migrate failed", zap.Error(err))
		return err
	}
	log.Info("schema migrated", zap.Int("tables", len(Models())))

	return seed(context.Background(), db, cfg.Defaults, log)
}

func seed(ctx context.Context, db *gorm.DB, defaults config.DefaultsConfig, log *zap.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range SeedDepartments {
			d := department.Department{ID: uuid.New(), Name: name}
			if err := tx.Where("name = ?", name).FirstOrCreate(&d).Error; err != nil {
				return err
			}
		}

		if defaults.AdminPassword == "" {
			log.Warn("ADMIN_PASSWORD is empty, skipping admin seed")
			return nil
		}
		var existing int64
		if err := tx.Model(&user.User{}).Where("email = ?", defaults.AdminEmail).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}

		hash, err := user.HashPassword(defaults.AdminPassword)
		if err != nil {
			return err
		}
		admin := user.User{
			ID:           uuid.New(),
			Name:         defaults.AdminName,
			Email:        defaults.AdminEmail,
			PasswordHash: hash,
			Role:         identity.RoleAdmin,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		log.Info("admin account seeded", zap.String("email", admin.Email))
		return nil
	})
}
