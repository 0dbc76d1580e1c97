package database

import (
	"slms/internal/models"
	"slms/pkg/logger"
)

// Migrate 执行数据库迁移
func Migrate() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting database migration...")

	err := DB.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Employee{},
		&models.LicenseType{},
		&models.CompanyLicense{},
		&models.LicenseEvent{},
	)

	if err != nil {
		appLogger.Errorf("Database migration failed: %v", err)
		return err
	}

	appLogger.Info("Database migration completed successfully")

	return nil
}
