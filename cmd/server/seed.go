package main

import (
	"fmt"

	"slms/internal/database"
	"slms/internal/models"
	"slms/pkg/logger"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// seedData 初始化种子数据
func seedData() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting seed data initialization...")

	db := database.GetDB()

	// 创建默认许可证类型
	if err := createDefaultLicenseTypes(db); err != nil {
		return fmt.Errorf("创建默认许可证类型失败: %v", err)
	}

	appLogger.Info("Seed data initialization completed successfully")
	return nil
}

// createDefaultLicenseTypes 创建默认许可证类型
func createDefaultLicenseTypes(db *gorm.DB) error {
	defaults := []models.LicenseType{
		{
			Name:         "月度标准版",
			Duration:     1,
			DurationType: models.DurationTypeMonths,
			PricePerUser: decimal.NewFromFloat(9.99),
		},
		{
			Name:         "年度标准版",
			Duration:     1,
			DurationType: models.DurationTypeYears,
			PricePerUser: decimal.NewFromFloat(99.99),
		},
		{
			Name:         "试用版",
			Duration:     14,
			DurationType: models.DurationTypeDays,
			PricePerUser: decimal.Zero,
		},
	}

	for _, lt := range defaults {
		var count int64
		db.Model(&models.LicenseType{}).Where("name = ?", lt.Name).Count(&count)
		if count > 0 {
			logger.GetLogger().Infof("许可证类型 %s 已存在，跳过创建", lt.Name)
			continue
		}

		licenseType := lt
		if err := db.Create(&licenseType).Error; err != nil {
			return err
		}
		logger.GetLogger().Infof("许可证类型 %s 创建成功", lt.Name)
	}

	return nil
}
