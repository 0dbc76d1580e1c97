package services

import (
	"testing"

	"slms/internal/models"
	apperrors "slms/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB 初始化内存SQLite测试库
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Employee{},
		&models.LicenseType{},
		&models.CompanyLicense{},
		&models.LicenseEvent{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// createTestCompany 注册一个带管理员的测试公司
func createTestCompany(t *testing.T, db *gorm.DB, name, adminUsername string) (*models.Company, *models.Employee) {
	service := NewCompanyService(db, nil)
	company, admin, err := service.RegisterCompany(&RegisterCompanyParams{
		User: RegisterEmployeeParams{
			Username: adminUsername,
			Password: "secret123",
			Email:    adminUsername + "@example.com",
		},
		Company: CompanyParams{
			Name: name,
		},
	})
	require.NoError(t, err, "RegisterCompany should succeed")
	return company, admin
}

// createTestLicenseType 创建一个测试许可证类型
func createTestLicenseType(t *testing.T, db *gorm.DB, name string, duration int, durationType, price string) *models.LicenseType {
	service := NewLicenseTypeService(db)
	licenseType, created, err := service.CreateOrGet(name, duration, durationType, decimal.RequireFromString(price))
	require.NoError(t, err, "CreateOrGet should succeed")
	require.True(t, created, "license type should be newly created")
	return licenseType
}

// requireAppError 断言错误为指定错误码的业务错误
func requireAppError(t *testing.T, err error, code int) *apperrors.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok, "expected *AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code)
	return appErr
}

// countRows 统计表行数
func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}
