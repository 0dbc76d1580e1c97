package services

import (
	"testing"

	"slms/internal/models"
	apperrors "slms/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLicenseType(t *testing.T) {
	db := setupTestDB(t)
	service := NewLicenseTypeService(db)

	licenseType, created, err := service.CreateOrGet("年度版", 1, models.DurationTypeYears, decimal.RequireFromString("99.99"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, licenseType.ID)
	assert.True(t, licenseType.PricePerUser.Equal(decimal.RequireFromString("99.99")))
}

func TestCreateLicenseTypeIdempotent(t *testing.T) {
	db := setupTestDB(t)
	service := NewLicenseTypeService(db)

	first, created, err := service.CreateOrGet("年度版", 1, models.DurationTypeYears, decimal.RequireFromString("99.99"))
	require.NoError(t, err)
	require.True(t, created)

	// 同名重复创建：返回已有记录，字段不被覆盖
	second, created, err := service.CreateOrGet("年度版", 6, models.DurationTypeMonths, decimal.RequireFromString("1.00"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, second.Duration)
	assert.Equal(t, models.DurationTypeYears, second.DurationType)

	assert.EqualValues(t, 1, countRows(t, db, &models.LicenseType{}))
}

func TestCreateLicenseTypeValidation(t *testing.T) {
	db := setupTestDB(t)
	service := NewLicenseTypeService(db)

	_, _, err := service.CreateOrGet("", 1, models.DurationTypeDays, decimal.NewFromInt(1))
	requireAppError(t, err, apperrors.CodeInvalidParam)

	_, _, err = service.CreateOrGet("类型A", 0, models.DurationTypeDays, decimal.NewFromInt(1))
	requireAppError(t, err, apperrors.CodeInvalidParam)

	_, _, err = service.CreateOrGet("类型A", 1, "weeks", decimal.NewFromInt(1))
	requireAppError(t, err, apperrors.CodeInvalidParam)

	_, _, err = service.CreateOrGet("类型A", 1, models.DurationTypeDays, decimal.NewFromInt(-1))
	requireAppError(t, err, apperrors.CodeInvalidParam)

	assert.EqualValues(t, 0, countRows(t, db, &models.LicenseType{}))
}

func TestUpdateLicenseTypePartial(t *testing.T) {
	db := setupTestDB(t)
	service := NewLicenseTypeService(db)
	licenseType := createTestLicenseType(t, db, "月度版", 1, models.DurationTypeMonths, "9.99")

	// 只改价格，其余字段保持不变
	newPrice := decimal.RequireFromString("19.99")
	updated, err := service.Update(licenseType.ID, UpdateLicenseTypeParams{
		PricePerUser: &newPrice,
	})
	require.NoError(t, err)

	assert.Equal(t, "月度版", updated.Name)
	assert.Equal(t, 1, updated.Duration)
	assert.Equal(t, models.DurationTypeMonths, updated.DurationType)
	assert.True(t, updated.PricePerUser.Equal(newPrice))
}

func TestUpdateLicenseTypeValidation(t *testing.T) {
	db := setupTestDB(t)
	service := NewLicenseTypeService(db)
	licenseType := createTestLicenseType(t, db, "月度版", 1, models.DurationTypeMonths, "9.99")

	empty := ""
	_, err := service.Update(licenseType.ID, UpdateLicenseTypeParams{Name: &empty})
	requireAppError(t, err, apperrors.CodeInvalidParam)

	badType := "weeks"
	_, err = service.Update(licenseType.ID, UpdateLicenseTypeParams{DurationType: &badType})
	requireAppError(t, err, apperrors.CodeInvalidParam)

	zero := 0
	_, err = service.Update(licenseType.ID, UpdateLicenseTypeParams{Duration: &zero})
	requireAppError(t, err, apperrors.CodeInvalidParam)

	// 校验失败不落库
	reloaded, err := service.GetByID(licenseType.ID)
	require.NoError(t, err)
	assert.Equal(t, "月度版", reloaded.Name)
	assert.Equal(t, models.DurationTypeMonths, reloaded.DurationType)
}

func TestUpdateLicenseTypeNotFound(t *testing.T) {
	db := setupTestDB(t)
	service := NewLicenseTypeService(db)

	name := "新名字"
	_, err := service.Update(9999, UpdateLicenseTypeParams{Name: &name})
	requireAppError(t, err, apperrors.CodeNotFound)
}

func TestGetLicenseTypes(t *testing.T) {
	db := setupTestDB(t)
	service := NewLicenseTypeService(db)

	createTestLicenseType(t, db, "试用版", 14, models.DurationTypeDays, "0")
	createTestLicenseType(t, db, "年度版", 1, models.DurationTypeYears, "99.99")

	all, err := service.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "试用版", all[0].Name)
	assert.Equal(t, "年度版", all[1].Name)

	_, err = service.GetByID(9999)
	requireAppError(t, err, apperrors.CodeNotFound)
}
