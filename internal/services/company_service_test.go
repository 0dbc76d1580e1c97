package services

import (
	"testing"

	"slms/internal/models"
	apperrors "slms/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCompany(t *testing.T) {
	db := setupTestDB(t)
	service := NewCompanyService(db, nil)

	company, admin, err := service.RegisterCompany(&RegisterCompanyParams{
		User: RegisterEmployeeParams{
			Username:  "boss",
			Password:  "secret123",
			Email:     "boss@example.com",
			FirstName: "大",
			LastName:  "王",
		},
		Company: CompanyParams{
			Name:    "Acme",
			Address: "北京市朝阳区",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme", company.Name)
	// 注册人自动成为公司管理员
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, admin.IsAdmin())
	assert.Equal(t, company.ID, admin.CompanyID)
	assert.Equal(t, "boss", admin.User.Username)
}

func TestRegisterCompanyDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	createTestCompany(t, db, "Acme", "boss")

	service := NewCompanyService(db, nil)
	_, _, err := service.RegisterCompany(&RegisterCompanyParams{
		User: RegisterEmployeeParams{
			Username: "boss",
			Password: "secret123",
			Email:    "boss2@example.com",
		},
		Company: CompanyParams{Name: "Globex"},
	})
	requireAppError(t, err, apperrors.CodeInvalidParam)

	// 失败不留下半成品
	assert.EqualValues(t, 1, countRows(t, db, &models.Company{}))
	assert.EqualValues(t, 1, countRows(t, db, &models.User{}))
}

func TestRegisterCompanyValidation(t *testing.T) {
	db := setupTestDB(t)
	service := NewCompanyService(db, nil)

	_, _, err := service.RegisterCompany(&RegisterCompanyParams{
		User: RegisterEmployeeParams{
			Username: "boss",
			Password: "secret123",
			Email:    "boss@example.com",
		},
		Company: CompanyParams{Name: ""},
	})
	requireAppError(t, err, apperrors.CodeInvalidParam)

	_, _, err = service.RegisterCompany(&RegisterCompanyParams{
		User:    RegisterEmployeeParams{Username: "", Password: "x", Email: "a@example.com"},
		Company: CompanyParams{Name: "Acme"},
	})
	requireAppError(t, err, apperrors.CodeInvalidParam)
}

func TestRegisterCompanyForExistingUser(t *testing.T) {
	db := setupTestDB(t)

	user := &models.User{Username: "freelancer", Email: "f@example.com"}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(user).Error)

	service := NewCompanyService(db, nil)
	company, err := service.RegisterCompanyForExistingUser(user.ID, &CompanyParams{
		Name: "Solo Corp",
	})
	require.NoError(t, err)

	var employee models.Employee
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&employee).Error)
	assert.Equal(t, company.ID, employee.CompanyID)
	assert.Equal(t, models.RoleAdmin, employee.Role)
}

func TestRegisterCompanyForExistingUserAlreadyMember(t *testing.T) {
	db := setupTestDB(t)
	_, admin := createTestCompany(t, db, "Acme", "boss")

	service := NewCompanyService(db, nil)
	_, err := service.RegisterCompanyForExistingUser(admin.UserID, &CompanyParams{
		Name: "Second Corp",
	})
	requireAppError(t, err, apperrors.CodeInvalidParam)

	assert.EqualValues(t, 1, countRows(t, db, &models.Company{}))
}

func TestDeleteCompanyCascades(t *testing.T) {
	db := setupTestDB(t)
	companyA, adminA := createTestCompany(t, db, "Acme", "acme_admin")
	companyB, adminB := createTestCompany(t, db, "Globex", "globex_admin")
	licenseType := createTestLicenseType(t, db, "月度版", 1, models.DurationTypeMonths, "10.00")

	licenseService := NewLicenseService(db, nil)
	for _, c := range []struct {
		companyID uint
		userID    uint
	}{
		{companyA.ID, adminA.UserID},
		{companyB.ID, adminB.UserID},
	} {
		_, err := licenseService.ActivateOrRenew(c.companyID, &licenseType.ID, c.userID)
		require.NoError(t, err)
		_, err = licenseService.IncreaseTotalUsers(c.companyID, 5, c.userID)
		require.NoError(t, err)
	}

	employeeService := NewEmployeeService(db, nil)
	_, err := employeeService.RegisterEmployee(companyA.ID, &RegisterEmployeeParams{
		Username: "worker1",
		Password: "secret123",
		Email:    "worker1@example.com",
	}, adminA.UserID)
	require.NoError(t, err)

	service := NewCompanyService(db, nil)
	require.NoError(t, service.DeleteCompany(companyA.ID, adminA))

	// A公司的全部数据被清理
	for _, check := range []struct {
		model interface{}
		want  int64
	}{
		{&models.Company{}, 1},
		{&models.Employee{}, 1},
		{&models.User{}, 1},
	} {
		assert.EqualValues(t, check.want, countRows(t, db, check.model))
	}
	var licenseCount int64
	db.Model(&models.CompanyLicense{}).Where("company_id = ?", companyA.ID).Count(&licenseCount)
	assert.EqualValues(t, 0, licenseCount)
	var eventCount int64
	db.Model(&models.LicenseEvent{}).Where("company_id = ?", companyA.ID).Count(&eventCount)
	assert.EqualValues(t, 0, eventCount)

	// B公司不受影响
	var companyLeft models.Company
	require.NoError(t, db.First(&companyLeft, companyB.ID).Error)
	var adminLeft models.Employee
	require.NoError(t, db.First(&adminLeft, adminB.ID).Error)
}

func TestDeleteCompanyForbiddenForOtherCompany(t *testing.T) {
	db := setupTestDB(t)
	companyA, _ := createTestCompany(t, db, "Acme", "acme_admin")
	_, adminB := createTestCompany(t, db, "Globex", "globex_admin")

	service := NewCompanyService(db, nil)
	err := service.DeleteCompany(companyA.ID, adminB)
	requireAppError(t, err, apperrors.CodeForbidden)

	assert.EqualValues(t, 2, countRows(t, db, &models.Company{}))
}

func TestDeleteCompanyNotFound(t *testing.T) {
	db := setupTestDB(t)
	_, admin := createTestCompany(t, db, "Acme", "acme_admin")

	// 公司不存在的判定先于归属判定
	service := NewCompanyService(db, nil)
	err := service.DeleteCompany(9999, admin)
	requireAppError(t, err, apperrors.CodeNotFound)
}
