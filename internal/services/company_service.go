package services

import (
	"errors"
	"fmt"

	"slms/internal/models"
	apperrors "slms/pkg/errors"
	"slms/pkg/queue"

	"gorm.io/gorm"
)

// CompanyService 公司注册与删除服务
type CompanyService struct {
	db         *gorm.DB
	eventQueue *queue.RedisQueue
}

func NewCompanyService(db *gorm.DB, eventQueue *queue.RedisQueue) *CompanyService {
	return &CompanyService{db: db, eventQueue: eventQueue}
}

// RegisterCompanyParams 公司注册参数（新用户 + 公司）
type RegisterCompanyParams struct {
	User    RegisterEmployeeParams
	Company CompanyParams
}

// CompanyParams 公司字段
type CompanyParams struct {
	Name    string
	Address string
}

// RegisterCompany 注册公司并创建管理员用户
// 用户、公司、管理员员工记录在同一事务内创建
func (s *CompanyService) RegisterCompany(params *RegisterCompanyParams) (*models.Company, *models.Employee, error) {
	if err := validateRegisterParams(&params.User); err != nil {
		return nil, nil, err
	}
	if params.Company.Name == "" {
		return nil, nil, apperrors.NewInvalidParam("公司名称不能为空")
	}

	var company *models.Company
	var employee *models.Employee

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 用户名查重
		var usernameCount int64
		tx.Model(&models.User{}).Where("username = ?", params.User.Username).Count(&usernameCount)
		if usernameCount > 0 {
			return apperrors.NewInvalidParam("用户名已存在")
		}

		user := &models.User{
			Username:  params.User.Username,
			Email:     params.User.Email,
			FirstName: params.User.FirstName,
			LastName:  params.User.LastName,
		}
		if err := user.SetPassword(params.User.Password); err != nil {
			return fmt.Errorf("密码加密失败: %v", err)
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		company = &models.Company{
			Name:    params.Company.Name,
			Address: params.Company.Address,
		}
		if err := tx.Create(company).Error; err != nil {
			return err
		}

		// 注册人即公司管理员
		employee = &models.Employee{
			UserID:    user.ID,
			CompanyID: company.ID,
			Role:      models.RoleAdmin,
		}
		if err := tx.Create(employee).Error; err != nil {
			return err
		}
		employee.User = *user

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return company, employee, nil
}

// RegisterCompanyForExistingUser 为已有身份但尚无公司的用户创建公司
func (s *CompanyService) RegisterCompanyForExistingUser(userID uint, params *CompanyParams) (*models.Company, error) {
	if params.Name == "" {
		return nil, apperrors.NewInvalidParam("公司名称不能为空")
	}

	var company *models.Company

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 用户已经有公司则拒绝（一个身份最多属于一个公司）
		var existingCount int64
		tx.Model(&models.Employee{}).Where("user_id = ?", userID).Count(&existingCount)
		if existingCount > 0 {
			return apperrors.NewInvalidParam("该用户已拥有公司")
		}

		company = &models.Company{
			Name:    params.Name,
			Address: params.Address,
		}
		if err := tx.Create(company).Error; err != nil {
			return err
		}

		employee := &models.Employee{
			UserID:    userID,
			CompanyID: company.ID,
			Role:      models.RoleAdmin,
		}
		return tx.Create(employee).Error
	})
	if err != nil {
		return nil, err
	}

	return company, nil
}

// DeleteCompany 删除公司并级联清理
// 级联范围：公司的许可证记录、审计记录、全部员工及员工背后的用户身份。
// 管理员只能删除自己的公司
func (s *CompanyService) DeleteCompany(companyID uint, operator *models.Employee) error {
	var company models.Company
	if err := s.db.First(&company, companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("公司不存在")
		}
		return err
	}

	if operator.CompanyID != companyID {
		return apperrors.NewForbidden("无权删除其他公司")
	}

	operatorUserID := operator.UserID

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 先收集公司员工对应的用户ID
		var userIDs []uint
		if err := tx.Model(&models.Employee{}).
			Where("company_id = ?", companyID).
			Pluck("user_id", &userIDs).Error; err != nil {
			return err
		}

		if err := tx.Where("company_id = ?", companyID).Delete(&models.CompanyLicense{}).Error; err != nil {
			return err
		}
		if err := tx.Where("company_id = ?", companyID).Delete(&models.LicenseEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("company_id = ?", companyID).Delete(&models.Employee{}).Error; err != nil {
			return err
		}
		if len(userIDs) > 0 {
			if err := tx.Delete(&models.User{}, userIDs).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Company{}, companyID).Error
	})
	if err != nil {
		return err
	}

	publishEvent(s.eventQueue, queue.EventCompanyDeleted, companyID, operatorUserID, map[string]interface{}{
		"company_name": company.Name,
	})

	return nil
}
