package services

import (
	"errors"
	"fmt"

	"slms/internal/models"
	apperrors "slms/pkg/errors"
	"slms/pkg/queue"

	"gorm.io/gorm"
)

// EmployeeService 员工管理服务
// 新员工注册受当前生效许可证的席位容量约束
type EmployeeService struct {
	db         *gorm.DB
	eventQueue *queue.RedisQueue
}

func NewEmployeeService(db *gorm.DB, eventQueue *queue.RedisQueue) *EmployeeService {
	return &EmployeeService{db: db, eventQueue: eventQueue}
}

// RegisterEmployeeParams 员工注册参数
type RegisterEmployeeParams struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

// UserCompanyInfo 当前用户的公司与员工信息
type UserCompanyInfo struct {
	Company  *models.Company  `json:"company"`
	Employee *models.Employee `json:"employee"`
}

// validateRegisterParams 校验注册参数
func validateRegisterParams(params *RegisterEmployeeParams) error {
	if params.Username == "" {
		return apperrors.NewInvalidParam("用户名不能为空")
	}
	if params.Password == "" {
		return apperrors.NewInvalidParam("密码不能为空")
	}
	if params.Email == "" {
		return apperrors.NewInvalidParam("邮箱不能为空")
	}
	return nil
}

// RegisterEmployee 管理员为公司注册新员工
// 容量检查与员工创建在同一事务内完成，事务中锁定当前生效许可证行，
// 防止并发注册同时通过容量闸门导致超出席位数
func (s *EmployeeService) RegisterEmployee(companyID uint, params *RegisterEmployeeParams, operatorUserID uint) (*models.Employee, error) {
	if err := validateRegisterParams(params); err != nil {
		return nil, err
	}

	var employee *models.Employee

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 锁定生效许可证后重新核算容量
		license, err := findActiveLicense(tx, companyID, true)
		if err != nil {
			return err
		}

		var currentEmployees int64
		if err := tx.Model(&models.Employee{}).
			Where("company_id = ?", companyID).
			Count(&currentEmployees).Error; err != nil {
			return err
		}

		if int(currentEmployees) >= license.TotalUsers {
			return apperrors.NewInvalidParam("当前许可证席位已满，无法注册新员工")
		}

		// 用户名查重
		var usernameCount int64
		tx.Model(&models.User{}).Where("username = ?", params.Username).Count(&usernameCount)
		if usernameCount > 0 {
			return apperrors.NewInvalidParam("用户名已存在")
		}

		user := &models.User{
			Username:  params.Username,
			Email:     params.Email,
			FirstName: params.FirstName,
			LastName:  params.LastName,
		}
		if err := user.SetPassword(params.Password); err != nil {
			return fmt.Errorf("密码加密失败: %v", err)
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		employee = &models.Employee{
			UserID:    user.ID,
			CompanyID: companyID,
			Role:      models.RoleUser,
		}
		if err := tx.Create(employee).Error; err != nil {
			return err
		}
		employee.User = *user

		return recordEvent(tx, queue.EventEmployeeRegistered, companyID, operatorUserID, map[string]interface{}{
			"employee_id": employee.ID,
			"username":    user.Username,
		})
	})
	if err != nil {
		return nil, err
	}

	publishEvent(s.eventQueue, queue.EventEmployeeRegistered, companyID, operatorUserID, map[string]interface{}{
		"employee_id": employee.ID,
	})

	return employee, nil
}

// DeleteEmployee 删除员工及其身份记录
// 只能删除本公司员工；跨公司按不存在处理；不能删除自己
func (s *EmployeeService) DeleteEmployee(employeeID uint, operator *models.Employee) error {
	var employee models.Employee
	err := s.db.Where("id = ? AND company_id = ?", employeeID, operator.CompanyID).
		First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("员工不存在")
		}
		return err
	}

	if employee.ID == operator.ID {
		return apperrors.NewForbidden("不能删除自己")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Employee{}, employee.ID).Error; err != nil {
			return err
		}
		// 身份记录一并删除
		return tx.Delete(&models.User{}, employee.UserID).Error
	})
}

// GetCompanyEmployees 按条件分页查询公司员工
// username/first_name/last_name 为模糊匹配
func (s *EmployeeService) GetCompanyEmployees(companyID uint, username, firstName, lastName string, offset, limit int) ([]*models.Employee, int64, error) {
	query := s.db.Model(&models.Employee{}).
		Joins("JOIN users ON users.id = employees.user_id").
		Where("employees.company_id = ?", companyID)

	if username != "" {
		query = query.Where("users.username LIKE ?", fmt.Sprintf("%%%s%%", username))
	}
	if firstName != "" {
		query = query.Where("users.first_name LIKE ?", fmt.Sprintf("%%%s%%", firstName))
	}
	if lastName != "" {
		query = query.Where("users.last_name LIKE ?", fmt.Sprintf("%%%s%%", lastName))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []*models.Employee
	err := query.Preload("User").
		Order("employees.id").
		Offset(offset).Limit(limit).
		Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// GetUserCompanyInfo 获取用户的公司与员工信息
// 用户没有员工记录时两项均为 null，不视为错误
func (s *EmployeeService) GetUserCompanyInfo(userID uint) (*UserCompanyInfo, error) {
	info := &UserCompanyInfo{}

	var employee models.Employee
	err := s.db.Preload("User").Preload("Company").
		Where("user_id = ?", userID).
		First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return info, nil
		}
		return nil, err
	}

	info.Employee = &employee
	info.Company = &employee.Company
	return info, nil
}

// GetEmployeeByUserID 根据用户ID获取员工记录
func (s *EmployeeService) GetEmployeeByUserID(userID uint) (*models.Employee, error) {
	var employee models.Employee
	err := s.db.Where("user_id = ?", userID).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewForbidden("当前用户不是任何公司的员工")
		}
		return nil, err
	}
	return &employee, nil
}
