package services

import (
	"encoding/json"
	"errors"
	"time"

	"slms/internal/models"
	apperrors "slms/pkg/errors"
	"slms/pkg/logger"
	"slms/pkg/queue"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LicenseService 许可证生命周期引擎
// 负责激活/续期的有效期与金额计算、席位扩容、容量核算
type LicenseService struct {
	db         *gorm.DB
	eventQueue *queue.RedisQueue
}

func NewLicenseService(db *gorm.DB, eventQueue *queue.RedisQueue) *LicenseService {
	return &LicenseService{db: db, eventQueue: eventQueue}
}

// CapacityInfo 席位容量信息
type CapacityInfo struct {
	CurrentEmployees int64 `json:"current_employees"`
	AllowedUsers     int   `json:"allowed_users"`
	UsersLeft        int   `json:"users_left"`
}

// LicenseInfo 公司与当前生效许可证的组合视图
type LicenseInfo struct {
	Company       *models.Company        `json:"company"`
	ActiveLicense *models.CompanyLicense `json:"active_license"`
}

// Today 当前日期（去掉时分秒）
func Today() time.Time {
	year, month, day := time.Now().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// durationInDays 按时长单位折算天数
// 月按30天、年按365天固定折算，不做日历精确计算
func durationInDays(licenseType *models.LicenseType) (int, error) {
	switch licenseType.DurationType {
	case models.DurationTypeDays:
		return licenseType.Duration, nil
	case models.DurationTypeMonths:
		return 30 * licenseType.Duration, nil
	case models.DurationTypeYears:
		return 365 * licenseType.Duration, nil
	default:
		// 目录校验应当已拦截，这里兜底
		return 0, apperrors.NewInvalidParam("无效的时长单位")
	}
}

// ActivateOrRenew 激活或续期许可证
// 有历史记录时从上一条的 end_date 次日无缝衔接，席位数沿用；否则从今天开始、默认1个席位。
// 只新增记录，从不修改历史行。
func (s *LicenseService) ActivateOrRenew(companyID uint, licenseTypeID *uint, operatorUserID uint) (*models.CompanyLicense, error) {
	var license *models.CompanyLicense

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 查找最近一条许可证（按 end_date 倒序，不限状态）
		var previous models.CompanyLicense
		hasPrevious := true
		err := tx.Where("company_id = ?", companyID).
			Order("end_date DESC").
			First(&previous).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			hasPrevious = false
		}

		if !hasPrevious && licenseTypeID == nil {
			return apperrors.NewInvalidParam("该公司没有历史许可证记录，必须指定许可证类型")
		}

		// 解析许可证类型：优先使用显式指定，否则沿用上一条的类型
		resolveTypeID := licenseTypeID
		if resolveTypeID == nil {
			resolveTypeID = previous.LicenseTypeID
		}
		if resolveTypeID == nil {
			return apperrors.NewNotFound("许可证类型不存在")
		}

		var licenseType models.LicenseType
		if err := tx.First(&licenseType, *resolveTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("许可证类型不存在")
			}
			return err
		}

		// 起始日期：续期紧接上一条结束日的次日，无历史则从今天开始
		startDate := Today()
		totalUsers := 1
		if hasPrevious {
			startDate = previous.EndDate.AddDate(0, 0, 1)
			totalUsers = previous.TotalUsers
		}

		days, err := durationInDays(&licenseType)
		if err != nil {
			return err
		}
		endDate := startDate.AddDate(0, 0, days)

		totalAmount := licenseType.PricePerUser.Mul(decimal.NewFromInt(int64(totalUsers)))

		license = &models.CompanyLicense{
			CompanyID:     companyID,
			LicenseTypeID: &licenseType.ID,
			TotalUsers:    totalUsers,
			TotalAmount:   totalAmount,
			StartDate:     startDate,
			EndDate:       endDate,
			Status:        models.LicenseStatusActive,
		}

		if err := tx.Create(license).Error; err != nil {
			return err
		}

		return recordEvent(tx, queue.EventLicenseActivated, companyID, operatorUserID, map[string]interface{}{
			"license_id":      license.ID,
			"license_type_id": licenseType.ID,
			"total_users":     license.TotalUsers,
			"total_amount":    license.TotalAmount.String(),
			"start_date":      license.StartDate.Format("2006-01-02"),
			"end_date":        license.EndDate.Format("2006-01-02"),
		})
	})
	if err != nil {
		return nil, err
	}

	publishEvent(s.eventQueue, queue.EventLicenseActivated, companyID, operatorUserID, map[string]interface{}{
		"license_id": license.ID,
	})

	return license, nil
}

// IncreaseTotalUsers 增加当前生效许可证的席位数
// 单行读改写，事务内加行锁防止并发扩容丢失更新；金额按目录单价整体重算
func (s *LicenseService) IncreaseTotalUsers(companyID uint, usersToAdd int, operatorUserID uint) (*models.CompanyLicense, error) {
	if usersToAdd < 1 {
		return nil, apperrors.NewInvalidParam("增加的用户数必须大于等于1")
	}

	var license *models.CompanyLicense

	err := s.db.Transaction(func(tx *gorm.DB) error {
		current, err := findActiveLicense(tx, companyID, true)
		if err != nil {
			return err
		}

		if current.LicenseTypeID == nil {
			return apperrors.NewNotFound("许可证类型不存在")
		}
		var licenseType models.LicenseType
		if err := tx.First(&licenseType, *current.LicenseTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("许可证类型不存在")
			}
			return err
		}

		current.TotalUsers += usersToAdd
		current.TotalAmount = licenseType.PricePerUser.Mul(decimal.NewFromInt(int64(current.TotalUsers)))

		if err := tx.Save(current).Error; err != nil {
			return err
		}
		license = current

		return recordEvent(tx, queue.EventLicenseUsersAdded, companyID, operatorUserID, map[string]interface{}{
			"license_id":   license.ID,
			"users_added":  usersToAdd,
			"total_users":  license.TotalUsers,
			"total_amount": license.TotalAmount.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	publishEvent(s.eventQueue, queue.EventLicenseUsersAdded, companyID, operatorUserID, map[string]interface{}{
		"license_id":  license.ID,
		"users_added": usersToAdd,
	})

	return license, nil
}

// CheckCapacity 核算席位容量
// 员工数按公司全部员工统计（包含管理员自身）；没有生效许可证时视为错误而非零容量
func (s *LicenseService) CheckCapacity(companyID uint) (*CapacityInfo, error) {
	var currentEmployees int64
	if err := s.db.Model(&models.Employee{}).
		Where("company_id = ?", companyID).
		Count(&currentEmployees).Error; err != nil {
		return nil, err
	}

	license, err := findActiveLicense(s.db, companyID, false)
	if err != nil {
		return nil, err
	}

	usersLeft := license.TotalUsers - int(currentEmployees)
	if usersLeft < 0 {
		usersLeft = 0
	}

	return &CapacityInfo{
		CurrentEmployees: currentEmployees,
		AllowedUsers:     license.TotalUsers,
		UsersLeft:        usersLeft,
	}, nil
}

// GetCompanyLicenseInfo 获取公司信息及当前生效且未过期的许可证
// 没有符合条件的许可证时 active_license 为 null，不视为错误
func (s *LicenseService) GetCompanyLicenseInfo(companyID uint) (*LicenseInfo, error) {
	var company models.Company
	if err := s.db.First(&company, companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("公司不存在")
		}
		return nil, err
	}

	info := &LicenseInfo{Company: &company}

	var license models.CompanyLicense
	err := s.db.Preload("LicenseType").
		Where("company_id = ? AND status = ? AND end_date >= ?", companyID, models.LicenseStatusActive, Today()).
		Order("end_date DESC").
		First(&license).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return info, nil
		}
		return nil, err
	}

	info.ActiveLicense = &license
	return info, nil
}

// findActiveLicense 查找公司当前生效许可证（status=active且end_date最大的一条）
// forUpdate 为 true 时加行锁，供读改写路径使用
func findActiveLicense(tx *gorm.DB, companyID uint, forUpdate bool) (*models.CompanyLicense, error) {
	query := tx.Where("company_id = ? AND status = ?", companyID, models.LicenseStatusActive).
		Order("end_date DESC")
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var license models.CompanyLicense
	if err := query.First(&license).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("该公司没有生效中的许可证")
		}
		return nil, err
	}
	return &license, nil
}

// recordEvent 在业务事务内写入审计记录
func recordEvent(tx *gorm.DB, eventType string, companyID, userID uint, payload map[string]interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := &models.LicenseEvent{
		CompanyID: companyID,
		EventType: eventType,
		UserID:    userID,
		Payload:   data,
	}
	return tx.Create(event).Error
}

// publishEvent 向Redis发布生命周期事件，失败只记日志不影响业务
func publishEvent(eventQueue *queue.RedisQueue, eventType string, companyID, userID uint, payload map[string]interface{}) {
	if eventQueue == nil {
		return
	}
	if err := eventQueue.Publish(eventType, companyID, userID, "", payload); err != nil {
		logger.GetLogger().Warnf("发布事件失败 type=%s company=%d: %v", eventType, companyID, err)
	}
}
