package services

import (
	"errors"

	"slms/internal/models"
	apperrors "slms/pkg/errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LicenseTypeService 许可证类型目录服务
type LicenseTypeService struct {
	db *gorm.DB
}

func NewLicenseTypeService(db *gorm.DB) *LicenseTypeService {
	return &LicenseTypeService{db: db}
}

// UpdateLicenseTypeParams 部分更新参数，nil表示不修改
type UpdateLicenseTypeParams struct {
	Name         *string
	Duration     *int
	DurationType *string
	PricePerUser *decimal.Decimal
}

// validate 校验目录字段
func (s *LicenseTypeService) validate(duration int, durationType string, pricePerUser decimal.Decimal) error {
	if duration < 1 {
		return apperrors.NewInvalidParam("许可证时长必须为正整数")
	}
	if !models.IsValidDurationType(durationType) {
		return apperrors.NewInvalidParam("无效的时长单位，仅支持 days/months/years")
	}
	if pricePerUser.IsNegative() {
		return apperrors.NewInvalidParam("每用户单价不能为负数")
	}
	return nil
}

// CreateOrGet 创建许可证类型；同名已存在时直接返回已有记录（幂等创建）
// 返回值第二项表示是否新建
func (s *LicenseTypeService) CreateOrGet(name string, duration int, durationType string, pricePerUser decimal.Decimal) (*models.LicenseType, bool, error) {
	if name == "" {
		return nil, false, apperrors.NewInvalidParam("许可证类型名称不能为空")
	}

	// 同名先到先得
	var existing models.LicenseType
	err := s.db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if err := s.validate(duration, durationType, pricePerUser); err != nil {
		return nil, false, err
	}

	licenseType := &models.LicenseType{
		Name:         name,
		Duration:     duration,
		DurationType: durationType,
		PricePerUser: pricePerUser,
	}

	if err := s.db.Create(licenseType).Error; err != nil {
		return nil, false, err
	}
	return licenseType, true, nil
}

// Update 部分更新许可证类型
func (s *LicenseTypeService) Update(id uint, params UpdateLicenseTypeParams) (*models.LicenseType, error) {
	var licenseType models.LicenseType
	if err := s.db.First(&licenseType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("许可证类型不存在")
		}
		return nil, err
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, apperrors.NewInvalidParam("许可证类型名称不能为空")
		}
		licenseType.Name = *params.Name
	}
	if params.Duration != nil {
		licenseType.Duration = *params.Duration
	}
	if params.DurationType != nil {
		licenseType.DurationType = *params.DurationType
	}
	if params.PricePerUser != nil {
		licenseType.PricePerUser = *params.PricePerUser
	}

	// 更新后整体重新校验
	if err := s.validate(licenseType.Duration, licenseType.DurationType, licenseType.PricePerUser); err != nil {
		return nil, err
	}

	if err := s.db.Save(&licenseType).Error; err != nil {
		return nil, err
	}
	return &licenseType, nil
}

// GetByID 根据ID获取许可证类型
func (s *LicenseTypeService) GetByID(id uint) (*models.LicenseType, error) {
	var licenseType models.LicenseType
	if err := s.db.First(&licenseType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("许可证类型不存在")
		}
		return nil, err
	}
	return &licenseType, nil
}

// GetAll 获取全部许可证类型
func (s *LicenseTypeService) GetAll() ([]*models.LicenseType, error) {
	var licenseTypes []*models.LicenseType
	err := s.db.Order("id").Find(&licenseTypes).Error
	return licenseTypes, err
}
