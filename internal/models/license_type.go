package models

import (
	"github.com/shopspring/decimal"
)

// LicenseType 许可证类型 - 目录数据：名称、时长、每用户单价
type LicenseType struct {
	BaseModel
	Name         string          `json:"name" gorm:"not null;size:255;index"`
	Duration     int             `json:"duration" gorm:"not null"`
	DurationType string          `json:"duration_type" gorm:"not null;size:20"`
	PricePerUser decimal.Decimal `json:"price_per_user" gorm:"type:decimal(10,2);not null"`
}

// TableName 表名
func (lt *LicenseType) TableName() string {
	return "license_types"
}

// 时长单位常量
const (
	DurationTypeDays   = "days"
	DurationTypeMonths = "months"
	DurationTypeYears  = "years"
)

// IsValidDurationType 检查时长单位是否有效
func IsValidDurationType(durationType string) bool {
	switch durationType {
	case DurationTypeDays, DurationTypeMonths, DurationTypeYears:
		return true
	default:
		return false
	}
}
