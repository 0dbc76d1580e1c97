package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyLicense 公司许可证 - 一段有效期内授予公司N个用户席位
// 每次激活/续期新增一行，历史记录按 end_date 排序
type CompanyLicense struct {
	BaseModel
	CompanyID     uint            `json:"company_id" gorm:"not null;index"`
	LicenseTypeID *uint           `json:"license_type_id" gorm:"index"`
	TotalUsers    int             `json:"total_users" gorm:"not null;default:1"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	StartDate     time.Time       `json:"start_date" gorm:"type:date;not null"`
	EndDate       time.Time       `json:"end_date" gorm:"type:date;not null;index"`
	Status        string          `json:"status" gorm:"not null;size:20;default:'pending';index"`

	// 关联
	Company     Company      `json:"-" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	LicenseType *LicenseType `json:"license_type,omitempty" gorm:"foreignKey:LicenseTypeID"`
}

// TableName 表名
func (cl *CompanyLicense) TableName() string {
	return "company_licenses"
}

// 许可证状态常量
const (
	LicenseStatusPending = "pending"
	LicenseStatusActive  = "active"
	LicenseStatusExpired = "expired"
	LicenseStatusRejected = "rejected"
)
