package models

import (
	"gorm.io/datatypes"
)

// LicenseEvent 许可证生命周期审计记录
// 与触发它的业务写入在同一事务中落库
type LicenseEvent struct {
	BaseModel
	CompanyID uint           `json:"company_id" gorm:"not null;index"`
	EventType string         `json:"event_type" gorm:"not null;size:50;index"`
	UserID    uint           `json:"user_id"`
	Payload   datatypes.JSON `json:"payload" gorm:"type:json"`
}

// TableName 表名
func (le *LicenseEvent) TableName() string {
	return "license_events"
}
