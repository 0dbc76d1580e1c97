package models

// Company 公司模型 - 拥有员工与许可证记录
type Company struct {
	BaseModel
	Name    string `json:"name" gorm:"not null;size:255"`
	Address string `json:"address" gorm:"size:255"`
}

// TableName 表名
func (c *Company) TableName() string {
	return "companies"
}
