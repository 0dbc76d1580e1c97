package models

// Employee 员工模型 - 用户与公司的成员关系
// 一个用户最多属于一个公司（user_id 唯一）
type Employee struct {
	BaseModel
	UserID    uint   `json:"user_id" gorm:"not null;uniqueIndex"`
	CompanyID uint   `json:"company_id" gorm:"not null;index"`
	Role      string `json:"role" gorm:"not null;size:20;default:'user'"`

	// 关联
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Company Company `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}

// TableName 表名
func (e *Employee) TableName() string {
	return "employees"
}

// 员工角色常量
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// IsAdmin 是否为公司管理员
func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}
