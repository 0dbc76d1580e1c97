package middleware

import (
	"strings"

	"slms/internal/database"
	"slms/internal/models"
	"slms/internal/services"
	"slms/pkg/jwt"
	"slms/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 权限中间件
type AuthMiddleware struct {
	userService     *services.UserService
	employeeService *services.EmployeeService
	jwtManager      *jwt.JWTManager
}

func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{
		userService:     services.NewUserService(database.GetDB()),
		employeeService: services.NewEmployeeService(database.GetDB(), nil),
		jwtManager:      jwt.GetJWTManager(), // 使用全局JWT管理器
	}
}

// RequireLogin 要求携带有效JWT
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 从Authorization头获取JWT token
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		// 检查Bearer格式
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "认证头格式错误")
			c.Abort()
			return
		}

		// 提取token
		tokenString := authHeader[7:] // 去掉 "Bearer "

		// 验证token
		claims, err := m.jwtManager.VerifyToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Token无效或已过期")
			c.Abort()
			return
		}

		// 获取用户信息
		user, err := m.userService.GetByID(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "用户不存在")
			c.Abort()
			return
		}

		// 将用户信息保存到上下文
		c.Set("user", user)
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)

		c.Next()
	}
}

// RequireAdmin 要求当前用户是其公司的管理员员工
// 没有员工记录与角色不足都按无权限处理
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			response.Unauthorized(c, "请先登录")
			c.Abort()
			return
		}

		employee, err := m.employeeService.GetEmployeeByUserID(userID.(uint))
		if err != nil {
			response.HandleError(c, err)
			c.Abort()
			return
		}

		if !employee.IsAdmin() {
			response.Forbidden(c, "需要管理员权限")
			c.Abort()
			return
		}

		// 将员工信息保存到上下文，供处理器取公司范围
		c.Set("employee", employee)

		c.Next()
	}
}

// GetCurrentEmployee 从上下文取当前管理员员工记录
func GetCurrentEmployee(c *gin.Context) *models.Employee {
	if value, exists := c.Get("employee"); exists {
		return value.(*models.Employee)
	}
	return nil
}
