package router

import (
	"slms/internal/database"
	"slms/internal/handlers"
	"slms/internal/middleware"
	"slms/internal/models"
	"slms/internal/services"
	"slms/pkg/response"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupRouter 设置路由
func SetupRouter() *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS())

	// 注册自定义校验器
	registerValidators()

	// 注册路由
	registerRoutes(router)
	return router
}

// 注册自定义校验规则
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// duration_type 只允许 days/months/years
		v.RegisterValidation("duration_type", func(fl validator.FieldLevel) bool {
			return models.IsValidDurationType(fl.Field().String())
		})
	}
}

// 注册所有路由
func registerRoutes(router *gin.Engine) {

	auth := middleware.NewAuthMiddleware()

	db := database.GetDB()
	eventQueue := database.GetRedisQueue()

	userService := services.NewUserService(db)
	companyService := services.NewCompanyService(db, eventQueue)
	employeeService := services.NewEmployeeService(db, eventQueue)
	licenseService := services.NewLicenseService(db, eventQueue)
	licenseTypeService := services.NewLicenseTypeService(db)

	// API路由组
	api := router.Group("/api/v1")
	{
		// 健康检查接口
		api.GET("/health", healthCheck)
		api.GET("/ping", ping)

		// JWT认证路由
		authHandler := handlers.NewAuthHandler(userService, employeeService)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)          // 用户登录
			authGroup.POST("/refresh", authHandler.RefreshToken) // 刷新Token

			// 🔒 获取当前用户的公司与员工信息
			authGroup.GET("/me", auth.RequireLogin(), authHandler.Me)
		}

		// 公司路由
		companyHandler := handlers.NewCompanyHandler(companyService)
		companies := api.Group("/companies")
		{
			// 🔓 公司注册（同时创建管理员账号，无需认证）
			companies.POST("/register", companyHandler.Register)

			// 🔒 已有账号的用户注册新公司
			companies.POST("/register-existing", auth.RequireLogin(), companyHandler.RegisterForExistingUser)

			// 🔒 删除公司（仅本公司管理员）
			companies.DELETE("/:id", auth.RequireLogin(), auth.RequireAdmin(), companyHandler.Delete)
		}

		// 许可证类型路由
		licenseTypeHandler := handlers.NewLicenseTypeHandler(licenseTypeService)
		licenseTypes := api.Group("/license-types", auth.RequireLogin())
		{
			licenseTypes.POST("", licenseTypeHandler.Create)
			licenseTypes.GET("", licenseTypeHandler.GetAll)
			licenseTypes.GET("/:id", licenseTypeHandler.GetByID)
			licenseTypes.PATCH("/:id", licenseTypeHandler.Update)
		}

		// 许可证路由（全部限本公司管理员）
		licenseHandler := handlers.NewLicenseHandler(licenseService)
		licenses := api.Group("/licenses", auth.RequireLogin(), auth.RequireAdmin())
		{
			licenses.POST("/activate", licenseHandler.Activate)            // 激活或续期
			licenses.POST("/increase-users", licenseHandler.IncreaseUsers) // 增加席位
			licenses.GET("/capacity", licenseHandler.Capacity)             // 席位容量
			licenses.GET("/info", licenseHandler.Info)                     // 公司许可证快照
		}

		// 员工路由（全部限本公司管理员）
		employeeHandler := handlers.NewEmployeeHandler(employeeService)
		employees := api.Group("/employees", auth.RequireLogin(), auth.RequireAdmin())
		{
			employees.GET("", employeeHandler.GetAll)           // 员工列表（筛选+分页）
			employees.POST("", employeeHandler.Register)        // 注册员工（受席位约束）
			employees.DELETE("/:id", employeeHandler.Delete)    // 删除员工
		}
	}
}

func healthCheck(c *gin.Context) {
	data := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now(),
		"service":   "SLMS",
		"version":   "1.0.0",
	}
	response.Success(c, data)
}

func ping(c *gin.Context) {
	response.SuccessWithMessage(c, "pong", nil)
}
