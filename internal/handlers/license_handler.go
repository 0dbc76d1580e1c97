package handlers

import (
	"slms/internal/middleware"
	"slms/internal/services"
	"slms/pkg/response"

	"github.com/gin-gonic/gin"
)

// ActivateLicenseRequest 激活/续期请求
// license_type_id 缺省时沿用最近一次许可证的类型
type ActivateLicenseRequest struct {
	LicenseTypeID *uint `json:"license_type_id"`
}

// IncreaseUsersRequest 增加席位请求
type IncreaseUsersRequest struct {
	TotalUsersToAdd int `json:"total_users_to_add" binding:"required,min=1"`
}

type LicenseHandler struct {
	licenseService *services.LicenseService
}

func NewLicenseHandler(licenseService *services.LicenseService) *LicenseHandler {
	return &LicenseHandler{
		licenseService: licenseService,
	}
}

// Activate 激活或续期本公司许可证
func (h *LicenseHandler) Activate(c *gin.Context) {
	employee := middleware.GetCurrentEmployee(c)
	if employee == nil {
		response.Unauthorized(c, "请先登录")
		return
	}

	var req ActivateLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	license, err := h.licenseService.ActivateOrRenew(employee.CompanyID, req.LicenseTypeID, employee.UserID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "许可证激活成功", license)
}

// IncreaseUsers 增加本公司许可证的席位数
func (h *LicenseHandler) IncreaseUsers(c *gin.Context) {
	employee := middleware.GetCurrentEmployee(c)
	if employee == nil {
		response.Unauthorized(c, "请先登录")
		return
	}

	var req IncreaseUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	license, err := h.licenseService.IncreaseTotalUsers(employee.CompanyID, req.TotalUsersToAdd, employee.UserID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "席位增加成功", license)
}

// Capacity 查询本公司席位容量
func (h *LicenseHandler) Capacity(c *gin.Context) {
	employee := middleware.GetCurrentEmployee(c)
	if employee == nil {
		response.Unauthorized(c, "请先登录")
		return
	}

	capacity, err := h.licenseService.CheckCapacity(employee.CompanyID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, capacity)
}

// Info 查询本公司及其生效中许可证的快照
func (h *LicenseHandler) Info(c *gin.Context) {
	employee := middleware.GetCurrentEmployee(c)
	if employee == nil {
		response.Unauthorized(c, "请先登录")
		return
	}

	info, err := h.licenseService.GetCompanyLicenseInfo(employee.CompanyID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, info)
}
