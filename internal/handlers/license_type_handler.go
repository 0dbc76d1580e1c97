package handlers

import (
	"strconv"

	"slms/internal/services"
	"slms/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateLicenseTypeRequest 创建许可证类型请求
type CreateLicenseTypeRequest struct {
	Name         string           `json:"name" binding:"required"`
	Duration     int              `json:"duration" binding:"required,min=1"`
	DurationType string           `json:"duration_type" binding:"required,duration_type"`
	PricePerUser *decimal.Decimal `json:"price_per_user" binding:"required"`
}

// UpdateLicenseTypeRequest 部分更新请求，缺省字段不修改
type UpdateLicenseTypeRequest struct {
	Name         *string          `json:"name"`
	Duration     *int             `json:"duration" binding:"omitempty,min=1"`
	DurationType *string          `json:"duration_type" binding:"omitempty,duration_type"`
	PricePerUser *decimal.Decimal `json:"price_per_user"`
}

type LicenseTypeHandler struct {
	service *services.LicenseTypeService
}

func NewLicenseTypeHandler(service *services.LicenseTypeService) *LicenseTypeHandler {
	return &LicenseTypeHandler{
		service: service,
	}
}

// Create 创建许可证类型（同名已存在时返回已有记录）
func (h *LicenseTypeHandler) Create(c *gin.Context) {
	var req CreateLicenseTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	licenseType, created, err := h.service.CreateOrGet(req.Name, req.Duration, req.DurationType, *req.PricePerUser)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if created {
		response.SuccessWithMessage(c, "许可证类型创建成功", licenseType)
		return
	}
	response.SuccessWithMessage(c, "同名许可证类型已存在", licenseType)
}

// Update 部分更新许可证类型
func (h *LicenseTypeHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	var req UpdateLicenseTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	licenseType, err := h.service.Update(uint(id), services.UpdateLicenseTypeParams{
		Name:         req.Name,
		Duration:     req.Duration,
		DurationType: req.DurationType,
		PricePerUser: req.PricePerUser,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, licenseType)
}

// GetByID 获取许可证类型
func (h *LicenseTypeHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	licenseType, err := h.service.GetByID(uint(id))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, licenseType)
}

// GetAll 获取全部许可证类型
func (h *LicenseTypeHandler) GetAll(c *gin.Context) {
	licenseTypes, err := h.service.GetAll()
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	response.Success(c, licenseTypes)
}
