package handlers

import (
	"strconv"

	"slms/internal/middleware"
	"slms/internal/services"
	"slms/pkg/response"

	"github.com/gin-gonic/gin"
)

// RegisterCompanyRequest 公司注册请求（同时创建管理员账号）
type RegisterCompanyRequest struct {
	User    RegisterUserPayload    `json:"user" binding:"required"`
	Company RegisterCompanyPayload `json:"company" binding:"required"`
}

type RegisterUserPayload struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type RegisterCompanyPayload struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

type CompanyHandler struct {
	companyService *services.CompanyService
}

func NewCompanyHandler(companyService *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
	}
}

// Register 注册新公司和管理员账号
func (h *CompanyHandler) Register(c *gin.Context) {
	var req RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	company, admin, err := h.companyService.RegisterCompany(&services.RegisterCompanyParams{
		User: services.RegisterEmployeeParams{
			Username:  req.User.Username,
			Password:  req.User.Password,
			Email:     req.User.Email,
			FirstName: req.User.FirstName,
			LastName:  req.User.LastName,
		},
		Company: services.CompanyParams{
			Name:    req.Company.Name,
			Address: req.Company.Address,
		},
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "公司注册成功", gin.H{
		"company":  company,
		"employee": admin,
	})
}

// RegisterForExistingUser 已登录用户注册新公司并成为其管理员
func (h *CompanyHandler) RegisterForExistingUser(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req RegisterCompanyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	company, err := h.companyService.RegisterCompanyForExistingUser(userID, &services.CompanyParams{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "公司注册成功", company)
}

// Delete 删除公司及其全部关联数据
func (h *CompanyHandler) Delete(c *gin.Context) {
	employee := middleware.GetCurrentEmployee(c)
	if employee == nil {
		response.Unauthorized(c, "请先登录")
		return
	}

	companyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.companyService.DeleteCompany(uint(companyID), employee); err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "公司删除成功", nil)
}
