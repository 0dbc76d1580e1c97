package handlers

import (
	"strconv"

	"slms/internal/middleware"
	"slms/internal/services"
	"slms/pkg/pagination"
	"slms/pkg/response"

	"github.com/gin-gonic/gin"
)

// RegisterEmployeeRequest 注册员工请求
type RegisterEmployeeRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// GetAll 获取本公司员工列表，支持用户名/姓名筛选和分页
func (h *EmployeeHandler) GetAll(c *gin.Context) {
	employee := middleware.GetCurrentEmployee(c)
	if employee == nil {
		response.Unauthorized(c, "请先登录")
		return
	}

	params := pagination.ParsePageParams(c)
	username := c.Query("username")
	firstName := c.Query("first_name")
	lastName := c.Query("last_name")

	employees, total, err := h.employeeService.GetCompanyEmployees(
		employee.CompanyID, username, firstName, lastName,
		params.GetOffset(), params.GetLimit(),
	)
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}

	pageInfo := pagination.NewPageInfo(params.GetOffset(), params.GetLimit(), total)
	response.SuccessWithPage(c, employees, pageInfo)
}

// Register 在本公司注册新员工，受许可证席位约束
func (h *EmployeeHandler) Register(c *gin.Context) {
	employee := middleware.GetCurrentEmployee(c)
	if employee == nil {
		response.Unauthorized(c, "请先登录")
		return
	}

	var req RegisterEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	newEmployee, err := h.employeeService.RegisterEmployee(employee.CompanyID, &services.RegisterEmployeeParams{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, employee.UserID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "员工注册成功", newEmployee)
}

// Delete 删除本公司员工及其账号
func (h *EmployeeHandler) Delete(c *gin.Context) {
	employee := middleware.GetCurrentEmployee(c)
	if employee == nil {
		response.Unauthorized(c, "请先登录")
		return
	}

	employeeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID格式错误")
		return
	}

	if err := h.employeeService.DeleteEmployee(uint(employeeID), employee); err != nil {
		response.HandleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "员工删除成功", nil)
}
