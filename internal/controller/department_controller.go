package controller

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DepartmentController struct {
	DepartmentService *service.DepartmentService
}

func NewDepartmentController(departmentService *service.DepartmentService) *DepartmentController {
	return &DepartmentController{DepartmentService: departmentService}
}

// DepartmentRequest 院系创建/更新请求
type DepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code" binding:"required,alphanum"`
	Description string `json:"description"`
}

// CreateDepartment godoc
// @Summary 创建院系
// @Tags 院系
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body DepartmentRequest true "院系信息"
// @Success 201 {object} util.Response{data=model.Department}
// @Failure 409 {object} util.Response "代码已占用"
// @Router /api/admin/departments [post]
func (c *DepartmentController) CreateDepartment(ctx *gin.Context) {
	var req DepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	department := &model.Department{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	}
	if err := c.DepartmentService.CreateDepartment(department); err != nil {
		if errors.Is(err, util.ErrDepartmentCodeTaken) {
			util.Error(ctx, 409, "院系代码已被占用")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, department)
}

// ListDepartments godoc
// @Summary 院系列表
// @Tags 院系
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Department}
// @Router /api/departments [get]
func (c *DepartmentController) ListDepartments(ctx *gin.Context) {
	departments, err := c.DepartmentService.ListDepartments()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, departments)
}

// GetDepartment godoc
// @Summary 院系详情
// @Tags 院系
// @Produce  json
// @Param   id path int true "院系ID"
// @Success 200 {object} util.Response{data=model.Department}
// @Failure 404 {object} util.Response
// @Router /api/departments/{id} [get]
func (c *DepartmentController) GetDepartment(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的院系ID")
		return
	}

	department, err := c.DepartmentService.GetDepartment(id)
	if err != nil {
		if errors.Is(err, util.ErrDepartmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, department)
}

// GetDepartmentStats godoc
// @Summary 院系统计概况
// @Description 学生数、讲师数、课程数和工作坊数
// @Tags 院系
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "院系ID"
// @Success 200 {object} util.Response{data=service.DepartmentStats}
// @Router /api/departments/{id}/stats [get]
func (c *DepartmentController) GetDepartmentStats(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的院系ID")
		return
	}

	stats, err := c.DepartmentService.GetDepartmentStats(id)
	if err != nil {
		if errors.Is(err, util.ErrDepartmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, stats)
}

// UpdateDepartment godoc
// @Summary 更新院系
// @Tags 院系
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "院系ID"
// @Param   body body DepartmentRequest true "院系信息"
// @Success 200 {object} util.Response{data=model.Department}
// @Router /api/admin/departments/{id} [put]
func (c *DepartmentController) UpdateDepartment(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的院系ID")
		return
	}

	var req struct {
		Name        string `json:"name"`
		Code        string `json:"code"`
		Description string `json:"description"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	department, err := c.DepartmentService.UpdateDepartment(id, req.Name, req.Code, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrDepartmentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrDepartmentCodeTaken):
			util.Error(ctx, 409, "院系代码已被占用")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, department)
}

// DeleteDepartment godoc
// @Summary 删除院系
// @Tags 院系
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "院系ID"
// @Success 200 {object} util.Response
// @Router /api/admin/departments/{id} [delete]
func (c *DepartmentController) DeleteDepartment(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的院系ID")
		return
	}

	if err := c.DepartmentService.DeleteDepartment(id); err != nil {
		if errors.Is(err, util.ErrDepartmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
