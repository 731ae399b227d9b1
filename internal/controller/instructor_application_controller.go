package controller

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type InstructorApplicationController struct {
	ApplicationService *service.InstructorApplicationService
}

func NewInstructorApplicationController(applicationService *service.InstructorApplicationService) *InstructorApplicationController {
	return &InstructorApplicationController{ApplicationService: applicationService}
}

// ApplyRequest 讲师申请
type ApplyRequest struct {
	DepartmentID *uint  `json:"departmentId"`
	Motivation   string `json:"motivation" binding:"required,min=20"`
}

// Apply godoc
// @Summary 申请成为讲师
// @Description 仅学生可申请，同一用户同时只能有一份待审申请
// @Tags 讲师申请
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body ApplyRequest true "申请信息"
// @Success 201 {object} util.Response{data=model.InstructorApplication}
// @Failure 409 {object} util.Response "已有待审申请"
// @Router /api/instructor-applications [post]
func (c *InstructorApplicationController) Apply(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req ApplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	application, err := c.ApplicationService.Apply(claims.UserID, req.DepartmentID, req.Motivation)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrApplicationPending):
			util.Error(ctx, 409, "已有待审申请")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, application)
}

// ListApplications godoc
// @Summary 讲师申请列表
// @Tags 讲师申请
// @Produce  json
// @Security BearerAuth
// @Param   status query string false "状态过滤 pending/approved/rejected"
// @Param   departmentId query int false "院系过滤"
// @Success 200 {object} util.Response{data=[]model.InstructorApplication}
// @Router /api/admin/instructor-applications [get]
func (c *InstructorApplicationController) ListApplications(ctx *gin.Context) {
	filter := service.ApplicationFilter{
		Status: model.ApplicationStatus(ctx.Query("status")),
	}
	if v := ctx.Query("departmentId"); v != "" {
		if id, err := parseUintQuery(v); err == nil {
			filter.DepartmentID = &id
		}
	}

	applications, err := c.ApplicationService.ListApplications(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, applications)
}

// ReviewRequest 审批
type ReviewRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// Review godoc
// @Summary 审批讲师申请
// @Description 通过后申请人晋升为讲师并归入院系；已终审的工单不可再审
// @Tags 讲师申请
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "申请ID"
// @Param   body body ReviewRequest true "审批意见"
// @Success 200 {object} util.Response{data=model.InstructorApplication}
// @Failure 409 {object} util.Response "已终审"
// @Router /api/admin/instructor-applications/{id} [put]
func (c *InstructorApplicationController) Review(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的申请ID")
		return
	}

	var req ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	application, err := c.ApplicationService.Review(id, claims.UserID, *req.Approve)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrApplicationFinalized):
			util.Error(ctx, 409, "该申请已审批完成")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, application)
}
