package controller

import (
	"errors"
	"strconv"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type WorkshopController struct {
	WorkshopService *service.WorkshopService
}

func NewWorkshopController(workshopService *service.WorkshopService) *WorkshopController {
	return &WorkshopController{WorkshopService: workshopService}
}

// SessionRequest 工作坊场次
type SessionRequest struct {
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

// WorkshopRequest 工作坊创建/更新请求
// swagger:model WorkshopRequest
type WorkshopRequest struct {
	Title        string           `json:"title" binding:"required"`
	Description  string           `json:"description"`
	InstructorID uint             `json:"instructorId"`
	Category     string           `json:"category"`
	Thumbnail    string           `json:"thumbnail"`
	MaxStudents  int              `json:"maxStudents"`
	Status       string           `json:"status"`
	DepartmentID *uint            `json:"departmentId"`
	Sessions     []SessionRequest `json:"sessions"`
}

func parseSessions(reqs []SessionRequest) ([]model.WorkshopSession, error) {
	if reqs == nil {
		return nil, nil
	}
	sessions := make([]model.WorkshopSession, len(reqs))
	for i, r := range reqs {
		date, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			return nil, err
		}
		sessions[i] = model.WorkshopSession{
			Date:      date,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
		}
	}
	return sessions, nil
}

// CreateWorkshop godoc
// @Summary 创建工作坊
// @Description 必须归属院系，场次随创建一并写入
// @Tags 工作坊
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body WorkshopRequest true "工作坊信息"
// @Success 201 {object} util.Response{data=model.Workshop}
// @Router /api/workshops [post]
func (c *WorkshopController) CreateWorkshop(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req WorkshopRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sessions, err := parseSessions(req.Sessions)
	if err != nil {
		util.BadRequest(ctx, "场次日期格式应为 YYYY-MM-DD")
		return
	}

	if req.InstructorID == 0 {
		req.InstructorID = claims.UserID
	}
	departmentID := req.DepartmentID
	if departmentID == nil {
		departmentID = claims.DepartmentID
	}

	workshop := &model.Workshop{
		Title:        req.Title,
		Description:  req.Description,
		InstructorID: req.InstructorID,
		Category:     req.Category,
		Thumbnail:    req.Thumbnail,
		MaxStudents:  req.MaxStudents,
		Status:       model.WorkshopStatus(req.Status),
		DepartmentID: departmentID,
		Sessions:     sessions,
	}

	if err := c.WorkshopService.CreateWorkshop(workshop); err != nil {
		switch {
		case errors.Is(err, util.ErrDepartmentRequired):
			util.BadRequest(ctx, "工作坊必须归属院系")
		case errors.Is(err, util.ErrUserNotFound):
			util.BadRequest(ctx, "讲师不存在")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, workshop)
}

// ListWorkshops godoc
// @Summary 工作坊列表
// @Tags 工作坊
// @Produce  json
// @Param   departmentId query int false "院系过滤"
// @Param   instructorId query int false "讲师过滤"
// @Param   mine query bool false "只看我已报名的"
// @Success 200 {object} util.Response{data=[]model.Workshop}
// @Router /api/workshops [get]
func (c *WorkshopController) ListWorkshops(ctx *gin.Context) {
	var filter service.WorkshopFilter

	if ctx.Query("mine") == "1" || ctx.Query("mine") == "true" {
		claims := util.GetUserFromContext(ctx)
		if claims == nil {
			util.Unauthorized(ctx)
			return
		}
		filter.StudentID = &claims.UserID
	}
	if v := ctx.Query("departmentId"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			deptID := uint(id)
			filter.DepartmentID = &deptID
		}
	}
	if v := ctx.Query("instructorId"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			instID := uint(id)
			filter.InstructorID = &instID
		}
	}

	workshops, err := c.WorkshopService.ListWorkshops(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, workshops)
}

// GetWorkshop godoc
// @Summary 工作坊详情（含报名人数）
// @Tags 工作坊
// @Produce  json
// @Param   id path int true "工作坊ID"
// @Success 200 {object} util.Response{data=service.WorkshopView}
// @Failure 404 {object} util.Response
// @Router /api/workshops/{id} [get]
func (c *WorkshopController) GetWorkshop(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的工作坊ID")
		return
	}

	view, err := c.WorkshopService.GetWorkshop(id)
	if err != nil {
		if errors.Is(err, util.ErrWorkshopNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// UpdateWorkshop godoc
// @Summary 更新工作坊
// @Description 场次为整体替换，传 null 表示不动场次；更新后通知已报名学生
// @Tags 工作坊
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "工作坊ID"
// @Param   body body WorkshopRequest true "工作坊信息"
// @Success 200 {object} util.Response{data=model.Workshop}
// @Router /api/workshops/{id} [put]
func (c *WorkshopController) UpdateWorkshop(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的工作坊ID")
		return
	}

	view, err := c.WorkshopService.GetWorkshop(id)
	if err != nil {
		if errors.Is(err, util.ErrWorkshopNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	var req WorkshopRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sessions, err := parseSessions(req.Sessions)
	if err != nil {
		util.BadRequest(ctx, "场次日期格式应为 YYYY-MM-DD")
		return
	}

	workshop := view.Workshop
	workshop.Title = req.Title
	workshop.Description = req.Description
	workshop.Category = req.Category
	if req.Thumbnail != "" {
		workshop.Thumbnail = req.Thumbnail
	}
	if req.MaxStudents > 0 {
		workshop.MaxStudents = req.MaxStudents
	}
	if req.Status != "" {
		workshop.Status = model.WorkshopStatus(req.Status)
	}

	if err := c.WorkshopService.UpdateWorkshop(&workshop, sessions); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, workshop)
}

// DeleteWorkshop godoc
// @Summary 删除工作坊
// @Tags 工作坊
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "工作坊ID"
// @Success 200 {object} util.Response
// @Router /api/workshops/{id} [delete]
func (c *WorkshopController) DeleteWorkshop(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的工作坊ID")
		return
	}

	if err := c.WorkshopService.DeleteWorkshop(id); err != nil {
		if errors.Is(err, util.ErrWorkshopNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Enroll godoc
// @Summary 报名工作坊
// @Tags 工作坊
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "工作坊ID"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response "已满员或重复报名"
// @Router /api/workshops/{id}/enroll [post]
func (c *WorkshopController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的工作坊ID")
		return
	}

	if err := c.WorkshopService.Enroll(id, claims.UserID); err != nil {
		switch {
		case errors.Is(err, util.ErrWorkshopNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.Error(ctx, 409, "已报名过该工作坊")
		case errors.Is(err, util.ErrWorkshopFull):
			util.Error(ctx, 409, "工作坊已满员")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, nil)
}

// LiveRequest 开播/停播
type LiveRequest struct {
	IsLive       *bool  `json:"isLive" binding:"required"`
	VimeoLiveURL string `json:"vimeoLiveUrl"`
}

// SetSessionLive godoc
// @Summary 场次开播/停播
// @Description 开播时给所有已报名学生发直播通知
// @Tags 工作坊
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "工作坊ID"
// @Param   sessionId path int true "场次ID"
// @Param   body body LiveRequest true "直播状态"
// @Success 200 {object} util.Response
// @Router /api/workshops/{id}/sessions/{sessionId}/live [put]
func (c *WorkshopController) SetSessionLive(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的工作坊ID")
		return
	}
	sessionID, err := parseUintParam(ctx, "sessionId")
	if err != nil {
		util.BadRequest(ctx, "无效的场次ID")
		return
	}

	var req LiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.WorkshopService.SetSessionLive(id, sessionID, *req.IsLive, req.VimeoLiveURL); err != nil {
		if errors.Is(err, util.ErrWorkshopNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
