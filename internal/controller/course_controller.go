package controller

import (
	"errors"
	"strconv"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// CourseRequest 课程创建/更新请求
// swagger:model CourseRequest
type CourseRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	InstructorID uint   `json:"instructorId"`
	Category     string `json:"category"`
	Level        string `json:"level"`
	Thumbnail    string `json:"thumbnail"`
	VideoURL     string `json:"videoUrl"`
	DepartmentID *uint  `json:"departmentId"`
}

// CreateCourse godoc
// @Summary 创建课程
// @Description 讲师只能以自己的名义开课，管理员可代任意讲师开课
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if req.InstructorID == 0 {
		req.InstructorID = claims.UserID
	}

	course := &model.Course{
		Title:        req.Title,
		Description:  req.Description,
		InstructorID: req.InstructorID,
		Category:     req.Category,
		Level:        req.Level,
		Thumbnail:    req.Thumbnail,
		VideoURL:     req.VideoURL,
		DepartmentID: req.DepartmentID,
	}

	if err := c.CourseService.CreateCourse(course, claims); err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound):
			util.BadRequest(ctx, "讲师不存在")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, course)
}

// ListCourses godoc
// @Summary 课程列表
// @Description 支持按院系/讲师过滤；mine=1 时返回当前学生已选课程
// @Tags 课程
// @Produce  json
// @Param   departmentId query int false "院系过滤"
// @Param   instructorId query int false "讲师过滤"
// @Param   mine query bool false "只看我已选的"
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	var filter service.CourseFilter

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

	courses, err := c.CourseService.ListCourses(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary 课程详情
// @Tags 课程
// @Produce  json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	course, err := c.CourseService.GetCourse(id)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// UpdateCourse godoc
// @Summary 更新课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body CourseRequest true "课程信息"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	course, err := c.CourseService.GetCourse(id)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Category = req.Category
	course.Level = req.Level
	if req.Thumbnail != "" {
		course.Thumbnail = req.Thumbnail
	}
	if req.VideoURL != "" {
		course.VideoURL = req.VideoURL
	}

	if err := c.CourseService.UpdateCourse(course, claims); err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary 删除课程
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	if err := c.CourseService.DeleteCourse(id, claims); err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Enroll godoc
// @Summary 学生选课
// @Description 写入报名记录并初始化学习进度，返回初始化后的进度
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 201 {object} util.Response{data=model.CourseProgress}
// @Failure 409 {object} util.Response "重复选课"
// @Router /api/courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	progress, err := c.CourseService.Enroll(id, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.Error(ctx, 409, "已选过这门课")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, progress)
}
