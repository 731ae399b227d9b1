package controller

import (
	"strconv"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ProgressController 学习进度接口。
// 观看时长上报和完成状态切换对不存在的进度记录静默成功，
// 前端在选课落库前的上报不会收到错误。
type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// GetMyProgress godoc
// @Summary 我的全部课程进度
// @Tags 学习进度
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.CourseProgress}
// @Router /api/progress [get]
func (c *ProgressController) GetMyProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	list, err := c.ProgressService.GetUserProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// GetCourseProgress godoc
// @Summary 单门课程的学习进度
// @Tags 学习进度
// @Produce  json
// @Security BearerAuth
// @Param   courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=model.CourseProgress}
// @Failure 404 {object} util.Response "未选课"
// @Router /api/progress/{courseId} [get]
func (c *ProgressController) GetCourseProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, err := parseUintParam(ctx, "courseId")
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	progress, err := c.ProgressService.GetCourseProgress(claims.UserID, courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if progress == nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, gin.H{
		"progress":       progress,
		"totalTimeSpent": service.FormatTimeSpent(progress.TotalTimeSpent),
	})
}

// WatchTimeRequest 观看时长上报，由播放端攒批后调用
// swagger:model WatchTimeRequest
type WatchTimeRequest struct {
	LessonID        uint `json:"lessonId" binding:"required"`
	WatchedSeconds  int  `json:"watchedSeconds" binding:"required,min=1"`
	CurrentPosition int  `json:"currentPosition" binding:"min=0"`
}

// RecordWatchTime godoc
// @Summary 上报观看时长
// @Description 累计视频观看秒数并刷新连续学习天数，不触发成就评估
// @Tags 学习进度
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   courseId path int true "课程ID"
// @Param   body body WatchTimeRequest true "观看数据"
// @Success 200 {object} util.Response
// @Router /api/progress/{courseId}/watch [post]
func (c *ProgressController) RecordWatchTime(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, err := parseUintParam(ctx, "courseId")
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}

	var req WatchTimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err = c.ProgressService.RecordWatchTime(claims.UserID, courseID, req.LessonID, req.WatchedSeconds, req.CurrentPosition)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// LessonCompletionRequest 完成状态切换
// swagger:model LessonCompletionRequest
type LessonCompletionRequest struct {
	Completed      *bool `json:"completed" binding:"required"`
	AdditionalTime int   `json:"additionalTime" binding:"min=0"`
}

// SetLessonCompletion godoc
// @Summary 切换课时完成状态
// @Description 重算完成百分比与连续天数，并做成就评估；取消完成不清除完成时间
// @Tags 学习进度
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   courseId path int true "课程ID"
// @Param   lessonId path int true "课时ID"
// @Param   body body LessonCompletionRequest true "完成状态"
// @Success 200 {object} util.Response
// @Router /api/progress/{courseId}/lessons/{lessonId} [put]
func (c *ProgressController) SetLessonCompletion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, err := parseUintParam(ctx, "courseId")
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return
	}
	lessonID, err := parseUintParam(ctx, "lessonId")
	if err != nil {
		util.BadRequest(ctx, "无效的课时ID")
		return
	}

	var req LessonCompletionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err = c.ProgressService.SetLessonCompletion(claims.UserID, courseID, lessonID, *req.Completed, req.AdditionalTime)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GetAchievementCatalog godoc
// @Summary 成就详情
// @Description 按成就ID返回标题、描述和图标，前端渲染成就墙用
// @Tags 学习进度
// @Produce  json
// @Param   id path string true "成就ID"
// @Success 200 {object} util.Response{data=service.AchievementDetail}
// @Router /api/achievements/{id} [get]
func (c *ProgressController) GetAchievementCatalog(ctx *gin.Context) {
	util.Success(ctx, service.GetAchievementDetails(ctx.Param("id")))
}

func parseUintParam(ctx *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	return uint(v), err
}

func parseUintQuery(value string) (uint, error) {
	v, err := strconv.ParseUint(value, 10, 32)
	return uint(v), err
}
