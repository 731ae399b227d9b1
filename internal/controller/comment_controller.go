package controller

import (
	"errors"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentController struct {
	CommentService *service.CommentService
	AuthService    *service.AuthService
}

func NewCommentController(commentService *service.CommentService, authService *service.AuthService) *CommentController {
	return &CommentController{
		CommentService: commentService,
		AuthService:    authService,
	}
}

// CommentRequest 讨论区发言
type CommentRequest struct {
	Message string `json:"message" binding:"required,max=1000"`
}

// PostComment godoc
// @Summary 工作坊讨论区发言
// @Description 学生需先报名才能发言
// @Tags 讨论区
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "工作坊ID"
// @Param   body body CommentRequest true "留言内容"
// @Success 201 {object} util.Response{data=model.Comment}
// @Failure 403 {object} util.Response "未报名"
// @Router /api/workshops/{id}/comments [post]
func (c *CommentController) PostComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	workshopID, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的工作坊ID")
		return
	}

	var req CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userName := ""
	if user := c.AuthService.GetCurrentUser(ctx); user != nil {
		userName = user.Name
	}

	comment, err := c.CommentService.PostComment(workshopID, claims, userName, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrWorkshopNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, comment)
}

// ListComments godoc
// @Summary 工作坊讨论区留言列表
// @Tags 讨论区
// @Produce  json
// @Param   id path int true "工作坊ID"
// @Success 200 {object} util.Response{data=[]model.Comment}
// @Router /api/workshops/{id}/comments [get]
func (c *CommentController) ListComments(ctx *gin.Context) {
	workshopID, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的工作坊ID")
		return
	}

	comments, err := c.CommentService.ListComments(workshopID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, comments)
}

// DeleteComment godoc
// @Summary 删除留言
// @Description 作者本人或管理员可删
// @Tags 讨论区
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "留言ID"
// @Success 200 {object} util.Response
// @Router /api/comments/{id} [delete]
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的留言ID")
		return
	}

	if err := c.CommentService.DeleteComment(id, claims); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
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
