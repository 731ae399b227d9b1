package controller

import (
	"errors"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CertificateController struct {
	CertificateService *service.CertificateService
}

func NewCertificateController(certificateService *service.CertificateService) *CertificateController {
	return &CertificateController{CertificateService: certificateService}
}

// IssueRequest 批量颁发请求，studentIds 为空表示对全部已报名学生颁发
type IssueRequest struct {
	StudentIDs []uint `json:"studentIds"`
}

// IssueCertificates godoc
// @Summary 批量颁发结业证书
// @Description 已持有证书的学生自动跳过，证书编号为UUID
// @Tags 证书
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "工作坊ID"
// @Param   body body IssueRequest true "学生列表"
// @Success 200 {object} util.Response{data=service.IssueResult}
// @Router /api/workshops/{id}/certificates [post]
func (c *CertificateController) IssueCertificates(ctx *gin.Context) {
	workshopID, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的工作坊ID")
		return
	}

	var req IssueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.CertificateService.IssueCertificates(workshopID, req.StudentIDs)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// GetMyCertificates godoc
// @Summary 我的证书
// @Tags 证书
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Certificate}
// @Router /api/certificates/mine [get]
func (c *CertificateController) GetMyCertificates(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	certs, err := c.CertificateService.GetMyCertificates(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, certs)
}

// GetWorkshopCertificates godoc
// @Summary 工作坊已颁发证书
// @Tags 证书
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "工作坊ID"
// @Success 200 {object} util.Response{data=[]model.Certificate}
// @Router /api/workshops/{id}/certificates [get]
func (c *CertificateController) GetWorkshopCertificates(ctx *gin.Context) {
	workshopID, err := parseUintParam(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "无效的工作坊ID")
		return
	}

	certs, err := c.CertificateService.GetWorkshopCertificates(workshopID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, certs)
}

// ListCertificates godoc
// @Summary 全部证书
// @Tags 证书
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Certificate}
// @Router /api/admin/certificates [get]
func (c *CertificateController) ListCertificates(ctx *gin.Context) {
	certs, err := c.CertificateService.ListCertificates()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, certs)
}
