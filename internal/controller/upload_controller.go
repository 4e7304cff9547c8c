package controller

import (
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	Storage *service.StorageService
}

func NewUploadController(storage *service.StorageService) *UploadController {
	return &UploadController{Storage: storage}
}

func (c *UploadController) upload(ctx *gin.Context, kind service.UploadKind) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		util.HandleError(ctx, util.ErrNoFileUploaded)
		return
	}

	result, err := c.Storage.Upload(ctx.Request.Context(), kind, fh)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 上传视频
// @Description 支持 mp4/webm/ogg，返回时长等信息
// @Tags 上传
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "视频文件"
// @Success 200 {object} util.Response{data=service.UploadResult}
// @Failure 400 {object} util.Response
// @Router /api/upload/video [post]
func (c *UploadController) UploadVideo(ctx *gin.Context) {
	c.upload(ctx, service.VideoUpload)
}

// @Summary 上传文档
// @Description 支持 pdf/doc/docx
// @Tags 上传
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "文档文件"
// @Success 200 {object} util.Response{data=service.UploadResult}
// @Failure 400 {object} util.Response
// @Router /api/upload/document [post]
func (c *UploadController) UploadDocument(ctx *gin.Context) {
	c.upload(ctx, service.DocumentUpload)
}

// @Summary 上传题目图片
// @Tags 上传
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "图片文件"
// @Success 200 {object} util.Response{data=service.UploadResult}
// @Failure 400 {object} util.Response
// @Router /api/upload/question-image [post]
func (c *UploadController) UploadQuestionImage(ctx *gin.Context) {
	c.upload(ctx, service.QuestionImageUpload)
}
