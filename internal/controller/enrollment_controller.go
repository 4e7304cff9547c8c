package controller

import (
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	Service *service.EnrollmentService
}

func NewEnrollmentController(svc *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{Service: svc}
}

// @Summary 报名课程
// @Description 同一用户对同一课程只能报名一次
// @Tags 报名
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.EnrollReq true "课程ID"
// @Success 201 {object} util.Response{data=model.CourseEnrollment}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	var req service.EnrollReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindingError(ctx, err)
		return
	}

	enrollment, err := c.Service.Enroll(p, req.CourseID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

// @Summary 获取全部报名记录
// @Tags 报名
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.CourseEnrollment}
// @Failure 401 {object} util.Response
// @Router /api/enrollments [get]
func (c *EnrollmentController) ListAll(ctx *gin.Context) {
	enrollments, err := c.Service.ListAll()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// @Summary 获取我的报名
// @Tags 报名
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.CourseEnrollment}
// @Router /api/enrollments/user [get]
func (c *EnrollmentController) ListMine(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	enrollments, err := c.Service.ListForUser(p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// @Summary 获取我已完成的课程
// @Tags 报名
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.CourseEnrollment}
// @Router /api/enrollments/completed [get]
func (c *EnrollmentController) ListCompleted(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	enrollments, err := c.Service.ListCompleted(p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// @Summary 检查是否已报名
// @Tags 报名
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response{data=service.EnrollmentStatus}
// @Router /api/enrollments/check/{courseId} [get]
func (c *EnrollmentController) Check(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	status, err := c.Service.Check(p, ctx.Param("courseId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

// @Summary 获取报名详情
// @Tags 报名
// @Produce json
// @Security BearerAuth
// @Param id path string true "报名ID"
// @Success 200 {object} util.Response{data=model.CourseEnrollment}
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/enrollments/{id} [get]
func (c *EnrollmentController) Get(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	enrollment, err := c.Service.Get(p, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, enrollment)
}

// @Summary 更新学习进度
// @Description 进度范围 0-100，首次达到 100 时记录完成时间
// @Tags 报名
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "报名ID"
// @Param body body service.ProgressReq true "进度"
// @Success 200 {object} util.Response{data=model.CourseEnrollment}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/enrollments/{id}/progress [put]
func (c *EnrollmentController) UpdateProgress(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	var req service.ProgressReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindingError(ctx, err)
		return
	}

	enrollment, err := c.Service.UpdateProgress(p, ctx.Param("id"), *req.Progress)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, enrollment)
}

// @Summary 完成课时
// @Tags 报名
// @Produce json
// @Security BearerAuth
// @Param id path string true "报名ID"
// @Param lessonId path string true "课时ID"
// @Success 200 {object} util.Response{data=model.CourseEnrollment}
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/enrollments/{id}/lessons/{lessonId}/complete [post]
func (c *EnrollmentController) CompleteLesson(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	enrollment, err := c.Service.CompleteLesson(p, ctx.Param("id"), ctx.Param("lessonId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, enrollment)
}

// @Summary 重新计算进度
// @Description 按已完成课时占比重算
// @Tags 报名
// @Produce json
// @Security BearerAuth
// @Param id path string true "报名ID"
// @Success 200 {object} util.Response{data=model.CourseEnrollment}
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/enrollments/{id}/recalculate-progress [put]
func (c *EnrollmentController) RecalculateProgress(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	enrollment, err := c.Service.RecalculateProgress(p, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, enrollment)
}
