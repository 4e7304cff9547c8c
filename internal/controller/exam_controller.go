package controller

import (
	"errors"
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"
	"io"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	Service *service.ExamService
}

func NewExamController(svc *service.ExamService) *ExamController {
	return &ExamController{Service: svc}
}

// @Summary 获取试卷列表
// @Tags 试卷
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Exam}
// @Router /api/exams [get]
func (c *ExamController) List(ctx *gin.Context) {
	exams, err := c.Service.List()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, exams)
}

// @Summary 获取试卷详情
// @Description 返回试卷及按顺序展开的题目
// @Tags 试卷
// @Produce json
// @Security BearerAuth
// @Param id path string true "试卷ID"
// @Success 200 {object} util.Response{data=service.ExamDetail}
// @Failure 404 {object} util.Response
// @Router /api/exams/{id} [get]
func (c *ExamController) Get(ctx *gin.Context) {
	exam, err := c.Service.Get(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// @Summary 按分类获取试卷
// @Tags 试卷
// @Produce json
// @Security BearerAuth
// @Param categoryId path string true "分类ID"
// @Success 200 {object} util.Response{data=[]model.Exam}
// @Router /api/exams/category/{categoryId} [get]
func (c *ExamController) ListByCategory(ctx *gin.Context) {
	exams, err := c.Service.ListByCategory(ctx.Param("categoryId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, exams)
}

// @Summary 按课程获取试卷
// @Tags 试卷
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Exam}
// @Router /api/exams/course/{courseId} [get]
func (c *ExamController) ListByCourse(ctx *gin.Context) {
	exams, err := c.Service.ListByCourse(ctx.Param("courseId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, exams)
}

// @Summary 获取我创建的试卷
// @Tags 试卷
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Exam}
// @Router /api/exams/creator/me [get]
func (c *ExamController) ListMine(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	exams, err := c.Service.ListByCreator(p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, exams)
}

// @Summary 创建试卷
// @Description 新试卷为草稿状态
// @Tags 试卷
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateExamReq true "试卷信息"
// @Success 201 {object} util.Response{data=model.Exam}
// @Failure 400 {object} util.Response
// @Router /api/exams [post]
func (c *ExamController) Create(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	var req service.CreateExamReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindingError(ctx, err)
		return
	}

	exam, err := c.Service.Create(p, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, exam)
}

// @Summary 随机抽题创建试卷
// @Tags 试卷
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.RandomExamReq true "抽题条件"
// @Success 201 {object} util.Response{data=model.Exam}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exams/random [post]
func (c *ExamController) CreateRandom(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	var req service.RandomExamReq
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		util.BindingError(ctx, err)
		return
	}

	exam, err := c.Service.CreateFromRandom(p, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, exam)
}

// @Summary 更新试卷
// @Description 仅创建者可修改
// @Tags 试卷
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "试卷ID"
// @Param body body service.UpdateExamReq true "需要修改的字段"
// @Success 200 {object} util.Response{data=model.Exam}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exams/{id} [put]
func (c *ExamController) Update(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	var req service.UpdateExamReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindingError(ctx, err)
		return
	}

	exam, err := c.Service.Update(p, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// @Summary 发布试卷
// @Description 发布后不可撤回
// @Tags 试卷
// @Produce json
// @Security BearerAuth
// @Param id path string true "试卷ID"
// @Success 200 {object} util.Response{data=model.Exam}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exams/{id}/publish [put]
func (c *ExamController) Publish(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	exam, err := c.Service.Publish(p, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// @Summary 重新抽题
// @Description 按试卷的分类和语言重新随机抽题并替换题目列表
// @Tags 试卷
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "试卷ID"
// @Param body body service.RegenerateReq false "题目数量，默认沿用当前数量"
// @Success 200 {object} util.Response{data=model.Exam}
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exams/{id}/regenerate [put]
func (c *ExamController) Regenerate(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	var req service.RegenerateReq
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		util.BindingError(ctx, err)
		return
	}

	exam, err := c.Service.Regenerate(p, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// @Summary 删除试卷
// @Tags 试卷
// @Produce json
// @Security BearerAuth
// @Param id path string true "试卷ID"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exams/{id} [delete]
func (c *ExamController) Delete(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	if err := c.Service.Delete(p, ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Exam removed"})
}

// @Summary 向试卷添加题目
// @Tags 试卷
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "试卷ID"
// @Param body body service.ExamQuestionReq true "题目ID"
// @Success 200 {object} util.Response{data=model.Exam}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exams/{id}/questions [post]
func (c *ExamController) AddQuestion(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	var req service.ExamQuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindingError(ctx, err)
		return
	}

	exam, err := c.Service.AddQuestion(p, ctx.Param("id"), req.QuestionID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// @Summary 从试卷移除题目
// @Tags 试卷
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "试卷ID"
// @Param body body service.ExamQuestionReq true "题目ID"
// @Success 200 {object} util.Response{data=model.Exam}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exams/{id}/questions [delete]
func (c *ExamController) RemoveQuestion(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	var req service.ExamQuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindingError(ctx, err)
		return
	}

	exam, err := c.Service.RemoveQuestion(p, ctx.Param("id"), req.QuestionID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}
