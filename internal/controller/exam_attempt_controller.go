package controller

import (
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamAttemptController struct {
	Service *service.ExamAttemptService
}

func NewExamAttemptController(svc *service.ExamAttemptService) *ExamAttemptController {
	return &ExamAttemptController{Service: svc}
}

// @Summary 开始考试
// @Description 仅已发布的试卷可以开始作答
// @Tags 考试作答
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.StartAttemptReq true "试卷ID"
// @Success 201 {object} util.Response{data=model.ExamAttempt}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exam-attempts/start [post]
func (c *ExamAttemptController) Start(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	var req service.StartAttemptReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindingError(ctx, err)
		return
	}

	attempt, err := c.Service.Start(p, req.ExamID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, attempt)
}

// StartByPath POST /exams/:id/start 的别名
func (c *ExamAttemptController) StartByPath(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	attempt, err := c.Service.Start(p, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, attempt)
}

// @Summary 提交答案
// @Description 同一题目重复提交时覆盖之前的答案
// @Tags 考试作答
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.SubmitAnswerReq true "答案"
// @Success 200 {object} util.Response{data=model.ExamAttemptAnswer}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exam-attempts/submit-answer [post]
func (c *ExamAttemptController) SubmitAnswer(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	var req service.SubmitAnswerReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindingError(ctx, err)
		return
	}

	answer, err := c.Service.SubmitAnswer(p, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, answer)
}

// @Summary 完成考试
// @Description 计算得分与是否通过，已完成的作答不能再次完成
// @Tags 考试作答
// @Produce json
// @Security BearerAuth
// @Param id path string true "作答ID"
// @Success 200 {object} util.Response{data=model.ExamAttempt}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exam-attempts/{id}/complete [put]
func (c *ExamAttemptController) Complete(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	attempt, err := c.Service.Complete(p, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}

func (c *ExamAttemptController) list(ctx *gin.Context, filter service.AttemptListFilter) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	attempts, err := c.Service.List(p, filter)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// @Summary 获取我的作答列表
// @Tags 考试作答
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ExamAttempt}
// @Router /api/exam-attempts [get]
func (c *ExamAttemptController) List(ctx *gin.Context) {
	c.list(ctx, service.AttemptsAll)
}

// @Summary 获取我已完成的作答
// @Tags 考试作答
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ExamAttempt}
// @Router /api/exam-attempts/completed [get]
func (c *ExamAttemptController) ListCompleted(ctx *gin.Context) {
	c.list(ctx, service.AttemptsCompleted)
}

// @Summary 获取我已通过的作答
// @Tags 考试作答
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ExamAttempt}
// @Router /api/exam-attempts/passed [get]
func (c *ExamAttemptController) ListPassed(ctx *gin.Context) {
	c.list(ctx, service.AttemptsPassed)
}

// @Summary 获取我在某试卷下的作答
// @Tags 考试作答
// @Produce json
// @Security BearerAuth
// @Param examId path string true "试卷ID"
// @Success 200 {object} util.Response{data=[]model.ExamAttempt}
// @Failure 404 {object} util.Response
// @Router /api/exam-attempts/exam/{examId} [get]
func (c *ExamAttemptController) ListForExam(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	attempts, err := c.Service.ListForExam(p, ctx.Param("examId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// @Summary 获取作答详情
// @Description 只能查看自己的作答，他人的返回 401
// @Tags 考试作答
// @Produce json
// @Security BearerAuth
// @Param id path string true "作答ID"
// @Success 200 {object} util.Response{data=model.ExamAttempt}
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exam-attempts/{id} [get]
func (c *ExamAttemptController) Get(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	attempt, err := c.Service.Get(p, ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}
