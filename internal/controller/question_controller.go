package controller

import (
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	Service  *service.QuestionService
	Selector *service.SelectorService
}

func NewQuestionController(svc *service.QuestionService, selector *service.SelectorService) *QuestionController {
	return &QuestionController{Service: svc, Selector: selector}
}

// @Summary 获取全部题目
// @Tags 题库
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	questions, err := c.Service.List()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// @Summary 获取题目详情
// @Tags 题库
// @Produce json
// @Security BearerAuth
// @Param id path string true "题目ID"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /api/questions/{id} [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	question, err := c.Service.Get(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// @Summary 按分类获取启用的题目
// @Tags 题库
// @Produce json
// @Security BearerAuth
// @Param categoryId path string true "分类ID"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/questions/category/{categoryId} [get]
func (c *QuestionController) ListByCategory(ctx *gin.Context) {
	questions, err := c.Service.ListByCategory(ctx.Param("categoryId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// @Summary 获取我创建的题目
// @Tags 题库
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/questions/creator/me [get]
func (c *QuestionController) ListMine(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	questions, err := c.Service.ListByCreator(p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// @Summary 随机组卷
// @Description 按语言、分类、难度随机抽取题目，可用题目不足时返回全部
// @Tags 题库
// @Produce json
// @Security BearerAuth
// @Param count query int false "题目数量(1-100)" default(10)
// @Param categoryId query string false "分类ID"
// @Param difficulty query string false "难度" Enums(Easy, Medium, Hard)
// @Param language query string false "语言" Enums(ENG, FRA, KIN) default(KIN)
// @Success 200 {object} util.Response{data=service.AssessmentDescriptor}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/questions/random [get]
func (c *QuestionController) Random(ctx *gin.Context) {
	descriptor, err := c.Selector.Random(service.RandomQuery{
		Count:      ctx.Query("count"),
		CategoryID: ctx.Query("categoryId"),
		Difficulty: ctx.Query("difficulty"),
		Language:   ctx.Query("language"),
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, descriptor)
}

// @Summary 按分类随机组卷
// @Tags 题库
// @Produce json
// @Security BearerAuth
// @Param categoryId path string true "分类ID"
// @Param count query int false "题目数量(1-100)" default(10)
// @Success 200 {object} util.Response{data=service.AssessmentDescriptor}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/questions/random/category/{categoryId} [get]
func (c *QuestionController) RandomByCategory(ctx *gin.Context) {
	descriptor, err := c.Selector.RandomByCategory(ctx.Param("categoryId"), ctx.Query("count"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, descriptor)
}

// @Summary 创建题目
// @Description 必须有 4 个选项且恰有一个正确答案
// @Tags 题库
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateQuestionReq true "题目信息"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Router /api/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	var req service.CreateQuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindingError(ctx, err)
		return
	}

	question, err := c.Service.Create(p, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// @Summary 更新题目
// @Description 仅创建者可修改
// @Tags 题库
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "题目ID"
// @Param body body service.UpdateQuestionReq true "需要修改的字段"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	var req service.UpdateQuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindingError(ctx, err)
		return
	}

	question, err := c.Service.Update(p, ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// @Summary 删除题目
// @Tags 题库
// @Produce json
// @Security BearerAuth
// @Param id path string true "题目ID"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	if err := c.Service.Delete(p, ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Question removed"})
}

const maxBankSize = 5 << 20

// @Summary 导入 YAML 题库
// @Description 按分类批量导入题目，同名分类复用；整个文件在一个事务中写入
// @Tags 题库
// @Accept application/x-yaml
// @Produce json
// @Security BearerAuth
// @Success 201 {object} util.Response{data=service.ImportResult}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/questions/import [post]
func (c *QuestionController) Import(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	bank, err := service.ParseQuestionBank(http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxBankSize))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	result, err := c.Service.Import(p, bank)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, result)
}
