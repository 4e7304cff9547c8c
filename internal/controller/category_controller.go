package controller

import (
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	Service *service.CategoryService
}

func NewCategoryController(svc *service.CategoryService) *CategoryController {
	return &CategoryController{Service: svc}
}

// @Summary 获取分类列表
// @Tags 分类
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Category}
// @Router /api/categories [get]
func (c *CategoryController) List(ctx *gin.Context) {
	categories, err := c.Service.List(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// @Summary 获取分类详情
// @Tags 分类
// @Produce json
// @Param id path string true "分类ID"
// @Success 200 {object} util.Response{data=model.Category}
// @Failure 404 {object} util.Response
// @Router /api/categories/{id} [get]
func (c *CategoryController) Get(ctx *gin.Context) {
	category, err := c.Service.Get(ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, category)
}

// @Summary 创建分类
// @Description 分类名称唯一
// @Tags 分类
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CategoryReq true "分类信息"
// @Success 201 {object} util.Response{data=model.Category}
// @Failure 400 {object} util.Response
// @Router /api/categories [post]
func (c *CategoryController) Create(ctx *gin.Context) {
	var req service.CategoryReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindingError(ctx, err)
		return
	}

	category, err := c.Service.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, category)
}

// @Summary 更新分类
// @Tags 分类
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "分类ID"
// @Param body body service.UpdateCategoryReq true "分类信息"
// @Success 200 {object} util.Response{data=model.Category}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/categories/{id} [put]
func (c *CategoryController) Update(ctx *gin.Context) {
	var req service.UpdateCategoryReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindingError(ctx, err)
		return
	}

	category, err := c.Service.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, category)
}

// @Summary 删除分类
// @Tags 分类
// @Produce json
// @Security BearerAuth
// @Param id path string true "分类ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/categories/{id} [delete]
func (c *CategoryController) Delete(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Category removed"})
}
