package controller

import (
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// @Summary 用户注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body service.SignupReq true "注册信息"
// @Success 201 {object} util.Response{data=service.AuthResult}
// @Failure 400 {object} util.Response
// @Router /api/auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req service.SignupReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindingError(ctx, err)
		return
	}

	result, err := c.AuthService.Signup(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// @Summary 用户登录
// @Description 使用手机号和密码登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body service.LoginReq true "登录信息"
// @Success 200 {object} util.Response{data=service.AuthResult}
// @Failure 400 {object} util.Response
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindingError(ctx, err)
		return
	}

	result, err := c.AuthService.Login(req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 获取当前用户
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	user, err := c.AuthService.CurrentUser(p)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// @Summary 修改手机号
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.UpdatePhoneReq true "新手机号"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response
// @Router /api/auth/phone [put]
func (c *AuthController) UpdatePhone(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	var req service.UpdatePhoneReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindingError(ctx, err)
		return
	}

	user, err := c.AuthService.UpdatePhone(p, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// @Summary 修改密码
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.UpdatePasswordReq true "当前密码和新密码"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/auth/password [put]
func (c *AuthController) UpdatePassword(ctx *gin.Context) {
	p, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	var req service.UpdatePasswordReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BindingError(ctx, err)
		return
	}

	if err := c.AuthService.UpdatePassword(p, req); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Password updated successfully"})
}

// @Summary 获取全部用户
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Failure 401 {object} util.Response
// @Router /api/auth/all [get]
func (c *AuthController) ListUsers(ctx *gin.Context) {
	users, err := c.AuthService.ListUsers()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, users)
}
