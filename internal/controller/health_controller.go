package controller

import (
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB   *gorm.DB
	Auth *service.AuthService
}

func NewHealthController(db *gorm.DB, auth *service.AuthService) *HealthController {
	return &HealthController{DB: db, Auth: auth}
}

// @Summary 健康检查
// @Description 检查服务状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	// 检查数据库连接
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	if err := sqlDB.Ping(); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database": "up",
		},
	})
}

// Hello 开发环境连通性探测
func (c *HealthController) Hello(ctx *gin.Context) {
	util.Success(ctx, gin.H{"message": "Hello from exam prep backend"})
}

// @Summary 获取开发令牌
// @Description 仅非 release 模式可用
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/dev/token [get]
func (c *HealthController) DevToken(ctx *gin.Context) {
	token, err := c.Auth.DevToken(model.DevPrincipal)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"token": token,
		"user": gin.H{
			"id":   model.DevPrincipal.UserID,
			"role": model.DevPrincipal.Role,
		},
	})
}
