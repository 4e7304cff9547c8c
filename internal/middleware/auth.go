package middleware

import (
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/util"
	"exam_prep_backend/pkg/logger"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware 解析 Bearer 令牌并注入 Principal；
// 非 release 模式下未携带 Authorization 头的请求使用开发身份
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		if tokenString == "" {
			if authHeader == "" && !cfg.Server.IsRelease() {
				util.SetPrincipal(c, model.DevPrincipal)
				c.Next()
				return
			}
			util.Error(c, http.StatusUnauthorized, "No token, authorization denied")
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			logger.Log.Debug("JWT parse failed", zap.Error(err))
			util.Error(c, http.StatusUnauthorized, "Token is not valid")
			c.Abort()
			return
		}

		util.SetPrincipal(c, model.Principal{UserID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}

// RoleMiddleware 管理员直接放行
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := util.GetPrincipal(c)
		if !ok {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := p.IsAdmin()
		for _, role := range roles {
			if p.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Error(c, http.StatusUnauthorized, "Not authorized for this action")
			c.Abort()
			return
		}
		c.Next()
	}
}
