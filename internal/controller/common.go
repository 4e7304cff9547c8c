package controller

import (
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// currentPrincipal 未认证时直接写 401
func currentPrincipal(ctx *gin.Context) (model.Principal, bool) {
	p, ok := util.GetPrincipal(ctx)
	if !ok {
		util.Unauthorized(ctx)
	}
	return p, ok
}
