package controller

import (
	"context"
	"net/http"
	"time"

	"eduboost_backend/internal/util"
	"eduboost_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ComponentCheck 依赖组件探活
type ComponentCheck func(ctx context.Context) error

type StatusController struct {
	Checks map[string]ComponentCheck
}

func NewStatusController(checks map[string]ComponentCheck) *StatusController {
	return &StatusController{Checks: checks}
}

// HealthCheck godoc
// @Summary 健康检查
// @Description 检查服务及数据库、Redis 状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response "依赖不可用"
// @Router /api/health [get]
func (c *StatusController) HealthCheck(ctx *gin.Context) {
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	components := gin.H{}
	healthy := true
	for name, check := range c.Checks {
		if err := check(checkCtx); err != nil {
			logger.Log.Warn("health check failed", zap.String("component", name), zap.Error(err))
			components[name] = "down"
			healthy = false
			continue
		}
		components[name] = "up"
	}

	if !healthy {
		ctx.JSON(http.StatusServiceUnavailable, util.Response{
			Code:    http.StatusServiceUnavailable,
			Message: "Dependency unavailable",
			Data:    gin.H{"status": "degraded", "components": components},
		})
		return
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}
