package controller

import (
	"encoding/json"

	"eduboost_backend/internal/service"
	"eduboost_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthPlanController struct {
	HealthService *service.HealthService
}

func NewHealthPlanController(healthService *service.HealthService) *HealthPlanController {
	return &HealthPlanController{HealthService: healthService}
}

// Submit godoc
// @Summary 提交身心状态自评
// @Tags 健康
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.HealthCheckInput true "自评"
// @Success 200 {object} util.Response{data=service.HealthResult}
// @Failure 400 {object} util.Response
// @Router /api/health-check [post]
func (c *HealthPlanController) Submit(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var input service.HealthCheckInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	_, result, err := c.HealthService.SubmitHealthCheck(userID, input)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Current godoc
// @Summary 最近一次健康计划
// @Tags 健康
// @Produce json
// @Security ApiKeyAuth
// @Param studentId query string false "教师查看时必填"
// @Success 200 {object} util.Response{data=service.HealthResult}
// @Router /api/health-check [get]
func (c *HealthPlanController) Current(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}
	plan, err := c.HealthService.CurrentHealthPlan(studentID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	if plan == nil {
		util.Success(ctx, nil)
		return
	}

	var result service.HealthResult
	if err := json.Unmarshal(plan.Result, &result); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"lastUpdated": plan.LastUpdated,
		"plan":        result,
	})
}
