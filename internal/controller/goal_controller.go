package controller

import (
	"eduboost_backend/internal/service"
	"eduboost_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	GoalService *service.GoalService
}

func NewGoalController(goalService *service.GoalService) *GoalController {
	return &GoalController{GoalService: goalService}
}

// CreateGoal godoc
// @Summary 创建学习目标
// @Tags 目标
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateGoalRequest true "目标"
// @Success 201 {object} util.Response{data=model.Goal}
// @Router /api/goals [post]
func (c *GoalController) CreateGoal(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req service.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	goal, err := c.GoalService.CreateGoal(userID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, goal)
}

// ListGoals godoc
// @Summary 学习目标列表
// @Tags 目标
// @Produce json
// @Security ApiKeyAuth
// @Param moduleId query string false "按模块过滤"
// @Param studentId query string false "教师查看时必填"
// @Success 200 {object} util.Response{data=[]model.Goal}
// @Router /api/goals [get]
func (c *GoalController) ListGoals(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}
	goals, err := c.GoalService.ListGoals(studentID, ctx.Query("moduleId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, goals)
}

// ToggleGoal godoc
// @Summary 切换目标完成状态
// @Tags 目标
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "目标ID"
// @Success 200 {object} util.Response{data=model.Goal}
// @Failure 403 {object} util.Response
// @Router /api/goals/{id}/toggle [patch]
func (c *GoalController) ToggleGoal(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	goal, err := c.GoalService.ToggleGoal(userID, ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, goal)
}

// DeleteGoal godoc
// @Summary 删除目标
// @Tags 目标
// @Security ApiKeyAuth
// @Param id path string true "目标ID"
// @Success 200 {object} util.Response
// @Router /api/goals/{id} [delete]
func (c *GoalController) DeleteGoal(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	if err := c.GoalService.DeleteGoal(userID, ctx.Param("id")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
