package controller

import (
	"eduboost_backend/internal/service"
	"eduboost_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ProgressController 成绩录入与模块完成度
type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// RecordProgress godoc
// @Summary 录入考核成绩
// @Description 录入后返回该模块最新的完成度
// @Tags 成绩
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.RecordProgressRequest true "成绩"
// @Success 201 {object} util.Response{data=service.RecordProgressResult}
// @Failure 400 {object} util.Response "分数超出范围"
// @Failure 404 {object} util.Response
// @Router /api/progress [post]
func (c *ProgressController) RecordProgress(ctx *gin.Context) {
	graderID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req service.RecordProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	result, err := c.ProgressService.RecordProgress(ctx.Request.Context(), graderID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, result)
}

// ListProgress godoc
// @Summary 成绩记录
// @Tags 成绩
// @Produce json
// @Security ApiKeyAuth
// @Param studentId query string false "教师查看时必填"
// @Param moduleId query string false "按模块过滤"
// @Success 200 {object} util.Response{data=[]model.StudentProgress}
// @Router /api/progress [get]
func (c *ProgressController) ListProgress(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}
	records, err := c.ProgressService.ListProgress(studentID, ctx.Query("moduleId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// ModuleCompletion godoc
// @Summary 模块完成度
// @Tags 成绩
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模块ID"
// @Param studentId query string false "教师查看时必填"
// @Success 200 {object} util.Response{data=grading.ModuleCompletionSummary}
// @Router /api/modules/{id}/completion [get]
func (c *ProgressController) ModuleCompletion(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}
	summary, err := c.ProgressService.ModuleCompletion(ctx.Request.Context(), studentID, ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// UpsertMarks godoc
// @Summary 录入模块总评
// @Tags 成绩
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.UpsertMarksRequest true "总评"
// @Success 200 {object} util.Response{data=model.ModuleMarks}
// @Router /api/module-marks [put]
func (c *ProgressController) UpsertMarks(ctx *gin.Context) {
	graderID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req service.UpsertMarksRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	marks, err := c.ProgressService.UpsertModuleMarks(ctx.Request.Context(), graderID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, marks)
}

// RepeatModules godoc
// @Summary 需要重修的模块
// @Tags 成绩
// @Produce json
// @Security ApiKeyAuth
// @Param studentId query string false "教师查看时必填"
// @Success 200 {object} util.Response{data=[]service.RepeatModule}
// @Router /api/repeat-modules [get]
func (c *ProgressController) RepeatModules(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}
	modules, err := c.ProgressService.RepeatModules(studentID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

// Grades godoc
// @Summary 成绩总览
// @Tags 成绩
// @Produce json
// @Security ApiKeyAuth
// @Param studentId query string false "教师查看时必填"
// @Success 200 {object} util.Response{data=service.GradesOverview}
// @Router /api/grades [get]
func (c *ProgressController) Grades(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}
	overview, err := c.ProgressService.GradesOverview(studentID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}
