package controller

import (
	"eduboost_backend/internal/service"
	"eduboost_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// CatalogController 项目、班级、模块
type CatalogController struct {
	ModuleService *service.ModuleService
}

func NewCatalogController(moduleService *service.ModuleService) *CatalogController {
	return &CatalogController{ModuleService: moduleService}
}

// ListPrograms godoc
// @Summary 项目列表
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Program}
// @Router /api/programs [get]
func (c *CatalogController) ListPrograms(ctx *gin.Context) {
	programs, err := c.ModuleService.ListPrograms()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, programs)
}

// ListMyPrograms godoc
// @Summary 当前教师负责的项目
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Program}
// @Router /api/educator/programs [get]
func (c *CatalogController) ListMyPrograms(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	programs, err := c.ModuleService.ListProgramsByEducator(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, programs)
}

// GetProgram godoc
// @Summary 项目详情
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "项目ID"
// @Success 200 {object} util.Response{data=model.Program}
// @Failure 404 {object} util.Response
// @Router /api/programs/{id} [get]
func (c *CatalogController) GetProgram(ctx *gin.Context) {
	program, err := c.ModuleService.GetProgram(ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, program)
}

// CreateProgram godoc
// @Summary 创建项目
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ProgramRequest true "项目信息"
// @Success 201 {object} util.Response{data=model.Program}
// @Router /api/programs [post]
func (c *CatalogController) CreateProgram(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req service.ProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	program, err := c.ModuleService.CreateProgram(userID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, program)
}

// UpdateProgram godoc
// @Summary 更新项目
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "项目ID"
// @Param body body service.ProgramRequest true "项目信息"
// @Success 200 {object} util.Response{data=model.Program}
// @Router /api/programs/{id} [put]
func (c *CatalogController) UpdateProgram(ctx *gin.Context) {
	var req service.ProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	program, err := c.ModuleService.UpdateProgram(ctx.Param("id"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, program)
}

// DeleteProgram godoc
// @Summary 删除项目
// @Tags 课程
// @Security ApiKeyAuth
// @Param id path string true "项目ID"
// @Success 200 {object} util.Response
// @Router /api/programs/{id} [delete]
func (c *CatalogController) DeleteProgram(ctx *gin.Context) {
	if err := c.ModuleService.DeleteProgram(ctx.Param("id")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListBatches godoc
// @Summary 项目下的班级
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "项目ID"
// @Success 200 {object} util.Response{data=[]model.Batch}
// @Router /api/programs/{id}/batches [get]
func (c *CatalogController) ListBatches(ctx *gin.Context) {
	batches, err := c.ModuleService.ListBatches(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, batches)
}

// CreateBatch godoc
// @Summary 创建班级
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.BatchRequest true "班级信息"
// @Success 201 {object} util.Response{data=model.Batch}
// @Router /api/batches [post]
func (c *CatalogController) CreateBatch(ctx *gin.Context) {
	var req service.BatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	batch, err := c.ModuleService.CreateBatch(req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, batch)
}

// UpdateBatch godoc
// @Summary 更新班级
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "班级ID"
// @Param body body service.BatchRequest true "班级信息"
// @Success 200 {object} util.Response{data=model.Batch}
// @Router /api/batches/{id} [put]
func (c *CatalogController) UpdateBatch(ctx *gin.Context) {
	var req service.BatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	batch, err := c.ModuleService.UpdateBatch(ctx.Param("id"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, batch)
}

// DeleteBatch godoc
// @Summary 删除班级
// @Tags 课程
// @Security ApiKeyAuth
// @Param id path string true "班级ID"
// @Success 200 {object} util.Response
// @Router /api/batches/{id} [delete]
func (c *CatalogController) DeleteBatch(ctx *gin.Context) {
	if err := c.ModuleService.DeleteBatch(ctx.Param("id")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListModules godoc
// @Summary 模块列表
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param programId query string false "按项目过滤"
// @Success 200 {object} util.Response{data=[]model.Module}
// @Router /api/modules [get]
func (c *CatalogController) ListModules(ctx *gin.Context) {
	modules, err := c.ModuleService.ListModules(ctx.Query("programId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

// GetModule godoc
// @Summary 模块详情
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模块ID"
// @Success 200 {object} util.Response{data=model.Module}
// @Failure 404 {object} util.Response
// @Router /api/modules/{id} [get]
func (c *CatalogController) GetModule(ctx *gin.Context) {
	module, err := c.ModuleService.GetModule(ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// CreateModule godoc
// @Summary 创建模块
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ModuleRequest true "模块信息"
// @Success 201 {object} util.Response{data=model.Module}
// @Router /api/modules [post]
func (c *CatalogController) CreateModule(ctx *gin.Context) {
	var req service.ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	module, err := c.ModuleService.CreateModule(req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, module)
}

// UpdateModule godoc
// @Summary 更新模块
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模块ID"
// @Param body body service.ModuleRequest true "模块信息"
// @Success 200 {object} util.Response{data=model.Module}
// @Router /api/modules/{id} [put]
func (c *CatalogController) UpdateModule(ctx *gin.Context) {
	var req service.ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	module, err := c.ModuleService.UpdateModule(ctx.Param("id"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// DeleteModule godoc
// @Summary 删除模块
// @Tags 课程
// @Security ApiKeyAuth
// @Param id path string true "模块ID"
// @Success 200 {object} util.Response
// @Router /api/modules/{id} [delete]
func (c *CatalogController) DeleteModule(ctx *gin.Context) {
	if err := c.ModuleService.DeleteModule(ctx.Param("id")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
