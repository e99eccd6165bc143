package controller

import (
	"time"

	"eduboost_backend/internal/service"
	"eduboost_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	ModuleService  *service.ModuleService
	StorageService *service.StorageService
}

func NewAssessmentController(moduleService *service.ModuleService, storageService *service.StorageService) *AssessmentController {
	return &AssessmentController{
		ModuleService:  moduleService,
		StorageService: storageService,
	}
}

// ActivateRequest 激活作业时提交的截止时间
type ActivateRequest struct {
	DueDate time.Time `json:"dueDate" binding:"required"`
}

// ListByModule godoc
// @Summary 模块下的考核
// @Tags 考核
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模块ID"
// @Success 200 {object} util.Response{data=[]model.Assessment}
// @Router /api/modules/{id}/assessments [get]
func (c *AssessmentController) ListByModule(ctx *gin.Context) {
	assessments, err := c.ModuleService.ListAssessmentsByModule(ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, assessments)
}

// ListMine godoc
// @Summary 当前教师创建的考核
// @Tags 考核
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Assessment}
// @Router /api/educator/assessments [get]
func (c *AssessmentController) ListMine(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	assessments, err := c.ModuleService.ListAssessmentsByEducator(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assessments)
}

// Create godoc
// @Summary 创建考核
// @Description type 取值 exam / practical / assignment，maxScore 缺省为 100
// @Tags 考核
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模块ID"
// @Param body body service.AssessmentRequest true "考核信息"
// @Success 201 {object} util.Response{data=model.Assessment}
// @Failure 400 {object} util.Response
// @Router /api/modules/{id}/assessments [post]
func (c *AssessmentController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	assessment, err := c.ModuleService.CreateAssessment(userID, ctx.Param("id"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, assessment)
}

// Get godoc
// @Summary 考核详情
// @Tags 考核
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "考核ID"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Router /api/assessments/{id} [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	assessment, err := c.ModuleService.GetAssessment(ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, assessment)
}

// Update godoc
// @Summary 更新考核
// @Tags 考核
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "考核ID"
// @Param body body service.AssessmentRequest true "考核信息"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Router /api/assessments/{id} [put]
func (c *AssessmentController) Update(ctx *gin.Context) {
	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	assessment, err := c.ModuleService.UpdateAssessment(ctx.Param("id"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, assessment)
}

// Delete godoc
// @Summary 删除考核
// @Tags 考核
// @Security ApiKeyAuth
// @Param id path string true "考核ID"
// @Success 200 {object} util.Response
// @Router /api/assessments/{id} [delete]
func (c *AssessmentController) Delete(ctx *gin.Context) {
	if err := c.ModuleService.DeleteAssessment(ctx.Param("id")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListTemplates godoc
// @Summary 模块作业模板列表
// @Tags 作业
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模块ID"
// @Success 200 {object} util.Response{data=[]model.AssignmentTemplate}
// @Router /api/modules/{id}/templates [get]
func (c *AssessmentController) ListTemplates(ctx *gin.Context) {
	templates, err := c.ModuleService.ListAssignmentTemplates(ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, templates)
}

// CreateTemplate godoc
// @Summary 创建作业模板
// @Tags 作业
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模块ID"
// @Param body body service.TemplateRequest true "模板信息"
// @Success 201 {object} util.Response{data=model.AssignmentTemplate}
// @Router /api/modules/{id}/templates [post]
func (c *AssessmentController) CreateTemplate(ctx *gin.Context) {
	var req service.TemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	tpl, err := c.ModuleService.CreateAssignmentTemplate(ctx.Param("id"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, tpl)
}

// GetTemplate godoc
// @Summary 作业模板详情
// @Tags 作业
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模块ID"
// @Param templateId path string true "模板ID"
// @Success 200 {object} util.Response{data=model.AssignmentTemplate}
// @Router /api/modules/{id}/templates/{templateId} [get]
func (c *AssessmentController) GetTemplate(ctx *gin.Context) {
	tpl, err := c.ModuleService.GetAssignmentTemplate(ctx.Param("id"), ctx.Param("templateId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, tpl)
}

// UpdateTemplate godoc
// @Summary 更新作业模板
// @Tags 作业
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模块ID"
// @Param templateId path string true "模板ID"
// @Param body body service.TemplateRequest true "模板信息"
// @Success 200 {object} util.Response{data=model.AssignmentTemplate}
// @Router /api/modules/{id}/templates/{templateId} [put]
func (c *AssessmentController) UpdateTemplate(ctx *gin.Context) {
	var req service.TemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	tpl, err := c.ModuleService.UpdateAssignmentTemplate(ctx.Param("id"), ctx.Param("templateId"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, tpl)
}

// DeleteTemplate godoc
// @Summary 删除作业模板
// @Tags 作业
// @Security ApiKeyAuth
// @Param id path string true "模块ID"
// @Param templateId path string true "模板ID"
// @Success 200 {object} util.Response
// @Router /api/modules/{id}/templates/{templateId} [delete]
func (c *AssessmentController) DeleteTemplate(ctx *gin.Context) {
	if err := c.ModuleService.DeleteAssignmentTemplate(ctx.Param("id"), ctx.Param("templateId")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadReference godoc
// @Summary 上传作业参考资料
// @Tags 作业
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模块ID"
// @Param templateId path string true "模板ID"
// @Param file formData file true "参考文件 (pdf/zip/txt/图片)"
// @Success 200 {object} util.Response{data=model.AssignmentTemplate}
// @Failure 400 {object} util.Response "文件类型不支持"
// @Router /api/modules/{id}/templates/{templateId}/reference [post]
func (c *AssessmentController) UploadReference(ctx *gin.Context) {
	moduleID, templateID := ctx.Param("id"), ctx.Param("templateId")
	if _, err := c.ModuleService.GetAssignmentTemplate(moduleID, templateID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.StorageService.SaveUpload(ctx.Request.Context(), "references", fileHeader.Filename, file, fileHeader.Size, util.AllowedReferenceTypes)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	tpl, err := c.ModuleService.AttachReference(moduleID, templateID, url)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, tpl)
}

// Activate godoc
// @Summary 激活作业
// @Description 截止时间必须晚于当前时间
// @Tags 作业
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模块ID"
// @Param templateId path string true "模板ID"
// @Param body body ActivateRequest true "截止时间"
// @Success 200 {object} util.Response{data=model.AssignmentTemplate}
// @Failure 400 {object} util.Response
// @Router /api/modules/{id}/templates/{templateId}/activate [post]
func (c *AssessmentController) Activate(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req ActivateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	tpl, err := c.ModuleService.ActivateAssignment(ctx.Param("id"), ctx.Param("templateId"), req.DueDate, userID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, tpl)
}

// Deactivate godoc
// @Summary 停用作业
// @Tags 作业
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "模块ID"
// @Param templateId path string true "模板ID"
// @Success 200 {object} util.Response{data=model.AssignmentTemplate}
// @Router /api/modules/{id}/templates/{templateId}/deactivate [post]
func (c *AssessmentController) Deactivate(ctx *gin.Context) {
	tpl, err := c.ModuleService.DeactivateAssignment(ctx.Param("id"), ctx.Param("templateId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, tpl)
}

// ActiveForStudent godoc
// @Summary 学生当前需要完成的作业
// @Tags 作业
// @Produce json
// @Security ApiKeyAuth
// @Param studentId query string false "教师查看时必填"
// @Success 200 {object} util.Response{data=[]service.ActiveAssignment}
// @Router /api/assignments/active [get]
func (c *AssessmentController) ActiveForStudent(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}
	assignments, err := c.ModuleService.ListActiveAssignmentsForStudent(studentID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}
