package controller

import (
	"eduboost_backend/internal/service"
	"eduboost_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

// Enroll godoc
// @Summary 为学生选课
// @Tags 选课
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.EnrollRequest true "选课信息"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Failure 409 {object} util.Response "已选该项目"
// @Router /api/enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	var req service.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	enrollment, err := c.EnrollmentService.EnrollStudent(req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

// Withdraw godoc
// @Summary 退课
// @Tags 选课
// @Security ApiKeyAuth
// @Param programId path string true "项目ID"
// @Param studentId query string true "学生ID"
// @Success 200 {object} util.Response
// @Router /api/enrollments/{programId} [delete]
func (c *EnrollmentController) Withdraw(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}
	if err := c.EnrollmentService.Withdraw(studentID, ctx.Param("programId")); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListEnrollments godoc
// @Summary 在读项目
// @Tags 选课
// @Produce json
// @Security ApiKeyAuth
// @Param studentId query string false "教师查看时必填"
// @Success 200 {object} util.Response{data=[]service.EnrollmentView}
// @Router /api/enrollments [get]
func (c *EnrollmentController) ListEnrollments(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}
	enrollments, err := c.EnrollmentService.ListActiveEnrollments(studentID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// EnrolledModules godoc
// @Summary 在读模块及完成度
// @Tags 选课
// @Produce json
// @Security ApiKeyAuth
// @Param studentId query string false "教师查看时必填"
// @Success 200 {object} util.Response{data=service.EnrolledModules}
// @Router /api/enrolled-modules [get]
func (c *EnrollmentController) EnrolledModules(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}
	modules, err := c.EnrollmentService.ListEnrolledModules(ctx.Request.Context(), studentID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}
