package util

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrUserNotFound        = errors.New("用户不存在")
	ErrEmailRegistered     = errors.New("该邮箱已被注册")
	ErrInvalidCredentials  = errors.New("邮箱或密码错误")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrProgramNotFound     = errors.New("program not found")
	ErrBatchNotFound       = errors.New("batch not found")
	ErrModuleNotFound      = errors.New("module not found")
	ErrAssessmentNotFound  = errors.New("assessment not found")
	ErrTemplateNotFound    = errors.New("assignment template not found")
	ErrStudentNotFound     = errors.New("student not found")
	ErrGoalNotFound        = errors.New("goal not found")
	ErrAlreadyEnrolled     = errors.New("student already enrolled in program")
	ErrInvalidScore        = errors.New("score must be between 0 and the assessment max score")
	ErrInvalidMarks        = errors.New("marks must be between 0 and 100")
	ErrInvalidAssessment   = errors.New("invalid assessment type or max score")
	ErrInvalidHealthInput  = errors.New("invalid health check input")
	ErrInvalidDueDate      = errors.New("due date must be in the future")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrValidation          = errors.New("invalid request")
)

var notFoundErrors = []error{
	ErrUserNotFound,
	ErrProgramNotFound,
	ErrBatchNotFound,
	ErrModuleNotFound,
	ErrAssessmentNotFound,
	ErrTemplateNotFound,
	ErrStudentNotFound,
	ErrGoalNotFound,
}

var badRequestErrors = []error{
	ErrInvalidScore,
	ErrInvalidMarks,
	ErrInvalidAssessment,
	ErrInvalidHealthInput,
	ErrInvalidDueDate,
	ErrUnsupportedFileType,
	ErrValidation,
}

// HandleServiceError 将业务错误映射为统一响应，未识别的错误按 500 记录
func HandleServiceError(c *gin.Context, err error) {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			Error(c, http.StatusNotFound, target.Error())
			return
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			BadRequest(c, err.Error())
			return
		}
	}

	switch {
	case errors.Is(err, ErrPermissionDenied):
		Forbidden(c)
	case errors.Is(err, ErrEmailRegistered), errors.Is(err, ErrAlreadyEnrolled):
		Conflict(c, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		Error(c, http.StatusUnauthorized, err.Error())
	default:
		LogInternalError(c, err)
	}
}
