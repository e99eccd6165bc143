package controller

import (
	"eduboost_backend/internal/model"
	"eduboost_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// resolveStudentID 学生只能查看自己的数据；教师和管理员必须通过 studentId 指定学生
func resolveStudentID(ctx *gin.Context) (string, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return "", false
	}

	requested := ctx.Query("studentId")
	if claims.Role == model.Student {
		if requested != "" && requested != claims.UserID {
			util.Forbidden(ctx)
			return "", false
		}
		return claims.UserID, true
	}

	if requested == "" {
		util.BadRequest(ctx, "studentId is required")
		return "", false
	}
	return requested, true
}

func currentUserID(ctx *gin.Context) (string, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return "", false
	}
	return claims.UserID, true
}
