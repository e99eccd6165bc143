package controller

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eduboost_backend/internal/model"
	"eduboost_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func resolveWith(claims *util.Claims, query string) (int, string) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/api/grades"+query, nil)
	if claims != nil {
		ctx.Set(util.ContextUserKey, claims)
	}

	id, ok := resolveStudentID(ctx)
	if !ok {
		return w.Code, ""
	}
	return http.StatusOK, id
}

func TestResolveStudentID(t *testing.T) {
	student := &util.Claims{UserID: "stu-1", Role: model.Student}
	educator := &util.Claims{UserID: "edu-1", Role: model.Educator}

	code, id := resolveWith(student, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "stu-1", id)

	code, id = resolveWith(student, "?studentId=stu-1")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "stu-1", id)

	code, _ = resolveWith(student, "?studentId=stu-2")
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = resolveWith(educator, "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, id = resolveWith(educator, "?studentId=stu-2")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "stu-2", id)

	code, _ = resolveWith(nil, "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestHealthCheckDegraded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := NewStatusController(map[string]ComponentCheck{
		"database": func(_ context.Context) error { return nil },
		"redis":    func(_ context.Context) error { return errors.New("connection refused") },
	})

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	c.HealthCheck(ctx)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"down"`)
	assert.Contains(t, w.Body.String(), `"database":"up"`)
}
