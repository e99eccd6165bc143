package util

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eduboost_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{Email: "ama@example.com", Role: model.Educator}
	user.ID = "u-1"

	token, err := GenerateJWT(user, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, model.Educator, claims.Role)
	assert.True(t, claims.IsStaff())

	_, err = ParseJWT(token, "other")
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	user := &model.User{Role: model.Student}
	user.ID = "u-2"
	token, err := GenerateJWT(user, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret")
	assert.Error(t, err)
}

func TestHandleServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("load: %w", ErrModuleNotFound), http.StatusNotFound},
		{ErrInvalidScore, http.StatusBadRequest},
		{ErrPermissionDenied, http.StatusForbidden},
		{ErrEmailRegistered, http.StatusConflict},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		HandleServiceError(c, tc.err)

		assert.Equal(t, tc.code, w.Code, tc.err.Error())
		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, tc.code, resp.Code)
	}
}

func TestValidateMimeType(t *testing.T) {
	pdf := []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n")
	mime, err := ValidateMimeType(bytes.NewReader(pdf), AllowedReferenceTypes)
	require.NoError(t, err)
	assert.Equal(t, MimePDF, mime)

	_, err = ValidateMimeType(bytes.NewReader([]byte("<html><body>x</body></html>")), AllowedImageTypes)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 66.7, Round(66.666, 1))
	assert.Equal(t, 3.0, Round(2.5, 0))
	assert.Equal(t, -1.25, Round(-1.2549, 2))
}
