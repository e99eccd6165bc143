package service

import (
	"testing"
	"time"

	"eduboost_backend/internal/config"
	"eduboost_backend/internal/model"
	"eduboost_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() (*AuthService, Repositories) {
	repos := newRepos()
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "auth-test-secret", ExpireTime: time.Hour}}
	return NewAuthService(repos.Users, cfg), repos
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService()

	user := &model.User{FirstName: "Kofi", Email: " Kofi@Example.com ", Password: "s3cret-pass"}
	require.NoError(t, svc.Register(user))
	assert.Equal(t, model.Student, user.Role)
	assert.Equal(t, "kofi@example.com", user.Email)
	assert.NotEqual(t, "s3cret-pass", user.Password)

	err := svc.Register(&model.User{Email: "kofi@example.com", Password: "x"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	_, _, err = svc.Login("kofi@example.com", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	_, _, err = svc.Login("nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	token, logged, err := svc.Login("KOFI@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.NotNil(t, logged.LastLogin)

	claims, err := util.ParseJWT(token, "auth-test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.Student, claims.Role)
}

func TestRegisterRoles(t *testing.T) {
	svc, _ := newAuthService()

	assert.ErrorIs(t, svc.Register(&model.User{Email: "root@example.com", Password: "x", Role: model.Admin}), util.ErrPermissionDenied)

	educator := &model.User{Email: "lecturer@example.com", Password: "pw", Role: model.Educator}
	require.NoError(t, svc.Register(educator))
	assert.False(t, educator.Approved)

	_, _, err := svc.Login("lecturer@example.com", "pw")
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}
