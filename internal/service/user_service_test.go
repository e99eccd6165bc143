package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eduboost_backend/internal/config"
	"eduboost_backend/internal/model"
	"eduboost_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 最小的 PNG 文件头
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func newLocalStorage(t *testing.T) (*StorageService, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: dir, MaxUploadMB: 1}}
	return NewStorageService(cfg), dir
}

func TestSaveUploadLocal(t *testing.T) {
	storage, dir := newLocalStorage(t)

	url, err := storage.SaveUpload(context.Background(), "references", "Brief.PDF",
		bytes.NewReader([]byte("%PDF-1.4\nbody")), 13, util.AllowedReferenceTypes)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/references/"))
	assert.True(t, strings.HasSuffix(url, ".pdf"))

	stored := filepath.Join(dir, "references", filepath.Base(url))
	content, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4\nbody", string(content))

	_, err = storage.SaveUpload(context.Background(), "avatars", "x.png",
		bytes.NewReader([]byte("<html></html>")), 13, util.AllowedImageTypes)
	assert.ErrorIs(t, err, util.ErrUnsupportedFileType)

	_, err = storage.SaveUpload(context.Background(), "avatars", "x.png",
		bytes.NewReader(pngHeader), 2<<20, util.AllowedImageTypes)
	assert.ErrorIs(t, err, util.ErrValidation)
}

func TestUserProfile(t *testing.T) {
	repos := newRepos()
	storage, _ := newLocalStorage(t)
	svc := NewUserService(repos.Users, storage)
	student := seedUser(t, repos, model.Student, "yaa")

	updated, err := svc.UpdateProfile(student.ID, UpdateProfileRequest{LastName: "Mensah"})
	require.NoError(t, err)
	assert.Equal(t, "yaa Mensah", updated.FullName())

	withImage, err := svc.UploadProfileImage(context.Background(), student.ID, "me.png", bytes.NewReader(pngHeader), int64(len(pngHeader)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(withImage.ProfileImage, "/uploads/avatars/"))

	_, err = svc.GetProfile("missing")
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	_, err = svc.ApproveEducator(student.ID)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
