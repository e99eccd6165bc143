package service

import (
	"context"
	"io"

	"eduboost_backend/internal/model"
	"eduboost_backend/internal/util"
)

type UserService struct {
	UserRepo UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo UserRepository, storage *StorageService) *UserService {
	return &UserService{UserRepo: userRepo, Storage: storage}
}

type UpdateProfileRequest struct {
	FirstName string `json:"firstName" binding:"omitempty,max=100"`
	LastName  string `json:"lastName" binding:"omitempty,max=100"`
}

func (s *UserService) GetProfile(userID string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(userID string, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UploadProfileImage(ctx context.Context, userID, filename string, file io.ReadSeeker, size int64) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	url, err := s.Storage.SaveUpload(ctx, "avatars", filename, file, size, util.AllowedImageTypes)
	if err != nil {
		return nil, err
	}

	user.ProfileImage = url
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ApproveEducator 管理员审核教师账号
func (s *UserService) ApproveEducator(userID string) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if user.Role != model.Educator {
		return nil, util.ErrUserNotFound
	}
	user.Approved = true
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
