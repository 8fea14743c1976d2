package service

import (
	"errors"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/repository"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(userID uint, req models.UpdateProfileRequest) (*models.User, error) {
	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Interests != nil {
		fields["interests"] = req.Interests
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(userID, fields); err != nil {
			return nil, err
		}
	}
	return s.GetProfile(userID)
}

func (s *UserService) UpdateFCMToken(userID uint, token string) error {
	return s.userRepo.UpdateFields(userID, map[string]interface{}{"fcm_token": token})
}
