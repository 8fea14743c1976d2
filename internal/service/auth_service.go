package service

import (
	"errors"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/repository"
	"github.com/gatherly/gatherly-backend/pkg/bcrypt"
	"github.com/gatherly/gatherly-backend/pkg/email"
	"github.com/gatherly/gatherly-backend/pkg/jwt"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo     *repository.UserRepository
	emailService *email.EmailService
	tokenManager *jwt.TokenManager
	logger       *zap.Logger
}

func NewAuthService(
	userRepo *repository.UserRepository,
	emailService *email.EmailService,
	tokenManager *jwt.TokenManager,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		emailService: emailService,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	exists, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.RoleUser,
		IsActive:  true,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	token, err := s.tokenManager.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	// Welcome mail is best-effort; registration never waits on it.
	go func() {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
			s.logger.Warn("welcome email failed", zap.Uint("user_id", user.ID), zap.Error(err))
		}
	}()

	return &models.AuthResponse{Token: token, User: *user}, nil
}

func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.TouchLastLogin(user.ID); err != nil {
		s.logger.Warn("failed to record login time", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	token, err := s.tokenManager.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: *user}, nil
}

// GoogleAuth signs in a federated account, creating it on first login.
// Such accounts carry no credential hash.
func (s *AuthService) GoogleAuth(req models.GoogleAuthRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmailOrGoogleID(req.Email, req.GoogleID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user = &models.User{
			Email:          req.Email,
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			ProfilePicture: req.ProfilePicture,
			GoogleID:       req.GoogleID,
			Role:           models.RoleUser,
			IsVerified:     true,
			IsActive:       true,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
	} else {
		fields := map[string]interface{}{"google_id": req.GoogleID}
		if req.ProfilePicture != "" {
			fields["profile_picture"] = req.ProfilePicture
		}
		if err := s.userRepo.UpdateFields(user.ID, fields); err != nil {
			return nil, err
		}
		if err := s.userRepo.TouchLastLogin(user.ID); err != nil {
			s.logger.Warn("failed to record login time", zap.Uint("user_id", user.ID), zap.Error(err))
		}
	}

	token, err := s.tokenManager.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: *user}, nil
}
