package service

import (
	"errors"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/repository"
	"gorm.io/gorm"
)

type DashboardStats struct {
	TotalUsers      int64 `json:"total_users"`
	TotalEvents     int64 `json:"total_events"`
	TotalMessages   int64 `json:"total_messages"`
	TotalReviews    int64 `json:"total_reviews"`
	ActiveUsers     int64 `json:"active_users"`
	UpcomingEvents  int64 `json:"upcoming_events"`
	CompletedEvents int64 `json:"completed_events"`
}

type AdminService struct {
	userRepo    *repository.UserRepository
	eventRepo   *repository.EventRepository
	messageRepo *repository.MessageRepository
	reviewRepo  *repository.ReviewRepository
}

func NewAdminService(
	userRepo *repository.UserRepository,
	eventRepo *repository.EventRepository,
	messageRepo *repository.MessageRepository,
	reviewRepo *repository.ReviewRepository,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		eventRepo:   eventRepo,
		messageRepo: messageRepo,
		reviewRepo:  reviewRepo,
	}
}

func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalUsers, err = s.userRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalEvents, err = s.eventRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalMessages, err = s.messageRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalReviews, err = s.reviewRepo.Count(); err != nil {
		return nil, err
	}
	if stats.ActiveUsers, err = s.userRepo.CountActive(); err != nil {
		return nil, err
	}
	if stats.UpcomingEvents, err = s.eventRepo.CountByStatus(models.EventStatusUpcoming); err != nil {
		return nil, err
	}
	if stats.CompletedEvents, err = s.eventRepo.CountByStatus(models.EventStatusCompleted); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *AdminService) GetUsers(filter repository.UserSearchFilter, page, limit int) ([]models.User, models.Pagination, error) {
	offset := (page - 1) * limit
	users, total, err := s.userRepo.Search(filter, offset, limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return users, models.NewPagination(page, limit, total), nil
}

func (s *AdminService) GetEvents(search string, status models.EventStatus, page, limit int) ([]models.Event, models.Pagination, error) {
	offset := (page - 1) * limit
	events, total, err := s.eventRepo.SearchAll(search, status, offset, limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return events, models.NewPagination(page, limit, total), nil
}

type UpdateUserStatusRequest struct {
	IsActive *bool            `json:"is_active"`
	Role     *models.UserRole `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

// UpdateUserStatus soft-disables or re-enables an account and/or changes
// its role. Accounts are never physically deleted.
func (s *AdminService) UpdateUserStatus(userID uint, req UpdateUserStatusRequest) (*models.User, error) {
	fields := map[string]interface{}{}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(userID, fields); err != nil {
			return nil, err
		}
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AdminService) DeleteEvent(eventID uint) error {
	if _, err := s.eventRepo.GetByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	return s.eventRepo.Delete(eventID)
}
