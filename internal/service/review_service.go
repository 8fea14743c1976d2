package service

import (
	"errors"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/repository"
	"gorm.io/gorm"
)

type ReviewService struct {
	reviewRepo     *repository.ReviewRepository
	eventRepo      *repository.EventRepository
	attendanceRepo *repository.AttendanceRepository
	ratings        *RatingService
}

func NewReviewService(
	reviewRepo *repository.ReviewRepository,
	eventRepo *repository.EventRepository,
	attendanceRepo *repository.AttendanceRepository,
	ratings *RatingService,
) *ReviewService {
	return &ReviewService{
		reviewRepo:     reviewRepo,
		eventRepo:      eventRepo,
		attendanceRepo: attendanceRepo,
		ratings:        ratings,
	}
}

// CreateReview accepts one review per (reviewer, event), only for
// completed events the reviewer actually attended. Rating recomputes
// run after the write and never fail the request.
func (s *ReviewService) CreateReview(reviewer *models.User, eventID uint, req models.CreateReviewRequest) (*models.Review, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if event.Status != models.EventStatusCompleted {
		return nil, ErrEventNotCompleted
	}

	joined, err := s.attendanceRepo.IsJoined(reviewer.ID, eventID)
	if err != nil {
		return nil, err
	}
	if !joined {
		return nil, ErrMustBeAttending
	}

	exists, err := s.reviewRepo.Exists(reviewer.ID, eventID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReview
	}

	reviewType := req.ReviewType
	if reviewType == "" {
		reviewType = models.ReviewTypeEvent
	}

	review := &models.Review{
		EventID:    eventID,
		ReviewerID: reviewer.ID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		ReviewType: reviewType,
	}
	if reviewType == models.ReviewTypeHost && req.RevieweeID != nil {
		review.RevieweeID = req.RevieweeID
	}

	if err := s.reviewRepo.Create(review); err != nil {
		// Two reviews raced past the pre-check; the composite index wins.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	s.ratings.RecomputeEventRating(eventID)
	if reviewType == models.ReviewTypeHost && review.RevieweeID != nil {
		s.ratings.RecomputeHostRating(*review.RevieweeID)
	}

	return s.reviewRepo.GetByID(review.ID)
}

func (s *ReviewService) GetEventReviews(eventID uint, page, limit int) ([]models.Review, models.Pagination, error) {
	offset := (page - 1) * limit
	reviews, total, err := s.reviewRepo.GetByEvent(eventID, offset, limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return reviews, models.NewPagination(page, limit, total), nil
}

func (s *ReviewService) GetUserReviews(userID uint, received bool, page, limit int) ([]models.Review, models.Pagination, error) {
	offset := (page - 1) * limit
	reviews, total, err := s.reviewRepo.GetByUser(userID, received, offset, limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return reviews, models.NewPagination(page, limit, total), nil
}
