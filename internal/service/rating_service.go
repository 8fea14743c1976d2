package service

import (
	"math"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/repository"
	"go.uber.org/zap"
)

// RatingService recomputes rolling averages from the full review set.
// Both recomputes are fire-and-forget relative to review creation:
// failures are logged and the review stays written.
type RatingService struct {
	reviewRepo *repository.ReviewRepository
	eventRepo  *repository.EventRepository
	userRepo   *repository.UserRepository
	logger     *zap.Logger
}

func NewRatingService(
	reviewRepo *repository.ReviewRepository,
	eventRepo *repository.EventRepository,
	userRepo *repository.UserRepository,
	logger *zap.Logger,
) *RatingService {
	return &RatingService{
		reviewRepo: reviewRepo,
		eventRepo:  eventRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// RecomputeEventRating recalculates the event's mean rating over all
// event-type reviews. Zero reviews leave the stored value untouched.
func (s *RatingService) RecomputeEventRating(eventID uint) {
	reviews, err := s.reviewRepo.GetEventReviews(eventID, models.ReviewTypeEvent)
	if err != nil {
		s.logger.Error("failed to load reviews for rating recompute",
			zap.Uint("event_id", eventID),
			zap.Error(err),
		)
		return
	}
	if len(reviews) == 0 {
		return
	}

	average := meanRating(reviews)
	if err := s.eventRepo.UpdateRating(eventID, average, len(reviews)); err != nil {
		s.logger.Error("failed to update event rating",
			zap.Uint("event_id", eventID),
			zap.Error(err),
		)
	}
}

// RecomputeHostRating does the same over host-type reviews received by
// the given user.
func (s *RatingService) RecomputeHostRating(userID uint) {
	reviews, err := s.reviewRepo.GetHostReviews(userID)
	if err != nil {
		s.logger.Error("failed to load host reviews for rating recompute",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return
	}
	if len(reviews) == 0 {
		return
	}

	average := meanRating(reviews)
	if err := s.userRepo.UpdateRating(userID, average, len(reviews)); err != nil {
		s.logger.Error("failed to update host rating",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
	}
}

func meanRating(reviews []models.Review) float64 {
	total := 0
	for _, review := range reviews {
		total += review.Rating
	}
	mean := float64(total) / float64(len(reviews))
	return math.Round(mean*100) / 100
}
