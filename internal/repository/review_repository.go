package repository

import (
	"github.com/gatherly/gatherly-backend/internal/models"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *ReviewRepository) GetByID(id uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("Reviewer").Preload("Reviewee").Preload("Event").First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) Exists(reviewerID, eventID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("reviewer_id = ? AND event_id = ?", reviewerID, eventID).
		Count(&count).Error
	return count > 0, err
}

// GetEventReviews returns reviews of a given type for an event; used by
// the rating recompute, which needs the full set.
func (r *ReviewRepository) GetEventReviews(eventID uint, reviewType models.ReviewType) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("event_id = ? AND review_type = ?", eventID, reviewType).Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) GetHostReviews(revieweeID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("reviewee_id = ? AND review_type = ?", revieweeID, models.ReviewTypeHost).
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) GetByEvent(eventID uint, offset, limit int) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{}).Where("event_id = ?", eventID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := query.Preload("Reviewer").Preload("Reviewee").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reviews).Error
	return reviews, total, err
}

// GetByUser lists reviews a user received or gave.
func (r *ReviewRepository) GetByUser(userID uint, received bool, offset, limit int) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{})
	if received {
		query = query.Where("reviewee_id = ?", userID)
	} else {
		query = query.Where("reviewer_id = ?", userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := query.Preload("Reviewer").Preload("Reviewee").Preload("Event").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reviews).Error
	return reviews, total, err
}

func (r *ReviewRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Review{}).Count(&count).Error
	return count, err
}
