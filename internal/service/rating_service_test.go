package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gatherly/gatherly-backend/internal/models"
)

func TestMeanRating_RoundsToTwoDecimals(t *testing.T) {
	reviews := []models.Review{
		{Rating: 5},
		{Rating: 4},
		{Rating: 4},
	}
	assert.Equal(t, 4.33, meanRating(reviews))
}

func TestRecomputeEventRating_NoReviewsIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ratings := NewRatingService(env.reviewRepo, env.eventRepo, env.userRepo, zap.NewNop())
	creator := createTestUser(t, env.db)
	event := createTestEvent(t, env.db, creator.ID, nil)
	require.NoError(t, env.db.Model(event).Updates(map[string]interface{}{
		"average_rating": 4.5,
		"total_ratings":  2,
	}).Error)

	ratings.RecomputeEventRating(event.ID)

	updated, err := env.eventRepo.GetByID(event.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, updated.AverageRating)
	assert.Equal(t, 2, updated.TotalRatings)
}

func TestRecomputeEventRating_IgnoresHostReviews(t *testing.T) {
	env := newTestEnv(t)
	ratings := NewRatingService(env.reviewRepo, env.eventRepo, env.userRepo, zap.NewNop())
	creator := createTestUser(t, env.db)
	rater := createTestUser(t, env.db)
	other := createTestUser(t, env.db)
	event := createTestEvent(t, env.db, creator.ID, nil)

	require.NoError(t, env.reviewRepo.Create(&models.Review{
		EventID: event.ID, ReviewerID: rater.ID, Rating: 2, ReviewType: models.ReviewTypeEvent,
	}))
	require.NoError(t, env.reviewRepo.Create(&models.Review{
		EventID: event.ID, ReviewerID: other.ID, RevieweeID: &creator.ID,
		Rating: 5, ReviewType: models.ReviewTypeHost,
	}))

	ratings.RecomputeEventRating(event.ID)

	updated, err := env.eventRepo.GetByID(event.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, updated.AverageRating)
	assert.Equal(t, 1, updated.TotalRatings)
}
