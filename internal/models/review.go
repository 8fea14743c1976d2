package models

import (
	"time"
)

type ReviewType string

const (
	ReviewTypeEvent ReviewType = "event"
	ReviewTypeHost  ReviewType = "host"
)

// Review is unique per (reviewer, event): one review per user per event,
// enforced by the composite index.
type Review struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	EventID    uint       `json:"event_id" gorm:"not null;uniqueIndex:idx_reviewer_event"`
	ReviewerID uint       `json:"reviewer_id" gorm:"not null;uniqueIndex:idx_reviewer_event"`
	RevieweeID *uint      `json:"reviewee_id,omitempty"`
	Reviewer   *User      `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID"`
	Reviewee   *User      `json:"reviewee,omitempty" gorm:"foreignKey:RevieweeID"`
	Event      *Event     `json:"event,omitempty" gorm:"foreignKey:EventID"`
	Rating     int        `json:"rating" gorm:"not null"`
	Comment    string     `json:"comment,omitempty"`
	ReviewType ReviewType `json:"review_type" gorm:"type:varchar(20);default:event"`
	CreatedAt  time.Time  `json:"created_at"`
}

type CreateReviewRequest struct {
	Rating     int        `json:"rating" validate:"required,min=1,max=5"`
	Comment    string     `json:"comment" validate:"omitempty,max=1000"`
	ReviewType ReviewType `json:"review_type" validate:"omitempty,oneof=event host"`
	RevieweeID *uint      `json:"reviewee_id"`
}
