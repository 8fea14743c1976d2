package models

import (
	"time"
)

type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

type Event struct {
	ID               uint        `json:"id" gorm:"primaryKey"`
	CreatorID        uint        `json:"creator_id" gorm:"not null;index"`
	Creator          *User       `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Title            string      `json:"title" gorm:"not null"`
	Description      string      `json:"description"`
	Location         string      `json:"location"`
	Latitude         *float64    `json:"latitude,omitempty"`
	Longitude        *float64    `json:"longitude,omitempty"`
	StartDateTime    time.Time   `json:"start_date_time" gorm:"not null"`
	EndDateTime      time.Time   `json:"end_date_time" gorm:"not null"`
	MaxAttendees     *int        `json:"max_attendees,omitempty"` // nil means unlimited
	CurrentAttendees int         `json:"current_attendees" gorm:"default:0"`
	Tags             []string    `json:"tags,omitempty" gorm:"serializer:json"`
	Images           []string    `json:"images,omitempty" gorm:"serializer:json"`
	Status           EventStatus `json:"status" gorm:"type:varchar(20);default:upcoming"`
	IsPrivate        bool        `json:"is_private" gorm:"default:false"`
	RequiresApproval bool        `json:"requires_approval" gorm:"default:false"`
	AverageRating    float64     `json:"average_rating" gorm:"default:0"`
	TotalRatings     int         `json:"total_ratings" gorm:"default:0"`
	Likes            int         `json:"likes" gorm:"default:0"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`

	Attendees []EventAttendee `json:"attendees,omitempty" gorm:"foreignKey:EventID"`
	Reviews   []Review        `json:"reviews,omitempty" gorm:"foreignKey:EventID"`
}

type CreateEventRequest struct {
	Title            string    `json:"title" validate:"required,min=3,max=255"`
	Description      string    `json:"description" validate:"required,min=10"`
	Location         string    `json:"location" validate:"required,min=5,max=500"`
	Latitude         *float64  `json:"latitude" validate:"omitempty,latitude"`
	Longitude        *float64  `json:"longitude" validate:"omitempty,longitude"`
	StartDateTime    time.Time `json:"start_date_time" validate:"required"`
	EndDateTime      time.Time `json:"end_date_time" validate:"required,gtfield=StartDateTime"`
	MaxAttendees     *int      `json:"max_attendees" validate:"omitempty,min=1,max=10000"`
	Tags             []string  `json:"tags"`
	IsPrivate        bool      `json:"is_private"`
	RequiresApproval bool      `json:"requires_approval"`
}

type UpdateEventRequest struct {
	Title            *string      `json:"title" validate:"omitempty,min=3,max=255"`
	Description      *string      `json:"description" validate:"omitempty,min=10"`
	Location         *string      `json:"location" validate:"omitempty,min=5,max=500"`
	Latitude         *float64     `json:"latitude" validate:"omitempty,latitude"`
	Longitude        *float64     `json:"longitude" validate:"omitempty,longitude"`
	StartDateTime    *time.Time   `json:"start_date_time"`
	EndDateTime      *time.Time   `json:"end_date_time"`
	MaxAttendees     *int         `json:"max_attendees" validate:"omitempty,min=1,max=10000"`
	Tags             []string     `json:"tags"`
	Status           *EventStatus `json:"status" validate:"omitempty,oneof=upcoming ongoing completed cancelled"`
	IsPrivate        *bool        `json:"is_private"`
	RequiresApproval *bool        `json:"requires_approval"`
}

// EventFilter carries the query parameters of the public event listing.
type EventFilter struct {
	Tags      []string
	Location  string
	StartDate *time.Time
	EndDate   *time.Time
	Status    EventStatus
}
