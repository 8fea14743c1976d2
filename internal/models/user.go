package models

import (
	"time"
)

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Email          string     `json:"email" gorm:"uniqueIndex;not null"`
	Password       string     `json:"-"` // empty for Google-only accounts
	FirstName      string     `json:"first_name" gorm:"not null"`
	LastName       string     `json:"last_name" gorm:"not null"`
	ProfilePicture string     `json:"profile_picture,omitempty"`
	Bio            string     `json:"bio,omitempty"`
	Interests      []string   `json:"interests,omitempty" gorm:"serializer:json"`
	Role           UserRole   `json:"role" gorm:"type:varchar(20);default:user"`
	IsVerified     bool       `json:"is_verified" gorm:"default:false"`
	GoogleID       string     `json:"-"`
	FCMToken       string     `json:"-" gorm:"column:fcm_token"`
	AverageRating  float64    `json:"average_rating" gorm:"default:0"`
	TotalRatings   int        `json:"total_ratings" gorm:"default:0"`
	IsActive       bool       `json:"is_active" gorm:"default:true"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
