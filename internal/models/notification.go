package models

import (
	"time"
)

type NotificationType string

const (
	NotificationEventJoin   NotificationType = "event_join"
	NotificationNewMessage  NotificationType = "new_message"
	NotificationEventUpdate NotificationType = "event_update"
	NotificationReview      NotificationType = "review"
	NotificationSystem      NotificationType = "system"
)

type Notification struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	UserID    uint              `json:"user_id" gorm:"not null;index"`
	User      *User             `json:"-" gorm:"foreignKey:UserID"`
	Title     string            `json:"title" gorm:"not null"`
	Message   string            `json:"message" gorm:"not null"`
	Type      NotificationType  `json:"type" gorm:"type:varchar(30);default:system"`
	IsRead    bool              `json:"is_read" gorm:"default:false"`
	Data      map[string]string `json:"data,omitempty" gorm:"serializer:json"`
	CreatedAt time.Time         `json:"created_at"`
}

type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	Pagination    Pagination     `json:"pagination"`
	UnreadCount   int64          `json:"unread_count"`
}
