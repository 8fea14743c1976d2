package models

import (
	"time"
)

type MessageType string

const (
	MessageTypeText   MessageType = "text"
	MessageTypeImage  MessageType = "image"
	MessageTypeSystem MessageType = "system"
)

type Message struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	EventID     uint        `json:"event_id" gorm:"not null;index"`
	SenderID    uint        `json:"sender_id" gorm:"not null"`
	Sender      *User       `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Content     string      `json:"content" gorm:"not null"`
	MessageType MessageType `json:"message_type" gorm:"type:varchar(20);default:text"`
	IsEdited    bool        `json:"is_edited" gorm:"default:false"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type SendMessageRequest struct {
	Content     string      `json:"content" validate:"required,min=1,max=2000"`
	MessageType MessageType `json:"message_type" validate:"omitempty,oneof=text image system"`
}

type EditMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}
