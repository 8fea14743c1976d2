package models

import (
	"time"
)

type AttendanceStatus string

const (
	AttendancePending  AttendanceStatus = "pending"
	AttendanceRejected AttendanceStatus = "rejected"
	AttendanceJoined   AttendanceStatus = "joined"
)

// EventAttendee links a user to an event with an admission status.
// The (user_id, event_id) pair is unique: a user holds at most one
// attendance record per event, and concurrent join requests are
// resolved by this constraint.
type EventAttendee struct {
	ID       uint             `json:"id" gorm:"primaryKey"`
	UserID   uint             `json:"user_id" gorm:"not null;uniqueIndex:idx_user_event"`
	EventID  uint             `json:"event_id" gorm:"not null;uniqueIndex:idx_user_event"`
	User     *User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Event    *Event           `json:"-" gorm:"foreignKey:EventID"`
	Status   AttendanceStatus `json:"status" gorm:"type:varchar(20);default:joined"`
	JoinedAt time.Time        `json:"joined_at"`
}

type JoinEventResponse struct {
	Status AttendanceStatus `json:"status"`
}
