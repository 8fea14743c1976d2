package repository

import (
	"github.com/gatherly/gatherly-backend/internal/models"
	"gorm.io/gorm"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) WithTx(tx *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: tx}
}

func (r *AttendanceRepository) Create(attendee *models.EventAttendee) error {
	return r.db.Create(attendee).Error
}

func (r *AttendanceRepository) GetByUserAndEvent(userID, eventID uint) (*models.EventAttendee, error) {
	var attendee models.EventAttendee
	err := r.db.Where("user_id = ? AND event_id = ?", userID, eventID).First(&attendee).Error
	if err != nil {
		return nil, err
	}
	return &attendee, nil
}

// IsJoined reports whether the user holds a joined attendance for the event.
func (r *AttendanceRepository) IsJoined(userID, eventID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.EventAttendee{}).
		Where("user_id = ? AND event_id = ? AND status = ?", userID, eventID, models.AttendanceJoined).
		Count(&count).Error
	return count > 0, err
}

func (r *AttendanceRepository) GetJoinedWithUsers(eventID uint) ([]models.EventAttendee, error) {
	var attendees []models.EventAttendee
	err := r.db.Preload("User").
		Where("event_id = ? AND status = ?", eventID, models.AttendanceJoined).
		Find(&attendees).Error
	return attendees, err
}

func (r *AttendanceRepository) UpdateStatus(id uint, status models.AttendanceStatus) error {
	return r.db.Model(&models.EventAttendee{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *AttendanceRepository) Delete(id uint) error {
	return r.db.Delete(&models.EventAttendee{}, id).Error
}

func (r *AttendanceRepository) CountJoined(eventID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.EventAttendee{}).
		Where("event_id = ? AND status = ?", eventID, models.AttendanceJoined).
		Count(&count).Error
	return count, err
}
