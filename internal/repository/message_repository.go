package repository

import (
	"github.com/gatherly/gatherly-backend/internal/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *MessageRepository) GetByID(id uint) (*models.Message, error) {
	var message models.Message
	err := r.db.Preload("Sender").First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// GetByEvent pages through an event's messages newest first; callers
// reverse the page for chronological display.
func (r *MessageRepository) GetByEvent(eventID uint, offset, limit int) ([]models.Message, int64, error) {
	query := r.db.Model(&models.Message{}).Where("event_id = ?", eventID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.Message
	err := query.Preload("Sender").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&messages).Error
	return messages, total, err
}

func (r *MessageRepository) UpdateContent(id uint, content string) error {
	return r.db.Model(&models.Message{}).Where("id = ?", id).Updates(map[string]interface{}{
		"content":   content,
		"is_edited": true,
	}).Error
}

func (r *MessageRepository) Delete(id uint) error {
	return r.db.Delete(&models.Message{}, id).Error
}

func (r *MessageRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).Count(&count).Error
	return count, err
}
