package repository

import (
	"github.com/gatherly/gatherly-backend/internal/models"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *EventRepository) WithTx(tx *gorm.DB) *EventRepository {
	return &EventRepository{db: tx}
}

func (r *EventRepository) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

func (r *EventRepository) GetByID(id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) GetByIDWithCreator(id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.Preload("Creator").First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) GetByIDWithDetails(id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.
		Preload("Creator").
		Preload("Attendees").
		Preload("Attendees.User").
		Preload("Reviews").
		Preload("Reviews.Reviewer").
		First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Event{}).Where("id = ?", id).Updates(fields).Error
}

func (r *EventRepository) Delete(id uint) error {
	return r.db.Delete(&models.Event{}, id).Error
}

// IncrementAttendees bumps current_attendees by one, but only while the
// event is below capacity. The guard and the increment run as a single
// UPDATE so concurrent joins cannot overfill the event; a false return
// means the slot was already gone.
func (r *EventRepository) IncrementAttendees(eventID uint) (bool, error) {
	result := r.db.Model(&models.Event{}).
		Where("id = ? AND (max_attendees IS NULL OR current_attendees < max_attendees)", eventID).
		UpdateColumn("current_attendees", gorm.Expr("current_attendees + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DecrementAttendees lowers current_attendees by one, floored at zero.
// Callers must only issue it for attendances that were counted (joined).
func (r *EventRepository) DecrementAttendees(eventID uint) error {
	return r.db.Model(&models.Event{}).
		Where("id = ?", eventID).
		UpdateColumn("current_attendees",
			gorm.Expr("CASE WHEN current_attendees > 0 THEN current_attendees - 1 ELSE 0 END")).
		Error
}

// IncrementLikes is a plain atomic counter bump.
func (r *EventRepository) IncrementLikes(eventID uint) error {
	return r.db.Model(&models.Event{}).
		Where("id = ?", eventID).
		UpdateColumn("likes", gorm.Expr("likes + 1")).
		Error
}

func (r *EventRepository) UpdateRating(id uint, average float64, total int) error {
	return r.db.Model(&models.Event{}).Where("id = ?", id).Updates(map[string]interface{}{
		"average_rating": average,
		"total_ratings":  total,
	}).Error
}

func (r *EventRepository) AppendImage(eventID uint, imageURL string) error {
	var event models.Event
	if err := r.db.First(&event, eventID).Error; err != nil {
		return err
	}
	event.Images = append(event.Images, imageURL)
	return r.db.Model(&event).Update("images", event.Images).Error
}

func (r *EventRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Event{}).Count(&count).Error
	return count, err
}

func (r *EventRepository) CountByStatus(status models.EventStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Event{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// ListPublic returns non-private events matching the filter, ordered by
// start time ascending.
func (r *EventRepository) ListPublic(filter models.EventFilter, offset, limit int) ([]models.Event, int64, error) {
	query := r.db.Model(&models.Event{}).
		Preload("Creator").
		Where("is_private = ?", false)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Location != "" {
		query = query.Where("location LIKE ?", "%"+filter.Location+"%")
	}
	if filter.StartDate != nil {
		query = query.Where("start_date_time >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("end_date_time <= ?", *filter.EndDate)
	}
	if len(filter.Tags) > 0 {
		// Tags are stored as a JSON array; match any requested tag against
		// the serialized form.
		tagQuery := r.db
		for i, tag := range filter.Tags {
			if i == 0 {
				tagQuery = r.db.Where(`tags LIKE ?`, `%"`+tag+`"%`)
			} else {
				tagQuery = tagQuery.Or(`tags LIKE ?`, `%"`+tag+`"%`)
			}
		}
		query = query.Where(tagQuery)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.Event
	err := query.Order("start_date_time ASC").Offset(offset).Limit(limit).Find(&events).Error
	return events, total, err
}

// SearchAll is the admin listing: includes private events, newest first.
func (r *EventRepository) SearchAll(search string, status models.EventStatus, offset, limit int) ([]models.Event, int64, error) {
	query := r.db.Model(&models.Event{}).Preload("Creator")

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ? OR location LIKE ?", pattern, pattern, pattern)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.Event
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&events).Error
	return events, total, err
}
