package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/repository"
	"github.com/gatherly/gatherly-backend/pkg/email"
	"github.com/gatherly/gatherly-backend/pkg/storage"
	"github.com/gatherly/gatherly-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EventService struct {
	eventRepo      *repository.EventRepository
	attendanceRepo *repository.AttendanceRepository
	notifications  *NotificationService
	emailService   *email.EmailService
	storage        storage.ObjectStorage
	logger         *zap.Logger
}

func NewEventService(
	eventRepo *repository.EventRepository,
	attendanceRepo *repository.AttendanceRepository,
	notifications *NotificationService,
	emailService *email.EmailService,
	objectStorage storage.ObjectStorage,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		eventRepo:      eventRepo,
		attendanceRepo: attendanceRepo,
		notifications:  notifications,
		emailService:   emailService,
		storage:        objectStorage,
		logger:         logger,
	}
}

func (s *EventService) CreateEvent(creatorID uint, req models.CreateEventRequest) (*models.Event, error) {
	event := &models.Event{
		CreatorID:        creatorID,
		Title:            req.Title,
		Description:      req.Description,
		Location:         req.Location,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		StartDateTime:    req.StartDateTime,
		EndDateTime:      req.EndDateTime,
		MaxAttendees:     req.MaxAttendees,
		Tags:             req.Tags,
		Status:           models.EventStatusUpcoming,
		IsPrivate:        req.IsPrivate,
		RequiresApproval: req.RequiresApproval,
	}

	if err := s.eventRepo.Create(event); err != nil {
		return nil, err
	}
	return s.eventRepo.GetByIDWithCreator(event.ID)
}

func (s *EventService) GetEvent(eventID uint) (*models.Event, error) {
	event, err := s.eventRepo.GetByIDWithDetails(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *EventService) ListEvents(filter models.EventFilter, page, limit int) ([]models.Event, models.Pagination, error) {
	offset := (page - 1) * limit
	events, total, err := s.eventRepo.ListPublic(filter, offset, limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return events, models.NewPagination(page, limit, total), nil
}

func (s *EventService) UpdateEvent(actor *models.User, eventID uint, req models.UpdateEventRequest) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if event.CreatorID != actor.ID && actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Latitude != nil {
		fields["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		fields["longitude"] = *req.Longitude
	}
	if req.StartDateTime != nil {
		fields["start_date_time"] = *req.StartDateTime
	}
	if req.EndDateTime != nil {
		fields["end_date_time"] = *req.EndDateTime
	}
	if req.MaxAttendees != nil {
		fields["max_attendees"] = *req.MaxAttendees
	}
	if req.Tags != nil {
		fields["tags"] = req.Tags
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.IsPrivate != nil {
		fields["is_private"] = *req.IsPrivate
	}
	if req.RequiresApproval != nil {
		fields["requires_approval"] = *req.RequiresApproval
	}

	if len(fields) > 0 {
		if err := s.eventRepo.UpdateFields(eventID, fields); err != nil {
			return nil, err
		}
	}

	updated, err := s.eventRepo.GetByIDWithCreator(eventID)
	if err != nil {
		return nil, err
	}

	// Reschedules reach attendees out of band; the REST response does not
	// wait on mail or push delivery.
	if req.StartDateTime != nil && !req.StartDateTime.Equal(event.StartDateTime) {
		go s.notifyReschedule(updated)
	}

	return updated, nil
}

// notifyReschedule tells every joined attendee about the new start time,
// via inbox/push and a reminder email.
func (s *EventService) notifyReschedule(event *models.Event) {
	attendees, err := s.attendanceRepo.GetJoinedWithUsers(event.ID)
	if err != nil {
		s.logger.Warn("failed to load attendees for reschedule notice",
			zap.Uint("event_id", event.ID),
			zap.Error(err),
		)
		return
	}

	data := map[string]string{
		"event_id": fmt.Sprintf("%d", event.ID),
		"type":     string(models.NotificationEventUpdate),
	}

	for _, attendee := range attendees {
		if attendee.User == nil {
			continue
		}
		recipient := attendee.User

		s.notifications.Notify(recipient, models.NotificationEventUpdate,
			"Event rescheduled",
			fmt.Sprintf("%s now starts at %s", event.Title, event.StartDateTime.Format("Mon, 02 Jan 2006 15:04")),
			data,
		)

		if err := s.emailService.SendEventReminderEmail(
			recipient.Email,
			recipient.FirstName,
			event.Title,
			event.Location,
			event.StartDateTime,
		); err != nil {
			s.logger.Warn("reschedule email failed",
				zap.Uint("user_id", recipient.ID),
				zap.Uint("event_id", event.ID),
				zap.Error(err),
			)
		}
	}
}

func (s *EventService) DeleteEvent(actor *models.User, eventID uint) error {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	if event.CreatorID != actor.ID && actor.Role != models.RoleAdmin {
		return ErrForbidden
	}

	return s.eventRepo.Delete(eventID)
}

func (s *EventService) LikeEvent(eventID uint) error {
	if _, err := s.eventRepo.GetByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	return s.eventRepo.IncrementLikes(eventID)
}

// UploadEventImage stores the image and records its URL on the event.
// Creator-only.
func (s *EventService) UploadEventImage(ctx context.Context, actor *models.User, eventID uint, fileName string, src io.Reader, contentType string) (string, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrEventNotFound
		}
		return "", err
	}

	if event.CreatorID != actor.ID && actor.Role != models.RoleAdmin {
		return "", ErrForbidden
	}

	key := fmt.Sprintf("events/%d/%s%s", eventID, utils.GenerateRandomString(12), filepath.Ext(fileName))
	url, err := s.storage.Upload(ctx, key, src, contentType)
	if err != nil {
		return "", err
	}

	if err := s.eventRepo.AppendImage(eventID, url); err != nil {
		return "", err
	}
	return url, nil
}
