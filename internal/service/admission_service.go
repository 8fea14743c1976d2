package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AdmissionService decides join/leave outcomes and keeps an event's
// current_attendees counter equal to the number of joined attendance
// records. It never computes the counter in Go: capacity checks and the
// counter move in one conditional UPDATE, and the attendance insert
// shares a transaction with it, so concurrent requests can only lose at
// the unique index or the bounded increment, never corrupt the count.
type AdmissionService struct {
	db             *gorm.DB
	eventRepo      *repository.EventRepository
	attendanceRepo *repository.AttendanceRepository
	userRepo       *repository.UserRepository
	notifications  *NotificationService
	logger         *zap.Logger
}

func NewAdmissionService(
	db *gorm.DB,
	eventRepo *repository.EventRepository,
	attendanceRepo *repository.AttendanceRepository,
	userRepo *repository.UserRepository,
	notifications *NotificationService,
	logger *zap.Logger,
) *AdmissionService {
	return &AdmissionService{
		db:             db,
		eventRepo:      eventRepo,
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		notifications:  notifications,
		logger:         logger,
	}
}

// RequestJoin admits the user immediately or queues the request for the
// creator's approval, depending on the event's requires_approval flag.
func (s *AdmissionService) RequestJoin(user *models.User, eventID uint) (models.AttendanceStatus, error) {
	var event *models.Event
	var status models.AttendanceStatus

	err := s.db.Transaction(func(tx *gorm.DB) error {
		eventRepo := s.eventRepo.WithTx(tx)
		attendanceRepo := s.attendanceRepo.WithTx(tx)

		var err error
		event, err = eventRepo.GetByID(eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if event.Status == models.EventStatusCompleted || event.Status == models.EventStatusCancelled {
			return ErrEventNotJoinable
		}

		if _, err := attendanceRepo.GetByUserAndEvent(user.ID, eventID); err == nil {
			return ErrAlreadyAttending
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		status = models.AttendanceJoined
		if event.RequiresApproval {
			status = models.AttendancePending
		}

		if status == models.AttendanceJoined {
			// Claim a slot before inserting the record; rollback returns it
			// if the insert loses a duplicate race.
			ok, err := eventRepo.IncrementAttendees(eventID)
			if err != nil {
				return err
			}
			if !ok {
				return ErrEventFull
			}
		}

		attendee := &models.EventAttendee{
			UserID:   user.ID,
			EventID:  eventID,
			Status:   status,
			JoinedAt: time.Now(),
		}
		if err := attendanceRepo.Create(attendee); err != nil {
			// Two requests passed the existence pre-check; the unique index
			// decides, and the loser reads as a duplicate join.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyAttending
			}
			return err
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	if status == models.AttendanceJoined {
		go s.notifyCreator(user, event)
	}

	return status, nil
}

// Leave removes the attendance record; the counter only moves when the
// record was joined, since pending requests were never counted.
func (s *AdmissionService) Leave(userID, eventID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		eventRepo := s.eventRepo.WithTx(tx)
		attendanceRepo := s.attendanceRepo.WithTx(tx)

		attendee, err := attendanceRepo.GetByUserAndEvent(userID, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotAttending
			}
			return err
		}

		if err := attendanceRepo.Delete(attendee.ID); err != nil {
			return err
		}

		if attendee.Status == models.AttendanceJoined {
			return eventRepo.DecrementAttendees(eventID)
		}
		return nil
	})
}

// Approve moves a pending attendance to joined. The transition goes
// through the same bounded increment as a direct join, so an approval
// against an event that filled up in the meantime is refused.
func (s *AdmissionService) Approve(actor *models.User, eventID, userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		eventRepo := s.eventRepo.WithTx(tx)
		attendanceRepo := s.attendanceRepo.WithTx(tx)

		event, err := eventRepo.GetByID(eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if event.CreatorID != actor.ID && actor.Role != models.RoleAdmin {
			return ErrForbidden
		}

		attendee, err := attendanceRepo.GetByUserAndEvent(userID, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotAttending
			}
			return err
		}
		if attendee.Status != models.AttendancePending {
			return ErrAttendanceNotPending
		}

		ok, err := eventRepo.IncrementAttendees(eventID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrEventFull
		}

		return attendanceRepo.UpdateStatus(attendee.ID, models.AttendanceJoined)
	})
}

// Reject marks a pending attendance rejected; the counter never moved
// for it, so nothing else changes.
func (s *AdmissionService) Reject(actor *models.User, eventID, userID uint) error {
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

	attendee, err := s.attendanceRepo.GetByUserAndEvent(userID, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotAttending
		}
		return err
	}
	if attendee.Status != models.AttendancePending {
		return ErrAttendanceNotPending
	}

	return s.attendanceRepo.UpdateStatus(attendee.ID, models.AttendanceRejected)
}

// GetAttendees lists the joined attendees with their profiles.
func (s *AdmissionService) GetAttendees(eventID uint) ([]models.EventAttendee, error) {
	if _, err := s.eventRepo.GetByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return s.attendanceRepo.GetJoinedWithUsers(eventID)
}

func (s *AdmissionService) notifyCreator(joiner *models.User, event *models.Event) {
	creator, err := s.userRepo.GetByID(event.CreatorID)
	if err != nil {
		s.logger.Warn("failed to load event creator for join notification",
			zap.Uint("event_id", event.ID),
			zap.Error(err),
		)
		return
	}

	s.notifications.Notify(creator, models.NotificationEventJoin,
		"New Attendee",
		fmt.Sprintf("%s joined your event: %s", joiner.FirstName, event.Title),
		map[string]string{
			"event_id": fmt.Sprintf("%d", event.ID),
			"type":     string(models.NotificationEventJoin),
		},
	)
}
