package service

import (
	"errors"
	"fmt"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/repository"
	"github.com/gatherly/gatherly-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Push previews cut message content at this many characters.
const messagePreviewLength = 50

type MessageService struct {
	messageRepo    *repository.MessageRepository
	eventRepo      *repository.EventRepository
	attendanceRepo *repository.AttendanceRepository
	notifications  *NotificationService
	logger         *zap.Logger
}

func NewMessageService(
	messageRepo *repository.MessageRepository,
	eventRepo *repository.EventRepository,
	attendanceRepo *repository.AttendanceRepository,
	notifications *NotificationService,
	logger *zap.Logger,
) *MessageService {
	return &MessageService{
		messageRepo:    messageRepo,
		eventRepo:      eventRepo,
		attendanceRepo: attendanceRepo,
		notifications:  notifications,
		logger:         logger,
	}
}

// SendMessage persists a chat message for a joined attendee and fans out
// push notifications to the other joined attendees. The socket layer
// relays the message to connected room members separately; REST is the
// source of truth and the only authorization boundary.
func (s *MessageService) SendMessage(sender *models.User, eventID uint, req models.SendMessageRequest) (*models.Message, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	joined, err := s.attendanceRepo.IsJoined(sender.ID, eventID)
	if err != nil {
		return nil, err
	}
	if !joined {
		return nil, ErrMustBeAttending
	}

	messageType := req.MessageType
	if messageType == "" {
		messageType = models.MessageTypeText
	}

	message := &models.Message{
		EventID:     eventID,
		SenderID:    sender.ID,
		Content:     req.Content,
		MessageType: messageType,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}

	go s.fanOutPush(sender, event, message)

	return s.messageRepo.GetByID(message.ID)
}

// fanOutPush notifies every other joined attendee with a registered
// device. Deliveries run concurrently and failures stay per-recipient.
func (s *MessageService) fanOutPush(sender *models.User, event *models.Event, message *models.Message) {
	attendees, err := s.attendanceRepo.GetJoinedWithUsers(event.ID)
	if err != nil {
		s.logger.Warn("failed to load attendees for push fan-out",
			zap.Uint("event_id", event.ID),
			zap.Error(err),
		)
		return
	}

	preview := utils.TruncateWithEllipsis(message.Content, messagePreviewLength)
	data := map[string]string{
		"event_id":   fmt.Sprintf("%d", event.ID),
		"message_id": fmt.Sprintf("%d", message.ID),
		"type":       string(models.NotificationNewMessage),
	}

	for _, attendee := range attendees {
		if attendee.User == nil || attendee.UserID == sender.ID {
			continue
		}
		recipient := attendee.User
		go s.notifications.Notify(recipient, models.NotificationNewMessage,
			"New message in "+event.Title,
			sender.FirstName+": "+preview,
			data,
		)
	}
}

// GetMessages returns a page of chat history in chronological ascending
// order; only joined attendees may read it.
func (s *MessageService) GetMessages(userID, eventID uint, page, limit int) ([]models.Message, models.Pagination, error) {
	joined, err := s.attendanceRepo.IsJoined(userID, eventID)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	if !joined {
		return nil, models.Pagination{}, ErrMustBeAttending
	}

	offset := (page - 1) * limit
	messages, total, err := s.messageRepo.GetByEvent(eventID, offset, limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	// Stored newest first; flip the page so clients render oldest first.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, models.NewPagination(page, limit, total), nil
}

func (s *MessageService) EditMessage(actor *models.User, messageID uint, req models.EditMessageRequest) (*models.Message, error) {
	message, err := s.messageRepo.GetByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}

	if message.SenderID != actor.ID {
		return nil, ErrForbidden
	}

	if err := s.messageRepo.UpdateContent(messageID, req.Content); err != nil {
		return nil, err
	}
	return s.messageRepo.GetByID(messageID)
}

func (s *MessageService) DeleteMessage(actor *models.User, messageID uint) error {
	message, err := s.messageRepo.GetByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return err
	}

	if message.SenderID != actor.ID && actor.Role != models.RoleAdmin {
		return ErrForbidden
	}

	return s.messageRepo.Delete(messageID)
}
