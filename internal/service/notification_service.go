package service

import (
	"context"
	"errors"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/repository"
	"github.com/gatherly/gatherly-backend/pkg/push"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationService owns the notification inbox and push delivery.
// Everything that dispatches a push also records an inbox row so the
// notification survives a missed push.
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	pushSender       push.Sender
	logger           *zap.Logger
}

func NewNotificationService(
	notificationRepo *repository.NotificationRepository,
	pushSender push.Sender,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		pushSender:       pushSender,
		logger:           logger,
	}
}

// Notify persists an inbox row and pushes to the device when a token is
// registered. Best-effort: failures are logged, never returned.
func (s *NotificationService) Notify(user *models.User, notificationType models.NotificationType, title, body string, data map[string]string) {
	notification := &models.Notification{
		UserID:  user.ID,
		Title:   title,
		Message: body,
		Type:    notificationType,
		Data:    data,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		s.logger.Warn("failed to persist notification",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
	}

	if user.FCMToken == "" {
		return
	}

	err := s.pushSender.Send(context.Background(), user.FCMToken, push.Payload{
		Title: title,
		Body:  body,
		Data:  data,
	})
	if err != nil {
		s.logger.Warn("push notification failed",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
	}
}

func (s *NotificationService) GetNotifications(userID uint, page, limit int) (*models.NotificationList, error) {
	offset := (page - 1) * limit
	notifications, total, err := s.notificationRepo.GetByUser(userID, offset, limit)
	if err != nil {
		return nil, err
	}

	unread, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return nil, err
	}

	return &models.NotificationList{
		Notifications: notifications,
		Pagination:    models.NewPagination(page, limit, total),
		UnreadCount:   unread,
	}, nil
}

func (s *NotificationService) GetUnreadCount(userID uint) (int64, error) {
	return s.notificationRepo.CountUnread(userID)
}

func (s *NotificationService) MarkRead(notificationID, userID uint) (*models.Notification, error) {
	notification, err := s.notificationRepo.GetByIDForUser(notificationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}

	if err := s.notificationRepo.MarkRead(notification.ID); err != nil {
		return nil, err
	}
	notification.IsRead = true
	return notification, nil
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.notificationRepo.MarkAllRead(userID)
}

func (s *NotificationService) Delete(notificationID, userID uint) error {
	notification, err := s.notificationRepo.GetByIDForUser(notificationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return s.notificationRepo.Delete(notification.ID)
}
