package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Payload is one push notification: a title, a body and an opaque
// data map the client app uses for routing.
type Payload struct {
	Title string
	Body  string
	Data  map[string]string
}

// Sender delivers a payload to one device token.
type Sender interface {
	Send(ctx context.Context, fcmToken string, payload Payload) error
}

// FCMService delivers push notifications through Firebase Cloud Messaging.
type FCMService struct {
	client *messaging.Client
	logger *zap.Logger
}

func NewFCMService(ctx context.Context, credentialsFile string, logger *zap.Logger) (*FCMService, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize messaging client: %w", err)
	}

	return &FCMService{
		client: client,
		logger: logger,
	}, nil
}

func (s *FCMService) Send(ctx context.Context, fcmToken string, payload Payload) error {
	msg := &messaging.Message{
		Token: fcmToken,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
		Android: &messaging.AndroidConfig{
			Notification: &messaging.AndroidNotification{
				Sound:    "default",
				Priority: messaging.PriorityHigh,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
					Badge: intPtr(1),
				},
			},
		},
	}

	resp, err := s.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("push delivery failed: %w", err)
	}

	s.logger.Debug("push notification sent", zap.String("message_id", resp))
	return nil
}

// NopSender is used when FCM credentials are not configured: pushes are
// logged and dropped so the rest of the system behaves identically.
type NopSender struct {
	Logger *zap.Logger
}

func (s *NopSender) Send(_ context.Context, _ string, payload Payload) error {
	s.Logger.Debug("push delivery disabled, dropping notification", zap.String("title", payload.Title))
	return nil
}

func intPtr(i int) *int {
	return &i
}
