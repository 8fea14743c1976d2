package email

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

const welcomeTemplate = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #333;">Welcome to Gatherly!</h1>
  <p>Hi {{.FirstName}},</p>
  <p>Thank you for joining our local events community. We're excited to have you on board!</p>
  <p>Start discovering events in your area and connect with like-minded people.</p>
  <div style="margin: 30px 0;">
    <a href="{{.FrontendURL}}" style="background-color: #007bff; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px;">Explore Events</a>
  </div>
  <p>Best regards,<br>The Gatherly Team</p>
</div>`

const reminderTemplate = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #333;">Event Reminder</h1>
  <p>Hi {{.FirstName}},</p>
  <p>This is a reminder that you have an upcoming event:</p>
  <div style="border: 1px solid #ddd; padding: 20px; margin: 20px 0; border-radius: 5px;">
    <h2 style="color: #007bff; margin-top: 0;">{{.EventTitle}}</h2>
    <p><strong>Date:</strong> {{.EventDate}}</p>
    <p><strong>Location:</strong> {{.EventLocation}}</p>
  </div>
  <p>We look forward to seeing you there!</p>
  <p>Best regards,<br>The Gatherly Team</p>
</div>`

type EmailService struct {
	client      *resend.Client
	from        string
	fromName    string
	frontendURL string
	logger      *zap.Logger
}

func NewEmailService(apiKey, from, fromName, frontendURL string, logger *zap.Logger) *EmailService {
	return &EmailService{
		client:      resend.NewClient(apiKey),
		from:        from,
		fromName:    fromName,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

func (s *EmailService) SendWelcomeEmail(to, firstName string) error {
	html, err := renderTemplate("welcome", welcomeTemplate, map[string]interface{}{
		"FirstName":   firstName,
		"FrontendURL": s.frontendURL,
	})
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: "Welcome to Gatherly!",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Warn("failed to send welcome email", zap.String("to", to), zap.Error(err))
		return err
	}

	s.logger.Info("welcome email sent", zap.String("to", to), zap.String("email_id", resp.Id))
	return nil
}

func (s *EmailService) SendEventReminderEmail(to, firstName, eventTitle, eventLocation string, startsAt time.Time) error {
	html, err := renderTemplate("reminder", reminderTemplate, map[string]interface{}{
		"FirstName":     firstName,
		"EventTitle":    eventTitle,
		"EventDate":     startsAt.Format("Mon, 02 Jan 2006 15:04"),
		"EventLocation": eventLocation,
	})
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: "Reminder: " + eventTitle,
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Warn("failed to send reminder email", zap.String("to", to), zap.Error(err))
		return err
	}

	s.logger.Info("reminder email sent", zap.String("to", to), zap.String("email_id", resp.Id))
	return nil
}

func renderTemplate(name, tmpl string, data map[string]interface{}) (string, error) {
	t, err := template.New(name).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s template: %w", name, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", name, err)
	}
	return buf.String(), nil
}
