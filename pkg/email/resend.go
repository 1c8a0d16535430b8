package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type sendFunc func(params *resend.SendEmailRequest) (string, error)

type EmailService struct {
	send     sendFunc
	from     string
	fromName string
	logger   *zap.Logger
}

func NewEmailService(apiKey, from, fromName string, logger *zap.Logger) *EmailService {
	client := resend.NewClient(apiKey)
	return &EmailService{
		send: func(params *resend.SendEmailRequest) (string, error) {
			resp, err := client.Emails.Send(params)
			if err != nil {
				return "", err
			}
			return resp.Id, nil
		},
		from:     from,
		fromName: fromName,
		logger:   logger,
	}
}

func (s *EmailService) SendWelcomeEmail(ctx context.Context, email, fullName string) error {
	html, err := render("welcome.html", map[string]interface{}{
		"FullName": fullName,
		"Email":    email,
		"Year":     time.Now().Year(),
	})
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.sender(),
		To:      []string{email},
		Subject: "Welcome to the Workshop Portal",
		Html:    html,
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	id, err := s.send(params)
	if err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}

	s.logger.Info("welcome email sent", zap.String("email", email), zap.String("id", id))
	return nil
}

func (s *EmailService) sender() string {
	if s.fromName == "" {
		return s.from
	}
	return s.fromName + " <" + s.from + ">"
}

func render(name string, data interface{}) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return body.String(), nil
}
