package email

import (
	"context"
	"errors"
	"testing"

	"github.com/resendlabs/resend-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSendWelcomeEmail(t *testing.T) {
	var got *resend.SendEmailRequest
	s := &EmailService{
		send: func(params *resend.SendEmailRequest) (string, error) {
			got = params
			return "msg-1", nil
		},
		from:     "noreply@example.com",
		fromName: "Workshops",
		logger:   zap.NewNop(),
	}

	require.NoError(t, s.SendWelcomeEmail(context.Background(), "alice@example.com", "Alice Doe"))
	require.NotNil(t, got)
	assert.Equal(t, "Workshops <noreply@example.com>", got.From)
	assert.Equal(t, []string{"alice@example.com"}, got.To)
	assert.Contains(t, got.Html, "Alice Doe")
	assert.Contains(t, got.Html, "alice@example.com")
}

func TestSendWelcomeEmail_Error(t *testing.T) {
	s := &EmailService{
		send: func(*resend.SendEmailRequest) (string, error) {
			return "", errors.New("boom")
		},
		from:   "noreply@example.com",
		logger: zap.NewNop(),
	}

	err := s.SendWelcomeEmail(context.Background(), "bob@example.com", "")
	assert.Error(t, err)
	assert.Equal(t, "noreply@example.com", s.sender())
}

func TestSendWelcomeEmail_CancelledContext(t *testing.T) {
	called := false
	s := &EmailService{
		send: func(*resend.SendEmailRequest) (string, error) {
			called = true
			return "", nil
		},
		logger: zap.NewNop(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.SendWelcomeEmail(ctx, "c@example.com", ""), context.Canceled)
	assert.False(t, called)
}
