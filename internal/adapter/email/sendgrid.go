// Package email: отправка писем формы обратной связи через SendGrid.
package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/GoArmGo/StyleInspo/internal/domain"
)

// ErrNotConfigured: ключ SendGrid не задан
var ErrNotConfigured = errors.New("sendgrid API key is not set")

type sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridMailer реализует usecase.Mailer
type SendGridMailer struct {
	client   sender
	fromName string
	fromAddr string
	logger   *slog.Logger
}

// NewSendGridMailer создаёт отправителя; при пустом ключе Configured() == false
func NewSendGridMailer(apiKey, fromAddr, fromName string, logger *slog.Logger) *SendGridMailer {
	m := &SendGridMailer{fromName: fromName, fromAddr: fromAddr, logger: logger}
	if apiKey != "" {
		m.client = sendgrid.NewSendClient(apiKey)
	}
	return m
}

func (m *SendGridMailer) Configured() bool { return m.client != nil }

// Send отправляет письмо; ответ со статусом >= 400 считается ошибкой
func (m *SendGridMailer) Send(ctx context.Context, msg domain.OutgoingEmail) error {
	if m.client == nil {
		return ErrNotConfigured
	}

	from := mail.NewEmail(m.fromName, m.fromAddr)
	to := mail.NewEmail("", msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Text, msg.HTML)
	if msg.ReplyTo != "" {
		message.SetReplyTo(mail.NewEmail(msg.ReplyToName, msg.ReplyTo))
	}

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		m.logger.Error("error sending email", "error", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		m.logger.Error("SendGrid API error", "status", resp.StatusCode, "body", resp.Body)
		return fmt.Errorf("failed to send email, status code: %d", resp.StatusCode)
	}

	m.logger.Info("email sent", "status", resp.StatusCode)
	return nil
}
