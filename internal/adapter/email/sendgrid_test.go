package email

import (
	"context"
	"errors"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/GoArmGo/StyleInspo/internal/domain"
	"github.com/GoArmGo/StyleInspo/internal/logger"
)

type fakeSender struct {
	status int
	err    error
	got    *mail.SGMailV3
}

func (f *fakeSender) SendWithContext(_ context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	f.got = email
	if f.err != nil {
		return nil, f.err
	}
	return &rest.Response{StatusCode: f.status}, nil
}

func TestSendBuildsMessage(t *testing.T) {
	fake := &fakeSender{status: 202}
	m := &SendGridMailer{client: fake, fromName: "Contact", fromAddr: "no-reply@example.com", logger: logger.Discard()}

	err := m.Send(context.Background(), domain.OutgoingEmail{
		To:          "admin@example.com",
		ReplyTo:     "jane@example.com",
		ReplyToName: "Jane",
		Subject:     "Contact Form: Hello",
		HTML:        "<p>hi</p>",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if fake.got.ReplyTo == nil || fake.got.ReplyTo.Address != "jane@example.com" {
		t.Errorf("reply-to = %+v", fake.got.ReplyTo)
	}
	if fake.got.Subject != "Contact Form: Hello" {
		t.Errorf("subject = %q", fake.got.Subject)
	}
	if fake.got.From.Address != "no-reply@example.com" {
		t.Errorf("from = %+v", fake.got.From)
	}
}

func TestSendReportsProviderFailure(t *testing.T) {
	m := &SendGridMailer{client: &fakeSender{status: 401}, logger: logger.Discard()}
	if err := m.Send(context.Background(), domain.OutgoingEmail{To: "a@b.c"}); err == nil {
		t.Fatal("status 401 must be an error")
	}

	m.client = &fakeSender{err: errors.New("dial tcp: timeout")}
	if err := m.Send(context.Background(), domain.OutgoingEmail{To: "a@b.c"}); err == nil {
		t.Fatal("transport error must be returned")
	}
}

func TestSendWithoutKey(t *testing.T) {
	m := NewSendGridMailer("", "no-reply@example.com", "Contact", logger.Discard())
	if m.Configured() {
		t.Fatal("mailer without key must report unconfigured")
	}
	if err := m.Send(context.Background(), domain.OutgoingEmail{To: "a@b.c"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v", err)
	}
}
