package rabbitmq

import (
	"context"
	"errors"
	"testing"

	"github.com/GoArmGo/StyleInspo/internal/logger"
	"github.com/GoArmGo/StyleInspo/internal/messaging/payloads"

	amqp "github.com/rabbitmq/amqp091-go"
)

type recordingAck struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (a *recordingAck) Ack(uint64, bool) error { a.acked = true; return nil }

func (a *recordingAck) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked = true
	a.requeued = requeue
	return nil
}

func (a *recordingAck) Reject(_ uint64, requeue bool) error {
	a.nacked = true
	a.requeued = requeue
	return nil
}

func TestHandleDelivery(t *testing.T) {
	c := &Client{logger: logger.Discard()}

	tests := []struct {
		name        string
		body        string
		handlerErr  error
		wantCalled  bool
		wantAck     bool
		wantNack    bool
		wantRequeue bool
	}{
		{name: "processed", body: `{"look_id":"l1","requested_at":"2024-01-01T00:00:00Z"}`, wantCalled: true, wantAck: true},
		{name: "handler failure requeues", body: `{"look_id":"l1"}`, handlerErr: errors.New("db down"), wantCalled: true, wantNack: true, wantRequeue: true},
		{name: "malformed json dropped", body: `{not json`, wantNack: true},
		{name: "missing look id dropped", body: `{}`, wantNack: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ack := &recordingAck{}
			called := false
			handler := func(_ context.Context, p payloads.SEOGenerationPayload) error {
				called = true
				if p.LookID != "l1" {
					t.Errorf("LookID = %q", p.LookID)
				}
				return tt.handlerErr
			}

			c.handleDelivery(context.Background(), amqp.Delivery{Acknowledger: ack, Body: []byte(tt.body)}, handler)

			if called != tt.wantCalled {
				t.Errorf("handler called = %v, want %v", called, tt.wantCalled)
			}
			if ack.acked != tt.wantAck || ack.nacked != tt.wantNack || ack.requeued != tt.wantRequeue {
				t.Errorf("ack=%v nack=%v requeue=%v", ack.acked, ack.nacked, ack.requeued)
			}
		})
	}
}
