package mailer

import (
	"context"
	"testing"
	"time"
)

func TestStubSender_Send(t *testing.T) {
	s := NewStubSender(0, nil)

	outcome, err := s.Send(context.Background(), "alice", "see you at 9")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if outcome.Status != StatusSuccess {
		t.Errorf("Status = %q, want %q", outcome.Status, StatusSuccess)
	}
	if outcome.Message != "Email sent successfully!" {
		t.Errorf("Message = %q", outcome.Message)
	}
}

func TestStubSender_SendCancelled(t *testing.T) {
	s := NewStubSender(time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Send(ctx, "alice", "body"); err == nil {
		t.Error("expected error from cancelled context")
	}
}
