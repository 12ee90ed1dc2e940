// Package mailer defines the outbound-send capability. The assistant drafts
// replies and, once confirmed, hands them to a Sender. The stub
// implementation stands in for a real mail API and simulates its latency.
package mailer

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StatusSuccess is the Outcome.Status value for a delivered send.
const StatusSuccess = "success"

// Outcome reports the result of a send attempt.
type Outcome struct {
	Status  string
	Message string
}

// Sender performs one outbound send. A single attempt is made per call; no
// retries. Implementations must honor ctx cancellation.
type Sender interface {
	Send(ctx context.Context, to, body string) (Outcome, error)
}

// StubSender fakes a mail API: it sleeps for a configured latency and then
// reports success. TODO: replace with a Gmail API backed sender once
// credentials provisioning is sorted out.
type StubSender struct {
	latency time.Duration
	logger  *zap.Logger
}

// NewStubSender creates a stub sender. A zero latency sends immediately;
// a nil logger disables logging.
func NewStubSender(latency time.Duration, logger *zap.Logger) *StubSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StubSender{latency: latency, logger: logger}
}

// Send implements Sender.
func (s *StubSender) Send(ctx context.Context, to, body string) (Outcome, error) {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	s.logger.Debug("stub send completed",
		zap.String("to", to),
		zap.Int("body_len", len(body)))

	return Outcome{Status: StatusSuccess, Message: "Email sent successfully!"}, nil
}
