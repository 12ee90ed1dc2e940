package assistant

import (
	"context"

	"concierge/internal/mailer"
	"concierge/internal/notify"
)

// --- mockSource ---

// mockSource implements notify.Source for testing.
type mockSource struct {
	items     []notify.Notification
	listError error
	calls     int
}

func (m *mockSource) List(ctx context.Context) ([]notify.Notification, error) {
	m.calls++
	if m.listError != nil {
		return nil, m.listError
	}
	out := make([]notify.Notification, len(m.items))
	copy(out, m.items)
	return out, nil
}

// --- mockSender ---

// sendCall records one Send invocation for verification.
type sendCall struct {
	to   string
	body string
}

// mockSender implements mailer.Sender for testing.
type mockSender struct {
	sends     []sendCall
	sendError error
}

func (m *mockSender) Send(ctx context.Context, to, body string) (mailer.Outcome, error) {
	m.sends = append(m.sends, sendCall{to: to, body: body})
	if m.sendError != nil {
		return mailer.Outcome{}, m.sendError
	}
	return mailer.Outcome{Status: mailer.StatusSuccess, Message: "Email sent successfully!"}, nil
}

// --- mockGenerator ---

// mockGenerator implements answer.Generator for testing.
type mockGenerator struct {
	response      string
	generateError error
	prompts       []string
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.generateError != nil {
		return "", m.generateError
	}
	return m.response, nil
}

// demoItems mirrors the demo notification fixture.
func demoItems() []notify.Notification {
	return []notify.Notification{
		{
			Kind:    notify.KindEmail,
			From:    "Kavya Sree",
			Subject: "Meeting at 9 PM",
			Body:    "Can we meet at 9 PM today?",
		},
		{
			Kind:    notify.KindGeneric,
			Label:   "Assignment for MMTechNova",
			Message: "Assignment Presentation Scheduled!!",
		},
	}
}

// newTestDispatcher wires a dispatcher around the given mocks.
func newTestDispatcher(src *mockSource, snd *mockSender, gen *mockGenerator) *Dispatcher {
	return New(Config{
		Source:    src,
		Sender:    snd,
		Generator: gen,
	})
}
