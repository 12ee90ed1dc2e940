// Package notify defines the notification records the assistant reports on
// and the Source capability that produces them.
package notify

import (
	"context"
	"strings"
)

// Kind tags the notification variant.
type Kind int

const (
	// KindEmail is an email notification carrying sender, subject and body.
	KindEmail Kind = iota

	// KindGeneric is any other alert, carrying a label and a message.
	KindGeneric
)

// Notification is one pending alert. Records are immutable; the source
// produces a fresh list on every call.
type Notification struct {
	Kind Kind

	// Email fields (KindEmail).
	From    string
	Subject string
	Body    string

	// Generic fields (KindGeneric).
	Label   string
	Message string
}

// Source lists the current notifications. Implementations may block on a
// backing service and must honor ctx cancellation.
type Source interface {
	List(ctx context.Context) ([]Notification, error)
}

// FindEmail returns the first email notification whose sender matches from,
// case-insensitively.
func FindEmail(items []Notification, from string) (Notification, bool) {
	for _, n := range items {
		if n.Kind == KindEmail && strings.EqualFold(n.From, from) {
			return n, true
		}
	}
	return Notification{}, false
}

// StaticSource serves a fixed list of notifications. Safe for concurrent
// use; List returns a copy so callers cannot mutate the fixture.
type StaticSource struct {
	items []Notification
}

// NewStaticSource creates a source backed by the given records.
func NewStaticSource(items ...Notification) *StaticSource {
	return &StaticSource{items: items}
}

// DemoSource returns the demo fixture used when no real notification
// backend is wired up.
func DemoSource() *StaticSource {
	return NewStaticSource(
		Notification{
			Kind:    KindEmail,
			From:    "Kavya Sree",
			Subject: "Meeting at 9 PM",
			Body:    "Can we meet at 9 PM today?",
		},
		Notification{
			Kind:    KindGeneric,
			Label:   "Assignment for MMTechNova",
			Message: "Assignment Presentation Scheduled!!",
		},
	)
}

// List implements Source.
func (s *StaticSource) List(ctx context.Context) ([]Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Notification, len(s.items))
	copy(out, s.items)
	return out, nil
}
