// Package assistant implements the conversational core: it classifies each
// incoming message, routes it to the matching handler and manages the one
// piece of cross-message state, a pending email reply awaiting confirmation.
//
// The dispatcher never fails outward. Every handler contains its own
// capability failures and degrades to an apologetic sentence, so one bad
// turn can never take down a session.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"concierge/internal/answer"
	"concierge/internal/intent"
	"concierge/internal/mailer"
	"concierge/internal/notify"
)

// Fixed response texts. The draft message deliberately reproduces the
// missing separator between the quoted email body and "Suggested Reply:";
// existing clients parse the exact wire text.
const (
	greetingResponse  = "Hi! How can I assist you today?"
	notFoundResponse  = "Sorry, I couldn't find that email."
	noPendingResponse = "No pending email to send."
	cancelledResponse = "Email cancelled."

	// draftBody is the canned reply; no contextual reply is generated.
	draftBody = "Got it, see you at 9 PM!"

	answerApology = "I'm sorry, I couldn't process that question."
	notifyApology = "Sorry, I couldn't fetch your notifications right now."
	sendApology   = "Sorry, something went wrong while sending the email."
)

const replyPrefix = "reply to "

// defaultCallTimeout bounds each collaborator call so a hung capability
// degrades into an apology instead of stalling the session.
const defaultCallTimeout = 30 * time.Second

// Config wires a Dispatcher's collaborators.
type Config struct {
	Source    notify.Source
	Sender    mailer.Sender
	Generator answer.Generator

	// Logger is optional; nil disables logging.
	Logger *zap.Logger

	// CallTimeout bounds each capability call. Zero means the default.
	CallTimeout time.Duration
}

// Dispatcher routes messages for one session. It is not safe for concurrent
// use: the transport must deliver a session's messages strictly one at a
// time, which also serializes all access to the session state.
type Dispatcher struct {
	state       *State
	source      notify.Source
	sender      mailer.Sender
	generator   answer.Generator
	logger      *zap.Logger
	callTimeout time.Duration
}

// New creates a Dispatcher with a fresh empty session state.
func New(cfg Config) *Dispatcher {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.CallTimeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return &Dispatcher{
		state:       NewState(),
		source:      cfg.Source,
		sender:      cfg.Sender,
		generator:   cfg.Generator,
		logger:      logger,
		callTimeout: timeout,
	}
}

// State exposes the session state for inspection.
func (d *Dispatcher) State() *State {
	return d.state
}

// Handle processes one message and returns the response text. It never
// returns an error: failures surface as user-facing sentences.
//
// The raw message is lower-cased and trimmed before classification, so
// " YES " confirms a pending reply just like "yes".
func (d *Dispatcher) Handle(ctx context.Context, raw string) string {
	message := strings.ToLower(strings.TrimSpace(raw))
	in := intent.Classify(message)
	d.logger.Debug("message classified", zap.Stringer("intent", in))

	switch in {
	case intent.Greeting:
		return greetingResponse
	case intent.ListNotifications:
		return d.handleNotifications(ctx)
	case intent.ReplyToEmail:
		return d.handleEmailReply(ctx, message)
	case intent.ConfirmPending:
		return d.handleConfirmation(ctx, message)
	default:
		return d.handleGeneralQuestion(ctx, message)
	}
}

func (d *Dispatcher) handleNotifications(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, d.callTimeout)
	defer cancel()

	items, err := d.source.List(ctx)
	if err != nil {
		d.logger.Warn("notification source failed", zap.Error(err))
		return notifyApology
	}
	return formatNotifications(items)
}

// formatNotifications renders the count header plus one 1-indexed line per
// notification. An empty list still gets the header.
func formatNotifications(items []notify.Notification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You have %d new notifications.", len(items))
	for i, n := range items {
		b.WriteByte('\n')
		switch n.Kind {
		case notify.KindEmail:
			fmt.Fprintf(&b, "%d. Email from %s: \"%s\"", i+1, n.From, n.Subject)
		default:
			fmt.Fprintf(&b, "%d. %s Alert: \"%s\"", i+1, n.Label, n.Message)
		}
	}
	return b.String()
}

func (d *Dispatcher) handleEmailReply(ctx context.Context, message string) string {
	from := strings.TrimSpace(strings.Replace(message, replyPrefix, "", 1))

	ctx, cancel := context.WithTimeout(ctx, d.callTimeout)
	defer cancel()

	items, err := d.source.List(ctx)
	if err != nil {
		d.logger.Warn("notification source failed", zap.Error(err))
		return notifyApology
	}

	email, ok := notify.FindEmail(items, from)
	if !ok {
		return notFoundResponse
	}

	// Overwrites any prior unconfirmed draft.
	d.state.Pending = &PendingReply{To: email.From, Body: draftBody}
	d.logger.Debug("reply drafted", zap.String("to", email.From))

	return fmt.Sprintf("Email Content: \"%s\"Suggested Reply: \"%s\"\nAre you happy to send this? (Yes/No)",
		email.Body, d.state.Pending.Body)
}

func (d *Dispatcher) handleConfirmation(ctx context.Context, message string) string {
	pending := d.state.Pending
	if pending == nil {
		return noPendingResponse
	}

	if message != "yes" {
		d.state.Pending = nil
		return cancelledResponse
	}

	ctx, cancel := context.WithTimeout(ctx, d.callTimeout)
	defer cancel()

	outcome, err := d.sender.Send(ctx, pending.To, pending.Body)
	if err != nil {
		// Keep the draft so the user can confirm again.
		d.logger.Warn("send failed", zap.String("to", pending.To), zap.Error(err))
		return sendApology
	}

	d.state.Pending = nil
	return "Sending email...\n" + outcome.Message
}

func (d *Dispatcher) handleGeneralQuestion(ctx context.Context, message string) string {
	ctx, cancel := context.WithTimeout(ctx, d.callTimeout)
	defer cancel()

	text, err := d.generator.Generate(ctx, message)
	if err != nil {
		d.logger.Warn("answer generation failed", zap.Error(err))
		return answerApology
	}
	return text
}
