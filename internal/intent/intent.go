// Package intent maps normalized user messages to an intent category.
// Classification is purely lexical: exact-match rules for greetings and
// confirmations, substring rules for notifications and email replies, with
// GeneralQuestion as the catch-all. The rules are checked in a fixed order
// because categories can overlap; first match wins.
package intent

import "strings"

// Intent is the category a message is routed to.
type Intent int

const (
	// GeneralQuestion is the catch-all: anything not matched by the
	// lexical rules is forwarded to the answer generator.
	GeneralQuestion Intent = iota

	// Greeting matches an exact greeting word.
	Greeting

	// ListNotifications matches any message mentioning notifications.
	ListNotifications

	// ReplyToEmail matches any message containing "reply to".
	ReplyToEmail

	// ConfirmPending matches an exact yes/no answer.
	ConfirmPending
)

// String returns a stable name for logging.
func (i Intent) String() string {
	switch i {
	case Greeting:
		return "greeting"
	case ListNotifications:
		return "list_notifications"
	case ReplyToEmail:
		return "reply_to_email"
	case ConfirmPending:
		return "confirm_pending"
	default:
		return "general_question"
	}
}

// Classify maps a normalized (lower-cased, trimmed) message to an Intent.
// It is total: every input maps to exactly one intent.
//
// Rule order is significant. A bare "hi" is a greeting, but "hiya" is not:
// greetings and confirmations require exact equality, while the
// notification and reply rules are substring matches.
func Classify(message string) Intent {
	switch message {
	case "hello", "hi", "hey":
		return Greeting
	}

	if strings.Contains(message, "notifications") {
		return ListNotifications
	}

	if strings.Contains(message, "reply to") {
		return ReplyToEmail
	}

	switch message {
	case "yes", "no":
		return ConfirmPending
	}

	return GeneralQuestion
}
