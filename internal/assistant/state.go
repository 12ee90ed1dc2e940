package assistant

// PendingReply is a drafted email reply awaiting a yes/no confirmation.
type PendingReply struct {
	// To is the recipient, taken from the matched email's sender.
	To string

	// Body is the drafted reply text.
	Body string
}

// State is the per-session conversational state. Each connection owns
// exactly one State; it is never shared across sessions and dies with the
// connection. At most one reply is pending at a time: drafting a new one
// overwrites any draft that was never confirmed.
type State struct {
	Pending *PendingReply
}

// NewState returns an empty session state with nothing pending.
func NewState() *State {
	return &State{}
}
