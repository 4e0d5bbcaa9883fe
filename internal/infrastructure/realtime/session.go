package realtime

// Session is a live, authenticated connection tracked by the Router.
// The websocket Connection implements it; tests substitute fakes.
type Session interface {
	// ID uniquely identifies this session (one user may hold several).
	ID() string
	// UserID is the authenticated identity bound at handshake time.
	UserID() string
	// Send enqueues payload for delivery to the client.
	Send(payload []byte) error
	// Close terminates the session.
	Close(code int, reason string)
}

// UserRoom names the implicit per-user broadcast group every session joins
// for its lifetime.
func UserRoom(userID string) string { return "user:" + userID }

// ConversationRoom names the broadcast group for one conversation.
func ConversationRoom(conversationID string) string { return "conv:" + conversationID }
