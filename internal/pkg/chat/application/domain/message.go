package chat

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxMessageLength bounds message text, matching the storage schema.
const MaxMessageLength = 5000

// Message is an immutable log entry in a conversation. CreatedAt is assigned
// at persistence time and defines the total order within a conversation.
// ClientID is a caller-supplied idempotency token: within one conversation at
// most one message carries a given token, which makes retried sends and
// replayed system-message injections safe.
type Message struct {
	ID             string    `db:"id"`
	ConversationID string    `db:"conversation_id"`
	SenderID       string    `db:"sender_id"`
	Text           string    `db:"body"`
	ClientID       *string   `db:"client_id"`
	CreatedAt      time.Time `db:"created_at"`
}

// NewMessage validates and normalizes message content ready to persist.
func NewMessage(conversationID, senderID, text string, clientID *string) (*Message, error) {
	if conversationID == "" || senderID == "" {
		return nil, fmt.Errorf("%w: conversation and sender ids are required", ErrInvalidArgument)
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty text", ErrInvalidArgument)
	}
	if utf8.RuneCountInString(trimmed) > MaxMessageLength {
		return nil, fmt.Errorf("%w: text exceeds %d characters", ErrInvalidArgument, MaxMessageLength)
	}

	if clientID != nil && strings.TrimSpace(*clientID) == "" {
		clientID = nil
	}

	return &Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           trimmed,
		ClientID:       clientID,
	}, nil
}
