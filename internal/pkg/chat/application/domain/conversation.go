package chat

import (
	"fmt"
	"time"
)

// ConversationType discriminates conversation variants. Only direct messages
// are implemented; the field reserves room for future multi-party threads.
type ConversationType string

const ConversationTypeDM ConversationType = "dm"

// Conversation is a two-party direct-message thread. It is created lazily on
// first contact, never deleted, and mutated only to advance the last-message
// pointer.
type Conversation struct {
	ID            string           `db:"id"`
	Type          ConversationType `db:"conv_type"`
	Participants  []string         `db:"participants"`
	DMKey         string           `db:"dm_key"`
	LastMessageID *string          `db:"last_message_id"`
	LastMessageAt *time.Time       `db:"last_message_at"`
	CreatedAt     time.Time        `db:"created_at"`
}

// HasParticipant tells whether userID is part of this conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	if c == nil {
		return false
	}
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// DeriveConversationKey returns the deterministic pairwise key for two user
// identifiers: the lexicographically smaller id, an underscore, the larger.
// The same key comes back regardless of argument order, which makes it the
// natural dedup key for find-or-create.
func DeriveConversationKey(userA, userB string) (string, error) {
	if userA == "" || userB == "" {
		return "", fmt.Errorf("%w: both user ids are required", ErrInvalidArgument)
	}
	if userA == userB {
		return "", ErrSelfDM
	}
	if userA < userB {
		return userA + "_" + userB, nil
	}
	return userB + "_" + userA, nil
}
