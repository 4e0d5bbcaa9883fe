package repository

import (
	"context"
	"errors"
	"time"

	chat "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/domain"
)

// ErrDuplicateKey reports that an insert hit a uniqueness constraint
// (conversation dm key, or the per-conversation client id). Callers treat it
// as a benign race and re-read the existing row.
var ErrDuplicateKey = errors.New("repository: duplicate key")

// ChatRepository defines persistence operations for the chat domain.
// Lookup methods that probe for existence return (nil, nil) on absence;
// GetParticipants reports a missing conversation as chat.ErrNotFound because
// its callers treat absence as a hard failure.
type ChatRepository interface {
	// Conversations
	FindConversationByKey(ctx context.Context, dmKey string) (*chat.Conversation, error)
	CreateConversation(ctx context.Context, c chat.Conversation) (*chat.Conversation, error)
	GetParticipants(ctx context.Context, conversationID string) ([]string, error)
	ListConversations(ctx context.Context, userID string, limit, offset int) ([]chat.Conversation, int64, error)
	RecordLastMessage(ctx context.Context, conversationID, messageID string, at time.Time) error

	// Messages
	FindMessageByClientID(ctx context.Context, conversationID, clientID string) (*chat.Message, error)
	InsertMessage(ctx context.Context, m chat.Message) (*chat.Message, error)
	ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]chat.Message, error)

	// Chat connections
	UpsertChatConnection(ctx context.Context, creatorID, brandID string) error
	ListChatConnections(ctx context.Context, userID string, limit, offset int) ([]chat.ChatConnection, int64, error)
}
