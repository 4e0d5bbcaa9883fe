package usecase

import (
	"context"
	"fmt"

	chat "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/domain"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/persistence/repository/port"
)

// SendMessageInput carries the data needed to append a message. ClientID is
// the caller's idempotency token; retried sends with the same token return the
// originally persisted message.
type SendMessageInput struct {
	ConversationID string
	SenderID       string
	Text           string
	ClientID       *string
}

// SendMessageUseCase appends one message to a conversation's log. Membership
// is re-checked on every send even when the session already joined the room:
// a send can arrive on a connection that skipped join entirely.
type SendMessageUseCase struct {
	Repo repository.ChatRepository
}

func NewSendMessageUseCase(repo repository.ChatRepository) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*chat.Message, error) {
	if in.SenderID == "" {
		return nil, chat.ErrUnauthorized
	}
	if in.ConversationID == "" {
		return nil, fmt.Errorf("%w: conversation id is required", chat.ErrInvalidArgument)
	}

	msg, _, err := appendMessage(ctx, uc.Repo, in.ConversationID, in.SenderID, in.Text, in.ClientID)
	return msg, err
}
