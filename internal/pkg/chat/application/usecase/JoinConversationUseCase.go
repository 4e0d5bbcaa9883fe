package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/domain"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/persistence/repository/port"
)

// JoinConversationInput validates a request to attach a user session to a conversation.
type JoinConversationInput struct {
	ConversationID string
	UserID         string
}

// JoinConversationUseCase ensures the user belongs to the conversation before
// joining the realtime room.
type JoinConversationUseCase struct {
	Repo repository.ChatRepository
}

func NewJoinConversationUseCase(repo repository.ChatRepository) *JoinConversationUseCase {
	return &JoinConversationUseCase{Repo: repo}
}

func (uc *JoinConversationUseCase) Execute(ctx context.Context, in JoinConversationInput) error {
	if in.UserID == "" {
		return chat.ErrUnauthorized
	}
	if in.ConversationID == "" {
		return fmt.Errorf("%w: conversation id is required", chat.ErrInvalidArgument)
	}

	participants, err := uc.Repo.GetParticipants(ctx, in.ConversationID)
	if errors.Is(err, chat.ErrNotFound) || errors.Is(err, chat.ErrInvalidArgument) {
		return err
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	for _, p := range participants {
		if p == in.UserID {
			return nil
		}
	}
	return chat.ErrForbidden
}
