package usecase

import (
	"context"

	chat "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/domain"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/persistence/repository/port"
)

// OpenConversationInput identifies the caller and the user they want to reach.
type OpenConversationInput struct {
	UserID      string
	OtherUserID string
}

// OpenConversationUseCase finds or lazily creates the direct conversation
// between two users. Opening is idempotent: for any unordered pair at most one
// conversation ever exists.
type OpenConversationUseCase struct {
	Repo repository.ChatRepository
}

func NewOpenConversationUseCase(repo repository.ChatRepository) *OpenConversationUseCase {
	return &OpenConversationUseCase{Repo: repo}
}

func (uc *OpenConversationUseCase) Execute(ctx context.Context, in OpenConversationInput) (*chat.Conversation, error) {
	if in.UserID == "" {
		return nil, chat.ErrUnauthorized
	}
	return findOrCreateConversation(ctx, uc.Repo, in.UserID, in.OtherUserID)
}
