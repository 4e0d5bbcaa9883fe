package usecase

import (
	"context"
	"fmt"

	chat "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/domain"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/persistence/repository/port"
)

// GetMessageInput carries parameters to fetch one page of conversation history.
type GetMessageInput struct {
	ConversationID string
	UserID         string
	Page           int
	Limit          int
}

// GetMessageUseCase fetches paginated history for a conversation the caller
// participates in. Storage keeps messages newest-first; the caller-facing
// contract is oldest-to-newest, so the page is reversed here at the boundary.
type GetMessageUseCase struct {
	Repo repository.ChatRepository
}

func NewGetMessageUseCase(repo repository.ChatRepository) *GetMessageUseCase {
	return &GetMessageUseCase{Repo: repo}
}

func (uc *GetMessageUseCase) Execute(ctx context.Context, in GetMessageInput) ([]chat.Message, error) {
	if in.UserID == "" {
		return nil, chat.ErrUnauthorized
	}
	if in.ConversationID == "" {
		return nil, fmt.Errorf("%w: conversation id is required", chat.ErrInvalidArgument)
	}

	join := JoinConversationUseCase{Repo: uc.Repo}
	if err := join.Execute(ctx, JoinConversationInput{ConversationID: in.ConversationID, UserID: in.UserID}); err != nil {
		return nil, err
	}

	page, limit := clampPage(in.Page, in.Limit)
	msgs, err := uc.Repo.ListMessages(ctx, in.ConversationID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// reverse the stored newest-first page into display order
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
