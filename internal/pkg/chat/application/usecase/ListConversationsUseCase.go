package usecase

import (
	"context"
	"fmt"

	chat "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/domain"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/persistence/repository/port"
)

// ListConversationsInput pages through the caller's conversation sidebar.
type ListConversationsInput struct {
	UserID string
	Page   int
	Limit  int
}

// ListConversationsOutput bundles one page with the total row count.
type ListConversationsOutput struct {
	Conversations []chat.Conversation
	Total         int64
	Page          int
	Limit         int
}

// ListConversationsUseCase returns the caller's conversations ordered by most
// recent activity.
type ListConversationsUseCase struct {
	Repo repository.ChatRepository
}

func NewListConversationsUseCase(repo repository.ChatRepository) *ListConversationsUseCase {
	return &ListConversationsUseCase{Repo: repo}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, in ListConversationsInput) (*ListConversationsOutput, error) {
	if in.UserID == "" {
		return nil, chat.ErrUnauthorized
	}

	page, limit := clampPage(in.Page, in.Limit)
	convs, total, err := uc.Repo.ListConversations(ctx, in.UserID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &ListConversationsOutput{Conversations: convs, Total: total, Page: page, Limit: limit}, nil
}
