package usecase

import (
	"context"
	"fmt"

	chat "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/domain"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/persistence/repository/port"
)

// ListConnectionsInput pages through the caller's collaboration connections.
type ListConnectionsInput struct {
	UserID string
	Page   int
	Limit  int
}

// ListConnectionsOutput bundles one page with the total row count.
type ListConnectionsOutput struct {
	Connections []chat.ChatConnection
	Total       int64
	Page        int
	Limit       int
}

// ListConnectionsUseCase returns the chat-connection records the caller is
// part of, newest first.
type ListConnectionsUseCase struct {
	Repo repository.ChatRepository
}

func NewListConnectionsUseCase(repo repository.ChatRepository) *ListConnectionsUseCase {
	return &ListConnectionsUseCase{Repo: repo}
}

func (uc *ListConnectionsUseCase) Execute(ctx context.Context, in ListConnectionsInput) (*ListConnectionsOutput, error) {
	if in.UserID == "" {
		return nil, chat.ErrUnauthorized
	}

	page, limit := clampPage(in.Page, in.Limit)
	conns, total, err := uc.Repo.ListChatConnections(ctx, in.UserID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &ListConnectionsOutput{Connections: conns, Total: total, Page: page, Limit: limit}, nil
}
