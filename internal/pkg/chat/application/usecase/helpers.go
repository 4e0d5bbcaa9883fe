package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/domain"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/persistence/repository/port"
)

const (
	defaultPageSize = 30
	maxPageSize     = 100
)

// clampPage normalizes pagination input: page >= 1, limit within [1,100].
func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// findOrCreateConversation implements the find-or-create idempotence shared by
// the open gateway handler and the deal-acceptance announcer. Concurrent
// callers racing to create the same pair are resolved by the unique dm-key
// constraint: a duplicate-key failure is a benign race converted into a
// re-read of the existing row.
func findOrCreateConversation(ctx context.Context, repo repository.ChatRepository, userA, userB string) (*chat.Conversation, error) {
	dmKey, err := chat.DeriveConversationKey(userA, userB)
	if err != nil {
		return nil, err
	}

	conv, err := repo.FindConversationByKey(ctx, dmKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if conv != nil {
		return conv, nil
	}

	created, err := repo.CreateConversation(ctx, chat.Conversation{
		Type:         chat.ConversationTypeDM,
		Participants: []string{userA, userB},
		DMKey:        dmKey,
	})
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, repository.ErrDuplicateKey) {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// lost the creation race; the winner's row is authoritative
	conv, err = repo.FindConversationByKey(ctx, dmKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if conv == nil {
		return nil, fmt.Errorf("%w: conversation vanished after duplicate key", ErrPersistence)
	}
	return conv, nil
}

// appendMessage persists one message with participant authorization and
// client-id idempotence. It returns created=false when the call replayed an
// already-persisted message. The check-then-insert is not atomic against a
// concurrent identical insert, so a duplicate-key failure on the
// (conversation, client id) constraint is also treated as "already exists"
// and resolved by re-read.
func appendMessage(ctx context.Context, repo repository.ChatRepository, conversationID, senderID, text string, clientID *string) (*chat.Message, bool, error) {
	participants, err := repo.GetParticipants(ctx, conversationID)
	if errors.Is(err, chat.ErrNotFound) || errors.Is(err, chat.ErrInvalidArgument) {
		return nil, false, err
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	isParticipant := false
	for _, p := range participants {
		if p == senderID {
			isParticipant = true
			break
		}
	}
	if !isParticipant {
		return nil, false, chat.ErrForbidden
	}

	msg, err := chat.NewMessage(conversationID, senderID, text, clientID)
	if err != nil {
		return nil, false, err
	}

	if msg.ClientID != nil {
		existing, err := repo.FindMessageByClientID(ctx, conversationID, *msg.ClientID)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if existing != nil {
			return existing, false, nil
		}
	}

	saved, err := repo.InsertMessage(ctx, *msg)
	if errors.Is(err, repository.ErrDuplicateKey) && msg.ClientID != nil {
		existing, rerr := repo.FindMessageByClientID(ctx, conversationID, *msg.ClientID)
		if rerr != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrPersistence, rerr)
		}
		if existing == nil {
			return nil, false, fmt.Errorf("%w: message vanished after duplicate key", ErrPersistence)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Best-effort: the log is the source of truth, the pointer is a read
	// optimization for the sidebar.
	_ = repo.RecordLastMessage(ctx, conversationID, saved.ID, saved.CreatedAt)

	return saved, true, nil
}
