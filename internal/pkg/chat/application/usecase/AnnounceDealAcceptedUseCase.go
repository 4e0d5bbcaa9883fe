package usecase

import (
	"context"
	"fmt"

	chat "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/domain"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/persistence/repository/port"
)

// Notifier delivers a freshly persisted message to live sessions. The
// realtime adapter targets the conversation room plus both participants'
// per-user rooms so the message lands even before either party joined the
// conversation room. Delivering to a user with no active sessions is a no-op.
type Notifier interface {
	NotifyMessage(conversationID string, participants []string, m chat.Message)
}

// AnnounceDealAcceptedInput describes the accepted deal to announce.
// ClientID must be derived deterministically from the source event (for
// example "application-accepted:<id>") so that reprocessing the same
// acceptance never produces a second system message.
type AnnounceDealAcceptedInput struct {
	CreatorID  string
	BrandID    string
	SenderID   string
	SystemText string
	ClientID   string
}

// AnnounceDealAcceptedUseCase is invoked synchronously by the
// application-accept and invite-accept flows after their own record reached
// the accepted state. It upserts the chat-connection record, stands up the
// conversation, appends the system message idempotently, and broadcasts only
// when the message is genuinely new. Failures propagate to the REST caller;
// the acceptance itself stands regardless.
type AnnounceDealAcceptedUseCase struct {
	Repo     repository.ChatRepository
	Notifier Notifier
}

func NewAnnounceDealAcceptedUseCase(repo repository.ChatRepository, notifier Notifier) *AnnounceDealAcceptedUseCase {
	return &AnnounceDealAcceptedUseCase{Repo: repo, Notifier: notifier}
}

func (uc *AnnounceDealAcceptedUseCase) Execute(ctx context.Context, in AnnounceDealAcceptedInput) error {
	if in.ClientID == "" {
		return fmt.Errorf("%w: idempotency token is required", chat.ErrInvalidArgument)
	}
	if in.SenderID != in.CreatorID && in.SenderID != in.BrandID {
		return fmt.Errorf("%w: sender must be one of the parties", chat.ErrInvalidArgument)
	}

	if err := uc.Repo.UpsertChatConnection(ctx, in.CreatorID, in.BrandID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	conv, err := findOrCreateConversation(ctx, uc.Repo, in.CreatorID, in.BrandID)
	if err != nil {
		return err
	}

	clientID := in.ClientID
	msg, created, err := appendMessage(ctx, uc.Repo, conv.ID, in.SenderID, in.SystemText, &clientID)
	if err != nil {
		return err
	}

	if created && uc.Notifier != nil {
		uc.Notifier.NotifyMessage(conv.ID, conv.Participants, *msg)
	}
	return nil
}
