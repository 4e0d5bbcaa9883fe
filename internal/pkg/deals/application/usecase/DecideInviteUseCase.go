package usecase

import (
	"context"
	"errors"
	"fmt"

	chatusecase "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/usecase"
	deals "github.com/jasmeets-6575/collabKar-be/internal/pkg/deals/application/domain"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/deals/persistence/repository/port"
)

// DecideInviteInput carries the invited creator's ruling on a campaign invite.
type DecideInviteInput struct {
	InviteID string
	UserID   string
	Decision string
}

// DecideInviteUseCase lets the invited creator accept or reject a pending
// campaign invite. Acceptance opens the chat lane with the inviting business;
// the system message is sent as the creator, who is the accepting party.
type DecideInviteUseCase struct {
	Repo      repository.DealRepository
	Announcer Announcer
}

func NewDecideInviteUseCase(repo repository.DealRepository, announcer Announcer) *DecideInviteUseCase {
	return &DecideInviteUseCase{Repo: repo, Announcer: announcer}
}

func (uc *DecideInviteUseCase) Execute(ctx context.Context, in DecideInviteInput) (*deals.Invite, error) {
	if in.UserID == "" {
		return nil, deals.ErrUnauthorized
	}
	decision, err := deals.ParseDecision(in.Decision)
	if err != nil {
		return nil, err
	}

	inv, err := uc.Repo.GetInvite(ctx, in.InviteID)
	if errors.Is(err, deals.ErrInvalidArgument) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if inv == nil {
		return nil, deals.ErrNotFound
	}
	if inv.CreatorID != in.UserID {
		return nil, deals.ErrForbidden
	}
	if inv.Status != deals.InvitePending {
		return nil, deals.ErrAlreadyProcessed
	}

	inv.Status = deals.InviteStatus(decision)
	if err := uc.Repo.UpdateInviteStatus(ctx, inv.ID, inv.Status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if decision == deals.DecisionAccepted && uc.Announcer != nil {
		err := uc.Announcer.Execute(ctx, chatusecase.AnnounceDealAcceptedInput{
			CreatorID:  inv.CreatorID,
			BrandID:    inv.BusinessID,
			SenderID:   inv.CreatorID,
			SystemText: fmt.Sprintf("Your invite for campaign %q was accepted.", inv.CampaignTitle),
			ClientID:   "invite-accepted:" + inv.ID,
		})
		if err != nil {
			return nil, err
		}
	}
	return inv, nil
}
