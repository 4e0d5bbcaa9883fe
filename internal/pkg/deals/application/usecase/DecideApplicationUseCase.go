package usecase

import (
	"context"
	"errors"
	"fmt"

	chatusecase "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/usecase"
	deals "github.com/jasmeets-6575/collabKar-be/internal/pkg/deals/application/domain"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/deals/persistence/repository/port"
)

// Announcer pushes an accepted deal into the chat subsystem: connection
// upsert, conversation bootstrap, system message, live broadcast. The token in
// the input keeps the whole chain idempotent.
type Announcer interface {
	Execute(ctx context.Context, in chatusecase.AnnounceDealAcceptedInput) error
}

// DecideApplicationInput carries the campaign owner's ruling on an application.
type DecideApplicationInput struct {
	ApplicationID string
	UserID        string
	Decision      string
}

// DecideApplicationUseCase lets a campaign owner accept or reject a pending
// application. Acceptance additionally opens the chat lane between the two
// parties and drops a system message announcing the deal. The announcement
// runs after the status update: if it fails the error propagates, but the
// acceptance stands and a retry of the same acceptance is absorbed by the
// announcement's idempotency token.
type DecideApplicationUseCase struct {
	Repo      repository.DealRepository
	Announcer Announcer
}

func NewDecideApplicationUseCase(repo repository.DealRepository, announcer Announcer) *DecideApplicationUseCase {
	return &DecideApplicationUseCase{Repo: repo, Announcer: announcer}
}

func (uc *DecideApplicationUseCase) Execute(ctx context.Context, in DecideApplicationInput) (*deals.Application, error) {
	if in.UserID == "" {
		return nil, deals.ErrUnauthorized
	}
	decision, err := deals.ParseDecision(in.Decision)
	if err != nil {
		return nil, err
	}

	app, err := uc.Repo.GetApplication(ctx, in.ApplicationID)
	if errors.Is(err, deals.ErrInvalidArgument) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if app == nil {
		return nil, deals.ErrNotFound
	}
	if app.CampaignOwnerID != in.UserID {
		return nil, deals.ErrForbidden
	}
	if app.Status != deals.ApplicationPending {
		return nil, deals.ErrAlreadyProcessed
	}

	app.Status = deals.ApplicationStatus(decision)
	if err := uc.Repo.UpdateApplicationStatus(ctx, app.ID, app.Status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if decision == deals.DecisionAccepted && uc.Announcer != nil {
		err := uc.Announcer.Execute(ctx, chatusecase.AnnounceDealAcceptedInput{
			CreatorID:  app.ApplicantID,
			BrandID:    app.CampaignOwnerID,
			SenderID:   app.CampaignOwnerID,
			SystemText: applicationAcceptedText(*app),
			ClientID:   "application-accepted:" + app.ID,
		})
		if err != nil {
			return nil, err
		}
	}
	return app, nil
}

func applicationAcceptedText(app deals.Application) string {
	text := fmt.Sprintf("Your application for campaign %q was accepted.", app.CampaignTitle)
	if app.Title != "" {
		text = fmt.Sprintf("Your application %q for campaign %q was accepted.", app.Title, app.CampaignTitle)
	}
	if app.Description != "" {
		text += " " + app.Description
	}
	return text
}
