package repository

import (
	"context"

	deals "github.com/jasmeets-6575/collabKar-be/internal/pkg/deals/application/domain"
)

// DealRepository is the persistence port for campaign applications and
// invites. Absent rows come back as (nil, nil); soft-deleted invites are
// treated as absent.
type DealRepository interface {
	GetApplication(ctx context.Context, id string) (*deals.Application, error)
	UpdateApplicationStatus(ctx context.Context, id string, status deals.ApplicationStatus) error

	GetInvite(ctx context.Context, id string) (*deals.Invite, error)
	UpdateInviteStatus(ctx context.Context, id string, status deals.InviteStatus) error
}
