package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	deals "github.com/jasmeets-6575/collabKar-be/internal/pkg/deals/application/domain"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/deals/persistence/repository/port"
)

// PgDealRepository persists campaign applications and invites in PostgreSQL.
type PgDealRepository struct {
	pool *pgxpool.Pool
}

// mapIDError converts SQLSTATE 22P02 (a caller-supplied id failing the uuid
// cast) into the domain's invalid-argument error.
func mapIDError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "22P02" {
		return fmt.Errorf("%w: malformed id", deals.ErrInvalidArgument)
	}
	return err
}

func NewPgDealRepository(pool *pgxpool.Pool) *PgDealRepository {
	return &PgDealRepository{pool: pool}
}

var _ repository.DealRepository = (*PgDealRepository)(nil)

func (r *PgDealRepository) GetApplication(ctx context.Context, id string) (*deals.Application, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgDealRepository: nil pool")
	}
	var a deals.Application
	var status string
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, campaign_id::text, campaign_title, campaign_owner_id, applicant_id, title, description, status, created_at
		FROM campaign_applications
		WHERE id = $1::uuid
	`, id).Scan(&a.ID, &a.CampaignID, &a.CampaignTitle, &a.CampaignOwnerID, &a.ApplicantID, &a.Title, &a.Description, &status, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapIDError(err)
	}
	a.Status = deals.ApplicationStatus(status)
	return &a, nil
}

func (r *PgDealRepository) UpdateApplicationStatus(ctx context.Context, id string, status deals.ApplicationStatus) error {
	if r == nil || r.pool == nil {
		return errors.New("PgDealRepository: nil pool")
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE campaign_applications SET status = $2 WHERE id = $1::uuid
	`, id, string(status))
	if err != nil {
		return mapIDError(err)
	}
	if tag.RowsAffected() == 0 {
		return deals.ErrNotFound
	}
	return nil
}

func (r *PgDealRepository) GetInvite(ctx context.Context, id string) (*deals.Invite, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgDealRepository: nil pool")
	}
	var inv deals.Invite
	var status string
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, campaign_id::text, campaign_title, business_id, creator_id, status, created_at
		FROM campaign_invites
		WHERE id = $1::uuid AND NOT is_deleted
	`, id).Scan(&inv.ID, &inv.CampaignID, &inv.CampaignTitle, &inv.BusinessID, &inv.CreatorID, &status, &inv.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapIDError(err)
	}
	inv.Status = deals.InviteStatus(status)
	return &inv, nil
}

func (r *PgDealRepository) UpdateInviteStatus(ctx context.Context, id string, status deals.InviteStatus) error {
	if r == nil || r.pool == nil {
		return errors.New("PgDealRepository: nil pool")
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE campaign_invites SET status = $2 WHERE id = $1::uuid AND NOT is_deleted
	`, id, string(status))
	if err != nil {
		return mapIDError(err)
	}
	if tag.RowsAffected() == 0 {
		return deals.ErrNotFound
	}
	return nil
}
