package deals

import "time"

type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteRejected InviteStatus = "rejected"
)

// Invite is a business asking a specific creator to join a campaign. Only the
// invited creator may rule on it.
type Invite struct {
	ID            string       `db:"id"`
	CampaignID    string       `db:"campaign_id"`
	CampaignTitle string       `db:"campaign_title"`
	BusinessID    string       `db:"business_id"`
	CreatorID     string       `db:"creator_id"`
	Status        InviteStatus `db:"status"`
	CreatedAt     time.Time    `db:"created_at"`
}
