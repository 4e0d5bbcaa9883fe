package deals

import "time"

// DecisionStatus is the terminal state a pending application or invite moves
// to when its owner rules on it.
type DecisionStatus string

const (
	DecisionAccepted DecisionStatus = "accepted"
	DecisionRejected DecisionStatus = "rejected"
)

// ParseDecision validates a caller-supplied decision string.
func ParseDecision(s string) (DecisionStatus, error) {
	switch DecisionStatus(s) {
	case DecisionAccepted, DecisionRejected:
		return DecisionStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationCancelled ApplicationStatus = "cancelled"
)

// Application is a creator's pitch for a campaign. The campaign title and
// owner are denormalized onto the row so decisions never need a second lookup.
type Application struct {
	ID              string            `db:"id"`
	CampaignID      string            `db:"campaign_id"`
	CampaignTitle   string            `db:"campaign_title"`
	CampaignOwnerID string            `db:"campaign_owner_id"`
	ApplicantID     string            `db:"applicant_id"`
	Title           string            `db:"title"`
	Description     string            `db:"description"`
	Status          ApplicationStatus `db:"status"`
	CreatedAt       time.Time         `db:"created_at"`
}
