package chat

import "time"

// ConnectionStatus reflects whether a creator/brand pairing may still be
// considered active. The messaging gateway does not consult it: any pair with
// a persisted Conversation may always continue messaging.
type ConnectionStatus string

const (
	ConnectionStatusActive   ConnectionStatus = "active"
	ConnectionStatusInactive ConnectionStatus = "inactive"
)

// ChatConnection records that a creator and a brand entered a collaboration.
// It is upserted when a deal is accepted and served read-only afterwards.
type ChatConnection struct {
	ID        string           `db:"id"`
	CreatorID string           `db:"creator_id"`
	BrandID   string           `db:"brand_id"`
	Status    ConnectionStatus `db:"status"`
	CreatedAt time.Time        `db:"created_at"`
}
