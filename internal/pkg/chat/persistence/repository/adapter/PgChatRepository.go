package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/domain"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/persistence/repository/port"
)

// PgChatRepository persists conversations, messages and chat connections in
// PostgreSQL. The dm-key and per-conversation client-id invariants are
// enforced by unique indexes; a 23505 on insert surfaces as
// repository.ErrDuplicateKey so callers can re-read.
type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

var _ repository.ChatRepository = (*PgChatRepository)(nil)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isInvalidID reports SQLSTATE 22P02: the caller-supplied id failed the uuid
// cast. The ids come straight off the wire, so this is caller input, not a
// server fault.
func isInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

func mapIDError(err error) error {
	if isInvalidID(err) {
		return fmt.Errorf("%w: malformed id", chat.ErrInvalidArgument)
	}
	return err
}

func (r *PgChatRepository) FindConversationByKey(ctx context.Context, dmKey string) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id::text, conv_type, participants, dm_key, last_message_id::text, last_message_at, created_at
		FROM conversations
		WHERE dm_key = $1
	`, dmKey)
	return scanConversation(row)
}

func (r *PgChatRepository) CreateConversation(ctx context.Context, c chat.Conversation) (*chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO conversations (conv_type, participants, dm_key)
		VALUES ($1, $2, $3)
		RETURNING id::text, conv_type, participants, dm_key, last_message_id::text, last_message_at, created_at
	`, string(c.Type), c.Participants, c.DMKey)

	created, err := scanConversation(row)
	if err != nil {
		return nil, err
	}
	if created == nil {
		// RETURNING produced no row only when the insert itself failed.
		return nil, pgx.ErrNoRows
	}
	return created, nil
}

func (r *PgChatRepository) GetParticipants(ctx context.Context, conversationID string) ([]string, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	var participants []string
	err := r.pool.QueryRow(ctx, `
		SELECT participants FROM conversations WHERE id = $1::uuid
	`, conversationID).Scan(&participants)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, chat.ErrNotFound
	}
	if err != nil {
		return nil, mapIDError(err)
	}
	return participants, nil
}

func (r *PgChatRepository) ListConversations(ctx context.Context, userID string, limit, offset int) ([]chat.Conversation, int64, error) {
	if r == nil || r.pool == nil {
		return nil, 0, errors.New("PgChatRepository: nil pool")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM conversations WHERE $1 = ANY(participants)
	`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id::text, conv_type, participants, dm_key, last_message_id::text, last_message_at, created_at
		FROM conversations
		WHERE $1 = ANY(participants)
		ORDER BY COALESCE(last_message_at, created_at) DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var convs []chat.Conversation
	for rows.Next() {
		c, err := scanConversationRow(rows)
		if err != nil {
			return nil, 0, err
		}
		convs = append(convs, *c)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}
	return convs, total, nil
}

// RecordLastMessage advances the denormalized last-message pointer. The
// message log is the source of truth; this is a read optimization.
func (r *PgChatRepository) RecordLastMessage(ctx context.Context, conversationID, messageID string, at time.Time) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE conversations
		SET last_message_id = $2::uuid, last_message_at = $3
		WHERE id = $1::uuid
	`, conversationID, messageID, at)
	return err
}

func (r *PgChatRepository) FindMessageByClientID(ctx context.Context, conversationID, clientID string) (*chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id::text, conversation_id::text, sender_id, body, client_id, created_at
		FROM messages
		WHERE conversation_id = $1::uuid AND client_id = $2
	`, conversationID, clientID)
	return scanMessage(row)
}

func (r *PgChatRepository) InsertMessage(ctx context.Context, m chat.Message) (*chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, sender_id, body, client_id)
		VALUES ($1::uuid, $2, $3, $4)
		RETURNING id::text, conversation_id::text, sender_id, body, client_id, created_at
	`, m.ConversationID, m.SenderID, m.Text, m.ClientID)

	saved, err := scanMessage(row)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, pgx.ErrNoRows
	}
	return saved, nil
}

// ListMessages returns one page in storage order: newest first, insertion
// sequence breaking created_at ties. Callers that need display order reverse
// at their boundary.
func (r *PgChatRepository) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, conversation_id::text, sender_id, body, client_id, created_at
		FROM messages
		WHERE conversation_id = $1::uuid
		ORDER BY created_at DESC, seq DESC
		LIMIT $2 OFFSET $3
	`, conversationID, limit, offset)
	if err != nil {
		return nil, mapIDError(err)
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Text, &m.ClientID, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if rows.Err() != nil {
		return nil, mapIDError(rows.Err())
	}
	return msgs, nil
}

func (r *PgChatRepository) UpsertChatConnection(ctx context.Context, creatorID, brandID string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO chat_connections (creator_id, brand_id, status)
		VALUES ($1, $2, 'active')
		ON CONFLICT (creator_id, brand_id) DO NOTHING
	`, creatorID, brandID)
	return err
}

func (r *PgChatRepository) ListChatConnections(ctx context.Context, userID string, limit, offset int) ([]chat.ChatConnection, int64, error) {
	if r == nil || r.pool == nil {
		return nil, 0, errors.New("PgChatRepository: nil pool")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM chat_connections
		WHERE NOT is_deleted AND (creator_id = $1 OR brand_id = $1)
	`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id::text, creator_id, brand_id, status, created_at
		FROM chat_connections
		WHERE NOT is_deleted AND (creator_id = $1 OR brand_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var conns []chat.ChatConnection
	for rows.Next() {
		var c chat.ChatConnection
		if err := rows.Scan(&c.ID, &c.CreatorID, &c.BrandID, &c.Status, &c.CreatedAt); err != nil {
			return nil, 0, err
		}
		conns = append(conns, c)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}
	return conns, total, nil
}

// --- scan helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConversation(row pgx.Row) (*chat.Conversation, error) {
	c, err := scanConversationRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil && isUniqueViolation(err) {
		return nil, repository.ErrDuplicateKey
	}
	return c, err
}

func scanConversationRow(row rowScanner) (*chat.Conversation, error) {
	var c chat.Conversation
	var convType string
	if err := row.Scan(&c.ID, &convType, &c.Participants, &c.DMKey, &c.LastMessageID, &c.LastMessageAt, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Type = chat.ConversationType(convType)
	return &c, nil
}

func scanMessage(row pgx.Row) (*chat.Message, error) {
	var m chat.Message
	err := row.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Text, &m.ClientID, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil && isUniqueViolation(err) {
		return nil, repository.ErrDuplicateKey
	}
	if err != nil {
		return nil, mapIDError(err)
	}
	return &m, nil
}
