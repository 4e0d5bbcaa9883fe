package adapter

import (
	"context"
	"strings"

	cacheport "github.com/jasmeets-6575/collabKar-be/internal/infrastructure/cache/port"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/persistence/repository/port"
)

const participantsKeyPrefix = "chat:participants:"

// CachedChatRepository decorates a ChatRepository with a participant-set
// cache. DM participant sets are immutable once the conversation exists, so
// entries never need invalidation; the cache only trims the membership lookup
// on the send path. Cache failures degrade to the database, never to an error.
type CachedChatRepository struct {
	repository.ChatRepository
	cache cacheport.Cache
}

func NewCachedChatRepository(repo repository.ChatRepository, cache cacheport.Cache) *CachedChatRepository {
	return &CachedChatRepository{ChatRepository: repo, cache: cache}
}

func (r *CachedChatRepository) GetParticipants(ctx context.Context, conversationID string) ([]string, error) {
	key := participantsKeyPrefix + conversationID

	// a miss and a transport error both fall through to the database
	if cached, err := r.cache.Get(ctx, key); err == nil && cached != "" {
		return strings.Split(cached, ","), nil
	}

	participants, err := r.ChatRepository.GetParticipants(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	// best-effort populate; participant sets never change, so no TTL
	_ = r.cache.Set(ctx, key, strings.Join(participants, ","), 0)

	return participants, nil
}
