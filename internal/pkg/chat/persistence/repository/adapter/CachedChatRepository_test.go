package adapter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cacheport "github.com/jasmeets-6575/collabKar-be/internal/infrastructure/cache/port"
	chat "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/domain"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/persistence/repository/port"
)

// participantsSource stubs just the method the decorator overrides.
type participantsSource struct {
	repository.ChatRepository

	participants map[string][]string
	calls        int
}

func (s *participantsSource) GetParticipants(_ context.Context, conversationID string) ([]string, error) {
	s.calls++
	if p, ok := s.participants[conversationID]; ok {
		return p, nil
	}
	return nil, chat.ErrNotFound
}

type memoryCache struct {
	values map[string]string
	sets   int
	broken bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string]string)}
}

var _ cacheport.Cache = (*memoryCache)(nil)

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	if c.broken {
		return "", assert.AnError
	}
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	return "", cacheport.ErrMiss
}

func (c *memoryCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	if c.broken {
		return assert.AnError
	}
	c.sets++
	c.values[key] = value
	return nil
}

func (c *memoryCache) Del(_ context.Context, keys ...string) (int64, error) {
	var n int64
	for _, k := range keys {
		if _, ok := c.values[k]; ok {
			delete(c.values, k)
			n++
		}
	}
	return n, nil
}

func (c *memoryCache) Ping(context.Context) error { return nil }
func (c *memoryCache) Close() error               { return nil }

func TestCachedGetParticipantsPopulatesOnMiss(t *testing.T) {
	src := &participantsSource{participants: map[string][]string{"conv-1": {"alice", "bob"}}}
	cache := newMemoryCache()
	repo := NewCachedChatRepository(src, cache)

	got, err := repo.GetParticipants(context.Background(), "conv-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, got)
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, "alice,bob", cache.values["chat:participants:conv-1"])
}

func TestCachedGetParticipantsServesFromCache(t *testing.T) {
	src := &participantsSource{participants: map[string][]string{"conv-1": {"alice", "bob"}}}
	cache := newMemoryCache()
	repo := NewCachedChatRepository(src, cache)

	for i := 0; i < 3; i++ {
		got, err := repo.GetParticipants(context.Background(), "conv-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob"}, got)
	}
	assert.Equal(t, 1, src.calls)
}

func TestCachedGetParticipantsDegradesOnCacheFailure(t *testing.T) {
	src := &participantsSource{participants: map[string][]string{"conv-1": {"alice", "bob"}}}
	cache := newMemoryCache()
	cache.broken = true
	repo := NewCachedChatRepository(src, cache)

	got, err := repo.GetParticipants(context.Background(), "conv-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, got)
	assert.Equal(t, 1, src.calls)
}

func TestCachedGetParticipantsMissingConversation(t *testing.T) {
	src := &participantsSource{participants: map[string][]string{}}
	repo := NewCachedChatRepository(src, newMemoryCache())

	_, err := repo.GetParticipants(context.Background(), "conv-missing")
	require.ErrorIs(t, err, chat.ErrNotFound)
}
