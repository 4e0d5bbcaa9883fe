package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/domain"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/persistence/repository/port"
)

// fakeChatRepository is an in-memory stand-in for the PostgreSQL adapter. The
// loseCreateRace / loseInsertRace switches simulate a concurrent writer
// winning the uniqueness constraint: the fake plants the winner's row and
// fails the caller's write with ErrDuplicateKey.
type fakeChatRepository struct {
	byKey map[string]*chat.Conversation
	byID  map[string]*chat.Conversation
	msgs  map[string][]chat.Message

	connections []chat.ChatConnection
	upserts     int

	nextConv int
	nextMsg  int
	clock    time.Time

	loseCreateRace  bool
	loseInsertRace  bool
	participantsErr error
}

func newFakeChatRepository() *fakeChatRepository {
	return &fakeChatRepository{
		byKey: make(map[string]*chat.Conversation),
		byID:  make(map[string]*chat.Conversation),
		msgs:  make(map[string][]chat.Message),
		clock: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

var _ repository.ChatRepository = (*fakeChatRepository)(nil)

func (f *fakeChatRepository) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeChatRepository) storeConversation(c chat.Conversation) *chat.Conversation {
	f.nextConv++
	c.ID = fmt.Sprintf("conv-%d", f.nextConv)
	c.CreatedAt = f.tick()
	stored := c
	f.byKey[c.DMKey] = &stored
	f.byID[c.ID] = &stored
	return &stored
}

func (f *fakeChatRepository) FindConversationByKey(_ context.Context, dmKey string) (*chat.Conversation, error) {
	if c, ok := f.byKey[dmKey]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeChatRepository) CreateConversation(_ context.Context, c chat.Conversation) (*chat.Conversation, error) {
	if f.loseCreateRace {
		f.loseCreateRace = false
		f.storeConversation(c)
		return nil, repository.ErrDuplicateKey
	}
	if _, ok := f.byKey[c.DMKey]; ok {
		return nil, repository.ErrDuplicateKey
	}
	return f.storeConversation(c), nil
}

func (f *fakeChatRepository) GetParticipants(_ context.Context, conversationID string) ([]string, error) {
	if f.participantsErr != nil {
		return nil, f.participantsErr
	}
	c, ok := f.byID[conversationID]
	if !ok {
		return nil, chat.ErrNotFound
	}
	return append([]string(nil), c.Participants...), nil
}

func (f *fakeChatRepository) ListConversations(_ context.Context, userID string, limit, offset int) ([]chat.Conversation, int64, error) {
	var all []chat.Conversation
	for _, c := range f.byID {
		for _, p := range c.Participants {
			if p == userID {
				all = append(all, *c)
				break
			}
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeChatRepository) RecordLastMessage(_ context.Context, conversationID, messageID string, at time.Time) error {
	if c, ok := f.byID[conversationID]; ok {
		c.LastMessageID = &messageID
		c.LastMessageAt = &at
	}
	return nil
}

func (f *fakeChatRepository) FindMessageByClientID(_ context.Context, conversationID, clientID string) (*chat.Message, error) {
	for _, m := range f.msgs[conversationID] {
		if m.ClientID != nil && *m.ClientID == clientID {
			cp := m
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeChatRepository) InsertMessage(_ context.Context, m chat.Message) (*chat.Message, error) {
	if f.loseInsertRace {
		f.loseInsertRace = false
		f.store(m)
		return nil, repository.ErrDuplicateKey
	}
	if m.ClientID != nil {
		for _, existing := range f.msgs[m.ConversationID] {
			if existing.ClientID != nil && *existing.ClientID == *m.ClientID {
				return nil, repository.ErrDuplicateKey
			}
		}
	}
	return f.store(m), nil
}

func (f *fakeChatRepository) store(m chat.Message) *chat.Message {
	f.nextMsg++
	m.ID = fmt.Sprintf("msg-%d", f.nextMsg)
	m.CreatedAt = f.tick()
	f.msgs[m.ConversationID] = append(f.msgs[m.ConversationID], m)
	return &m
}

// ListMessages mirrors the storage contract: newest first.
func (f *fakeChatRepository) ListMessages(_ context.Context, conversationID string, limit, offset int) ([]chat.Message, error) {
	stored := f.msgs[conversationID]
	var newestFirst []chat.Message
	for i := len(stored) - 1; i >= 0; i-- {
		newestFirst = append(newestFirst, stored[i])
	}
	if offset >= len(newestFirst) {
		return nil, nil
	}
	end := offset + limit
	if end > len(newestFirst) {
		end = len(newestFirst)
	}
	return newestFirst[offset:end], nil
}

func (f *fakeChatRepository) UpsertChatConnection(_ context.Context, creatorID, brandID string) error {
	f.upserts++
	for _, c := range f.connections {
		if c.CreatorID == creatorID && c.BrandID == brandID {
			return nil
		}
	}
	f.connections = append(f.connections, chat.ChatConnection{
		ID:        fmt.Sprintf("cc-%d", len(f.connections)+1),
		CreatorID: creatorID,
		BrandID:   brandID,
		Status:    chat.ConnectionStatusActive,
		CreatedAt: f.tick(),
	})
	return nil
}

func (f *fakeChatRepository) ListChatConnections(_ context.Context, userID string, limit, offset int) ([]chat.ChatConnection, int64, error) {
	var all []chat.ChatConnection
	for _, c := range f.connections {
		if c.CreatorID == userID || c.BrandID == userID {
			all = append(all, c)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type notifierCall struct {
	conversationID string
	participants   []string
	message        chat.Message
}

type fakeNotifier struct {
	calls []notifierCall
}

func (n *fakeNotifier) NotifyMessage(conversationID string, participants []string, m chat.Message) {
	n.calls = append(n.calls, notifierCall{conversationID: conversationID, participants: participants, message: m})
}

func TestOpenConversationCreatesOnce(t *testing.T) {
	repo := newFakeChatRepository()
	uc := NewOpenConversationUseCase(repo)

	first, err := uc.Execute(context.Background(), OpenConversationInput{UserID: "alice", OtherUserID: "bob"})
	require.NoError(t, err)
	assert.Equal(t, "alice_bob", first.DMKey)
	assert.ElementsMatch(t, []string{"alice", "bob"}, first.Participants)

	// the other party opening the same pair lands on the same conversation
	second, err := uc.Execute(context.Background(), OpenConversationInput{UserID: "bob", OtherUserID: "alice"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.byID, 1)
}

func TestOpenConversationSelfDM(t *testing.T) {
	uc := NewOpenConversationUseCase(newFakeChatRepository())
	_, err := uc.Execute(context.Background(), OpenConversationInput{UserID: "alice", OtherUserID: "alice"})
	require.ErrorIs(t, err, chat.ErrSelfDM)
}

func TestOpenConversationUnauthorized(t *testing.T) {
	uc := NewOpenConversationUseCase(newFakeChatRepository())
	_, err := uc.Execute(context.Background(), OpenConversationInput{UserID: "", OtherUserID: "bob"})
	require.ErrorIs(t, err, chat.ErrUnauthorized)
}

func TestOpenConversationLosesCreateRace(t *testing.T) {
	repo := newFakeChatRepository()
	repo.loseCreateRace = true
	uc := NewOpenConversationUseCase(repo)

	conv, err := uc.Execute(context.Background(), OpenConversationInput{UserID: "alice", OtherUserID: "bob"})
	require.NoError(t, err)
	assert.Equal(t, "alice_bob", conv.DMKey)
	assert.Len(t, repo.byID, 1)
}

func TestJoinConversation(t *testing.T) {
	repo := newFakeChatRepository()
	conv := repo.storeConversation(chat.Conversation{
		Type: chat.ConversationTypeDM, Participants: []string{"alice", "bob"}, DMKey: "alice_bob",
	})
	uc := NewJoinConversationUseCase(repo)

	require.NoError(t, uc.Execute(context.Background(), JoinConversationInput{ConversationID: conv.ID, UserID: "alice"}))

	err := uc.Execute(context.Background(), JoinConversationInput{ConversationID: conv.ID, UserID: "mallory"})
	require.ErrorIs(t, err, chat.ErrForbidden)

	err = uc.Execute(context.Background(), JoinConversationInput{ConversationID: "conv-missing", UserID: "alice"})
	require.ErrorIs(t, err, chat.ErrNotFound)

	err = uc.Execute(context.Background(), JoinConversationInput{ConversationID: "", UserID: "alice"})
	require.ErrorIs(t, err, chat.ErrInvalidArgument)
}

func TestSendMessagePersistsAndAdvancesPointer(t *testing.T) {
	repo := newFakeChatRepository()
	conv := repo.storeConversation(chat.Conversation{
		Type: chat.ConversationTypeDM, Participants: []string{"alice", "bob"}, DMKey: "alice_bob",
	})
	uc := NewSendMessageUseCase(repo)

	msg, err := uc.Execute(context.Background(), SendMessageInput{
		ConversationID: conv.ID, SenderID: "alice", Text: "  hello bob  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello bob", msg.Text)
	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.CreatedAt.IsZero())

	stored := repo.byID[conv.ID]
	require.NotNil(t, stored.LastMessageID)
	assert.Equal(t, msg.ID, *stored.LastMessageID)
}

func TestSendMessageReplayReturnsOriginal(t *testing.T) {
	repo := newFakeChatRepository()
	conv := repo.storeConversation(chat.Conversation{
		Type: chat.ConversationTypeDM, Participants: []string{"alice", "bob"}, DMKey: "alice_bob",
	})
	uc := NewSendMessageUseCase(repo)
	clientID := "retry-1"

	first, err := uc.Execute(context.Background(), SendMessageInput{
		ConversationID: conv.ID, SenderID: "alice", Text: "hello", ClientID: &clientID,
	})
	require.NoError(t, err)

	replay, err := uc.Execute(context.Background(), SendMessageInput{
		ConversationID: conv.ID, SenderID: "alice", Text: "hello", ClientID: &clientID,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, replay.ID)
	assert.Len(t, repo.msgs[conv.ID], 1)
}

func TestSendMessageLosesInsertRace(t *testing.T) {
	repo := newFakeChatRepository()
	conv := repo.storeConversation(chat.Conversation{
		Type: chat.ConversationTypeDM, Participants: []string{"alice", "bob"}, DMKey: "alice_bob",
	})
	repo.loseInsertRace = true
	uc := NewSendMessageUseCase(repo)
	clientID := "race-1"

	msg, err := uc.Execute(context.Background(), SendMessageInput{
		ConversationID: conv.ID, SenderID: "alice", Text: "hello", ClientID: &clientID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Len(t, repo.msgs[conv.ID], 1)
}

func TestSendMessageForbiddenPersistsNothing(t *testing.T) {
	repo := newFakeChatRepository()
	conv := repo.storeConversation(chat.Conversation{
		Type: chat.ConversationTypeDM, Participants: []string{"alice", "bob"}, DMKey: "alice_bob",
	})
	uc := NewSendMessageUseCase(repo)

	_, err := uc.Execute(context.Background(), SendMessageInput{
		ConversationID: conv.ID, SenderID: "mallory", Text: "hi",
	})
	require.ErrorIs(t, err, chat.ErrForbidden)
	assert.Empty(t, repo.msgs[conv.ID])
}

func TestSendMessageValidation(t *testing.T) {
	repo := newFakeChatRepository()
	conv := repo.storeConversation(chat.Conversation{
		Type: chat.ConversationTypeDM, Participants: []string{"alice", "bob"}, DMKey: "alice_bob",
	})
	uc := NewSendMessageUseCase(repo)

	_, err := uc.Execute(context.Background(), SendMessageInput{ConversationID: conv.ID, SenderID: "alice", Text: "   "})
	require.ErrorIs(t, err, chat.ErrInvalidArgument)

	_, err = uc.Execute(context.Background(), SendMessageInput{ConversationID: "", SenderID: "alice", Text: "hi"})
	require.ErrorIs(t, err, chat.ErrInvalidArgument)

	_, err = uc.Execute(context.Background(), SendMessageInput{ConversationID: conv.ID, SenderID: "", Text: "hi"})
	require.ErrorIs(t, err, chat.ErrUnauthorized)
}

func TestGetMessagesReturnsDisplayOrder(t *testing.T) {
	repo := newFakeChatRepository()
	conv := repo.storeConversation(chat.Conversation{
		Type: chat.ConversationTypeDM, Participants: []string{"alice", "bob"}, DMKey: "alice_bob",
	})
	send := NewSendMessageUseCase(repo)
	for _, text := range []string{"one", "two", "three"} {
		_, err := send.Execute(context.Background(), SendMessageInput{ConversationID: conv.ID, SenderID: "alice", Text: text})
		require.NoError(t, err)
	}

	uc := NewGetMessageUseCase(repo)
	msgs, err := uc.Execute(context.Background(), GetMessageInput{ConversationID: conv.ID, UserID: "bob"})
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "one", msgs[0].Text)
	assert.Equal(t, "two", msgs[1].Text)
	assert.Equal(t, "three", msgs[2].Text)
}

func TestGetMessagesPagination(t *testing.T) {
	repo := newFakeChatRepository()
	conv := repo.storeConversation(chat.Conversation{
		Type: chat.ConversationTypeDM, Participants: []string{"alice", "bob"}, DMKey: "alice_bob",
	})
	send := NewSendMessageUseCase(repo)
	for i := 1; i <= 5; i++ {
		_, err := send.Execute(context.Background(), SendMessageInput{ConversationID: conv.ID, SenderID: "alice", Text: fmt.Sprintf("m%d", i)})
		require.NoError(t, err)
	}

	uc := NewGetMessageUseCase(repo)

	// page 1 holds the two newest, in display order
	page1, err := uc.Execute(context.Background(), GetMessageInput{ConversationID: conv.ID, UserID: "bob", Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "m4", page1[0].Text)
	assert.Equal(t, "m5", page1[1].Text)

	page2, err := uc.Execute(context.Background(), GetMessageInput{ConversationID: conv.ID, UserID: "bob", Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, "m2", page2[0].Text)
	assert.Equal(t, "m3", page2[1].Text)

	// a page past the end is empty, not an error
	page4, err := uc.Execute(context.Background(), GetMessageInput{ConversationID: conv.ID, UserID: "bob", Page: 4, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, page4)
}

func TestSendMessageMalformedConversationID(t *testing.T) {
	repo := newFakeChatRepository()
	// the adapter reports ids that fail the uuid cast as invalid argument
	repo.participantsErr = fmt.Errorf("%w: malformed id", chat.ErrInvalidArgument)
	uc := NewSendMessageUseCase(repo)

	_, err := uc.Execute(context.Background(), SendMessageInput{
		ConversationID: "abc", SenderID: "alice", Text: "hi",
	})
	require.ErrorIs(t, err, chat.ErrInvalidArgument)
	require.NotErrorIs(t, err, ErrPersistence)
}

func TestJoinConversationMalformedID(t *testing.T) {
	repo := newFakeChatRepository()
	repo.participantsErr = fmt.Errorf("%w: malformed id", chat.ErrInvalidArgument)
	uc := NewJoinConversationUseCase(repo)

	err := uc.Execute(context.Background(), JoinConversationInput{ConversationID: "abc", UserID: "alice"})
	require.ErrorIs(t, err, chat.ErrInvalidArgument)
	require.NotErrorIs(t, err, ErrPersistence)
}

func TestGetMessagesForbidden(t *testing.T) {
	repo := newFakeChatRepository()
	conv := repo.storeConversation(chat.Conversation{
		Type: chat.ConversationTypeDM, Participants: []string{"alice", "bob"}, DMKey: "alice_bob",
	})
	uc := NewGetMessageUseCase(repo)

	_, err := uc.Execute(context.Background(), GetMessageInput{ConversationID: conv.ID, UserID: "mallory"})
	require.ErrorIs(t, err, chat.ErrForbidden)
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 30},
		{-3, -1, 1, 30},
		{2, 10, 2, 10},
		{1, 100, 1, 100},
		{1, 500, 1, 100},
	}
	for _, tt := range tests {
		page, limit := clampPage(tt.page, tt.limit)
		assert.Equal(t, tt.wantPage, page)
		assert.Equal(t, tt.wantLimit, limit)
	}
}

func TestAnnounceDealAccepted(t *testing.T) {
	repo := newFakeChatRepository()
	notifier := &fakeNotifier{}
	uc := NewAnnounceDealAcceptedUseCase(repo, notifier)

	in := AnnounceDealAcceptedInput{
		CreatorID:  "creator-1",
		BrandID:    "brand-1",
		SenderID:   "brand-1",
		SystemText: "Your application was accepted.",
		ClientID:   "application-accepted:app-1",
	}
	require.NoError(t, uc.Execute(context.Background(), in))

	assert.Equal(t, 1, repo.upserts)
	require.Len(t, repo.byID, 1)
	require.Len(t, notifier.calls, 1)
	call := notifier.calls[0]
	assert.ElementsMatch(t, []string{"creator-1", "brand-1"}, call.participants)
	assert.Equal(t, "Your application was accepted.", call.message.Text)
	require.NotNil(t, call.message.ClientID)
	assert.Equal(t, "application-accepted:app-1", *call.message.ClientID)
}

func TestAnnounceDealAcceptedReplayIsSilent(t *testing.T) {
	repo := newFakeChatRepository()
	notifier := &fakeNotifier{}
	uc := NewAnnounceDealAcceptedUseCase(repo, notifier)

	in := AnnounceDealAcceptedInput{
		CreatorID:  "creator-1",
		BrandID:    "brand-1",
		SenderID:   "creator-1",
		SystemText: "Your invite was accepted.",
		ClientID:   "invite-accepted:inv-1",
	}
	require.NoError(t, uc.Execute(context.Background(), in))
	require.NoError(t, uc.Execute(context.Background(), in))

	// one message, one broadcast, regardless of how often the acceptance replays
	var total int
	for _, msgs := range repo.msgs {
		total += len(msgs)
	}
	assert.Equal(t, 1, total)
	assert.Len(t, notifier.calls, 1)
}

func TestAnnounceDealAcceptedValidation(t *testing.T) {
	uc := NewAnnounceDealAcceptedUseCase(newFakeChatRepository(), &fakeNotifier{})

	err := uc.Execute(context.Background(), AnnounceDealAcceptedInput{
		CreatorID: "c", BrandID: "b", SenderID: "b", SystemText: "hi",
	})
	require.ErrorIs(t, err, chat.ErrInvalidArgument)

	err = uc.Execute(context.Background(), AnnounceDealAcceptedInput{
		CreatorID: "c", BrandID: "b", SenderID: "outsider", SystemText: "hi", ClientID: "t",
	})
	require.ErrorIs(t, err, chat.ErrInvalidArgument)
}

func TestListConversationsUnauthorized(t *testing.T) {
	uc := NewListConversationsUseCase(newFakeChatRepository())
	_, err := uc.Execute(context.Background(), ListConversationsInput{UserID: ""})
	require.ErrorIs(t, err, chat.ErrUnauthorized)
}

func TestListConnectionsAfterAnnounce(t *testing.T) {
	repo := newFakeChatRepository()
	announce := NewAnnounceDealAcceptedUseCase(repo, nil)
	require.NoError(t, announce.Execute(context.Background(), AnnounceDealAcceptedInput{
		CreatorID: "creator-1", BrandID: "brand-1", SenderID: "brand-1",
		SystemText: "accepted", ClientID: "application-accepted:app-9",
	}))

	uc := NewListConnectionsUseCase(repo)
	out, err := uc.Execute(context.Background(), ListConnectionsInput{UserID: "creator-1"})
	require.NoError(t, err)
	require.Len(t, out.Connections, 1)
	assert.Equal(t, "brand-1", out.Connections[0].BrandID)
	assert.Equal(t, int64(1), out.Total)
}
