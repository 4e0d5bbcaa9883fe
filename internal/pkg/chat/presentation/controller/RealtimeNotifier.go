package controller

import (
	"encoding/json"

	"github.com/jasmeets-6575/collabKar-be/internal/infrastructure/realtime"
	chat "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/domain"
	"github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/usecase"
)

// RealtimeNotifier adapts the session router to the announcer's Notifier
// port. It targets the per-user rooms in addition to the conversation room so
// a participant who never joined the conversation room still sees the message
// on any live session. A participant with no sessions simply receives
// nothing; the message stays durable either way.
type RealtimeNotifier struct {
	router *realtime.Router
}

func NewRealtimeNotifier(router *realtime.Router) *RealtimeNotifier {
	return &RealtimeNotifier{router: router}
}

var _ usecase.Notifier = (*RealtimeNotifier)(nil)

func (n *RealtimeNotifier) NotifyMessage(conversationID string, participants []string, m chat.Message) {
	frame := messageEventFrame{Event: "chat:new", messagePayload: toPayload(m)}
	payload, err := json.Marshal(frame)
	if err != nil {
		return
	}
	for _, p := range participants {
		n.router.Broadcast(realtime.UserRoom(p), payload)
	}
	n.router.Broadcast(realtime.ConversationRoom(conversationID), payload)
}
