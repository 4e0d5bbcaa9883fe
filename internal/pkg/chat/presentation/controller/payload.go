package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	chat "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/domain"
)

// messagePayload is the wire shape shared by send acks and chat:new events.
type messagePayload struct {
	ID             string  `json:"id"`
	ConversationID string  `json:"conversationId"`
	SenderID       string  `json:"senderId"`
	Text           string  `json:"text"`
	At             int64   `json:"at"`
	ClientID       *string `json:"clientId,omitempty"`
}

func toPayload(m chat.Message) messagePayload {
	return messagePayload{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Text:           m.Text,
		At:             m.CreatedAt.UnixMilli(),
		ClientID:       m.ClientID,
	}
}

type inboundFrame struct {
	Event          string          `json:"event"`
	OtherUserID    string          `json:"otherUserId,omitempty"`
	ConversationID string          `json:"conversationId,omitempty"`
	Text           string          `json:"text,omitempty"`
	ClientID       *string         `json:"clientId,omitempty"`
	Payload        json.RawMessage `json:"payload,omitempty"`
}

// ackFrame answers one protocol event. Failures never throw into the
// transport: they come back as {ok:false, error:<code>}.
type ackFrame struct {
	Event          string `json:"event"`
	OK             bool   `json:"ok"`
	Error          string `json:"error,omitempty"`
	ConversationID string `json:"conversationId,omitempty"`
}

type sendAckFrame struct {
	Event string `json:"event"`
	OK    bool   `json:"ok"`
	messagePayload
}

type messageEventFrame struct {
	Event string `json:"event"`
	messagePayload
}

type pongFrame struct {
	Event    string          `json:"event"`
	OK       bool            `json:"ok"`
	Received json.RawMessage `json:"received,omitempty"`
	At       int64           `json:"at"`
}

// errorCode maps domain errors onto the protocol taxonomy. Conflicts are
// resolved internally and never reach this mapping.
func errorCode(err error) string {
	switch {
	case errors.Is(err, chat.ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, chat.ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, chat.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, chat.ErrSelfDM), errors.Is(err, chat.ErrInvalidArgument):
		return "INVALID_ARGUMENT"
	default:
		return "SERVER_ERROR"
	}
}

// httpStatus translates the same taxonomy for the REST read wrappers.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, chat.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, chat.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, chat.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, chat.ErrSelfDM), errors.Is(err, chat.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
