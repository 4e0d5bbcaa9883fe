package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/jasmeets-6575/collabKar-be/internal/infrastructure/auth"
	"github.com/jasmeets-6575/collabKar-be/internal/infrastructure/realtime"
	"github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/usecase"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/persistence/repository/port"
)

const eventTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ChatSocketController owns the websocket endpoint: it authenticates the
// handshake, upgrades, registers the session, and runs the read loop that
// dispatches protocol events. Every inbound event is answered with exactly one
// ack frame on the same session.
type ChatSocketController struct {
	router   *realtime.Router
	verifier *auth.Verifier
	log      zerolog.Logger

	openUC *usecase.OpenConversationUseCase
	joinUC *usecase.JoinConversationUseCase
	sendUC *usecase.SendMessageUseCase
}

func NewChatSocketController(repo repository.ChatRepository, router *realtime.Router, verifier *auth.Verifier, log zerolog.Logger) *ChatSocketController {
	return &ChatSocketController{
		router:   router,
		verifier: verifier,
		log:      log.With().Str("component", "chat_socket").Logger(),
		openUC:   usecase.NewOpenConversationUseCase(repo),
		joinUC:   usecase.NewJoinConversationUseCase(repo),
		sendUC:   usecase.NewSendMessageUseCase(repo),
	}
}

// Handle authenticates and upgrades the request, then serves the session until
// the client disconnects. Authentication happens before the upgrade so an
// anonymous caller gets a plain 401 instead of a websocket close.
func (ctl *ChatSocketController) Handle(c *gin.Context) {
	token := auth.BearerFromRequest(c.Request)
	userID, err := ctl.verifier.UserID(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHORIZED"})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		ctl.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	conn := realtime.NewConnection(userID, ws)
	ctl.router.Attach(conn)
	ctl.log.Info().Str("user_id", userID).Str("session_id", conn.ID()).Msg("session attached")

	defer func() {
		ctl.router.Detach(conn)
		conn.Close(websocket.CloseNormalClosure, "bye")
		ctl.log.Info().Str("user_id", userID).Str("session_id", conn.ID()).Msg("session detached")
	}()

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				ctl.log.Debug().Err(err).Str("session_id", conn.ID()).Msg("read loop ended")
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil || frame.Event == "" {
			ctl.ack(conn, ackFrame{Event: "error", Error: "INVALID_ARGUMENT"})
			continue
		}
		ctl.dispatch(c.Request.Context(), conn, frame)
	}
}

// dispatch routes one event. A panic in a handler is contained to that event:
// the session survives and the client sees a SERVER_ERROR ack.
func (ctl *ChatSocketController) dispatch(parent context.Context, conn *realtime.Connection, frame inboundFrame) {
	defer func() {
		if r := recover(); r != nil {
			ctl.log.Error().Interface("panic", r).Str("event", frame.Event).Msg("event handler panicked")
			ctl.ack(conn, ackFrame{Event: frame.Event, Error: "SERVER_ERROR"})
		}
	}()

	ctx, cancel := context.WithTimeout(parent, eventTimeout)
	defer cancel()

	switch frame.Event {
	case "ping":
		ctl.handlePing(conn, frame)
	case "dm:open":
		ctl.handleOpen(ctx, conn, frame)
	case "chat:join":
		ctl.handleJoin(ctx, conn, frame)
	case "chat:send":
		ctl.handleSend(ctx, conn, frame)
	default:
		ctl.ack(conn, ackFrame{Event: frame.Event, Error: "INVALID_ARGUMENT"})
	}
}

func (ctl *ChatSocketController) handlePing(conn *realtime.Connection, frame inboundFrame) {
	ctl.send(conn, pongFrame{Event: "pong", OK: true, Received: frame.Payload, At: time.Now().UnixMilli()})
}

func (ctl *ChatSocketController) handleOpen(ctx context.Context, conn *realtime.Connection, frame inboundFrame) {
	conv, err := ctl.openUC.Execute(ctx, usecase.OpenConversationInput{
		UserID:      conn.UserID(),
		OtherUserID: frame.OtherUserID,
	})
	if err != nil {
		ctl.fail(conn, frame.Event, err)
		return
	}
	ctl.router.Join(realtime.ConversationRoom(conv.ID), conn)
	ctl.ack(conn, ackFrame{Event: frame.Event, OK: true, ConversationID: conv.ID})
}

func (ctl *ChatSocketController) handleJoin(ctx context.Context, conn *realtime.Connection, frame inboundFrame) {
	err := ctl.joinUC.Execute(ctx, usecase.JoinConversationInput{
		ConversationID: frame.ConversationID,
		UserID:         conn.UserID(),
	})
	if err != nil {
		ctl.fail(conn, frame.Event, err)
		return
	}
	ctl.router.Join(realtime.ConversationRoom(frame.ConversationID), conn)
	ctl.ack(conn, ackFrame{Event: frame.Event, OK: true, ConversationID: frame.ConversationID})
}

func (ctl *ChatSocketController) handleSend(ctx context.Context, conn *realtime.Connection, frame inboundFrame) {
	msg, err := ctl.sendUC.Execute(ctx, usecase.SendMessageInput{
		ConversationID: frame.ConversationID,
		SenderID:       conn.UserID(),
		Text:           frame.Text,
		ClientID:       frame.ClientID,
	})
	if err != nil {
		ctl.fail(conn, frame.Event, err)
		return
	}

	payload := toPayload(*msg)
	ctl.send(conn, sendAckFrame{Event: frame.Event, OK: true, messagePayload: payload})

	event, err := json.Marshal(messageEventFrame{Event: "chat:new", messagePayload: payload})
	if err != nil {
		return
	}
	ctl.router.Broadcast(realtime.ConversationRoom(msg.ConversationID), event)
}

func (ctl *ChatSocketController) fail(conn *realtime.Connection, event string, err error) {
	code := errorCode(err)
	if code == "SERVER_ERROR" {
		ctl.log.Error().Err(err).Str("event", event).Msg("event failed")
	}
	ctl.ack(conn, ackFrame{Event: event, Error: code})
}

func (ctl *ChatSocketController) ack(conn *realtime.Connection, frame ackFrame) {
	ctl.send(conn, frame)
}

func (ctl *ChatSocketController) send(conn *realtime.Connection, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = conn.Send(payload)
}
