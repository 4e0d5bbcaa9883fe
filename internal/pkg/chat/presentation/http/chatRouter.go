package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jasmeets-6575/collabKar-be/internal/infrastructure/auth"
	"github.com/jasmeets-6575/collabKar-be/internal/infrastructure/realtime"
	"github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/presentation/controller"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/persistence/repository/port"
)

// RegisterRoutes mounts the chat endpoints under the given group. The
// websocket endpoint authenticates inside its own handler so it can answer the
// handshake before the upgrade; the REST reads go through the shared
// middleware.
func RegisterRoutes(rg *gin.RouterGroup, repo repository.ChatRepository, router *realtime.Router, verifier *auth.Verifier, log zerolog.Logger) {
	socket := controller.NewChatSocketController(repo, router, verifier, log)
	messages := controller.NewGetMessageController(repo)
	conversations := controller.NewListConversationsController(repo)
	connections := controller.NewListConnectionsController(repo)

	chat := rg.Group("/chat")
	chat.GET("/ws", socket.Handle)

	authed := chat.Group("", auth.Middleware(verifier))
	authed.GET("/connections", connections.Handle)
	authed.GET("/conversations", conversations.Handle)
	authed.GET("/messages/:conversationId", messages.Handle)
}
