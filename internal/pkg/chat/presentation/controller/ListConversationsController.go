package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jasmeets-6575/collabKar-be/internal/infrastructure/auth"
	chat "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/domain"
	"github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/usecase"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/persistence/repository/port"
)

type conversationPayload struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Participants  []string `json:"participants"`
	LastMessageID *string  `json:"lastMessageId,omitempty"`
	LastMessageAt *int64   `json:"lastMessageAt,omitempty"`
	CreatedAt     int64    `json:"createdAt"`
}

func toConversationPayload(conv chat.Conversation) conversationPayload {
	p := conversationPayload{
		ID:            conv.ID,
		Type:          string(conv.Type),
		Participants:  conv.Participants,
		LastMessageID: conv.LastMessageID,
		CreatedAt:     conv.CreatedAt.UnixMilli(),
	}
	if conv.LastMessageAt != nil {
		at := conv.LastMessageAt.UnixMilli()
		p.LastMessageAt = &at
	}
	return p
}

// ListConversationsController serves the caller's conversation sidebar,
// ordered by most recent activity.
type ListConversationsController struct {
	uc *usecase.ListConversationsUseCase
}

func NewListConversationsController(repo repository.ChatRepository) *ListConversationsController {
	return &ListConversationsController{uc: usecase.NewListConversationsUseCase(repo)}
}

func (ctl *ListConversationsController) Handle(c *gin.Context) {
	out, err := ctl.uc.Execute(c.Request.Context(), usecase.ListConversationsInput{
		UserID: auth.UserIDFromContext(c),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": errorCode(err)})
		return
	}

	payloads := make([]conversationPayload, 0, len(out.Conversations))
	for _, conv := range out.Conversations {
		payloads = append(payloads, toConversationPayload(conv))
	}
	c.JSON(http.StatusOK, gin.H{
		"conversations": payloads,
		"total":         out.Total,
		"page":          out.Page,
		"limit":         out.Limit,
	})
}
