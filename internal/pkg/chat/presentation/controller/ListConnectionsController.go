package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jasmeets-6575/collabKar-be/internal/infrastructure/auth"
	chat "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/domain"
	"github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/usecase"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/persistence/repository/port"
)

type connectionPayload struct {
	ID        string `json:"id"`
	CreatorID string `json:"creatorId"`
	BrandID   string `json:"brandId"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"createdAt"`
}

func toConnectionPayload(conn chat.ChatConnection) connectionPayload {
	return connectionPayload{
		ID:        conn.ID,
		CreatorID: conn.CreatorID,
		BrandID:   conn.BrandID,
		Status:    string(conn.Status),
		CreatedAt: conn.CreatedAt.UnixMilli(),
	}
}

// ListConnectionsController serves the caller's collaboration connections.
type ListConnectionsController struct {
	uc *usecase.ListConnectionsUseCase
}

func NewListConnectionsController(repo repository.ChatRepository) *ListConnectionsController {
	return &ListConnectionsController{uc: usecase.NewListConnectionsUseCase(repo)}
}

func (ctl *ListConnectionsController) Handle(c *gin.Context) {
	out, err := ctl.uc.Execute(c.Request.Context(), usecase.ListConnectionsInput{
		UserID: auth.UserIDFromContext(c),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": errorCode(err)})
		return
	}

	payloads := make([]connectionPayload, 0, len(out.Connections))
	for _, conn := range out.Connections {
		payloads = append(payloads, toConnectionPayload(conn))
	}
	c.JSON(http.StatusOK, gin.H{
		"connections": payloads,
		"total":       out.Total,
		"page":        out.Page,
		"limit":       out.Limit,
	})
}
