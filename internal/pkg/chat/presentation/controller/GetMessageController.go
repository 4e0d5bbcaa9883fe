package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jasmeets-6575/collabKar-be/internal/infrastructure/auth"
	"github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/usecase"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/persistence/repository/port"
)

// GetMessageController serves paginated conversation history over REST, in
// oldest-to-newest order within the page.
type GetMessageController struct {
	uc *usecase.GetMessageUseCase
}

func NewGetMessageController(repo repository.ChatRepository) *GetMessageController {
	return &GetMessageController{uc: usecase.NewGetMessageUseCase(repo)}
}

func (ctl *GetMessageController) Handle(c *gin.Context) {
	msgs, err := ctl.uc.Execute(c.Request.Context(), usecase.GetMessageInput{
		ConversationID: c.Param("conversationId"),
		UserID:         auth.UserIDFromContext(c),
		Page:           queryInt(c, "page"),
		Limit:          queryInt(c, "limit"),
	})
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": errorCode(err)})
		return
	}

	payloads := make([]messagePayload, 0, len(msgs))
	for _, m := range msgs {
		payloads = append(payloads, toPayload(m))
	}
	c.JSON(http.StatusOK, gin.H{"messages": payloads})
}

// queryInt parses a numeric query parameter, returning 0 when absent or
// malformed so the use case applies its defaults.
func queryInt(c *gin.Context, name string) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return n
}
