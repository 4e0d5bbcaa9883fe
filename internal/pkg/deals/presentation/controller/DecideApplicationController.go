package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jasmeets-6575/collabKar-be/internal/infrastructure/auth"
	"github.com/jasmeets-6575/collabKar-be/internal/pkg/deals/application/usecase"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/deals/persistence/repository/port"
)

// DecideApplicationController handles the campaign owner's ruling on an
// application.
type DecideApplicationController struct {
	uc *usecase.DecideApplicationUseCase
}

func NewDecideApplicationController(repo repository.DealRepository, announcer usecase.Announcer) *DecideApplicationController {
	return &DecideApplicationController{uc: usecase.NewDecideApplicationUseCase(repo, announcer)}
}

func (ctl *DecideApplicationController) Handle(c *gin.Context) {
	var req decideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_ARGUMENT"})
		return
	}

	app, err := ctl.uc.Execute(c.Request.Context(), usecase.DecideApplicationInput{
		ApplicationID: c.Param("applicationId"),
		UserID:        auth.UserIDFromContext(c),
		Decision:      req.Status,
	})
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": errorCode(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": toApplicationPayload(*app)})
}
