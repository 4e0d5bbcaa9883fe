package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jasmeets-6575/collabKar-be/internal/infrastructure/auth"
	"github.com/jasmeets-6575/collabKar-be/internal/pkg/deals/application/usecase"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/deals/persistence/repository/port"
)

// DecideInviteController handles the invited creator's ruling on a campaign
// invite.
type DecideInviteController struct {
	uc *usecase.DecideInviteUseCase
}

func NewDecideInviteController(repo repository.DealRepository, announcer usecase.Announcer) *DecideInviteController {
	return &DecideInviteController{uc: usecase.NewDecideInviteUseCase(repo, announcer)}
}

func (ctl *DecideInviteController) Handle(c *gin.Context) {
	var req decideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_ARGUMENT"})
		return
	}

	inv, err := ctl.uc.Execute(c.Request.Context(), usecase.DecideInviteInput{
		InviteID: c.Param("inviteId"),
		UserID:   auth.UserIDFromContext(c),
		Decision: req.Status,
	})
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": errorCode(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invite": toInvitePayload(*inv)})
}
