package http

import (
	"github.com/gin-gonic/gin"

	"github.com/jasmeets-6575/collabKar-be/internal/infrastructure/auth"
	"github.com/jasmeets-6575/collabKar-be/internal/pkg/deals/application/usecase"
	"github.com/jasmeets-6575/collabKar-be/internal/pkg/deals/presentation/controller"
	repository "github.com/jasmeets-6575/collabKar-be/internal/pkg/deals/persistence/repository/port"
)

// RegisterRoutes mounts the deal decision endpoints under the given group.
func RegisterRoutes(rg *gin.RouterGroup, repo repository.DealRepository, announcer usecase.Announcer, verifier *auth.Verifier) {
	applications := controller.NewDecideApplicationController(repo, announcer)
	invites := controller.NewDecideInviteController(repo, announcer)

	authed := rg.Group("", auth.Middleware(verifier))
	authed.PATCH("/applications/:applicationId/status", applications.Handle)
	authed.PATCH("/invites/:inviteId/status", invites.Handle)
}
