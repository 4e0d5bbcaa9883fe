package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jasmeets-6575/collabKar-be/internal/infrastructure/auth"
	"github.com/jasmeets-6575/collabKar-be/internal/infrastructure/realtime"
	chatusecase "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/usecase"
	chathttp "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/presentation/http"
	chatrepo "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/persistence/repository/port"
	dealshttp "github.com/jasmeets-6575/collabKar-be/internal/pkg/deals/presentation/http"
	dealsrepo "github.com/jasmeets-6575/collabKar-be/internal/pkg/deals/persistence/repository/port"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1.
func RegisterRoutes(
	r *gin.Engine,
	chatRepo chatrepo.ChatRepository,
	dealRepo dealsrepo.DealRepository,
	announcer *chatusecase.AnnounceDealAcceptedUseCase,
	router *realtime.Router,
	verifier *auth.Verifier,
	log zerolog.Logger,
) {
	v1 := r.Group("/api/v1")
	chathttp.RegisterRoutes(v1, chatRepo, router, verifier, log)
	dealshttp.RegisterRoutes(v1, dealRepo, announcer, verifier)
}
