package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	v1 "github.com/jasmeets-6575/collabKar-be/cmd/api/router/v1"
	"github.com/jasmeets-6575/collabKar-be/internal/config"
	"github.com/jasmeets-6575/collabKar-be/internal/infrastructure/auth"
	redisadapter "github.com/jasmeets-6575/collabKar-be/internal/infrastructure/cache/adapter"
	"github.com/jasmeets-6575/collabKar-be/internal/infrastructure/database"
	"github.com/jasmeets-6575/collabKar-be/internal/infrastructure/realtime"
	"github.com/jasmeets-6575/collabKar-be/internal/logging"
	chatusecase "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/application/usecase"
	chatadapter "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/persistence/repository/adapter"
	chatrepo "github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/persistence/repository/port"
	"github.com/jasmeets-6575/collabKar-be/internal/pkg/chat/presentation/controller"
	dealsadapter "github.com/jasmeets-6575/collabKar-be/internal/pkg/deals/persistence/repository/adapter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logging.New("production")
		fallback.Fatal().Err(err).Msg("configuration error")
	}

	log := logging.New(cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	var chatRepo chatrepo.ChatRepository = chatadapter.NewPgChatRepository(pool)
	if cfg.RedisURL != "" {
		cache, err := redisadapter.NewRedisAdapter(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer cache.Close()
		chatRepo = chatadapter.NewCachedChatRepository(chatRepo, cache)
	}
	dealRepo := dealsadapter.NewPgDealRepository(pool)

	verifier := auth.NewVerifier(cfg.AccessTokenSecret)
	sessions := realtime.NewRouter()
	notifier := controller.NewRealtimeNotifier(sessions)
	announcer := chatusecase.NewAnnounceDealAcceptedUseCase(chatRepo, notifier)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	v1.RegisterRoutes(r, chatRepo, dealRepo, announcer, sessions, verifier, log)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	sessions.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
}
