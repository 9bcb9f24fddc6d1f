package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/CongDon1207/Four-Connect/internal/config"
	"github.com/CongDon1207/Four-Connect/internal/repository/redis"
	"github.com/CongDon1207/Four-Connect/internal/service/cleanup"
	"github.com/CongDon1207/Four-Connect/internal/service/game"
	transportHttp "github.com/CongDon1207/Four-Connect/internal/transport/http"
	"github.com/CongDon1207/Four-Connect/internal/transport/websocket"
	"github.com/CongDon1207/Four-Connect/pkg/auth"
	"github.com/CongDon1207/Four-Connect/pkg/logger"
)

func main() {
	config.LoadEnv()
	cfg := config.LoadConfig()
	logger.Setup(cfg.LogLevel, cfg.LogPretty)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Difficulty table
	table, err := config.LoadDifficultyTable(cfg.DifficultyFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load difficulty table")
	}
	table = table.WithParallel(cfg.SearchParallel)

	// 2. Optional Redis snapshot store
	opts := []game.Option{game.WithSearchTimeout(cfg.SearchTimeout)}
	redisClient, err := redis.Connect(ctx, redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, sessions stay in memory")
	}
	if redisClient != nil {
		defer redisClient.Close()
		opts = append(opts, game.WithStore(redis.NewSessionStore(redisClient, cfg.SessionTTL)))
	}

	// 3. Services
	sessionManager := game.NewSessionManager(table, opts...)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	connManager := websocket.NewConnectionManager()

	// 4. Background workers
	cleanupWorker := cleanup.NewWorker(sessionManager, cfg.SessionIdle, cfg.CleanupInterval)
	go cleanupWorker.Run(ctx)

	// 5. HTTP
	gameHandler := &transportHttp.GameHandler{
		Sessions:   sessionManager,
		Tokens:     tokens,
		Notifier:   connManager,
		TokenTTL:   cfg.TokenTTL,
		Production: cfg.IsProduction(),
	}
	wsHandler := websocket.NewHandler(connManager, sessionManager, tokens, cfg.AllowedOrigins)

	router := transportHttp.NewRouter(transportHttp.RouterConfig{
		Games:          gameHandler,
		WebSocket:      wsHandler.HandleWebSocket,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("environment", cfg.Environment).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("server is shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited gracefully")
}
