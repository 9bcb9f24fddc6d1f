package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/CongDon1207/Four-Connect/internal/transport/http/middleware"
)

type RouterConfig struct {
	Games          *GameHandler
	WebSocket      gin.HandlerFunc
	AllowedOrigins []string
}

// NewRouter wires every HTTP route of the server.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": cfg.Games.Sessions.Count()})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.GET("/difficulties", cfg.Games.ListDifficulties)
	api.POST("/games", cfg.Games.CreateGame)

	// Game routes need the token issued for that game
	games := api.Group("/games/:id")
	games.Use(middleware.GameAuthMiddleware(cfg.Games.Tokens))
	{
		games.GET("", cfg.Games.GetGame)
		games.DELETE("", cfg.Games.DeleteGame)
		games.POST("/moves", cfg.Games.PlayMove)
		games.POST("/undo", cfg.Games.Undo)
		games.POST("/reset", cfg.Games.Reset)
	}

	// WebSocket Route (auth handled inside the WS handler itself)
	if cfg.WebSocket != nil {
		router.GET("/ws", cfg.WebSocket)
	}

	return router
}
