package http

import (
	"context"

	"fair_rps/internal/config"
	"fair_rps/internal/http/handlers"
	"fair_rps/internal/http/middleware"
	"fair_rps/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API. Websocket rounds are cancelled when ctx is done.
func RegisterRoutes(ctx context.Context, r *gin.Engine, rounds *service.RoundService, cfg *config.Config, version string) {
	h := handlers.NewHandler(ctx, rounds, cfg.AllowedOrigin)
	healthHandler := handlers.NewHealthHandler(rounds, middleware.RedisClient(), version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	roundRL := middleware.RoundRateLimit(cfg.RoundRateLimit, cfg.RoundRateWindow)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	{
		api.POST("/rounds", roundRL, h.StartRound)
		api.POST("/rounds/play", h.PlayRound)
		api.GET("/table", h.Table)
		api.POST("/verify", h.Verify)
	}

	// WebSocket: one interactive round per connection
	r.GET("/ws", roundRL, h.WS)
}
