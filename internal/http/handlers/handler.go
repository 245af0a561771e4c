package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"fair_rps/internal/game"
	"fair_rps/internal/logger"
	"fair_rps/internal/service"

	"github.com/gin-gonic/gin"
)

const usageHint = "provide an odd number >= 3 of non-repeating moves, e.g. Rock Paper Scissors"

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

type Handler struct {
	Rounds        *service.RoundService
	AllowedOrigin string

	// ctx lives as long as the server; websocket rounds end when it is done.
	ctx context.Context
}

func NewHandler(ctx context.Context, rounds *service.RoundService, allowedOrigin string) *Handler {
	return &Handler{
		Rounds:        rounds,
		AllowedOrigin: allowedOrigin,
		ctx:           ctx,
	}
}

// bindJSON decodes a size-capped body into obj. It writes the error response
// itself and reports whether the handler may continue. An empty body is
// accepted when allowEmpty is set.
func bindJSON(c *gin.Context, obj any, allowEmpty bool) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	err := c.ShouldBindJSON(obj)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
	return false
}

// writeError maps game and service errors to HTTP responses.
func writeError(c *gin.Context, err error) {
	var cfgErr *game.ConfigError
	switch {
	case errors.As(err, &cfgErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": cfgErr.Error(), "usage": usageHint})
	case errors.Is(err, game.ErrChoiceOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTicket):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid ticket"})
	case errors.Is(err, service.ErrRoundNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
