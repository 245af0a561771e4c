package handlers

import (
	"errors"
	"net/http"

	"fair_rps/internal/game"
	"fair_rps/internal/service"

	"github.com/gin-gonic/gin"
)

// StartRoundRequest represents a new round; empty moves use the server default
type StartRoundRequest struct {
	Moves []string `json:"moves"`
}

// PlayRoundRequest carries the menu choice: 0 exits, 1..N plays that move
type PlayRoundRequest struct {
	Ticket string `json:"ticket" binding:"required"`
	Choice *int   `json:"choice" binding:"required"`
}

type VerifyRequest struct {
	HMAC string `json:"hmac" binding:"required"`
	Key  string `json:"key" binding:"required"`
	Move string `json:"move" binding:"required"`
}

type TableResponse struct {
	Moves []string   `json:"moves"`
	Rows  [][]string `json:"rows"`
}

// StartRound commits to a computer move and returns the HMAC and a ticket.
func (h *Handler) StartRound(c *gin.Context) {
	var req StartRoundRequest
	if !bindJSON(c, &req, true) {
		return
	}

	started, err := h.Rounds.Start(req.Moves)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, started)
}

// PlayRound resolves the round behind the ticket and discloses the key.
func (h *Handler) PlayRound(c *gin.Context) {
	var req PlayRoundRequest
	if !bindJSON(c, &req, false) {
		return
	}

	d, err := h.Rounds.Play(req.Ticket, *req.Choice)
	if errors.Is(err, game.ErrExited) {
		c.JSON(http.StatusOK, gin.H{"status": "exited"})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, d)
}

// Table returns the help table for ?moves=a&moves=b&moves=c.
func (h *Handler) Table(c *gin.Context) {
	table, err := h.Rounds.Table(c.QueryArray("moves"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, TableResponse{Moves: table.Moves, Rows: table.Rows()})
}

// Verify recomputes HMAC-SHA256(key, move) for a disclosed round.
func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if !bindJSON(c, &req, false) {
		return
	}

	ok, err := game.VerifyHex(req.HMAC, req.Key, req.Move)
	if err != nil {
		service.VerifyChecks.WithLabelValues("malformed").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := "mismatch"
	if ok {
		result = "valid"
	}
	service.VerifyChecks.WithLabelValues(result).Inc()

	c.JSON(http.StatusOK, gin.H{"valid": ok})
}
