package handlers

import (
	"fmt"
	"net/http"

	"fair_rps/internal/service"
	"fair_rps/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WS plays one interactive round per connection: /ws?moves=a&moves=b&moves=c
func (h *Handler) WS(c *gin.Context) {
	session, roundID, err := h.Rounds.Open(c.QueryArray("moves"))
	if err != nil {
		writeError(c, err)
		return
	}

	allowedOrigin := h.AllowedOrigin
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Rounds.Finish(roundID, nil, fmt.Errorf("%w: upgrade: %v", service.ErrRoundNotOffered, err))
		return
	}

	client := ws.NewClient(roundID, conn)
	go func() {
		d, err := client.Run(h.ctx, session)
		h.Rounds.Finish(roundID, d, err)
	}()
}
