package ws

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	"fair_rps/internal/game"
	"fair_rps/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second
)

// Client plays one session over a websocket. It is the session's
// ChoiceProvider and Display at once.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
	Done chan struct{}

	inbox     chan string
	closeOnce sync.Once
}

func NewClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		ID:    id,
		Conn:  conn,
		Send:  make(chan []byte, 64),
		Done:  make(chan struct{}),
		inbox: make(chan string, 16),
	}
}

// Run starts the pumps and plays session until it ends or the peer goes
// away, then closes the connection.
func (c *Client) Run(ctx context.Context, session *game.Session) (*game.Disclosure, error) {
	go c.writePump()
	go c.readPump()

	d, err := session.Run(ctx, c, c)
	if err != nil && !errors.Is(err, game.ErrExited) && !errors.Is(err, io.EOF) {
		c.send(MsgError, ErrorPayload{Message: err.Error()})
	}
	close(c.Send)
	return d, err
}

// NextChoice waits for the next choice message. A closed connection reads as
// io.EOF.
func (c *Client) NextChoice(ctx context.Context) (string, error) {
	select {
	case v := <-c.inbox:
		return v, nil
	case <-c.Done:
		return "", io.EOF
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *Client) Commitment(hmac string) {
	c.send(MsgCommitment, CommitmentPayload{HMAC: hmac})
}

func (c *Client) Menu(moves []string) {
	c.send(MsgMenu, MenuPayload{Moves: moves})
}

func (c *Client) Table(t game.WinTable) {
	c.send(MsgTable, TablePayload{Rows: t.Rows()})
}

func (c *Client) Invalid(input string) {
	c.send(MsgInvalid, InvalidPayload{Input: input})
}

func (c *Client) Exit() {
	c.send(MsgExit, nil)
}

func (c *Client) Disclosure(d *game.Disclosure) {
	c.send(MsgResult, d)
}

func (c *Client) send(msgType string, payload any) {
	env := Envelope{Type: msgType}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			logger.Error("ws: marshal payload", "client", c.ID, "type", msgType, "error", err)
			return
		}
		env.Payload = raw
	}
	msg, err := json.Marshal(env)
	if err != nil {
		logger.Error("ws: marshal envelope", "client", c.ID, "type", msgType, "error", err)
		return
	}

	select {
	case c.Send <- msg:
	case <-c.Done:
	case <-time.After(writeWait):
		logger.Warn("ws: timeout queuing message", "client", c.ID, "type", msgType)
	}
}

//read
func (c *Client) readPump() {
	defer c.closeOnce.Do(func() { close(c.Done) })

	c.Conn.SetReadLimit(4096)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("ws: read error", "client", c.ID, "error", err)
			}
			return
		}

		var msg InboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil || msg.Type != MsgChoice {
			logger.Debug("ws: ignoring message", "client", c.ID, "bytes", len(raw))
			continue
		}

		select {
		case c.inbox <- msg.Value:
		default:
			logger.Warn("ws: inbox full, dropping choice", "client", c.ID)
		}
	}
}

//write
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Warn("ws: write error", "client", c.ID, "error", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
