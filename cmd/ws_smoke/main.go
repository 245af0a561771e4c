package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"fair_rps/internal/game"
	"fair_rps/internal/logger"
	"fair_rps/internal/ws"

	"github.com/gorilla/websocket"
)

// ws_smoke plays one round against a running server over /ws and checks the
// disclosed key against the commitment received before the move was sent.
func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	moves := []string{"Rock", "Paper", "Scissors"}
	if v := os.Getenv("SMOKE_MOVES"); v != "" {
		moves = strings.Split(v, ",")
	}

	q := url.Values{"moves": moves}
	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	wsURL := fmt.Sprintf("ws://127.0.0.1:%s/ws?%s", port, q.Encode())

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		logger.Fatal("dial", "url", wsURL, "error", err)
	}
	defer conn.Close()

	read := func(want string) json.RawMessage {
		conn.SetReadDeadline(time.Now().Add(3 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			logger.Fatal("read", "want", want, "error", err)
		}
		var env ws.Envelope
		if err := json.Unmarshal(msg, &env); err != nil {
			logger.Fatal("decode", "raw", string(msg), "error", err)
		}
		if env.Type != want {
			logger.Fatal("unexpected event", "want", want, "got", env.Type, "raw", string(msg))
		}
		return env.Payload
	}

	send := func(value string) {
		msg, _ := json.Marshal(ws.InboundMessage{Type: ws.MsgChoice, Value: value})
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Fatal("write", "value", value, "error", err)
		}
	}

	var commitment ws.CommitmentPayload
	_ = json.Unmarshal(read(ws.MsgCommitment), &commitment)
	logger.Info("commitment received", "hmac", commitment.HMAC)
	read(ws.MsgMenu)

	send("?")
	read(ws.MsgTable)

	send("1")
	var d game.Disclosure
	if err := json.Unmarshal(read(ws.MsgResult), &d); err != nil {
		logger.Fatal("decode result", "error", err)
	}

	ok, err := game.VerifyHex(commitment.HMAC, d.Key, d.OpponentMove)
	if err != nil || !ok {
		logger.Fatal("commitment does not match disclosure", "hmac", commitment.HMAC, "key", d.Key, "move", d.OpponentMove, "error", err)
	}

	logger.Info("smoke test finished", "player", d.PlayerMove, "computer", d.OpponentMove, "winner", d.Winner)
}
