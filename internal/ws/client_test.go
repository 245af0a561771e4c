package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fair_rps/internal/game"

	"github.com/gorilla/websocket"
)

type played struct {
	d   *game.Disclosure
	err error
}

func startServer(t *testing.T, opponent string) (*websocket.Conn, chan played) {
	t.Helper()
	results := make(chan played, 1)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := game.NewSession(game.WithSelector(game.SelectorFunc(func(game.MoveSet) string { return opponent })))
		if err := session.Load([]string{"Rock", "Paper", "Scissors"}); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		d, err := NewClient("test", conn).Run(context.Background(), session)
		results <- played{d: d, err: err}
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn, results
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return env
}

func sendChoice(t *testing.T, conn *websocket.Conn, value string) {
	t.Helper()
	msg, _ := json.Marshal(InboundMessage{Type: MsgChoice, Value: value})
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestClientPlaysRound(t *testing.T) {
	conn, results := startServer(t, "Scissors")

	env := readEnvelope(t, conn)
	if env.Type != MsgCommitment {
		t.Fatalf("expected commitment first, got %s", env.Type)
	}
	var commitment CommitmentPayload
	if err := json.Unmarshal(env.Payload, &commitment); err != nil {
		t.Fatalf("decode commitment: %v", err)
	}

	if env := readEnvelope(t, conn); env.Type != MsgMenu {
		t.Fatalf("expected menu, got %s", env.Type)
	}

	sendChoice(t, conn, "?")
	env = readEnvelope(t, conn)
	if env.Type != MsgTable {
		t.Fatalf("expected table, got %s", env.Type)
	}
	var table TablePayload
	if err := json.Unmarshal(env.Payload, &table); err != nil {
		t.Fatalf("decode table: %v", err)
	}
	if len(table.Rows) != 4 || table.Rows[0][0] != "Moves" {
		t.Fatalf("unexpected table %v", table.Rows)
	}

	// unknown message types are ignored
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}

	sendChoice(t, conn, "7")
	if env := readEnvelope(t, conn); env.Type != MsgInvalid {
		t.Fatalf("expected invalid, got %s", env.Type)
	}

	sendChoice(t, conn, "1")
	env = readEnvelope(t, conn)
	if env.Type != MsgResult {
		t.Fatalf("expected result, got %s", env.Type)
	}
	var d game.Disclosure
	if err := json.Unmarshal(env.Payload, &d); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if d.Winner != "Player" || d.OpponentMove != "Scissors" {
		t.Fatalf("unexpected result %+v", d)
	}
	ok, err := game.VerifyHex(commitment.HMAC, d.Key, d.OpponentMove)
	if err != nil || !ok {
		t.Fatalf("disclosure does not verify: %v,%v", ok, err)
	}

	select {
	case p := <-results:
		if p.err != nil || p.d == nil {
			t.Fatalf("server side run = %v,%v", p.d, p.err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not finish the round")
	}
}

func TestClientDisconnectAbortsRound(t *testing.T) {
	conn, results := startServer(t, "Rock")

	readEnvelope(t, conn) // commitment
	readEnvelope(t, conn) // menu
	conn.Close()

	select {
	case p := <-results:
		if p.err == nil {
			t.Fatal("expected an error after disconnect")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not notice the disconnect")
	}
}
