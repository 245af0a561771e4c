package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fair_rps/internal/service"

	"github.com/gin-gonic/gin"
)

func TestReadinessWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rounds := service.NewRoundService(service.NewTicketService("s", time.Minute), []string{"Rock", "Paper", "Scissors"}, time.Minute)
	if _, err := rounds.Start(nil); err != nil {
		t.Fatalf("start: %v", err)
	}

	hh := NewHealthHandler(rounds, nil, "test")
	r := gin.New()
	r.GET("/readyz", hh.Readiness)
	r.GET("/healthz", hh.Liveness)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Checks["redis"] != "disabled" || resp.Checks["pending_rounds"] != "1" {
		t.Fatalf("unexpected checks %v", resp.Checks)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200 got %d", w.Code)
	}
}
