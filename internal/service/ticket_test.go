package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTicketRoundTrip(t *testing.T) {
	s := NewTicketService("test-secret", time.Minute)

	ticket, err := s.Issue("round-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	id, err := s.Parse(ticket)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != "round-1" {
		t.Fatalf("expected round-1, got %s", id)
	}
}

func TestTicketWrongSecret(t *testing.T) {
	ticket, err := NewTicketService("a", time.Minute).Issue("round-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewTicketService("b", time.Minute).Parse(ticket); !errors.Is(err, ErrInvalidTicket) {
		t.Fatalf("expected ErrInvalidTicket, got %v", err)
	}
}

func TestTicketExpired(t *testing.T) {
	ticket, err := NewTicketService("s", -time.Minute).Issue("round-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewTicketService("s", time.Minute).Parse(ticket); !errors.Is(err, ErrInvalidTicket) {
		t.Fatalf("expected ErrInvalidTicket, got %v", err)
	}
}

func TestTicketMissingRound(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	signed, err := token.SignedString([]byte("s"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewTicketService("s", time.Minute).Parse(signed); !errors.Is(err, ErrInvalidTicket) {
		t.Fatalf("expected ErrInvalidTicket, got %v", err)
	}
}

func TestTicketGarbage(t *testing.T) {
	if _, err := NewTicketService("s", time.Minute).Parse("not-a-token"); !errors.Is(err, ErrInvalidTicket) {
		t.Fatalf("expected ErrInvalidTicket, got %v", err)
	}
}
