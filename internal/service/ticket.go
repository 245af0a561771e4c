package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidTicket = errors.New("invalid ticket")

// TicketService signs the tokens a player presents to play a pending round.
type TicketService struct {
	secret []byte
	ttl    time.Duration
}

func NewTicketService(secret string, ttl time.Duration) *TicketService {
	return &TicketService{secret: []byte(secret), ttl: ttl}
}

func (s *TicketService) Issue(roundID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"round_id": roundID,
		"exp":      now.Add(s.ttl).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates a ticket and returns its round id.
func (s *TicketService) Parse(ticket string) (string, error) {
	token, err := jwt.Parse(ticket, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())

	if err != nil || !token.Valid {
		return "", ErrInvalidTicket
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidTicket
	}

	roundID, ok := claims["round_id"].(string)
	if !ok || roundID == "" {
		return "", ErrInvalidTicket
	}
	return roundID, nil
}
