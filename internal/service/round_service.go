package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"fair_rps/internal/game"
	"fair_rps/internal/logger"

	"github.com/google/uuid"
)

var (
	ErrRoundNotFound   = errors.New("round not found or expired")
	ErrRoundNotOffered = errors.New("round was never offered to the player")
)

// DefaultMaxMoves bounds move lists until SetMaxMoves is called.
const DefaultMaxMoves = 101

// StartedRound is what a player sees before choosing: the commitment, never
// the key.
type StartedRound struct {
	RoundID   string    `json:"round_id"`
	Ticket    string    `json:"ticket"`
	HMAC      string    `json:"hmac"`
	Moves     []string  `json:"moves"`
	ExpiresAt time.Time `json:"expires_at"`
}

type pendingRound struct {
	session *game.Session
	expires time.Time
}

// RoundService keeps committed rounds in memory until they are played,
// exited or expire. Nothing outlives the process.
type RoundService struct {
	tickets      *TicketService
	defaultMoves []string
	ttl          time.Duration
	opts         []game.Option
	maxMoves     int
	now          func() time.Time

	mu     sync.Mutex
	rounds map[string]*pendingRound
}

func NewRoundService(tickets *TicketService, defaultMoves []string, ttl time.Duration, opts ...game.Option) *RoundService {
	return &RoundService{
		tickets:      tickets,
		defaultMoves: defaultMoves,
		ttl:          ttl,
		opts:         opts,
		maxMoves:     DefaultMaxMoves,
		now:          time.Now,
		rounds:       make(map[string]*pendingRound),
	}
}

// Start commits to a computer move over moves (or the default list when
// empty) and returns the ticket needed to play it.
func (s *RoundService) Start(moves []string) (*StartedRound, error) {
	session, id, err := s.load(moves)
	if err != nil {
		return nil, err
	}
	if err := session.Await(); err != nil {
		return nil, err
	}

	ticket, err := s.tickets.Issue(id)
	if err != nil {
		return nil, err
	}

	expires := s.now().Add(s.ttl)
	s.mu.Lock()
	s.rounds[id] = &pendingRound{session: session, expires: expires}
	s.mu.Unlock()

	RoundsCommitted.Inc()
	logger.Info("round committed", "round", id)

	return &StartedRound{
		RoundID:   id,
		Ticket:    ticket,
		HMAC:      session.Digest(),
		Moves:     session.Moves().Names(),
		ExpiresAt: expires,
	}, nil
}

// Play applies a menu choice to the round behind ticket. Choice 0 exits the
// round and returns game.ErrExited. An out-of-range choice leaves the round
// pending.
func (s *RoundService) Play(ticket string, choice int) (*game.Disclosure, error) {
	id, err := s.tickets.Parse(ticket)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rounds[id]
	if !ok || s.now().After(r.expires) {
		delete(s.rounds, id)
		return nil, ErrRoundNotFound
	}

	d, err := r.session.Choose(choice)
	if errors.Is(err, game.ErrChoiceOutOfRange) {
		return nil, err
	}
	delete(s.rounds, id)

	switch {
	case errors.Is(err, game.ErrExited):
		RoundsAborted.Inc()
		logger.Info("round exited", "round", id)
		return nil, err
	case err != nil:
		logger.Error("round failed", "round", id, "error", err)
		return nil, err
	}

	RoundsResolved.WithLabelValues(string(d.Outcome)).Inc()
	logger.Info("round disclosed", "round", id, "outcome", d.Outcome)
	return d, nil
}

// Open loads a session for an interactive transport that drives it itself.
// The session is not kept in the pending map.
func (s *RoundService) Open(moves []string) (*game.Session, string, error) {
	session, id, err := s.load(moves)
	if err != nil {
		return nil, "", err
	}

	RoundsCommitted.Inc()
	logger.Info("interactive round committed", "round", id)
	return session, id, nil
}

// SetMaxMoves changes the longest move list a round or table may use. Call it
// before serving requests.
func (s *RoundService) SetMaxMoves(n int) {
	s.maxMoves = n
}

func (s *RoundService) load(moves []string) (*game.Session, string, error) {
	if len(moves) == 0 {
		moves = s.defaultMoves
	}
	if err := game.LimitMoves(moves, s.maxMoves); err != nil {
		return nil, "", err
	}

	id := uuid.NewString()
	session := game.NewSession(append([]game.Option{game.WithID(id)}, s.opts...)...)
	if err := session.Load(moves); err != nil {
		return nil, "", err
	}
	return session, id, nil
}

// Finish records how an interactive round ended.
func (s *RoundService) Finish(id string, d *game.Disclosure, err error) {
	switch {
	case err == nil && d != nil:
		RoundsResolved.WithLabelValues(string(d.Outcome)).Inc()
		logger.Info("interactive round disclosed", "round", id, "outcome", d.Outcome)
	case errors.Is(err, game.ErrExited), errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		RoundsAborted.Inc()
		logger.Info("interactive round aborted", "round", id, "reason", err)
	case errors.Is(err, ErrRoundNotOffered):
		RoundsAborted.Inc()
		logger.Warn("interactive round not offered", "round", id, "error", err)
	default:
		logger.Error("interactive round failed", "round", id, "error", err)
	}
}

// Table builds the help table for a move list.
func (s *RoundService) Table(moves []string) (game.WinTable, error) {
	if len(moves) == 0 {
		moves = s.defaultMoves
	}
	if err := game.LimitMoves(moves, s.maxMoves); err != nil {
		return game.WinTable{}, err
	}
	ms, err := game.NewMoveSet(moves)
	if err != nil {
		return game.WinTable{}, err
	}
	return game.NewRules(ms).Table(), nil
}

// Pending returns the number of rounds waiting for a move.
func (s *RoundService) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rounds)
}

// Sweep drops expired rounds and returns how many were removed.
func (s *RoundService) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, r := range s.rounds {
		if now.After(r.expires) {
			delete(s.rounds, id)
			removed++
		}
	}
	if removed > 0 {
		RoundsAborted.Add(float64(removed))
		logger.Debug("expired rounds swept", "count", removed)
	}
	return removed
}

// RunSweeper sweeps every interval until ctx is done.
func (s *RoundService) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
