package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"fair_rps/internal/logger"
)

type State string

const (
	StateInit                 State = "init"
	StateAwaitingMoveSet      State = "awaiting_move_set"
	StateCommitted            State = "committed"
	StateAwaitingPlayerChoice State = "awaiting_player_choice"
	StateResolved             State = "resolved"
	StateDisclosed            State = "disclosed"
	StateAborted              State = "aborted"
)

// Disclosure is everything the player needs to check a finished round.
type Disclosure struct {
	PlayerMove   string   `json:"player_move"`
	OpponentMove string   `json:"computer_move"`
	Outcome      Outcome  `json:"outcome"`
	Winner       string   `json:"winner"`
	Key          string   `json:"key"`
	HMAC         string   `json:"hmac"`
	Table        WinTable `json:"table"`
}

// ChoiceProvider yields raw player input, one line per call.
type ChoiceProvider interface {
	NextChoice(ctx context.Context) (string, error)
}

// Display receives everything a session shows to the player.
type Display interface {
	Commitment(hmac string)
	Menu(moves []string)
	Table(t WinTable)
	Invalid(input string)
	Exit()
	Disclosure(d *Disclosure)
}

// Session plays a single round. Create a new Session for every round so each
// one gets a fresh key.
type Session struct {
	id        string
	selector  Selector
	committer *Committer

	mu         sync.Mutex
	state      State
	moves      MoveSet
	rules      *Rules
	commitment *Commitment
}

type Option func(*Session)

func WithSelector(sel Selector) Option {
	return func(s *Session) { s.selector = sel }
}

func WithCommitter(c *Committer) Option {
	return func(s *Session) { s.committer = c }
}

// WithID tags log lines with a round id.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		selector: RandomSelector{},
		state:    StateInit,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.committer == nil {
		s.committer = NewCommitter(nil)
	}
	return s
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Load validates the move list, picks the opponent's move and commits to it.
func (s *Session) Load(candidates []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInit {
		return ErrInvalidState
	}
	s.state = StateAwaitingMoveSet

	moves, err := NewMoveSet(candidates)
	if err != nil {
		s.state = StateAborted
		logger.Debug("session aborted: invalid move list", "round", s.id, "error", err)
		return err
	}
	s.moves = moves
	s.rules = NewRules(moves)

	opponent := s.selector.Select(moves)
	if !moves.Contains(opponent) {
		s.state = StateAborted
		return fmt.Errorf("selector returned %w: %q", ErrInvalidMove, opponent)
	}

	c, err := s.committer.Commit(opponent)
	if err != nil {
		s.state = StateAborted
		return err
	}
	s.commitment = c
	s.state = StateCommitted
	logger.Debug("session committed", "round", s.id, "moves", moves.Len())
	return nil
}

// Digest returns the commitment digest, or "" before Load succeeded.
func (s *Session) Digest() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.commitment == nil {
		return ""
	}
	return s.commitment.Digest()
}

func (s *Session) Moves() MoveSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moves
}

// Await moves a committed session to waiting for the player.
func (s *Session) Await() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateCommitted {
		return ErrInvalidState
	}
	s.state = StateAwaitingPlayerChoice
	return nil
}

// Table answers the help query. It never changes state.
func (s *Session) Table() (WinTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rules == nil {
		return WinTable{}, ErrInvalidState
	}
	return s.rules.Table(), nil
}

// Choose applies a menu choice: 0 exits, 1..N plays the matching move and
// discloses the round.
func (s *Session) Choose(index int) (*Disclosure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaitingPlayerChoice {
		return nil, ErrInvalidState
	}
	if index == 0 {
		s.state = StateAborted
		logger.Debug("session aborted: player exited", "round", s.id)
		return nil, ErrExited
	}
	if index < 0 || index > s.moves.Len() {
		return nil, fmt.Errorf("%w: %d not in 0..%d", ErrChoiceOutOfRange, index, s.moves.Len())
	}

	player := s.moves.At(index - 1)
	outcome, err := s.rules.Resolve(player, s.commitment.Move())
	if err != nil {
		return nil, err
	}
	s.state = StateResolved

	key, opponent := s.commitment.Reveal()
	s.state = StateDisclosed
	logger.Debug("session disclosed", "round", s.id, "outcome", outcome)

	return &Disclosure{
		PlayerMove:   player,
		OpponentMove: opponent,
		Outcome:      outcome,
		Winner:       outcome.Label(),
		Key:          key,
		HMAC:         s.commitment.Digest(),
		Table:        s.rules.Table(),
	}, nil
}

// Run drives a loaded session interactively until the player plays a move or
// exits. Unreadable input is reported and prompted again.
func (s *Session) Run(ctx context.Context, in ChoiceProvider, out Display) (*Disclosure, error) {
	digest := s.Digest()
	if err := s.Await(); err != nil {
		return nil, err
	}
	out.Commitment(digest)
	out.Menu(s.Moves().Names())

	for {
		line, err := in.NextChoice(ctx)
		if err != nil {
			s.abort()
			return nil, err
		}
		line = strings.TrimSpace(line)

		if line == "?" {
			t, err := s.Table()
			if err != nil {
				return nil, err
			}
			out.Table(t)
			continue
		}

		n, err := strconv.Atoi(line)
		if err != nil {
			out.Invalid(line)
			continue
		}

		d, err := s.Choose(n)
		switch {
		case errors.Is(err, ErrChoiceOutOfRange):
			out.Invalid(line)
			continue
		case errors.Is(err, ErrExited):
			out.Exit()
			return nil, err
		case err != nil:
			return nil, err
		}

		out.Disclosure(d)
		return d, nil
	}
}

func (s *Session) abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateDisclosed {
		s.state = StateAborted
	}
}
