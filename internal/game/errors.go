package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTooFewMoves   = errors.New("at least 3 moves are required")
	ErrEvenMoves     = errors.New("the number of moves must be odd")
	ErrDuplicateMove = errors.New("moves must not repeat")
	ErrTooManyMoves  = errors.New("too many moves")

	ErrInvalidMove        = errors.New("move is not part of the move set")
	ErrEntropyUnavailable = errors.New("secure random source unavailable")

	ErrInvalidState     = errors.New("invalid session state for action")
	ErrChoiceOutOfRange = errors.New("choice out of range")
	ErrExited           = errors.New("player exited the game")
)

// ConfigError reports a move list that cannot start a session.
type ConfigError struct {
	Moves []string
	Move  string // offending entry, set for duplicates
	Err   error
}

func (e *ConfigError) Error() string {
	if len(e.Moves) == 0 {
		return fmt.Sprintf("invalid move list: %v", e.Err)
	}
	if e.Move != "" {
		return fmt.Sprintf("invalid move list [%s]: %v: %q", strings.Join(e.Moves, " "), e.Err, e.Move)
	}
	return fmt.Sprintf("invalid move list [%s]: %v", strings.Join(e.Moves, " "), e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
