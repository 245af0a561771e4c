package game

import (
	"fmt"
	"slices"
)

// Outcome is the result of a round from the player's point of view.
type Outcome string

const (
	OutcomeDraw         Outcome = "draw"
	OutcomePlayerWins   Outcome = "player"
	OutcomeOpponentWins Outcome = "computer"
)

// Label returns the name printed on the disclosure line.
func (o Outcome) Label() string {
	switch o {
	case OutcomePlayerWins:
		return "Player"
	case OutcomeOpponentWins:
		return "Computer"
	default:
		return "Draw"
	}
}

// Result is a win table cell, read from the row move's perspective.
type Result string

const (
	ResultDraw Result = "Draw"
	ResultWin  Result = "Win"
	ResultLose Result = "Lose"
)

// MoveSet is an ordered list of distinct move names. Order defines the cycle
// used by the rules, so a MoveSet is never mutated after NewMoveSet.
type MoveSet struct {
	names []string
	index map[string]int
}

// NewMoveSet validates candidates and builds a MoveSet. Failures are returned
// as *ConfigError.
func NewMoveSet(candidates []string) (MoveSet, error) {
	if len(candidates) < 3 {
		return MoveSet{}, &ConfigError{Moves: candidates, Err: ErrTooFewMoves}
	}
	if len(candidates)%2 == 0 {
		return MoveSet{}, &ConfigError{Moves: candidates, Err: ErrEvenMoves}
	}

	index := make(map[string]int, len(candidates))
	for i, name := range candidates {
		if _, dup := index[name]; dup {
			return MoveSet{}, &ConfigError{Moves: candidates, Err: ErrDuplicateMove, Move: name}
		}
		index[name] = i
	}

	return MoveSet{names: slices.Clone(candidates), index: index}, nil
}

// LimitMoves rejects a candidate list longer than limit. A limit of 0 or less
// means no limit. The win table grows with the square of the list.
func LimitMoves(candidates []string, limit int) error {
	if limit > 0 && len(candidates) > limit {
		return &ConfigError{Err: fmt.Errorf("%w: %d given, at most %d allowed", ErrTooManyMoves, len(candidates), limit)}
	}
	return nil
}

// Len returns the number of moves.
func (m MoveSet) Len() int {
	return len(m.names)
}

// At returns the move at position i (0-based).
func (m MoveSet) At(i int) string {
	return m.names[i]
}

// Index returns the position of name, or false if it is not a member.
func (m MoveSet) Index(name string) (int, bool) {
	i, ok := m.index[name]
	return i, ok
}

// Contains reports whether name belongs to the set.
func (m MoveSet) Contains(name string) bool {
	_, ok := m.index[name]
	return ok
}

// Names returns a copy of the ordered move names.
func (m MoveSet) Names() []string {
	return slices.Clone(m.names)
}
