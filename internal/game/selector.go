package game

import "math/rand/v2"

// Selector picks the opponent's move.
type Selector interface {
	Select(moves MoveSet) string
}

// SelectorFunc adapts a function to Selector.
type SelectorFunc func(moves MoveSet) string

func (f SelectorFunc) Select(moves MoveSet) string {
	return f(moves)
}

// RandomSelector picks uniformly with math/rand. The move does not need to be
// unpredictable; the commitment key does.
type RandomSelector struct{}

func (RandomSelector) Select(moves MoveSet) string {
	return moves.At(rand.IntN(moves.Len()))
}
