package game

import "fmt"

// Rules decides rounds for a MoveSet. Each move beats the (N-1)/2 moves that
// precede it in the cycle and loses to the (N-1)/2 moves that follow it.
type Rules struct {
	moves MoveSet
}

func NewRules(moves MoveSet) *Rules {
	return &Rules{moves: moves}
}

// Moves returns the move set the rules were built for.
func (r *Rules) Moves() MoveSet {
	return r.moves
}

// Resolve decides a round between the player's move a and the opponent's
// move b.
func (r *Rules) Resolve(a, b string) (Outcome, error) {
	i, ok := r.moves.Index(a)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidMove, a)
	}
	j, ok := r.moves.Index(b)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidMove, b)
	}

	switch r.compare(i, j) {
	case ResultWin:
		return OutcomePlayerWins, nil
	case ResultLose:
		return OutcomeOpponentWins, nil
	default:
		return OutcomeDraw, nil
	}
}

// compare returns the result for the move at i against the move at j.
func (r *Rules) compare(i, j int) Result {
	n := r.moves.Len()
	d := ((i-j)%n + n) % n
	switch {
	case d == 0:
		return ResultDraw
	case d <= (n-1)/2:
		return ResultWin
	default:
		return ResultLose
	}
}

// WinTable holds the result of every ordered pair of moves.
type WinTable struct {
	Moves []string   `json:"moves"`
	Cells [][]Result `json:"cells"`
}

// Table builds the full N×N table; Cells[i][j] is move i against move j.
func (r *Rules) Table() WinTable {
	n := r.moves.Len()
	cells := make([][]Result, n)
	for i := range n {
		row := make([]Result, n)
		for j := range n {
			row[j] = r.compare(i, j)
		}
		cells[i] = row
	}
	return WinTable{Moves: r.moves.Names(), Cells: cells}
}

// Rows returns the table as display rows: the header first, then one row per
// move prefixed with its name.
func (t WinTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.Moves)+1)
	rows = append(rows, append([]string{"Moves"}, t.Moves...))
	for i, name := range t.Moves {
		row := make([]string, 0, len(t.Cells[i])+1)
		row = append(row, name)
		for _, c := range t.Cells[i] {
			row = append(row, string(c))
		}
		rows = append(rows, row)
	}
	return rows
}
