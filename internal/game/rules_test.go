package game

import (
	"errors"
	"fmt"
	"testing"
)

func mustMoves(t *testing.T, names ...string) MoveSet {
	t.Helper()
	ms, err := NewMoveSet(names)
	if err != nil {
		t.Fatalf("NewMoveSet(%v): %v", names, err)
	}
	return ms
}

func numberedMoves(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("m%d", i)
	}
	return names
}

func TestTableIsBalancedAndAntisymmetric(t *testing.T) {
	for _, n := range []int{3, 5, 7, 9, 11} {
		rules := NewRules(mustMoves(t, numberedMoves(n)...))
		table := rules.Table()

		if len(table.Cells) != n {
			t.Fatalf("n=%d: expected %d rows, got %d", n, n, len(table.Cells))
		}
		for i, row := range table.Cells {
			counts := map[Result]int{}
			for _, c := range row {
				counts[c]++
			}
			if counts[ResultDraw] != 1 || counts[ResultWin] != (n-1)/2 || counts[ResultLose] != (n-1)/2 {
				t.Fatalf("n=%d row %d: unbalanced counts %v", n, i, counts)
			}
			if row[i] != ResultDraw {
				t.Fatalf("n=%d: diagonal cell %d is %s", n, i, row[i])
			}
			for j := range row {
				if i == j {
					continue
				}
				if (table.Cells[i][j] == ResultWin) != (table.Cells[j][i] == ResultLose) {
					t.Fatalf("n=%d: cells (%d,%d)=%s and (%d,%d)=%s are not mirrored",
						n, i, j, table.Cells[i][j], j, i, table.Cells[j][i])
				}
			}
		}
	}
}

func TestResolveSameMoveIsDraw(t *testing.T) {
	ms := mustMoves(t, numberedMoves(7)...)
	rules := NewRules(ms)
	for _, m := range ms.Names() {
		got, err := rules.Resolve(m, m)
		if err != nil {
			t.Fatalf("Resolve(%s,%s): %v", m, m, err)
		}
		if got != OutcomeDraw {
			t.Fatalf("Resolve(%s,%s) = %s; want draw", m, m, got)
		}
	}
}

func TestResolveRockPaperScissors(t *testing.T) {
	rules := NewRules(mustMoves(t, "Rock", "Paper", "Scissors"))

	cases := []struct {
		a, b string
		want Outcome
	}{
		{"Rock", "Scissors", OutcomePlayerWins},
		{"Rock", "Paper", OutcomeOpponentWins},
		{"Rock", "Rock", OutcomeDraw},
		{"Paper", "Rock", OutcomePlayerWins},
		{"Scissors", "Paper", OutcomePlayerWins},
		{"Scissors", "Rock", OutcomeOpponentWins},
	}

	for _, tc := range cases {
		got, err := rules.Resolve(tc.a, tc.b)
		if err != nil {
			t.Fatalf("Resolve(%s,%s): %v", tc.a, tc.b, err)
		}
		if got != tc.want {
			t.Fatalf("Resolve(%s,%s) = %s; want %s", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestResolveMatchesTable(t *testing.T) {
	ms := mustMoves(t, "Rock", "Paper", "Scissors", "Lizard", "Spock")
	rules := NewRules(ms)
	table := rules.Table()

	want := map[Result]Outcome{
		ResultDraw: OutcomeDraw,
		ResultWin:  OutcomePlayerWins,
		ResultLose: OutcomeOpponentWins,
	}
	for i, a := range ms.Names() {
		for j, b := range ms.Names() {
			got, err := rules.Resolve(a, b)
			if err != nil {
				t.Fatalf("Resolve(%s,%s): %v", a, b, err)
			}
			if got != want[table.Cells[i][j]] {
				t.Fatalf("Resolve(%s,%s) = %s but table says %s", a, b, got, table.Cells[i][j])
			}
		}
	}
}

func TestResolveUnknownMove(t *testing.T) {
	rules := NewRules(mustMoves(t, "Rock", "Paper", "Scissors"))

	if _, err := rules.Resolve("Rock", "rock"); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
	if _, err := rules.Resolve("Well", "Rock"); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
}

func TestTableRows(t *testing.T) {
	rules := NewRules(mustMoves(t, "Rock", "Paper", "Scissors"))
	rows := rules.Table().Rows()

	want := [][]string{
		{"Moves", "Rock", "Paper", "Scissors"},
		{"Rock", "Draw", "Lose", "Win"},
		{"Paper", "Win", "Draw", "Lose"},
		{"Scissors", "Lose", "Win", "Draw"},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i := range want {
		if fmt.Sprint(rows[i]) != fmt.Sprint(want[i]) {
			t.Fatalf("row %d = %v; want %v", i, rows[i], want[i])
		}
	}
}
