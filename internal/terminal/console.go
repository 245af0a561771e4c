package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"fair_rps/internal/game"

	"github.com/mattn/go-runewidth"
)

const (
	UsageError   = "Error: Incorrect arguments. Please provide an odd number >= 3 of non-repeating moves."
	UsageExample = "Example: rps Rock Paper Scissors"
	prompt       = "Enter your choice: "
)

// Console plays a session over a line-oriented terminal.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// NextChoice prompts and reads one line. A closed input returns io.EOF.
func (c *Console) NextChoice(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.in.Text(), nil
}

func (c *Console) Commitment(hmac string) {
	fmt.Fprintf(c.out, "HMAC: %s\n", hmac)
}

func (c *Console) Menu(moves []string) {
	fmt.Fprintln(c.out, "Menu:")
	for i, m := range moves {
		fmt.Fprintf(c.out, "%d - %s\n", i+1, m)
	}
	fmt.Fprintln(c.out, "0 - Exit")
	fmt.Fprintln(c.out, "? - Help")
}

func (c *Console) Table(t game.WinTable) {
	WriteTable(c.out, t)
}

func (c *Console) Invalid(input string) {
	fmt.Fprintf(c.out, "Invalid choice %q, pick a number from the menu or ? for help.\n", input)
}

func (c *Console) Exit() {
	fmt.Fprintln(c.out, "Exiting the game.")
}

func (c *Console) Disclosure(d *game.Disclosure) {
	fmt.Fprintf(c.out, "Player move: %s\n", d.PlayerMove)
	fmt.Fprintf(c.out, "Computer move: %s\n", d.OpponentMove)
	fmt.Fprintf(c.out, "Winner: %s\n", d.Winner)
	fmt.Fprintf(c.out, "Generated key: %s\n", d.Key)
	fmt.Fprintf(c.out, "HMAC: %s\n", d.HMAC)
	WriteTable(c.out, d.Table)
}

// Usage prints the message shown for an unusable move list.
func Usage(w io.Writer) {
	fmt.Fprintln(w, UsageError)
	fmt.Fprintln(w, UsageExample)
}

// WriteTable prints the help table: rows joined with " | ", and a dash line
// under the header as wide as the header is on screen.
func WriteTable(w io.Writer, t game.WinTable) {
	rows := t.Rows()
	header := strings.Join(rows[0], " | ")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", runewidth.StringWidth(header)))
	for _, row := range rows[1:] {
		fmt.Fprintln(w, strings.Join(row, " | "))
	}
}
