package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"fair_rps/internal/game"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns 0 when the HMAC matches, 1 on a mismatch and 2 on bad input.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		key  = fs.String("key", "", "disclosed secret key (hex)")
		move = fs.String("move", "", "disclosed computer move")
		mac  = fs.String("hmac", "", "HMAC shown before you chose (hex)")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *key == "" || *move == "" || *mac == "" {
		fmt.Fprintln(stderr, "Usage: verify -key HEX -move NAME -hmac HEX")
		return 2
	}

	ok, err := game.VerifyHex(*mac, *key, *move)
	if err != nil {
		fmt.Fprintf(stderr, "verify: %v\n", err)
		return 2
	}
	if !ok {
		fmt.Fprintln(stdout, "MISMATCH: the computer did not play", *move)
		return 1
	}
	fmt.Fprintln(stdout, "OK: the HMAC matches", *move)
	return 0
}
