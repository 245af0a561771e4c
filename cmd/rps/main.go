package main

import (
	"context"
	"errors"
	"io"
	"os"

	"fair_rps/internal/config"
	"fair_rps/internal/game"
	"fair_rps/internal/logger"
	"fair_rps/internal/terminal"
)

func main() {
	cfg := config.Load()
	logger.InitWriter(os.Stderr, cfg.LogLevel, cfg.LogJSON)

	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) int {
	session := game.NewSession()

	var cfgErr *game.ConfigError
	if err := session.Load(args); err != nil {
		if errors.As(err, &cfgErr) {
			logger.Debug("rejected move list", "error", err)
			terminal.Usage(stdout)
			return 1
		}
		logger.Error("cannot start game", "error", err)
		return 1
	}

	console := terminal.NewConsole(stdin, stdout)
	_, err := session.Run(ctx, console, console)
	switch {
	case err == nil, errors.Is(err, game.ErrExited):
		return 0
	default:
		logger.Error("game ended unexpectedly", "error", err)
		return 1
	}
}
