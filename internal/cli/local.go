package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/mcoot/seabattle/internal/dependencies/random"
	"github.com/mcoot/seabattle/internal/services/match"
)

// localLogger is used by commands that run the engine in-process.
// Verbose mode surfaces engine debug logs on stderr.
func localLogger() *slog.Logger {
	if cfg.Verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func localSimulator(seed uint64) (*match.Simulator, *random.SeededRandom) {
	rnd := random.NewSeeded(seed)
	return match.NewSimulator(rnd, localLogger()), rnd
}
