package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/seabattle/internal/dependencies/mocks"
	"github.com/mcoot/seabattle/internal/dependencies/random"
	"github.com/mcoot/seabattle/internal/storage/memory"
)

// TestSeed is the random seed every TestApp starts from
const TestSeed = 1

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Controls for tests. Placement needs a real stream of numbers, so the
	// random source is seeded rather than queue-driven.
	MockClock *mocks.MockClock
	Seeded    *random.SeededRandom
	Memory    *memory.Storage
}

// NewTestApp creates an App configured for testing with controlled dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	seeded := random.NewSeeded(TestSeed)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(store, mockClock, seeded, logger)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		Seeded:    seeded,
		Memory:    store,
	}
}
