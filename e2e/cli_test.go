package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/seabattle/internal/api"
	"github.com/mcoot/seabattle/internal/factory"
	"github.com/mcoot/seabattle/internal/model"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "seabattle-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/seabattle")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// startTestServer runs the real API server on a free port
func startTestServer(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(api.RouterConfig{
		Logger:         logger,
		SessionService: app.SessionService,
	}))

	server := api.NewServer(mux, api.DefaultServerConfig(), logger)
	go func() {
		if err := server.Serve(listener); err != nil {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + listener.Addr().String()
	waitForServer(t, serverURL+"/api/v1/health")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	})
	return serverURL
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type sessionResponse struct {
	ID         string   `json:"id"`
	Strategy   string   `json:"strategy"`
	ShotsFired int      `json:"shots_fired"`
	Hits       int      `json:"hits"`
	ShipsSunk  int      `json:"ships_sunk"`
	Finished   bool     `json:"finished"`
	Tracking   []string `json:"tracking"`
}

type shotResponse struct {
	Cell struct {
		Row int `json:"row"`
		Col int `json:"col"`
	} `json:"cell"`
}

type incomingResponse struct {
	Hit            bool `json:"hit"`
	Sunk           bool `json:"sunk"`
	ShipsRemaining int  `json:"ships_remaining"`
	Defeated       bool `json:"defeated"`
}

type fleetResponse struct {
	Ships []struct {
		ShipID      int    `json:"ship_id"`
		Length      int    `json:"length"`
		Row         int    `json:"row"`
		Col         int    `json:"col"`
		Orientation string `json:"orientation"`
	} `json:"ships"`
	Grid []string `json:"grid"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func parse[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestCLIEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	serverURL := startTestServer(t)
	cli := newCLIRunner(t, serverURL)

	t.Run("health", func(t *testing.T) {
		out, err := cli.run("health")
		require.NoError(t, err, out)
		assert.Equal(t, "ok", parse[healthResponse](t, out).Status)
	})

	t.Run("unreachable server fails", func(t *testing.T) {
		cmd := exec.Command(cli.binaryPath, "--server", "http://127.0.0.1:1", "health")
		out, err := cmd.CombinedOutput()
		assert.Error(t, err, string(out))
	})

	t.Run("bot session plays a known fleet to the end", func(t *testing.T) {
		// Generate the fleet the bot will be shooting at
		out, err := cli.run("fleet", "--policy", "diagonal", "--seed", "21")
		require.NoError(t, err, out)
		fleet := parse[fleetResponse](t, out)
		require.Len(t, fleet.Ships, model.FleetSize)

		out, err = cli.run("session", "create", "--strategy", "adaptive")
		require.NoError(t, err, out)
		sess := parse[sessionResponse](t, out)

		// Referee the bot's shots against the generated fleet
		hitsOnShip := map[int]int{}
		shipAt := func(row, col int) (id, length int) {
			for _, s := range fleet.Ships {
				for i := 0; i < s.Length; i++ {
					r, c := s.Row, s.Col+i
					if s.Orientation == string(model.Vertical) {
						r, c = s.Row+i, s.Col
					}
					if r == row && c == col {
						return s.ShipID, s.Length
					}
				}
			}
			return 0, 0
		}

		var last sessionResponse
		for turn := 0; turn < model.CellCount && !last.Finished; turn++ {
			out, err := cli.run("session", "next", sess.ID)
			require.NoError(t, err, out)
			shot := parse[shotResponse](t, out)

			verdict := "miss"
			if id, length := shipAt(shot.Cell.Row, shot.Cell.Col); id != 0 {
				hitsOnShip[id]++
				verdict = "hit"
				if hitsOnShip[id] == length {
					verdict = "sunk"
				}
			}

			out, err = cli.run("session", "result", sess.ID, verdict)
			require.NoError(t, err, out)
			last = parse[sessionResponse](t, out)
		}

		assert.True(t, last.Finished)
		assert.Equal(t, model.FleetSize, last.ShipsSunk)
		assert.Equal(t, model.FleetCells, last.Hits)

		out, err = cli.run("session", "next", sess.ID)
		assert.Error(t, err, "a finished session has nothing left to find: %s", out)
	})

	t.Run("shooting at the bot", func(t *testing.T) {
		out, err := cli.run("session", "create", "--strategy", "random", "--policy", "half")
		require.NoError(t, err, out)
		sess := parse[sessionResponse](t, out)

		sunk := 0
		var last incomingResponse
		for idx := 0; idx < model.CellCount && !last.Defeated; idx++ {
			row, col := idx/model.BoardSize, idx%model.BoardSize
			out, err := cli.run("session", "incoming", sess.ID, strconv.Itoa(row), strconv.Itoa(col))
			require.NoError(t, err, out)
			last = parse[incomingResponse](t, out)
			if last.Sunk {
				sunk++
			}
		}

		assert.True(t, last.Defeated)
		assert.Equal(t, model.FleetSize, sunk)

		out, err = cli.run("session", "delete", sess.ID)
		require.NoError(t, err, out)
	})

	t.Run("simulate and duel", func(t *testing.T) {
		out, err := cli.run("simulate", "--strategy", "heatmap", "--games", "5", "--seed", "3")
		require.NoError(t, err, out)
		assert.Contains(t, out, `"games": 5`)

		out, err = cli.run("duel", "--a", "adaptive", "--b", "diagonal:border", "--seed", "3")
		require.NoError(t, err, out)
		assert.Contains(t, out, `"winner"`)
	})
}
