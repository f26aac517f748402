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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwhittle/typerace-go/internal/api"
	"github.com/fwhittle/typerace-go/internal/factory"
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
	binaryPath := filepath.Join(projectRoot, "bin", "typerace-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/typerace")
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

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	projectRoot := findProjectRoot(t)
	err = app.WordsService.LoadFromFile(context.Background(), filepath.Join(projectRoot, "data/words.txt"))
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		RoomController: app.RoomController,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
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
	Success  bool   `json:"success"`
	RoomKey  string `json:"roomKey"`
	PlayerID string `json:"playerId"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func TestCLIHealth(t *testing.T) {
	server := startTestServer(t)
	defer server.shutdown()
	cli := newCLIRunner(t, server.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var health healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &health))
	assert.Equal(t, "ok", health.Status)
}

func TestCLIRoomLifecycle(t *testing.T) {
	server := startTestServer(t)
	defer server.shutdown()
	cli := newCLIRunner(t, server.addr)

	// Create a room
	output, err := cli.run("room", "create", "Alice")
	require.NoError(t, err, "output: %s", output)

	var session sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &session))
	assert.True(t, session.Success)
	assert.Len(t, session.RoomKey, 6)
	assert.Len(t, session.PlayerID, 6)

	// Second player joins
	output, err = cli.run("room", "join", session.RoomKey, "Bob")
	require.NoError(t, err, "output: %s", output)

	var bob sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &bob))
	assert.Equal(t, session.RoomKey, bob.RoomKey)
	assert.NotEqual(t, session.PlayerID, bob.PlayerID)

	// Host starts a test and submits progress
	output, err = cli.run("test", "start", session.RoomKey, session.PlayerID)
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("test", "type", session.RoomKey, session.PlayerID, "the ")
	require.NoError(t, err, "output: %s", output)

	// Both players leave
	_, err = cli.run("room", "exit", session.PlayerID)
	require.NoError(t, err)
	_, err = cli.run("room", "exit", bob.PlayerID)
	require.NoError(t, err)
}

func TestCLIJoinUnknownRoom(t *testing.T) {
	server := startTestServer(t)
	defer server.shutdown()
	cli := newCLIRunner(t, server.addr)

	output, err := cli.run("room", "join", "000000", "Bob")
	require.Error(t, err)
	assert.Contains(t, output, "Room not found")
}

func TestCLIStartNotHost(t *testing.T) {
	server := startTestServer(t)
	defer server.shutdown()
	cli := newCLIRunner(t, server.addr)

	output, err := cli.run("room", "create", "Alice")
	require.NoError(t, err, "output: %s", output)
	var session sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &session))

	output, err = cli.run("room", "join", session.RoomKey, "Bob")
	require.NoError(t, err, "output: %s", output)
	var bob sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &bob))

	output, err = cli.run("test", "start", session.RoomKey, bob.PlayerID)
	require.Error(t, err)
	assert.Contains(t, output, "Not the host")
}
