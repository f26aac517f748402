package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "watch <roomKey> <playerId>",
		Short: "Watch a room's event feed",
		Long: `Repeatedly long-poll the room's update endpoint and print each
resolved event.

Events include:
  - PLAYERS_UPDATE: Room membership changed
  - TEST_START: A timed test began
  - WORDS_UPDATE: The challenge text changed
  - TEST_END: The test finished

Press Ctrl+C to stop.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchRoom(args[0], args[1], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

func watchRoom(roomKey, playerID string, jsonOutput bool) error {
	pollURL := strings.TrimSuffix(cfg.ServerURL, "/") + "/api/get/update?" + url.Values{
		"roomKey":  {roomKey},
		"playerId": {playerID},
	}.Encode()

	// Set up cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Each poll hangs until the next room event, so no client timeout
	httpClient := &http.Client{
		Timeout: 0,
	}

	if !jsonOutput {
		fmt.Printf("Watching room %s\n", roomKey)
	}

	for {
		update, err := pollOnce(ctx, httpClient, pollURL)
		if err != nil {
			if ctx.Err() != nil {
				if !jsonOutput {
					fmt.Println("\nStopped")
				}
				return nil
			}
			return err
		}

		printUpdate(update, jsonOutput)
	}
}

func pollOnce(ctx context.Context, httpClient *http.Client, pollURL string) (*UpdateResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pollURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("poll failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return nil, errors.New(errResp.Error)
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var update UpdateResult
	if err := json.Unmarshal(body, &update); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &update, nil
}

func printUpdate(update *UpdateResult, jsonOutput bool) {
	if jsonOutput {
		data, _ := json.Marshal(update)
		fmt.Println(string(data))
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	switch {
	case len(update.Data.Players) > 0:
		parts := make([]string, len(update.Data.Players))
		for i, p := range update.Data.Players {
			parts[i] = fmt.Sprintf("%s %.1fwpm", p.Name, p.WPM)
		}
		fmt.Printf("[%s] %s: %s\n", timestamp, update.Event, strings.Join(parts, ", "))
	case update.Data.Chars != "":
		text := update.Data.Chars
		if len(text) > 100 {
			text = text[:100] + "..."
		}
		fmt.Printf("[%s] %s: %s\n", timestamp, update.Event, text)
	default:
		fmt.Printf("[%s] %s\n", timestamp, update.Event)
	}
}
