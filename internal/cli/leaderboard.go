package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the best scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/leaderboard"
			if limit > 0 {
				path = fmt.Sprintf("%s?limit=%d", path, limit)
			}

			var result Leaderboard
			if err := client.Get(path, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Number of entries (default: server setting)")
	cmd.AddCommand(newLeaderboardWatchCmd())

	return cmd
}

func newLeaderboardWatchCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream leaderboard updates",
		Long: `Connect to the leaderboard event stream and print the board each time
a player sets a new personal best. The current board is printed on connect.

Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return watchLeaderboard(ctx, output(cmd), count)
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "Exit after this many updates (0 = run until interrupted)")

	return cmd
}

// LeaderboardUpdate is the payload of a leaderboard-update event
type LeaderboardUpdate struct {
	Username string             `json:"username,omitempty"`
	Attempts int                `json:"attempts,omitempty"`
	Entries  []LeaderboardEntry `json:"entries"`
}

// SSEEvent is a parsed SSE event
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

func watchLeaderboard(ctx context.Context, out *Output, count int) error {
	url := strings.TrimSuffix(cfg.ServerURL, "/") + "/api/v1/leaderboard/events"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}

	// No timeout: the stream stays open
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	seen := 0
	err = readEvents(resp.Body, func(event, data string) bool {
		if event != "leaderboard-update" {
			return true
		}
		printLeaderboardUpdate(out, data)
		seen++
		return count <= 0 || seen < count
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}
	return nil
}

// readEvents parses an SSE stream, calling fn per event until fn returns false
func readEvents(r io.Reader, fn func(event, data string) bool) error {
	scanner := bufio.NewScanner(r)
	var currentEvent string
	var dataLines []string

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "event: "):
			currentEvent = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		case line == "":
			if currentEvent != "" && !fn(currentEvent, strings.Join(dataLines, "\n")) {
				return nil
			}
			currentEvent = ""
			dataLines = nil
		}
	}
	return scanner.Err()
}

func printLeaderboardUpdate(out *Output, data string) {
	if out.JSON() {
		evt := SSEEvent{Time: time.Now(), Event: "leaderboard-update", Data: data}
		line, _ := json.Marshal(evt)
		_, _ = fmt.Fprintln(out.w, string(line))
		return
	}

	var update LeaderboardUpdate
	if err := json.Unmarshal([]byte(data), &update); err != nil {
		fmt.Fprintf(os.Stderr, "bad event: %s\n", err)
		return
	}

	out.printf("[%s]", time.Now().Format("15:04:05"))
	if update.Username != "" {
		out.printf(" %s set a new best: %d attempts", update.Username, update.Attempts)
	}
	out.printf("\n")
	out.printLeaderboard(Leaderboard{Entries: update.Entries})
}
