package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Stats is the host's usage summary. A non-empty Error means the host
// could not produce one.
type Stats struct {
	TotalKeys          int64   `json:"total_keys"`
	TotalClicks        int64   `json:"total_clicks"`
	TotalActiveSeconds float64 `json:"total_active_seconds"`
	TotalIdleSeconds   float64 `json:"total_idle_seconds"`
	LastUpdated        string  `json:"last_updated,omitempty"`
	Error              string  `json:"error,omitempty"`
}

// StatsBridge is the host application's statistics call.
type StatsBridge interface {
	Stats(ctx context.Context) Stats
}

// activityLogBridge answers from the activity log the host collector
// writes. Failures come back as an Error reply, never as a Go error.
type activityLogBridge struct {
	path string
}

func (b *activityLogBridge) Stats(ctx context.Context) Stats {
	if err := ctx.Err(); err != nil {
		return Stats{Error: err.Error()}
	}
	data, err := os.ReadFile(b.path)
	if err != nil {
		return Stats{Error: err.Error()}
	}
	var s Stats
	if err := json.Unmarshal(data, &s); err != nil {
		return Stats{Error: fmt.Sprintf("decode %s: %v", b.path, err)}
	}
	return s
}

const statsPlaceholder = "Waiting for host..."

func formatStats(s Stats) string {
	if s.Error != "" {
		return "Data unavailable"
	}
	return fmt.Sprintf("Keys: %d\nClicks: %d\nActive: %.0fs\nIdle: %.0fs",
		s.TotalKeys,
		s.TotalClicks,
		math.Round(s.TotalActiveSeconds),
		math.Round(s.TotalIdleSeconds))
}

type statsMsg Stats

type statsTickMsg time.Time

func fetchStatsCmd(bridge StatsBridge) tea.Cmd {
	if bridge == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return statsMsg(bridge.Stats(ctx))
	}
}

func statsTickCmd(bridge StatsBridge, interval time.Duration) tea.Cmd {
	if bridge == nil {
		return nil
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return statsTickMsg(t)
	})
}
