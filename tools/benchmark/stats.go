package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/store"
)

// Sample is the sync height observed at one poll
type Sample struct {
	At     time.Time
	Height uint64
}

// SyncStats accumulates the progress of one history sync
type SyncStats struct {
	HistorySyncID string
	ListenerID    string
	StartHeight   uint64
	EndHeight     *uint64
	Samples       []Sample
	Finished      bool

	TaskID      string
	TaskHandler domain.TaskHandler
	TaskStatus  domain.TaskStatus
	TaskRetries int
	TaskError   string
}

// collect samples the sync row and the resolver task driving it
func collect(ctx context.Context, st store.Store, stats *SyncStats, now time.Time) error {
	row, err := st.GetHistorySyncByID(ctx, stats.HistorySyncID)
	if err != nil {
		return err
	}
	if row == nil {
		return fmt.Errorf("%w: history sync %s", domain.ErrNotFound, stats.HistorySyncID)
	}

	if len(stats.Samples) == 0 {
		stats.ListenerID = row.EventListenerID
		stats.StartHeight = row.SyncHeight
	}
	stats.EndHeight = row.EndHeight
	stats.Finished = row.Finished()
	stats.Samples = append(stats.Samples, Sample{At: now, Height: row.SyncHeight})

	if row.TaskID == nil {
		stats.TaskID = ""
		stats.TaskStatus = ""
		return nil
	}
	task, err := st.GetTaskByID(ctx, *row.TaskID)
	if err != nil {
		return err
	}
	if task == nil {
		return nil
	}
	stats.TaskID = task.ID
	stats.TaskHandler = task.Handler
	stats.TaskStatus = task.Status
	stats.TaskRetries = task.Retries
	stats.TaskError = task.Error
	return nil
}

// Current is the last observed sync height
func (s *SyncStats) Current() uint64 {
	if len(s.Samples) == 0 {
		return s.StartHeight
	}
	return s.Samples[len(s.Samples)-1].Height
}

// Scanned is how many blocks the cursor moved while watched
func (s *SyncStats) Scanned() uint64 {
	if s.Current() < s.StartHeight {
		return 0
	}
	return s.Current() - s.StartHeight
}

// Elapsed spans the first and last samples
func (s *SyncStats) Elapsed() time.Duration {
	if len(s.Samples) < 2 {
		return 0
	}
	return s.Samples[len(s.Samples)-1].At.Sub(s.Samples[0].At)
}

func (s *SyncStats) Rate() string {
	return formatRate(int(s.Scanned()), s.Elapsed())
}

// ETA extrapolates the observed rate to the end height
func (s *SyncStats) ETA() (time.Duration, bool) {
	if s.EndHeight == nil || s.Scanned() == 0 || s.Elapsed() == 0 {
		return 0, false
	}
	if s.Current() >= *s.EndHeight {
		return 0, true
	}
	remaining := *s.EndHeight - s.Current()
	perBlock := s.Elapsed() / time.Duration(s.Scanned())
	return perBlock * time.Duration(remaining), true
}

// Progress is the share of the watched range already scanned
func (s *SyncStats) Progress() (string, bool) {
	if s.EndHeight == nil || *s.EndHeight < s.StartHeight {
		return "", false
	}
	return percentageString(s.Scanned(), *s.EndHeight-s.StartHeight), true
}

// Complete is true once a backfill reached its end or its resolver gave up
func (s *SyncStats) Complete() bool {
	return s.Finished || s.TaskStatus == domain.TaskStatusError
}

func printSyncStats(w io.Writer, s *SyncStats) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", 80))
	_, _ = fmt.Fprintf(w, "History Sync: %s\n", s.HistorySyncID)
	_, _ = fmt.Fprintf(w, "  Listener:    %s\n", s.ListenerID)
	_, _ = fmt.Fprintf(w, "  Status:      %s\n", formatSyncStatus(s))
	_, _ = fmt.Fprintf(w, "  Start:       %d\n", s.StartHeight)
	_, _ = fmt.Fprintf(w, "  Current:     %d\n", s.Current())
	if s.EndHeight != nil {
		_, _ = fmt.Fprintf(w, "  End:         %d\n", *s.EndHeight)
	} else {
		_, _ = fmt.Fprintf(w, "  End:         chain head (perpetual)\n")
	}
	_, _ = fmt.Fprintf(w, "  Scanned:     %d blocks\n", s.Scanned())
	_, _ = fmt.Fprintf(w, "  Watched:     %s\n", formatDuration(s.Elapsed()))
	_, _ = fmt.Fprintf(w, "  Rate:        %s\n", s.Rate())
	if progress, ok := s.Progress(); ok {
		_, _ = fmt.Fprintf(w, "  Progress:    %s\n", progress)
	}
	if eta, ok := s.ETA(); ok && !s.Finished {
		_, _ = fmt.Fprintf(w, "  ETA:         %s\n", formatDuration(eta))
	}
	_, _ = fmt.Fprintln(w)

	if s.TaskID == "" {
		_, _ = fmt.Fprintln(w, "No resolver task attached.")
	} else {
		_, _ = fmt.Fprintf(w, "Resolver Task: %s\n", s.TaskID)
		_, _ = fmt.Fprintf(w, "  Handler:     %s\n", s.TaskHandler)
		_, _ = fmt.Fprintf(w, "  Status:      %s %s\n", taskStatusEmoji(s.TaskStatus), s.TaskStatus)
		_, _ = fmt.Fprintf(w, "  Retries:     %d\n", s.TaskRetries)
		if s.TaskError != "" {
			_, _ = fmt.Fprintf(w, "  Error:       %s\n", s.TaskError)
		}
	}
	_, _ = fmt.Fprintln(w, strings.Repeat("-", 80))
}

func formatSyncStatus(s *SyncStats) string {
	switch {
	case s.Finished:
		return "✅ FINISHED"
	case s.TaskStatus == domain.TaskStatusError:
		return "❌ FAILED"
	case s.EndHeight == nil:
		return "🔄 FOLLOWING HEAD"
	default:
		return "🟡 RUNNING"
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	if d < time.Hour {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// writeMarkdownReport writes a markdown report of the sync stats
func writeMarkdownReport(filepath string, s *SyncStats, generated time.Time) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	_, _ = fmt.Fprintf(file, "# History Sync Benchmark Report\n\n")
	_, _ = fmt.Fprintf(file, "Generated: %s\n\n", generated.Format("2006-01-02 15:04:05"))

	_, _ = fmt.Fprintf(file, "## History Sync\n\n")
	_, _ = fmt.Fprintf(file, "| Property | Value |\n")
	_, _ = fmt.Fprintf(file, "|----------|-------|\n")
	_, _ = fmt.Fprintf(file, "| **ID** | `%s` |\n", s.HistorySyncID)
	_, _ = fmt.Fprintf(file, "| **Listener** | `%s` |\n", s.ListenerID)
	_, _ = fmt.Fprintf(file, "| **Status** | %s |\n", formatSyncStatus(s))
	_, _ = fmt.Fprintf(file, "| **Start Height** | %d |\n", s.StartHeight)
	_, _ = fmt.Fprintf(file, "| **Current Height** | %d |\n", s.Current())
	if s.EndHeight != nil {
		_, _ = fmt.Fprintf(file, "| **End Height** | %d |\n", *s.EndHeight)
	}
	_, _ = fmt.Fprintf(file, "| **Blocks Scanned** | %d |\n", s.Scanned())
	_, _ = fmt.Fprintf(file, "| **Watched** | %s |\n", formatDuration(s.Elapsed()))
	_, _ = fmt.Fprintf(file, "| **Rate** | %s |\n", s.Rate())
	if progress, ok := s.Progress(); ok {
		_, _ = fmt.Fprintf(file, "| **Progress** | %s |\n", progress)
	}
	if s.TaskID != "" {
		_, _ = fmt.Fprintf(file, "| **Resolver Task** | `%s` (%s, %d retries) |\n", s.TaskID, s.TaskStatus, s.TaskRetries)
	}
	_, _ = fmt.Fprintf(file, "\n")

	_, _ = fmt.Fprintf(file, "## Samples\n\n")
	_, _ = fmt.Fprintf(file, "| Time | Height | Delta | Rate |\n")
	_, _ = fmt.Fprintf(file, "|------|--------|-------|------|\n")
	for i, sample := range s.Samples {
		if i == 0 {
			_, _ = fmt.Fprintf(file, "| %s | %d | - | - |\n", sample.At.Format("15:04:05"), sample.Height)
			continue
		}
		prev := s.Samples[i-1]
		var delta uint64
		if sample.Height > prev.Height {
			delta = sample.Height - prev.Height
		}
		_, _ = fmt.Fprintf(file, "| %s | %d | %d | %s |\n",
			sample.At.Format("15:04:05"), sample.Height, delta, formatRate(int(delta), sample.At.Sub(prev.At)))
	}

	return nil
}
