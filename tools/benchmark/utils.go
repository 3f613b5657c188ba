// Package main provides helper functions for the benchmark CLI
package main

import (
	"fmt"
	"time"

	"github.com/feral-file/ff-event-scanner/internal/domain"
)

// formatRate formats a rate (items per second)
func formatRate(count int, duration time.Duration) string {
	if duration.Seconds() == 0 {
		return "N/A"
	}
	rate := float64(count) / duration.Seconds()
	return fmt.Sprintf("%.2f/s", rate)
}

// percentageString calculates and formats a percentage
func percentageString(part, total uint64) string {
	if total == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(part)/float64(total)*100)
}

// taskStatusEmoji returns an emoji for the task status
func taskStatusEmoji(status domain.TaskStatus) string {
	switch status {
	case domain.TaskStatusPending, domain.TaskStatusProcessing:
		return "🟡"
	case domain.TaskStatusError:
		return "❌"
	case domain.TaskStatusDone:
		return "✅"
	default:
		return "⚪"
	}
}
