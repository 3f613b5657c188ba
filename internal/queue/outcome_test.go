package queue

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/store/schema"
)

func TestOutcome_Transitions(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start.Add(time.Minute)
	task := &schema.Task{
		ID:      "task-1",
		Handler: domain.TaskHandlerHistorySyncResolver,
		Status:  domain.TaskStatusProcessing,
		Info:    "older",
		StartAt: start,
	}

	tests := []struct {
		name       string
		build      func(Outcome) Outcome
		wantStatus domain.TaskStatus
		wantStart  time.Time
		wantError  string
	}{
		{
			name:       "done",
			build:      func(o Outcome) Outcome { return o.AsDone() },
			wantStatus: domain.TaskStatusDone,
			wantStart:  start,
		},
		{
			name:       "deferred",
			build:      func(o Outcome) Outcome { return o.AsDeferred(start.Add(time.Hour)) },
			wantStatus: domain.TaskStatusPending,
			wantStart:  start.Add(time.Hour),
		},
		{
			name:       "error",
			build:      func(o Outcome) Outcome { return o.AsError(errors.New("rpc down")) },
			wantStatus: domain.TaskStatusError,
			wantStart:  start,
			wantError:  "rpc down",
		},
		{
			name:       "no verdict finishes the task",
			build:      func(o Outcome) Outcome { return o },
			wantStatus: domain.TaskStatusDone,
			wantStart:  start,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := NewOutcome(task)
			result := tt.build(seed).Apply(now)

			assert.Equal(t, tt.wantStatus, result.Status)
			assert.True(t, tt.wantStart.Equal(result.StartAt))
			assert.Equal(t, tt.wantError, result.Error)
			assert.True(t, now.Equal(result.UpdatedAt))
			assert.Equal(t, "task-1", result.ID)

			// The seed and the source task are untouched
			assert.Equal(t, domain.TaskStatusProcessing, seed.Status())
			assert.Equal(t, domain.TaskStatusProcessing, task.Status)
		})
	}
}

func TestOutcome_WithInfo(t *testing.T) {
	o := NewOutcome(&schema.Task{Info: ""})

	o = o.WithInfo("first")
	assert.Equal(t, "first", o.Info())

	o = o.WithInfo("second")
	assert.Equal(t, "second\n\nfirst", o.Info())

	long := strings.Repeat("é", domain.MaxTaskInfoLength+10)
	o = o.WithInfo(long)
	assert.Equal(t, domain.MaxTaskInfoLength, len([]rune(o.Info())))
	assert.True(t, strings.HasPrefix(o.Info(), "éé"))
}
