package queue

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/store/schema"
)

// Outcome is the verdict a handler returns for a task.
// Every method returns a new value and leaves the receiver untouched.
type Outcome struct {
	task    schema.Task
	status  domain.TaskStatus
	info    string
	err     string
	startAt time.Time
}

// NewOutcome seeds an outcome from the task handed to a handler
func NewOutcome(task *schema.Task) Outcome {
	return Outcome{
		task:    *task,
		status:  domain.TaskStatusProcessing,
		info:    task.Info,
		err:     task.Error,
		startAt: task.StartAt,
	}
}

// Task returns a copy of the task the outcome was seeded from
func (o Outcome) Task() schema.Task {
	return o.task
}

// Status is the status the task will be persisted with
func (o Outcome) Status() domain.TaskStatus {
	return o.status
}

// Info is the running log, newest entry first
func (o Outcome) Info() string {
	return o.info
}

// Error is the failure detail
func (o Outcome) Error() string {
	return o.err
}

// StartAt is when a deferred task becomes a candidate again
func (o Outcome) StartAt() time.Time {
	return o.startAt
}

// WithInfo prepends msg to the running log, capped at MaxTaskInfoLength characters
func (o Outcome) WithInfo(msg string) Outcome {
	info := msg
	if o.info != "" {
		info = msg + "\n\n" + o.info
	}
	o.info = truncate(info, domain.MaxTaskInfoLength)
	return o
}

// AsDone marks the task finished
func (o Outcome) AsDone() Outcome {
	o.status = domain.TaskStatusDone
	return o
}

// AsDeferred puts the task back to pending until at
func (o Outcome) AsDeferred(at time.Time) Outcome {
	o.status = domain.TaskStatusPending
	o.startAt = at
	return o
}

// AsError marks the task failed with cause
func (o Outcome) AsError(cause error) Outcome {
	o.status = domain.TaskStatusError
	if cause != nil {
		o.err = fmt.Sprintf("%+v", cause)
	}
	return o
}

// Apply returns the task row to persist.
// A handler that returned without a verdict finished its work, so the task is done.
func (o Outcome) Apply(now time.Time) *schema.Task {
	task := o.task
	task.Status = o.status
	if task.Status == domain.TaskStatusProcessing || task.Status == "" {
		task.Status = domain.TaskStatusDone
	}
	task.Info = o.info
	task.Error = o.err
	task.StartAt = o.startAt
	task.UpdatedAt = now
	return &task
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
