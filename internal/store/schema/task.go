package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-event-scanner/internal/domain"
)

// Task represents the tasks table, the durable job queue
type Task struct {
	// ID is the task identifier
	ID string `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	// Handler is the registered handler that runs the task
	Handler domain.TaskHandler `gorm:"column:handler;not null" json:"handler"`
	// Params is the handler input
	Params datatypes.JSON `gorm:"column:params;type:jsonb;not null" json:"params"`
	// StartAt is the earliest time the task may run
	StartAt time.Time `gorm:"column:start_at;not null" json:"startAt"`
	// Status is the lifecycle state
	Status domain.TaskStatus `gorm:"column:status;not null;type:task_status" json:"status"`
	// Info is a running log, newest entry first
	Info string `gorm:"column:info;not null" json:"info"`
	// Error holds the failure detail of an errored task
	Error string `gorm:"column:error;not null" json:"error"`
	// Priority orders candidates with equal start time, 9 runs first
	Priority int `gorm:"column:priority;not null" json:"priority"`
	// Topic selects the consumer group that runs the task
	Topic string `gorm:"column:topic;not null" json:"topic"`
	// TimeoutSeconds bounds the handler run when set
	TimeoutSeconds *int `gorm:"column:timeout_seconds" json:"timeoutSeconds,omitempty"`
	// Retries counts explicit restarts
	Retries int `gorm:"column:retries;not null" json:"retries"`
	// DispatchToken is the single-use token of the last dispatch, spent by the consumer that runs it
	DispatchToken string `gorm:"column:dispatch_token;not null" json:"dispatchToken"`
	// CreatedAt is the timestamp when the task was created
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	// UpdatedAt doubles as the heartbeat of a processing task
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Task) TableName() string {
	return "tasks"
}
