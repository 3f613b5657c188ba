package dto

import (
	"encoding/json"
	"time"

	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/store/schema"
)

// TaskResponse represents a task of the durable queue
type TaskResponse struct {
	ID             string             `json:"id"`
	Handler        domain.TaskHandler `json:"handler"`
	Params         json.RawMessage    `json:"params,omitempty"`
	Status         domain.TaskStatus  `json:"status"`
	Info           string             `json:"info,omitempty"`
	Error          string             `json:"error,omitempty"`
	Priority       int                `json:"priority"`
	Topic          string             `json:"topic"`
	TimeoutSeconds *int               `json:"timeout_seconds,omitempty"`
	Retries        int                `json:"retries"`
	StartAt        time.Time          `json:"start_at"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// MapTaskToDTO maps a schema.Task to TaskResponse
func MapTaskToDTO(task *schema.Task) *TaskResponse {
	resp := &TaskResponse{
		ID:             task.ID,
		Handler:        task.Handler,
		Status:         task.Status,
		Info:           task.Info,
		Error:          task.Error,
		Priority:       task.Priority,
		Topic:          task.Topic,
		TimeoutSeconds: task.TimeoutSeconds,
		Retries:        task.Retries,
		StartAt:        task.StartAt,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
	if len(task.Params) > 0 && string(task.Params) != "null" {
		resp.Params = json.RawMessage(task.Params)
	}
	return resp
}
