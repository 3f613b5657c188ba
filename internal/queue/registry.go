package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/feral-file/ff-event-scanner/internal/domain"
)

// HandlerFunc runs a task. It receives an outcome seeded from the task and returns the verdict.
// A returned error turns the task into an error outcome.
type HandlerFunc func(ctx context.Context, outcome Outcome) (Outcome, error)

// Registry maps handler names to their implementation
type Registry struct {
	mu       sync.RWMutex
	handlers map[domain.TaskHandler]HandlerFunc
}

// NewRegistry creates an empty handler registry
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[domain.TaskHandler]HandlerFunc),
	}
}

// Register binds fn to name. Unknown names and duplicate registrations are rejected.
func (r *Registry) Register(name domain.TaskHandler, fn HandlerFunc) error {
	if !name.Valid() {
		return fmt.Errorf("%w: %s", domain.ErrUnknownHandler, name)
	}
	if fn == nil {
		return fmt.Errorf("%w: nil handler for %s", domain.ErrInvalidInput, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("handler %s already registered", name)
	}
	r.handlers[name] = fn
	return nil
}

// Lookup returns the handler bound to name
func (r *Registry) Lookup(name domain.TaskHandler) (HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.handlers[name]
	return fn, ok
}

// Names lists the registered handler names
func (r *Registry) Names() []domain.TaskHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]domain.TaskHandler, 0, len(r.handlers))
	for _, name := range domain.TaskHandlers() {
		if _, ok := r.handlers[name]; ok {
			names = append(names, name)
		}
	}
	return names
}
