package queue

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/messaging"
	"github.com/feral-file/ff-event-scanner/internal/metrics"
	"github.com/feral-file/ff-event-scanner/internal/providers/jetstream"
	"github.com/feral-file/ff-event-scanner/internal/store"
	"github.com/feral-file/ff-event-scanner/internal/store/schema"
)

// HeaderPriority carries the task priority on dispatched messages
const HeaderPriority = "Scanner-Priority"

// Config holds the task queue settings
type Config struct {
	// ConsumerName prefixes the durable consumer of each topic
	ConsumerName string
	// Concurrency bounds the tasks a consumer handles at the same time
	Concurrency int
	// TaskLease is how long a processing task may go without a heartbeat
	TaskLease time.Duration
}

// Queue is the durable task queue
//
//go:generate mockgen -source=queue.go -destination=../mocks/queue.go -package=mocks -mock_names=Queue=MockQueue
type Queue interface {
	// Push inserts a task; a task due now is dispatched right away
	Push(ctx context.Context, handler domain.TaskHandler, params interface{}, opts ...PushOption) (*schema.Task, error)
	// Claim moves a pending task to processing, reporting whether this caller won it
	Claim(ctx context.Context, task *schema.Task) (bool, error)
	// Candidates returns due pending tasks, earliest start first then highest priority
	Candidates(ctx context.Context, limit int) ([]schema.Task, error)
	// Deferred claims and dispatches due pending tasks, returning how many were dispatched
	Deferred(ctx context.Context, limit int) (int, error)
	// ResetAndRestart puts a task back to pending, due now, with its error cleared
	ResetAndRestart(ctx context.Context, task *schema.Task) (*schema.Task, error)
	// ResetStale puts processing tasks whose lease expired back to pending
	ResetStale(ctx context.Context) (int64, error)
	// Lease is how long a processing task may go without a heartbeat
	Lease() time.Duration
	// Handle runs a claimed task through its handler and persists the outcome
	Handle(ctx context.Context, task *schema.Task) error
	// Consume handles dispatched tasks of topic until ctx is done
	Consume(ctx context.Context, topic string) error
}

type pushOptions struct {
	timeout  *time.Duration
	startAt  *time.Time
	priority int
	topic    string
}

// PushOption customises a pushed task
type PushOption func(*pushOptions)

// WithTimeout bounds the handler run
func WithTimeout(d time.Duration) PushOption {
	return func(o *pushOptions) { o.timeout = &d }
}

// WithStartAt delays the task until t
func WithStartAt(t time.Time) PushOption {
	return func(o *pushOptions) { o.startAt = &t }
}

// WithPriority orders the task among candidates due at the same time, 9 first
func WithPriority(p int) PushOption {
	return func(o *pushOptions) { o.priority = p }
}

// WithTopic routes the task to the consumers of topic
func WithTopic(topic string) PushOption {
	return func(o *pushOptions) { o.topic = topic }
}

type queue struct {
	store     store.Store
	publisher messaging.Publisher
	consumer  messaging.Consumer
	registry  *Registry
	clock     adapter.Clock
	json      adapter.JSON
	config    Config
}

// New creates a task queue. consumer may be nil for processes that only push and dispatch.
func New(
	cfg Config,
	st store.Store,
	publisher messaging.Publisher,
	consumer messaging.Consumer,
	registry *Registry,
	clock adapter.Clock,
	jsonAdapter adapter.JSON,
) Queue {
	if cfg.TaskLease <= 0 {
		cfg.TaskLease = domain.DefaultTaskLease
	}
	if registry == nil {
		registry = NewRegistry()
	}

	return &queue{
		store:     st,
		publisher: publisher,
		consumer:  consumer,
		registry:  registry,
		clock:     clock,
		json:      jsonAdapter,
		config:    cfg,
	}
}

// Subject returns the subject a task of handler on topic is dispatched to
func Subject(handler domain.TaskHandler, topic string) string {
	return fmt.Sprintf("%s.%s.%s", jetstream.SubjectTasks, handler, topic)
}

// TopicFilter returns the subject filter matching every task of topic
func TopicFilter(topic string) string {
	return fmt.Sprintf("%s.*.%s", jetstream.SubjectTasks, topic)
}

func (q *queue) Lease() time.Duration {
	return q.config.TaskLease
}

func (q *queue) Push(ctx context.Context, handler domain.TaskHandler, params interface{}, opts ...PushOption) (*schema.Task, error) {
	if !handler.Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownHandler, handler)
	}

	o := pushOptions{
		priority: domain.DefaultTaskPriority,
		topic:    domain.DefaultTaskTopic,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.priority < domain.MinTaskPriority || o.priority > domain.MaxTaskPriority {
		return nil, fmt.Errorf("%w: priority %d out of range", domain.ErrInvalidInput, o.priority)
	}
	if o.topic == "" {
		o.topic = domain.DefaultTaskTopic
	}

	if params == nil {
		params = struct{}{}
	}
	data, err := q.json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task params: %w", err)
	}

	now := q.clock.Now()
	startAt := now
	if o.startAt != nil {
		startAt = *o.startAt
	}

	task := &schema.Task{
		ID:       uuid.NewString(),
		Handler:  handler,
		Params:   data,
		StartAt:  startAt,
		Status:   domain.TaskStatusPending,
		Priority: o.priority,
		Topic:    o.topic,
	}
	if o.timeout != nil {
		seconds := int(o.timeout.Seconds())
		task.TimeoutSeconds = &seconds
	}

	if startAt.After(now) {
		if err := q.store.CreateTask(ctx, task); err != nil {
			return nil, err
		}
		logger.DebugCtx(ctx, "Task scheduled", zap.String("taskID", task.ID), zap.String("handler", string(handler)), zap.Time("startAt", startAt))
		return task, nil
	}

	task.Status = domain.TaskStatusProcessing
	task.DispatchToken = uuid.NewString()
	if err := q.store.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	if err := q.publish(ctx, task); err != nil {
		logger.WarnCtx(ctx, "Failed to dispatch task, leaving it for the deferred sweep",
			zap.Error(err),
			zap.String("taskID", task.ID),
			zap.String("handler", string(handler)))

		if err := q.store.SetTaskStatus(ctx, task.ID, domain.TaskStatusPending); err != nil {
			return nil, fmt.Errorf("failed to release undispatched task: %w", err)
		}
		task.Status = domain.TaskStatusPending
	}

	return task, nil
}

// publish sends a task to its workers
func (q *queue) publish(ctx context.Context, task *schema.Task) error {
	data, err := q.json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	headers := map[string]string{
		HeaderPriority:        strconv.Itoa(task.Priority),
		jetstream.HeaderMsgID: fmt.Sprintf("%s:%s", task.ID, task.DispatchToken),
	}
	if err := q.publisher.Publish(ctx, Subject(task.Handler, task.Topic), data, headers); err != nil {
		return err
	}

	metrics.QueueDispatchedInc(string(task.Handler))
	return nil
}

func (q *queue) Claim(ctx context.Context, task *schema.Task) (bool, error) {
	token := uuid.NewString()
	claimed, err := q.store.ClaimTask(ctx, task.ID, token)
	if err != nil || !claimed {
		return claimed, err
	}

	task.Status = domain.TaskStatusProcessing
	task.DispatchToken = token
	return true, nil
}

func (q *queue) Candidates(ctx context.Context, limit int) ([]schema.Task, error) {
	return q.store.GetCandidateTasks(ctx, q.clock.Now(), limit)
}

func (q *queue) Deferred(ctx context.Context, limit int) (int, error) {
	candidates, err := q.Candidates(ctx, limit)
	if err != nil {
		return 0, err
	}

	var errs []error
	dispatched := 0
	for i := range candidates {
		task := &candidates[i]

		claimed, err := q.Claim(ctx, task)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !claimed {
			continue
		}

		if err := q.publish(ctx, task); err != nil {
			errs = append(errs, fmt.Errorf("task %s: %w", task.ID, err))
			if err := q.store.SetTaskStatus(ctx, task.ID, domain.TaskStatusPending); err != nil {
				errs = append(errs, fmt.Errorf("failed to release task %s: %w", task.ID, err))
			}
			continue
		}
		dispatched++
	}

	return dispatched, errors.Join(errs...)
}

func (q *queue) ResetAndRestart(ctx context.Context, task *schema.Task) (*schema.Task, error) {
	now := q.clock.Now()
	if err := q.store.ResetTask(ctx, task.ID, now); err != nil {
		return nil, err
	}

	updated := *task
	updated.Status = domain.TaskStatusPending
	updated.StartAt = now
	updated.Error = ""
	updated.Retries++
	updated.UpdatedAt = now
	return &updated, nil
}

func (q *queue) ResetStale(ctx context.Context) (int64, error) {
	return q.store.ResetStaleTasks(ctx, q.clock.Now().Add(-q.config.TaskLease))
}

func (q *queue) Handle(ctx context.Context, task *schema.Task) error {
	started := q.clock.Now()
	handlerName := string(task.Handler)
	fields := []zap.Field{zap.String("taskID", task.ID), zap.String("handler", handlerName)}

	logger.InfoCtx(ctx, "Handle task", fields...)

	seed := NewOutcome(task)
	outcome := q.run(ctx, task, seed)

	result := outcome.Apply(q.clock.Now())
	if result.Status == domain.TaskStatusError {
		logger.ErrorCtx(ctx, errors.New(result.Error), append(fields, zap.String("message", "Task failed"))...)
	}

	// The outcome is persisted even when the handler context timed out
	if err := q.store.SaveTaskOutcome(context.WithoutCancel(ctx), result); err != nil {
		return fmt.Errorf("failed to persist outcome of task %s: %w", task.ID, err)
	}

	metrics.QueueTaskInc(handlerName, string(result.Status))
	metrics.QueueTaskDuration(handlerName, q.clock.Since(started))

	logger.InfoCtx(ctx, "Task handled", append(fields,
		zap.String("status", string(result.Status)),
		zap.Duration("duration", q.clock.Since(started)))...)

	return nil
}

// run executes the handler with the heartbeat running, turning errors and panics into error outcomes
func (q *queue) run(ctx context.Context, task *schema.Task, seed Outcome) (outcome Outcome) {
	fn, ok := q.registry.Lookup(task.Handler)
	if !ok {
		return seed.AsError(fmt.Errorf("%w: %s", domain.ErrUnknownHandler, task.Handler))
	}

	if task.TimeoutSeconds != nil && *task.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(*task.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	stop := q.heartbeat(ctx, task.ID)
	defer stop()

	defer func() {
		if r := recover(); r != nil {
			outcome = seed.AsError(fmt.Errorf("handler panicked: %v\n%s", r, debug.Stack()))
		}
	}()

	result, err := fn(ctx, seed)
	if result.Status() == "" {
		result = seed
	}
	if err != nil {
		return result.AsError(err)
	}
	return result
}

// heartbeat refreshes the task lease until the returned func is called
func (q *queue) heartbeat(ctx context.Context, taskID string) func() {
	done := make(chan struct{})
	ticker := q.clock.NewTicker(q.config.TaskLease / 3)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := q.store.TouchTask(ctx, taskID); err != nil {
					logger.WarnCtx(ctx, "Failed to refresh task lease", zap.Error(err))
				}
			}
		}
	}()

	return func() { close(done) }
}

func (q *queue) Consume(ctx context.Context, topic string) error {
	if q.consumer == nil {
		return errors.New("queue has no consumer")
	}
	if topic == "" {
		topic = domain.DefaultTaskTopic
	}

	sub := messaging.Subscription{
		Durable:       fmt.Sprintf("%s-%s", q.config.ConsumerName, topic),
		FilterSubject: TopicFilter(topic),
		Concurrency:   q.config.Concurrency,
	}

	logger.InfoCtx(ctx, "Consuming tasks",
		zap.String("topic", topic),
		zap.Strings("handlers", handlerNames(q.registry.Names())))

	return q.consumer.Consume(ctx, sub, q.handleDelivery)
}

// handleDelivery handles one dispatched task; a nil return acknowledges the message.
// A processing task only runs for the delivery that spends its dispatch token.
func (q *queue) handleDelivery(ctx context.Context, delivery *messaging.Delivery) error {
	var dispatched schema.Task
	if err := q.json.Unmarshal(delivery.Data, &dispatched); err != nil {
		return fmt.Errorf("%w: %v", messaging.ErrMalformedMessage, err)
	}
	if dispatched.ID == "" {
		return fmt.Errorf("%w: task without id", messaging.ErrMalformedMessage)
	}

	task, err := q.store.GetTaskByID(ctx, dispatched.ID)
	if err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("%w: task %s does not exist", messaging.ErrMalformedMessage, dispatched.ID)
	}

	switch task.Status {
	case domain.TaskStatusDone, domain.TaskStatusError:
		logger.InfoCtx(ctx, "Skipping finished task", zap.String("taskID", task.ID), zap.String("status", string(task.Status)))
		return nil
	case domain.TaskStatusPending:
		// Released after a failed dispatch or a stale lease, the message still reached us
		claimed, err := q.Claim(ctx, task)
		if err != nil {
			return err
		}
		if !claimed {
			return nil
		}
		acquired, err := q.store.AcquireTask(ctx, task.ID, task.DispatchToken)
		if err != nil {
			return err
		}
		if !acquired {
			return nil
		}
	case domain.TaskStatusProcessing:
		acquired, err := q.store.AcquireTask(ctx, task.ID, dispatched.DispatchToken)
		if err != nil {
			return err
		}
		if !acquired {
			logger.InfoCtx(ctx, "Skipping task owned by another delivery", zap.String("taskID", task.ID))
			return nil
		}
	}
	task.DispatchToken = ""

	return q.Handle(ctx, task)
}

func handlerNames(names []domain.TaskHandler) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}
