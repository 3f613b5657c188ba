package historysync

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-event-scanner/internal/adapter"
	"github.com/feral-file/ff-event-scanner/internal/domain"
	"github.com/feral-file/ff-event-scanner/internal/logger"
	"github.com/feral-file/ff-event-scanner/internal/queue"
	"github.com/feral-file/ff-event-scanner/internal/store"
	"github.com/feral-file/ff-event-scanner/internal/store/schema"
)

// Provisioner creates the perpetual history sync of a new event listener
type Provisioner struct {
	store store.Store
	json  adapter.JSON
}

// NewProvisioner creates the eventsEventListenerCreated handler
func NewProvisioner(st store.Store, jsonAdapter adapter.JSON) *Provisioner {
	return &Provisioner{store: st, json: jsonAdapter}
}

// Handle is safe to replay: a listener that already has a perpetual sync is left as is
func (p *Provisioner) Handle(ctx context.Context, o queue.Outcome) (queue.Outcome, error) {
	task := o.Task()

	var params domain.IDParams
	if err := p.json.Unmarshal(task.Params, &params); err != nil {
		return o, fmt.Errorf("%w: failed to decode params: %v", domain.ErrInvalidInput, err)
	}

	listener, err := p.store.GetEventListenerByID(ctx, params.ID)
	if err != nil {
		return o, err
	}
	if listener == nil {
		return o, fmt.Errorf("%w: event listener %s", domain.ErrNotFound, params.ID)
	}

	contract, err := p.store.GetContractByID(ctx, listener.ContractID)
	if err != nil {
		return o, err
	}
	if contract == nil {
		return o, fmt.Errorf("%w: contract %s", domain.ErrNotFound, listener.ContractID)
	}

	syncs, err := p.store.ListHistorySyncs(ctx, listener.ID)
	if err != nil {
		return o, err
	}
	for _, s := range syncs {
		if s.Perpetual() {
			return o.WithInfo(fmt.Sprintf("history sync %s already exists", s.ID)).AsDone(), nil
		}
	}

	sync := &schema.HistorySync{
		EventListenerID: listener.ID,
		SyncHeight:      contract.StartHeight,
	}
	if err := p.store.CreateHistorySync(ctx, sync); err != nil {
		return o, err
	}

	logger.InfoCtx(ctx, "History sync provisioned",
		zap.String("listenerID", listener.ID),
		zap.String("historySyncID", sync.ID),
		zap.Uint64("syncHeight", sync.SyncHeight))

	return o.WithInfo(fmt.Sprintf("created history sync %s from %d", sync.ID, sync.SyncHeight)).AsDone(), nil
}

// Schedule is the scheduleMinute30 handler; it hands the sweep over to the broker
type Schedule struct {
	queue queue.Queue
}

// NewSchedule creates the scheduleMinute30 handler
func NewSchedule(q queue.Queue) *Schedule {
	return &Schedule{queue: q}
}

func (s *Schedule) Handle(ctx context.Context, o queue.Outcome) (queue.Outcome, error) {
	task, err := s.queue.Push(ctx, domain.TaskHandlerHistorySyncBroker, nil)
	if err != nil {
		return o, fmt.Errorf("failed to push broker task: %w", err)
	}
	return o.WithInfo(fmt.Sprintf("pushed broker task %s", task.ID)).AsDone(), nil
}

// Handlers groups every task handler of the history sync pipeline
type Handlers struct {
	Schedule    *Schedule
	Provisioner *Provisioner
	Broker      *Broker
	Resolver    *Resolver
}

// Register adds the handlers to registry under their task names
func (h Handlers) Register(registry *queue.Registry) error {
	entries := []struct {
		name domain.TaskHandler
		fn   queue.HandlerFunc
	}{
		{domain.TaskHandlerScheduleMinute30, h.Schedule.Handle},
		{domain.TaskHandlerEventListenerCreated, h.Provisioner.Handle},
		{domain.TaskHandlerHistorySyncBroker, h.Broker.Handle},
		{domain.TaskHandlerHistorySyncResolver, h.Resolver.Handle},
	}

	for _, e := range entries {
		if err := registry.Register(e.name, e.fn); err != nil {
			return err
		}
	}
	return nil
}
