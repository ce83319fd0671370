package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/buildhub/module-catalog/internal/core/domain"
	"github.com/buildhub/module-catalog/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes moderation events to a fixed set of workers using
// consistent hashing on the module id, guaranteeing per-module audit
// ordering while keeping the write off the request path.
type Dispatcher struct {
	workers []chan domain.ModerationEvent
	audit   ports.AuditRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, audit ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ModerationEvent, numWorkers),
		audit:   audit,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ModerationEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its module id.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event domain.ModerationEvent) {
	d.workers[d.shardIndex(event.ModuleID)] <- event
}

// shardIndex maps a module id deterministically to a worker index.
func (d *Dispatcher) shardIndex(moduleID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(moduleID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ModerationEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.audit.InsertModerationEvent(ctx, &event); err != nil {
				d.log.Error().Err(err).
					Str("module_id", event.ModuleID).
					Int("worker_id", id).
					Msg("audit event write failed")
			}
		}
	}
}
