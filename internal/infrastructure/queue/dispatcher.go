package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/auth-api/internal/api/metrics"
	"github.com/99minutos/auth-api/internal/core/domain"
	"github.com/99minutos/auth-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher hands login attempts to a fixed set of workers that persist them
// through an AuditRepository. Events are sharded by login so attempts for the
// same account are written in order.
type Dispatcher struct {
	workers []chan domain.AuthEvent
	repo    ports.AuditRepository
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuthEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuthEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Once ctx is cancelled each worker
// writes what is already buffered and returns; Wait blocks until they have.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Record enqueues event without blocking. When the worker's buffer is full
// the event is dropped and counted.
func (d *Dispatcher) Record(event domain.AuthEvent) {
	idx := d.shardIndex(event.Login)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.AuditEventsDroppedTotal.Inc()
		d.log.Warn().Str("login", event.Login).Int("worker_id", idx).Msg("audit queue full, event dropped")
	}
}

// shardIndex maps a login deterministically to a worker index.
func (d *Dispatcher) shardIndex(login string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(login))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuthEvent) {
	defer d.wg.Done()
	depth := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id))
	// Detached from ctx so writes still land while draining after cancel.
	writeCtx := context.WithoutCancel(ctx)

	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case event := <-ch:
					depth.Dec()
					d.persist(writeCtx, id, &event)
				default:
					return
				}
			}
		case event := <-ch:
			depth.Dec()
			d.persist(writeCtx, id, &event)
		}
	}
}

func (d *Dispatcher) persist(ctx context.Context, id int, event *domain.AuthEvent) {
	if err := d.repo.InsertAuthEvent(ctx, event); err != nil {
		metrics.AuditWriteErrorsTotal.Inc()
		d.log.Error().Err(err).
			Str("login", event.Login).
			Int("worker_id", id).
			Msg("audit write failed")
	}
}
