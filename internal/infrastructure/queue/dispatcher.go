package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/projecthub/api/internal/core/domain"
	"github.com/projecthub/api/internal/core/ports"
	"github.com/projecthub/api/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher moves activity recording off the request path. Entries are
// routed to a fixed set of workers by hashing the actor id, so one actor's
// entries are written in the order they were recorded.
type Dispatcher struct {
	workers []chan domain.Activity
	sink    ports.ActivityRecorder
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers that
// hand entries to sink. If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.ActivityRecorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Activity, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Activity, channelBuffer)
	}
	return d
}

var _ ports.ActivityRecorder = (*Dispatcher)(nil)

// Start launches all worker goroutines. Workers exit once Stop has closed
// their channel and the backlog is written.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues entry without blocking. When the worker's buffer is full,
// or the dispatcher is stopped, the entry is dropped and counted.
func (d *Dispatcher) Record(_ context.Context, entry domain.Activity) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.drop(entry, "stopped")
		return
	}

	idx := d.shardIndex(entry.ActorID)
	select {
	case d.workers[idx] <- entry:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.drop(entry, "queue_full")
	}
}

// Stop closes every worker channel and waits until queued entries are
// written. It is safe to call more than once.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) drop(entry domain.Activity, reason string) {
	metrics.ActivityRecordFailuresTotal.WithLabelValues(reason).Inc()
	d.log.Warn().
		Str("actor_id", entry.ActorID).
		Str("kind", string(entry.Kind)).
		Str("reason", reason).
		Msg("activity entry dropped")
}

// shardIndex maps an actor id deterministically to a worker index.
func (d *Dispatcher) shardIndex(actorID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actorID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Activity) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for entry := range ch {
		d.sink.Record(ctx, entry)
		metrics.ActivityQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
	}
}
