package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kinshiplabs/tracker/internal/core/domain"
	"github.com/kinshiplabs/tracker/internal/core/ports"
	"github.com/kinshiplabs/tracker/internal/pkg/metrics"
)

const (
	defaultWorkers = 2
	channelBuffer  = 64
)

// InspirationWarmer produces (and caches) the inspiration for a record.
type InspirationWarmer interface {
	InspirationFor(ctx context.Context, record domain.ProgressRecord) string
}

// Dispatcher pre-generates inspirations in the background. Records are sharded
// by user id so one friend's edits are handled in order by the same worker.
type Dispatcher struct {
	workers []chan domain.ProgressRecord
	warmer  InspirationWarmer
	log     zerolog.Logger
	wg      sync.WaitGroup
}

var _ ports.InspirationQueue = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, warmer InspirationWarmer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ProgressRecord, numWorkers),
		warmer:  warmer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ProgressRecord, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
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

// Enqueue hands record to its worker. It never blocks: when the worker's
// channel is full the record is dropped and counted.
func (d *Dispatcher) Enqueue(record domain.ProgressRecord) {
	idx := d.shardIndex(record.UserID)
	select {
	case d.workers[idx] <- record:
		metrics.InsightQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.InsightDroppedTotal.Inc()
		d.log.Warn().
			Str("record_id", record.ID).
			Int("worker_id", idx).
			Msg("inspiration queue full, dropping record")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ProgressRecord) {
	defer d.wg.Done()
	depth := metrics.InsightQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case record := <-ch:
			depth.Dec()
			d.warmer.InspirationFor(ctx, record)
			d.log.Debug().
				Str("record_id", record.ID).
				Int("worker_id", id).
				Msg("inspiration warmed")
		}
	}
}
