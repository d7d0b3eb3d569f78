package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/ewbmobile/hybrid-shell/internal/core/ports"
)

const (
	defaultWorkers = 1
	defaultTimeout = 10 * time.Second
	channelBuffer  = 64
)

// Recorder observes provisioning jobs. result is "ok", "failed" or "dropped".
type Recorder interface {
	JobFinished(result string, elapsed time.Duration)
	QueueDepth(worker string, depth int)
}

type nopRecorder struct{}

func (nopRecorder) JobFinished(string, time.Duration) {}
func (nopRecorder) QueueDepth(string, int) {}

// Dispatcher runs best-effort provisioning jobs off the login path. Jobs are
// sharded by user id so one user's jobs run in order. Failures are logged
// and counted, never returned.
type Dispatcher struct {
	workers     []chan ports.ProvisionRequest
	provisioner ports.Provisioner
	timeout     time.Duration
	rec         Recorder
	log         zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used; if timeout <= 0, defaultTimeout.
// rec may be nil.
func NewDispatcher(numWorkers int, timeout time.Duration, provisioner ports.Provisioner, rec Recorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	d := &Dispatcher{
		workers:     make([]chan ports.ProvisionRequest, numWorkers),
		provisioner: provisioner,
		timeout:     timeout,
		rec:         rec,
		log:         log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ProvisionRequest, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue never blocks. When the worker's buffer is full the job is dropped.
func (d *Dispatcher) Enqueue(req ports.ProvisionRequest) {
	idx := d.shardIndex(req.UserID)
	select {
	case d.workers[idx] <- req:
		d.rec.QueueDepth(strconv.Itoa(idx), len(d.workers[idx]))
	default:
		d.rec.JobFinished("dropped", 0)
		d.log.Warn().Str("user_id", req.UserID).Int("worker_id", idx).Msg("provisioning queue full, job dropped")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ProvisionRequest) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-ch:
			if !ok {
				return
			}
			d.rec.QueueDepth(label, len(ch))
			d.run(ctx, id, req)
		}
	}
}

func (d *Dispatcher) run(ctx context.Context, worker int, req ports.ProvisionRequest) {
	jobCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	err := d.provisioner.Provision(jobCtx, req.Token)
	elapsed := time.Since(start)
	if err != nil {
		d.rec.JobFinished("failed", elapsed)
		d.log.Warn().Err(err).
			Str("user_id", req.UserID).
			Int("worker_id", worker).
			Msg("provisioning failed")
		return
	}
	d.rec.JobFinished("ok", elapsed)
	d.log.Debug().Str("user_id", req.UserID).Msg("provisioning done")
}
