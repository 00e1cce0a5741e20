package field

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/noise/internal/logging"
)

// Regenerator starts a new pass on every tick and on demand, and delivers
// completed fields in the order they finish. Passes are independent: a new
// one may start while an earlier result is still waiting to be consumed.
type Regenerator struct {
	gen      *Generator
	interval time.Duration
	out      chan *Field
	trigger  chan struct{}
	pending  atomic.Int64
	logger   *log.Logger
}

// NewRegenerator creates a regenerator that starts a pass every interval.
func NewRegenerator(gen *Generator, interval time.Duration) *Regenerator {
	return &Regenerator{
		gen:      gen,
		interval: interval,
		out:      make(chan *Field, 1),
		trigger:  make(chan struct{}, 1),
		logger:   logging.WithComponent("regenerator"),
	}
}

// Fields delivers completed fields. It is closed when Run returns.
func (r *Regenerator) Fields() <-chan *Field {
	return r.out
}

// Trigger asks Run to start a pass now. It never blocks and reports false
// when a request is already pending.
func (r *Regenerator) Trigger() bool {
	select {
	case r.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// Pending reports passes that have started but whose field has not yet been
// taken from Fields or dropped at shutdown.
func (r *Regenerator) Pending() int64 {
	return r.pending.Load()
}

// Run starts a pass immediately and then on every tick or trigger until ctx
// is done. Passes in flight at that point finish; their fields are dropped
// if no consumer takes them. Run closes Fields before returning.
func (r *Regenerator) Run(ctx context.Context) error {
	r.logger.Info("Starting field regeneration", "interval", r.interval, "samples", r.gen.Params().Samples())

	var wg sync.WaitGroup
	defer func() {
		wg.Wait()
		close(r.out)
		r.logger.Info("Field regeneration stopped")
	}()

	start := func(reason string) {
		n := r.pending.Add(1)
		if n > 1 {
			r.logger.Debug("Deliveries backing up", "pending_deliveries", n, "reason", reason)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer r.pending.Add(-1)
			r.logger.Debug("Starting generation pass", "reason", reason)
			f := <-r.gen.Spawn()
			select {
			case r.out <- f:
			case <-ctx.Done():
				r.logger.Debug("Dropping field after shutdown", "field_id", f.ID)
			}
		}()
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	start("startup")
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			start("interval")
		case <-r.trigger:
			start("trigger")
		}
	}
}
