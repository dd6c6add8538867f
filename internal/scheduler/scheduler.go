// Package scheduler drives the probing loop: one goroutine per target,
// staggered starts, a fixed probe cadence per host, and a bounded shutdown.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rileyhilliard/pingboard/internal/errors"
	"github.com/rileyhilliard/pingboard/internal/logger"
	"github.com/rileyhilliard/pingboard/internal/probe"
	"github.com/rileyhilliard/pingboard/internal/stats"
)

// ProberFactory builds the prober for a target. Injected so tests can run the
// full scheduling loop without touching the network.
type ProberFactory func(target probe.Target) (probe.Prober, error)

// Options configures a Coordinator.
type Options struct {
	// Interval is the time between probe starts for one host.
	Interval time.Duration

	// Timeout bounds each individual probe. Must be below Interval so a
	// timed-out probe cannot push the next one late.
	Timeout time.Duration

	// History is the per-host sample ring capacity.
	History int

	// Factory builds probers. Required.
	Factory ProberFactory

	// Logger receives scheduling diagnostics. Defaults to the package logger.
	Logger logger.Logger
}

// Coordinator owns the probing goroutines for a set of targets and the stats
// board they write to.
type Coordinator struct {
	opts    Options
	board   *stats.Board
	runners []*runner
	log     logger.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	started bool
	wg      sync.WaitGroup
}

// runner is the per-host loop state. Control flags are read each cycle; wake
// interrupts the inter-probe wait so toggles take effect immediately.
type runner struct {
	host   *stats.HostStats
	prober probe.Prober

	mu     sync.Mutex
	paused bool
	burst  bool
	wake   chan struct{}
}

func (r *runner) kick() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

func (r *runner) state() (paused, burst bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused, r.burst
}

// New resolves each target to a prober and prepares the board. A target whose
// prober cannot be created stays on the board with a status message instead
// of failing the whole run.
func New(targets []probe.Target, opts Options) (*Coordinator, error) {
	if opts.Factory == nil {
		return nil, errors.New(errors.ErrProbe,
			"No prober factory configured",
			"This is a programming error in the caller.")
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Timeout <= 0 || opts.Timeout > opts.Interval {
		opts.Timeout = opts.Interval
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}

	c := &Coordinator{
		opts:    opts,
		board:   stats.NewBoard(targets, opts.History),
		runners: make([]*runner, len(targets)),
		log:     opts.Logger,
	}

	usable := 0
	for i, t := range targets {
		p, err := opts.Factory(t)
		if err != nil {
			c.log.Warn("prober for %s unavailable: %v", t.Spec, err)
			c.board.Host(i).SetStatus(err.Error())
			continue
		}
		c.runners[i] = &runner{
			host:   c.board.Host(i),
			prober: p,
			wake:   make(chan struct{}, 1),
		}
		usable++
	}
	if usable == 0 {
		c.closeProbers()
		return nil, errors.New(errors.ErrProbe,
			"No target can be probed",
			"Check socket permissions and the target list.")
	}
	return c, nil
}

// Board returns the stats board the runners write to.
func (c *Coordinator) Board() *stats.Board {
	return c.board
}

// Start launches one probing goroutine per usable target. Starts are
// staggered across the probe interval so N hosts do not burst their requests
// at the same instant.
func (c *Coordinator) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return
	}
	c.started = true

	ctx, c.cancel = context.WithCancel(ctx)

	n := len(c.runners)
	for i, r := range c.runners {
		if r == nil {
			continue
		}
		stagger := c.opts.Interval * time.Duration(i) / time.Duration(n)
		c.wg.Add(1)
		go c.run(ctx, r, stagger)
	}
	c.log.Debug("started %d probers, interval=%s timeout=%s",
		n, c.opts.Interval, c.opts.Timeout)
}

// Stop cancels all probing and waits up to grace for the goroutines to exit.
// In-flight socket waits are interrupted by the cancellation, so shutdown is
// bounded even when targets never answer.
func (c *Coordinator) Stop(grace time.Duration) error {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel == nil {
		c.closeProbers()
		return nil
	}
	cancel()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.closeProbers()
		return nil
	case <-time.After(grace):
		return errors.New(errors.ErrProbe,
			"Probers did not stop within the shutdown grace period",
			"Report this; probe loops must honor cancellation.")
	}
}

func (c *Coordinator) closeProbers() {
	for _, r := range c.runners {
		if r != nil && r.prober != nil {
			r.prober.Close()
			r.prober = nil
		}
	}
}

// run is the per-host probe loop. The cadence is tick-aligned: each probe is
// scheduled interval after the previous probe's scheduled start, not after
// its completion, so slow probes do not stretch the period.
func (c *Coordinator) run(ctx context.Context, r *runner, stagger time.Duration) {
	defer c.wg.Done()

	if !sleepCtx(ctx, stagger) {
		return
	}

	next := time.Now()
	for {
		if ctx.Err() != nil {
			return
		}

		paused, burst := r.state()
		if !paused {
			o := r.prober.Probe(ctx, c.opts.Timeout)
			if ctx.Err() != nil {
				return
			}
			r.host.Apply(o)
		}

		if burst && !paused {
			// Back-to-back probing; re-anchor the cadence for when burst
			// mode is switched off.
			next = time.Now()
			continue
		}

		next = next.Add(c.opts.Interval)
		if wait := time.Until(next); wait > 0 {
			if !c.waitOrWake(ctx, r, wait) {
				return
			}
		} else {
			// Fell behind (e.g. a full-interval timeout); skip the missed
			// slots rather than probing in a burst to catch up.
			next = time.Now()
		}
	}
}

// waitOrWake sleeps for d unless the context ends (returns false) or the
// runner is kicked by a control change (returns true early).
func (c *Coordinator) waitOrWake(ctx context.Context, r *runner, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-r.wake:
		return true
	case <-t.C:
		return true
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// TogglePause flips probing on or off for the i-th host. Paused hosts keep
// their accumulated stats.
func (c *Coordinator) TogglePause(i int) {
	if r := c.runnerAt(i); r != nil {
		r.mu.Lock()
		r.paused = !r.paused
		r.mu.Unlock()
		r.kick()
	}
}

// Paused reports whether the i-th host is paused.
func (c *Coordinator) Paused(i int) bool {
	if r := c.runnerAt(i); r != nil {
		paused, _ := r.state()
		return paused
	}
	return true
}

// SetBurst switches the i-th host between interval-paced and back-to-back
// probing.
func (c *Coordinator) SetBurst(i int, on bool) {
	if r := c.runnerAt(i); r != nil {
		r.mu.Lock()
		changed := r.burst != on
		r.burst = on
		r.mu.Unlock()
		if changed {
			r.kick()
		}
	}
}

// Burst reports whether the i-th host is in burst mode.
func (c *Coordinator) Burst(i int) bool {
	if r := c.runnerAt(i); r != nil {
		_, burst := r.state()
		return burst
	}
	return false
}

// SetBurstAll switches every host between interval-paced and back-to-back
// probing.
func (c *Coordinator) SetBurstAll(on bool) {
	for i := range c.runners {
		c.SetBurst(i, on)
	}
}

func (c *Coordinator) runnerAt(i int) *runner {
	if i < 0 || i >= len(c.runners) {
		return nil
	}
	return c.runners[i]
}
