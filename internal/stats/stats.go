// Package stats converts raw probe outcomes into display-ready per-host
// aggregates: counters, latency summary, and a bounded history ring for the
// sparkline. Each host's stats have a single writer (its prober) and are
// read-shared with the renderer through snapshots.
package stats

import (
	"sync"
	"time"

	"github.com/rileyhilliard/pingboard/internal/probe"
)

const (
	// MinHistory is the lower bound on the history ring capacity.
	MinHistory = 50
	// DefaultHistory is the history ring capacity when none is configured.
	DefaultHistory = 120
)

// Sample is one history slot: a measured latency or a loss marker.
type Sample struct {
	Latency time.Duration
	Lost    bool
	Refused bool // TCP reset answer; reachable but the port is closed
}

// state holds the aggregate counters for one host. Its methods do no locking
// and no I/O, so transitions are deterministic and directly unit-testable.
type state struct {
	sent     uint64
	received uint64
	lost     uint64

	min time.Duration
	max time.Duration
	sum time.Duration

	last        probe.Outcome
	lastUpdated time.Time

	history ring
}

// apply folds one probe outcome into the state. Timeouts and probe errors
// both count as loss; only a successful reply carries a latency.
func (s *state) apply(o probe.Outcome) {
	s.sent++
	s.last = o
	s.lastUpdated = o.At

	switch o.Result {
	case probe.ResultSuccess:
		s.received++
		s.sum += o.Latency
		if s.received == 1 || o.Latency < s.min {
			s.min = o.Latency
		}
		if o.Latency > s.max {
			s.max = o.Latency
		}
		s.history.push(Sample{Latency: o.Latency, Refused: o.Refused})
	default:
		s.lost++
		s.history.push(Sample{Lost: true})
	}
}

// avg returns the all-time average latency over received replies.
func (s *state) avg() time.Duration {
	if s.received == 0 {
		return 0
	}
	return s.sum / time.Duration(s.received)
}

// recentAvg returns the simple moving average over the received samples
// currently in the history ring. This tracks current conditions rather than
// the all-time average.
func (s *state) recentAvg() time.Duration {
	samples := s.history.all()
	var sum time.Duration
	var n int
	for _, sample := range samples {
		if sample.Lost {
			continue
		}
		sum += sample.Latency
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / time.Duration(n)
}

// HostStats is the rolling state for one target. The owning prober is the
// only writer; the renderer reads through Snapshot.
type HostStats struct {
	target probe.Target

	mu     sync.RWMutex
	st     state
	status string // set when probing this host is impossible (setup failure)
}

// NewHost creates stats for a target with the given history capacity.
func NewHost(target probe.Target, historyLen int) *HostStats {
	if historyLen < MinHistory {
		historyLen = MinHistory
	}
	return &HostStats{
		target: target,
		st:     state{history: newRing(historyLen)},
	}
}

// Target returns the target these stats belong to.
func (h *HostStats) Target() probe.Target {
	return h.target
}

// Apply records one probe outcome. Outcomes for a host are applied in the
// order they were produced; the single-writer discipline makes that hold by
// construction.
func (h *HostStats) Apply(o probe.Outcome) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.st.apply(o)
}

// SetStatus marks the host as unprobeable with a short reason, e.g. after a
// socket setup failure. An empty status means probing is possible.
func (h *HostStats) SetStatus(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status = msg
}

// Snapshot returns a consistent point-in-time copy of the host's aggregates.
// No field of the copy can reflect a half-applied outcome.
func (h *HostStats) Snapshot() HostSnapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()

	snap := HostSnapshot{
		Target:      h.target.Spec,
		Addr:        h.target.Addr.String(),
		Status:      h.status,
		Sent:        h.st.sent,
		Received:    h.st.received,
		Lost:        h.st.lost,
		Min:         h.st.min,
		Avg:         h.st.avg(),
		Max:         h.st.max,
		RecentAvg:   h.st.recentAvg(),
		Last:        h.st.last,
		LastUpdated: h.st.lastUpdated,
		History:     h.st.history.all(),
	}
	if snap.Sent > 0 {
		snap.Loss = float64(snap.Lost) / float64(snap.Sent)
	}
	return snap
}

// HostSnapshot is an immutable copy of one host's aggregates, safe to read
// while the prober keeps writing.
type HostSnapshot struct {
	Target string
	Addr   string
	Status string

	Sent     uint64
	Received uint64
	Lost     uint64
	Loss     float64 // lost/sent, 0 when nothing was sent

	Min       time.Duration
	Avg       time.Duration
	Max       time.Duration
	RecentAvg time.Duration

	Last        probe.Outcome
	LastUpdated time.Time

	History []Sample // chronological, oldest first
}

// HasReplies reports whether the latency summary fields are meaningful.
func (s HostSnapshot) HasReplies() bool {
	return s.Received > 0
}

// Board holds the stats for every target in input order.
type Board struct {
	hosts []*HostStats
}

// NewBoard creates one HostStats per target.
func NewBoard(targets []probe.Target, historyLen int) *Board {
	hosts := make([]*HostStats, len(targets))
	for i, t := range targets {
		hosts[i] = NewHost(t, historyLen)
	}
	return &Board{hosts: hosts}
}

// Len returns the number of hosts on the board.
func (b *Board) Len() int {
	return len(b.hosts)
}

// Host returns the stats for the i-th target in input order.
func (b *Board) Host(i int) *HostStats {
	return b.hosts[i]
}

// Snapshot copies every host's aggregates. Hosts are locked one at a time;
// no cross-host ordering is needed, only per-host consistency.
func (b *Board) Snapshot() []HostSnapshot {
	snaps := make([]HostSnapshot, len(b.hosts))
	for i, h := range b.hosts {
		snaps[i] = h.Snapshot()
	}
	return snaps
}
