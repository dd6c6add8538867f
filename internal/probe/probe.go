// Package probe implements the two wire-level probe protocols: ICMP echo and
// TCP SYN. A Prober measures reachability and round-trip latency for a single
// target; each probe attempt produces exactly one Outcome.
package probe

import (
	"context"
	"fmt"
	"time"
)

// Result is the tagged kind of a probe outcome.
type Result int

const (
	// ResultSuccess means the host answered within the timeout.
	ResultSuccess Result = iota
	// ResultTimeout means no answer arrived before the timeout. This is the
	// expected "host unreachable this round" case, not an error.
	ResultTimeout
	// ResultError means the probe itself failed (socket error, send failure).
	ResultError
)

// String returns a human-readable result label.
func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultTimeout:
		return "timeout"
	case ResultError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the result of one probe attempt. It is created once, applied to
// the owning host's statistics exactly once, and never mutated.
type Outcome struct {
	Result  Result
	Latency time.Duration // valid when Result == ResultSuccess
	Refused bool          // TCP only: the host answered with a reset instead of completing the handshake
	At      time.Time     // when the outcome was determined
	Err     error         // valid when Result == ResultError
}

// Success returns a successful outcome with the measured latency.
func Success(latency time.Duration) Outcome {
	return Outcome{Result: ResultSuccess, Latency: latency, At: time.Now()}
}

// Refused returns a successful outcome for a TCP probe that was answered with
// a reset. The host is reachable at the network layer even though the port is
// closed.
func Refused(latency time.Duration) Outcome {
	return Outcome{Result: ResultSuccess, Latency: latency, Refused: true, At: time.Now()}
}

// Timeout returns an outcome for a probe that got no answer in time.
func Timeout() Outcome {
	return Outcome{Result: ResultTimeout, At: time.Now()}
}

// Failure returns an outcome for a probe that could not be completed.
func Failure(err error) Outcome {
	return Outcome{Result: ResultError, Err: err, At: time.Now()}
}

// Prober issues probes against a single target. Implementations own their
// socket exclusively; sockets are never shared across targets. Probe blocks
// for at most timeout, or less if ctx is cancelled.
type Prober interface {
	Probe(ctx context.Context, timeout time.Duration) Outcome
	Close() error
}

// Protocol selects the probe variant. The set is closed: the variant is
// chosen once at startup from validated configuration.
type Protocol int

const (
	ProtocolICMP Protocol = iota
	ProtocolTCP
)

// String returns a human-readable protocol label.
func (p Protocol) String() string {
	switch p {
	case ProtocolICMP:
		return "icmp"
	case ProtocolTCP:
		return "tcp"
	default:
		return "unknown"
	}
}

// New creates a Prober for the target using the given protocol. The port is
// only used for TCP probing. A setup error here (e.g. no permission to open
// an ICMP socket) is fatal to this target's prober, not to the process.
func New(proto Protocol, target Target, port uint16) (Prober, error) {
	switch proto {
	case ProtocolICMP:
		return NewICMP(target)
	case ProtocolTCP:
		return NewTCP(target, port), nil
	default:
		return nil, fmt.Errorf("unknown probe protocol %d", proto)
	}
}
