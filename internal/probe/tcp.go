package probe

import (
	"context"
	"errors"
	"net"
	"strconv"
	"syscall"
	"time"
)

// DefaultTCPPort is probed when no port is configured.
const DefaultTCPPort = 80

// TCPProber measures reachability via the initial phase of a TCP connection
// attempt. The connection is never used for data transfer: it is closed the
// moment it is established.
type TCPProber struct {
	target Target
	addr   string
	dialer net.Dialer
}

// NewTCP creates a TCP SYN prober for the target and port.
func NewTCP(target Target, port uint16) *TCPProber {
	if port == 0 {
		port = DefaultTCPPort
	}
	return &TCPProber{
		target: target,
		addr:   net.JoinHostPort(target.Addr.String(), strconv.Itoa(int(port))),
	}
}

// Probe attempts a TCP connection bounded by timeout. A completed handshake
// is Success; a refused connection is Success too (the host answered at the
// network layer); only the absence of any answer is a Timeout.
func (p *TCPProber) Probe(ctx context.Context, timeout time.Duration) Outcome {
	dctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	conn, err := p.dialer.DialContext(dctx, "tcp", p.addr)
	latency := time.Since(start)

	if err == nil {
		conn.Close()
		return Success(latency)
	}
	return classifyDialError(err, latency)
}

// Close implements Prober. TCP probing holds no persistent socket.
func (p *TCPProber) Close() error {
	return nil
}

// classifyDialError maps a dial error to a probe outcome. Refusal proves the
// host is up; only silence is loss.
func classifyDialError(err error, latency time.Duration) Outcome {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return Refused(latency)
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return Timeout()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout()
	}
	return Failure(err)
}
