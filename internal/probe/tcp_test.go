package probe

import (
	"context"
	"net"
	"net/netip"
	"strconv"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// localListener opens a TCP listener on a loopback port and returns its
// target and port.
func localListener(t *testing.T) (net.Listener, Target, uint16) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	_, portStr, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return ln, Target{Spec: "localhost", Addr: netip.MustParseAddr("127.0.0.1")}, uint16(port)
}

func TestTCPProbeOpenPort(t *testing.T) {
	ln, target, port := localListener(t)
	defer ln.Close()

	p := NewTCP(target, port)
	o := p.Probe(context.Background(), time.Second)

	assert.Equal(t, ResultSuccess, o.Result)
	assert.False(t, o.Refused)
	assert.Greater(t, o.Latency, time.Duration(0))
	assert.NoError(t, p.Close())
}

func TestTCPProbeClosedPortIsRefusedSuccess(t *testing.T) {
	ln, target, port := localListener(t)
	ln.Close() // free the port so the dial is actively refused

	p := NewTCP(target, port)
	o := p.Probe(context.Background(), time.Second)

	assert.Equal(t, ResultSuccess, o.Result,
		"a refused connection proves the host is reachable")
	assert.True(t, o.Refused)
	assert.Greater(t, o.Latency, time.Duration(0))
}

// fakeTimeoutErr implements net.Error with Timeout() == true.
type fakeTimeoutErr struct{}

func (fakeTimeoutErr) Error() string   { return "i/o timeout" }
func (fakeTimeoutErr) Timeout() bool   { return true }
func (fakeTimeoutErr) Temporary() bool { return true }

func TestClassifyDialError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		result  Result
		refused bool
	}{
		{"refused", syscall.ECONNREFUSED, ResultSuccess, true},
		{
			"refused inside op error",
			&net.OpError{Op: "dial", Err: syscall.ECONNREFUSED},
			ResultSuccess, true,
		},
		{"net timeout", fakeTimeoutErr{}, ResultTimeout, false},
		{
			"timeout inside op error",
			&net.OpError{Op: "dial", Err: fakeTimeoutErr{}},
			ResultTimeout, false,
		},
		{"deadline exceeded", context.DeadlineExceeded, ResultTimeout, false},
		{"unreachable network", syscall.ENETUNREACH, ResultError, false},
		{"cancellation", context.Canceled, ResultError, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := classifyDialError(tc.err, time.Millisecond)
			assert.Equal(t, tc.result, o.Result)
			assert.Equal(t, tc.refused, o.Refused)
		})
	}
}

func TestTCPProbeHonorsCancelledContext(t *testing.T) {
	ln, target, port := localListener(t)
	defer ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewTCP(target, port)
	o := p.Probe(ctx, time.Second)
	assert.NotEqual(t, ResultTimeout, o.Result)
	assert.NotEqual(t, ResultSuccess, o.Result)
}
