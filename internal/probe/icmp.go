package probe

import (
	"bytes"
	"context"
	stderrors "errors"
	"math/rand/v2"
	"net"
	"net/netip"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"

	"github.com/rileyhilliard/pingboard/internal/errors"
)

// payloadSize is the echo data length. Large enough to make replies
// distinguishable from unrelated ICMP traffic, small enough to stay well
// under any path MTU.
const payloadSize = 24

// echoPayload is carried in every echo request and verified on replies.
var echoPayload = buildPayload(payloadSize)

func buildPayload(length int) []byte {
	const tag = ":pingboard"
	data := make([]byte, 0, length+len(tag))
	for len(data) < length {
		data = append(data, tag...)
	}
	return data[:length]
}

// ICMPProber sends ICMP echo requests over a socket it owns exclusively.
// Requests carry a per-prober identifier and an increasing sequence number;
// replies are matched on identifier, sequence, and source address.
type ICMPProber struct {
	target       Target
	conn         *icmp.PacketConn
	dst          net.Addr
	proto        int // IANA protocol number for parsing replies
	id           int
	seq          uint16
	unprivileged bool
	buf          []byte
}

// NewICMP opens an ICMP socket for the target. It prefers an unprivileged
// datagram socket and falls back to a raw socket when the datagram family is
// unavailable. An error here means probing this target is impossible, not
// that one probe failed.
func NewICMP(target Target) (*ICMPProber, error) {
	p := &ICMPProber{
		target: target,
		id:     rand.IntN(1 << 16),
		buf:    make([]byte, 1500),
	}

	var err error
	if target.Addr.Is6() {
		p.proto = ipv6.ICMPTypeEchoReply.Protocol()
		p.conn, err = icmp.ListenPacket("udp6", "::")
		if err == nil {
			p.unprivileged = true
			p.dst = &net.UDPAddr{IP: target.Addr.AsSlice()}
		} else {
			p.conn, err = icmp.ListenPacket("ip6:ipv6-icmp", "::")
			p.dst = &net.IPAddr{IP: target.Addr.AsSlice()}
		}
	} else {
		p.proto = ipv4.ICMPTypeEchoReply.Protocol()
		p.conn, err = icmp.ListenPacket("udp4", "0.0.0.0")
		if err == nil {
			p.unprivileged = true
			p.dst = &net.UDPAddr{IP: target.Addr.AsSlice()}
		} else {
			p.conn, err = icmp.ListenPacket("ip4:icmp", "0.0.0.0")
			p.dst = &net.IPAddr{IP: target.Addr.AsSlice()}
		}
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrProbe,
			"Cannot open ICMP socket for "+target.Spec,
			"On Linux, allow unprivileged pings with "+
				"'sysctl net.ipv4.ping_group_range=\"0 2147483647\"' "+
				"or grant the binary CAP_NET_RAW.")
	}
	return p, nil
}

// Probe sends one echo request and waits up to timeout for the matching
// reply. Replies that belong to another prober or a stale sequence are
// ignored and the wait continues. No matching reply before the deadline
// yields a Timeout outcome.
func (p *ICMPProber) Probe(ctx context.Context, timeout time.Duration) Outcome {
	seq := p.seq
	p.seq++

	var echoType icmp.Type = ipv4.ICMPTypeEcho
	if p.target.Addr.Is6() {
		echoType = ipv6.ICMPTypeEchoRequest
	}

	wb, err := (&icmp.Message{
		Type: echoType,
		Code: 0,
		Body: &icmp.Echo{
			ID:   p.id,
			Seq:  int(seq),
			Data: echoPayload,
		},
	}).Marshal(nil)
	if err != nil {
		return Failure(err)
	}

	start := time.Now()
	if _, err := p.conn.WriteTo(wb, p.dst); err != nil {
		return Failure(err)
	}

	// Cancellation must interrupt the read wait, not just the sleep between
	// probes.
	stop := context.AfterFunc(ctx, func() {
		p.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	if err := p.conn.SetReadDeadline(start.Add(timeout)); err != nil {
		return Failure(err)
	}
	// A cancellation that fired before the line above had its immediate
	// deadline overwritten; re-check so the read cannot outlive the context.
	if ctx.Err() != nil {
		return Failure(ctx.Err())
	}

	for {
		n, peer, err := p.conn.ReadFrom(p.buf)
		if err != nil {
			if ctx.Err() != nil {
				return Failure(ctx.Err())
			}
			var nerr net.Error
			if stderrors.As(err, &nerr) && nerr.Timeout() {
				return Timeout()
			}
			return Failure(err)
		}
		if !p.fromTarget(peer) {
			continue
		}
		rm, err := icmp.ParseMessage(p.proto, p.buf[:n])
		if err != nil {
			continue
		}
		if matchEcho(rm, p.id, seq, p.unprivileged) {
			return Success(time.Since(start))
		}
		// A reply for a different prober or a stale probe; keep waiting.
	}
}

// Close releases the probing socket.
func (p *ICMPProber) Close() error {
	return p.conn.Close()
}

// fromTarget reports whether the packet source is the probed address.
func (p *ICMPProber) fromTarget(peer net.Addr) bool {
	var ip net.IP
	switch a := peer.(type) {
	case *net.UDPAddr:
		ip = a.IP
	case *net.IPAddr:
		ip = a.IP
	default:
		return false
	}
	addr, ok := netip.AddrFromSlice(ip)
	return ok && addr.Unmap() == p.target.Addr
}

// matchEcho reports whether msg is the echo reply for the probe identified by
// id and seq. On unprivileged datagram sockets the kernel rewrites the echo
// identifier to the socket's local port, so the identifier is not compared
// there; the sequence and payload are.
func matchEcho(msg *icmp.Message, id int, seq uint16, unprivileged bool) bool {
	if msg.Type != ipv4.ICMPTypeEchoReply && msg.Type != ipv6.ICMPTypeEchoReply {
		return false
	}
	echo, ok := msg.Body.(*icmp.Echo)
	if !ok {
		return false
	}
	if uint16(echo.Seq) != seq {
		return false
	}
	if !unprivileged && echo.ID != id {
		return false
	}
	return bytes.Equal(echo.Data, echoPayload)
}
