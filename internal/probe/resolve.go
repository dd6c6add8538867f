package probe

import (
	"context"
	"fmt"
	"net"
	"net/netip"

	"github.com/rileyhilliard/pingboard/internal/errors"
)

// Target is a resolved probe destination. It is immutable for the lifetime of
// a run; re-resolution on failure is a prober policy decision, not the
// target's.
type Target struct {
	// Spec is the target as given by the user (hostname or address literal).
	Spec string

	// Addr is the resolved address used for probing.
	Addr netip.Addr
}

// String returns the user-facing target name.
func (t Target) String() string {
	return t.Spec
}

// Resolve turns a target spec into a Target. Address literals are used as-is;
// hostnames are resolved once, preferring IPv4 when both families are
// available. Unresolvable specs are rejected here, before a prober is ever
// started for them.
func Resolve(ctx context.Context, spec string) (Target, error) {
	if spec == "" {
		return Target{}, errors.New(errors.ErrResolve,
			"Empty target",
			"Provide a hostname or IP address.")
	}

	if addr, err := netip.ParseAddr(spec); err == nil {
		return Target{Spec: spec, Addr: addr.Unmap()}, nil
	}

	addrs, err := net.DefaultResolver.LookupNetIP(ctx, "ip", spec)
	if err != nil || len(addrs) == 0 {
		return Target{}, errors.WrapWithCode(err, errors.ErrResolve,
			fmt.Sprintf("Cannot resolve '%s'", spec),
			"Check the spelling and your DNS configuration.")
	}

	// Prefer IPv4: unprivileged ICMP datagram sockets are more widely
	// available for it.
	for _, addr := range addrs {
		if addr.Unmap().Is4() {
			return Target{Spec: spec, Addr: addr.Unmap()}, nil
		}
	}
	return Target{Spec: spec, Addr: addrs[0].Unmap()}, nil
}

// ResolveAll resolves every spec in order. It fails on the first
// unresolvable spec so that the core never accepts a target it would later
// silently drop.
func ResolveAll(ctx context.Context, specs []string) ([]Target, error) {
	targets := make([]Target, 0, len(specs))
	for _, spec := range specs {
		t, err := Resolve(ctx, spec)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}
