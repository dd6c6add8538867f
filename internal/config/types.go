// Package config holds the dashboard settings: probe pacing, protocol
// selection, display options, and the target list. Settings come from the
// config file, environment, and command-line flags, merged in that order.
package config

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/pingboard/internal/errors"
)

// Protocol names accepted in config and flags.
const (
	ProtocolICMP = "icmp"
	ProtocolTCP  = "tcp"
)

// Config is the fully merged runtime configuration.
type Config struct {
	// Targets are hostnames or address literals to probe, in display order.
	Targets []string `mapstructure:"targets" yaml:"targets"`

	// Protocol selects the probe type: icmp or tcp.
	Protocol string `mapstructure:"protocol" yaml:"protocol"`

	// Interval is the time between probe starts per host.
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`

	// Timeout bounds each probe. Must not exceed Interval.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// Port is the TCP probe port. Ignored for ICMP.
	Port uint16 `mapstructure:"port" yaml:"port"`

	// History is the per-host sample ring capacity.
	History int `mapstructure:"history" yaml:"history"`

	// ASCII forces the reduced glyph set.
	ASCII bool `mapstructure:"ascii" yaml:"ascii"`

	// SSHConfig optionally names an OpenSSH client config whose hosts are
	// appended to Targets.
	SSHConfig string `mapstructure:"ssh_config" yaml:"ssh_config,omitempty"`
}

// Default returns the configuration used when nothing is set. Timeout is
// left zero, meaning "follow the interval"; Normalize resolves it.
func Default() *Config {
	return &Config{
		Protocol: ProtocolICMP,
		Interval: time.Second,
		Port:     80,
		History:  120,
	}
}

// Normalize resolves derived settings after all sources are merged: a
// timeout that was never set follows the probe interval. Callers run this
// before Validate.
func (c *Config) Normalize() {
	if c.Timeout <= 0 {
		c.Timeout = c.Interval
	}
}

// Validate rejects settings the probing core cannot honor.
func (c *Config) Validate() error {
	if c.Protocol != ProtocolICMP && c.Protocol != ProtocolTCP {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown protocol '%s'", c.Protocol),
			"Use 'icmp' or 'tcp'.")
	}
	if c.Interval < 100*time.Millisecond {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval %s is too short", c.Interval),
			"Use an interval of at least 100ms.")
	}
	if c.Timeout <= 0 {
		return errors.New(errors.ErrConfig,
			"Timeout must be positive",
			"Set a timeout such as 1s.")
	}
	if c.Timeout > c.Interval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Timeout %s exceeds interval %s", c.Timeout, c.Interval),
			"A probe must finish or expire before the next one starts; "+
				"lower --timeout or raise --interval.")
	}
	if c.History < 50 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("History %d is too small", c.History),
			"Keep at least 50 samples per host.")
	}
	if c.Port == 0 {
		return errors.New(errors.ErrConfig,
			"Port must be between 1 and 65535",
			"Pick the TCP port to probe, e.g. 443.")
	}
	return nil
}
