// Package cli wires the cobra commands: the dashboard itself, config
// bootstrap, and version info.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/pingboard/internal/config"
)

var (
	flagConfig    string
	flagProtocol  string
	flagInterval  time.Duration
	flagTimeout   time.Duration
	flagPort      uint16
	flagHistory   int
	flagASCII     bool
	flagSSHConfig string
)

// rootCmd runs the dashboard. Targets on the command line replace the
// configured target list.
var rootCmd = &cobra.Command{
	Use:   "pingboard [targets...]",
	Short: "Live latency dashboard for multiple hosts",
	Long: `pingboard probes a set of hosts concurrently and renders their
latency, loss, and history as a live terminal dashboard.

Targets are hostnames or IP addresses. With no targets on the command
line, the target list comes from the config file.`,
	Example: `  pingboard 1.1.1.1 example.com
  pingboard --protocol tcp --port 443 example.com
  pingboard --ssh-config`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd, args)
		if err != nil {
			return err
		}
		return runDashboard(cmd.Context(), cfg)
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flagConfig, "config", "", "config file (default .pingboard.yaml)")
	f.StringVarP(&flagProtocol, "protocol", "P", "", "probe protocol: icmp or tcp")
	f.DurationVarP(&flagInterval, "interval", "i", 0, "time between probes per host")
	f.DurationVarP(&flagTimeout, "timeout", "t", 0, "per-probe timeout")
	f.Uint16VarP(&flagPort, "port", "p", 0, "TCP probe port")
	f.IntVar(&flagHistory, "history", 0, "samples kept per host")
	f.BoolVar(&flagASCII, "ascii", false, "force the ASCII glyph set")
	f.StringVar(&flagSSHConfig, "ssh-config", "",
		"also probe hosts from an OpenSSH client config (bare flag reads ~/.ssh/config; use --ssh-config=PATH for another file)")

	// A bare --ssh-config means the user's own SSH config.
	if home, err := os.UserHomeDir(); err == nil {
		f.Lookup("ssh-config").NoOptDefVal = filepath.Join(home, ".ssh", "config")
	}
}

// buildConfig merges file, environment, and flags into the final config.
// Flags win, but only when actually set, so file values survive defaults.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(flagConfig)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("protocol") {
		cfg.Protocol = flagProtocol
	}
	if flags.Changed("interval") {
		cfg.Interval = flagInterval
	}
	if flags.Changed("timeout") {
		cfg.Timeout = flagTimeout
	}
	if flags.Changed("port") {
		cfg.Port = flagPort
		// Asking for a port means TCP probing unless the protocol was set
		// explicitly.
		if !flags.Changed("protocol") {
			cfg.Protocol = config.ProtocolTCP
		}
	}
	if flags.Changed("history") {
		cfg.History = flagHistory
	}
	if flags.Changed("ascii") {
		cfg.ASCII = flagASCII
	}
	if flags.Changed("ssh-config") {
		cfg.SSHConfig = flagSSHConfig
	}

	if len(args) > 0 {
		cfg.Targets = args
	}
	if cfg.SSHConfig != "" {
		imported, err := config.ImportSSHHosts(cfg.SSHConfig)
		if err != nil {
			return nil, err
		}
		cfg.Targets = mergeTargets(cfg.Targets, imported)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeTargets appends extras to base, dropping duplicates while keeping
// first-seen order.
func mergeTargets(base, extras []string) []string {
	seen := make(map[string]bool, len(base))
	out := make([]string, 0, len(base)+len(extras))
	for _, t := range append(append([]string{}, base...), extras...) {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
