package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/pingboard/internal/config"
	"github.com/rileyhilliard/pingboard/internal/errors"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file interactively",
	Long: `Walk through the dashboard settings and write them to ` +
		config.ConfigFileName + ` in the current directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit()
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
}

func runInit() error {
	if _, err := os.Stat(config.ConfigFileName); err == nil && !initForce {
		return errors.New(errors.ErrConfig,
			config.ConfigFileName+" already exists",
			"Use --force to overwrite it.")
	}

	cfg := config.Default()
	targetsInput := ""
	intervalInput := cfg.Interval.String()
	portInput := fmt.Sprintf("%d", cfg.Port)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Targets").
				Description("Hostnames or IP addresses, one per line.").
				Value(&targetsInput).
				Validate(func(s string) error {
					if len(splitTargets(s)) == 0 {
						return fmt.Errorf("enter at least one target")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Protocol").
				Options(
					huh.NewOption("ICMP echo (ping)", config.ProtocolICMP),
					huh.NewOption("TCP connect", config.ProtocolTCP),
				).
				Value(&cfg.Protocol),
			huh.NewInput().
				Title("Probe interval").
				Description("Time between probes per host, e.g. 1s or 500ms.").
				Value(&intervalInput).
				Validate(func(s string) error {
					_, err := time.ParseDuration(s)
					return err
				}),
			huh.NewInput().
				Title("TCP port").
				Description("Only used with the tcp protocol.").
				Value(&portInput),
			huh.NewConfirm().
				Title("Force ASCII glyphs?").
				Value(&cfg.ASCII),
		),
	)
	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Config setup aborted",
			"Run 'pingboard init' again to retry.")
	}

	cfg.Targets = splitTargets(targetsInput)
	cfg.Interval, _ = time.ParseDuration(intervalInput)
	cfg.Timeout = cfg.Interval
	fmt.Sscanf(portInput, "%d", &cfg.Port)

	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot encode config",
			"Report this; the generated settings should always serialize.")
	}
	if err := os.WriteFile(config.ConfigFileName, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot write "+config.ConfigFileName,
			"Check directory permissions.")
	}

	fmt.Printf("Wrote %s with %d target(s). Start the dashboard with 'pingboard'.\n",
		config.ConfigFileName, len(cfg.Targets))
	return nil
}

// splitTargets accepts newline, comma, or space separated target lists.
func splitTargets(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == ',' || r == ' ' || r == '\t'
	})
	out := fields[:0]
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
