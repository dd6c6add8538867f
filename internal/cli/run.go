package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/rileyhilliard/pingboard/internal/config"
	"github.com/rileyhilliard/pingboard/internal/dashboard"
	"github.com/rileyhilliard/pingboard/internal/errors"
	"github.com/rileyhilliard/pingboard/internal/logger"
	"github.com/rileyhilliard/pingboard/internal/probe"
	"github.com/rileyhilliard/pingboard/internal/scheduler"
	"github.com/rileyhilliard/pingboard/internal/ui"
)

// shutdownGrace bounds how long quitting waits for in-flight probes.
const shutdownGrace = 3 * time.Second

// runDashboard resolves the targets, starts the probing coordinator, and
// hands the terminal to the dashboard until the user quits.
func runDashboard(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(cfg.Targets) == 0 {
		return errors.New(errors.ErrConfig,
			"No targets to probe",
			"Pass targets on the command line or run 'pingboard init'.")
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrRender,
			"Standard output is not a terminal",
			"Run pingboard in an interactive terminal; it has no pipe-friendly output mode.")
	}

	targets, err := probe.ResolveAll(ctx, cfg.Targets)
	if err != nil {
		return err
	}

	proto := probe.ProtocolICMP
	protoLabel := config.ProtocolICMP
	if cfg.Protocol == config.ProtocolTCP {
		proto = probe.ProtocolTCP
		protoLabel = fmt.Sprintf("tcp:%d", cfg.Port)
	}

	coord, err := scheduler.New(targets, scheduler.Options{
		Interval: cfg.Interval,
		Timeout:  cfg.Timeout,
		History:  cfg.History,
		Logger:   logger.Default(),
		Factory: func(t probe.Target) (probe.Prober, error) {
			return probe.New(proto, t, cfg.Port)
		},
	})
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	coord.Start(runCtx)

	model := dashboard.NewModel(coord, protoLabel, cfg.Interval, ui.DetectGlyphs(cfg.ASCII))
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, runErr := p.Run()

	cancel()
	if err := coord.Stop(shutdownGrace); err != nil {
		logger.Default().Warn("shutdown: %v", err)
	}
	if runErr != nil {
		return errors.WrapWithCode(runErr, errors.ErrRender,
			"Dashboard terminated unexpectedly",
			"Check the terminal supports the alternate screen, or try --ascii.")
	}
	return nil
}
