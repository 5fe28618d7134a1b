// Package cli wires the ved subcommands to the planner, the ffmpeg command
// builders and the orchestrator.
package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"ved/config"
	"ved/internal/logging"
	"ved/models"
	"ved/planner"
	"ved/probe"
)

// Prober analyzes a media file.
type Prober interface {
	Probe(ctx context.Context, path string) (*probe.Result, error)
}

// App holds the state shared by every subcommand of one invocation.
type App struct {
	version string
	out     io.Writer
	errOut  io.Writer

	configPath string
	cfg        *config.Config
	logger     hclog.Logger
	prober     Prober

	// plan builds the split plan of one file
	plan func(p *planner.Planner, info planner.MediaInfo, path string) ([]models.Segment, error)
}

// Option configures an App.
type Option func(*App)

// WithProber replaces the ffprobe-backed prober.
func WithProber(p Prober) Option {
	return func(a *App) { a.prober = p }
}

// WithOutput sets where command output and logs are written.
func WithOutput(out, errOut io.Writer) Option {
	return func(a *App) {
		a.out = out
		a.errOut = errOut
	}
}

// WithVersion sets the string printed by --version.
func WithVersion(version string) Option {
	return func(a *App) { a.version = version }
}

// New creates an App writing to stdout and stderr.
func New(opts ...Option) *App {
	a := &App{
		version: "dev",
		out:     os.Stdout,
		errOut:  os.Stderr,
		plan:    (*planner.Planner).PlanFile,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Execute runs the command line args, without the program name.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.newRootCommand()
	root.SetArgs(args)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	err := root.ExecuteContext(ctx)
	if errors.Is(err, errHelpShown) {
		return nil
	}
	return err
}

// setup loads the configuration and builds the logger and prober. It runs
// before every subcommand.
func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configPath, cmd.Flags())
	if err != nil {
		return usageErrorf("%v", err)
	}
	a.cfg = cfg
	a.logger = logging.New(cfg.LogLevel, cfg.Debug, a.errOut)

	if a.prober == nil {
		a.prober = probe.NewProber(a.logger, time.Duration(cfg.ProbeTimeoutSeconds)*time.Second)
	}

	a.logger.Debug("configuration loaded",
		"command", cmd.Name(),
		"config", a.configPath,
		"workers", cfg.EffectiveWorkers(),
		"dry_run", cfg.DryRun)
	return nil
}

// duration probes path and returns its length in seconds.
func (a *App) duration(ctx context.Context, path string) (float64, error) {
	result, err := a.prober.Probe(ctx, path)
	if err != nil {
		return 0, err
	}
	return result.GetDuration()
}
