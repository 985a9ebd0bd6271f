package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pfrederiksen/courtgrid/internal/collector"
	"github.com/pfrederiksen/courtgrid/internal/config"
	"github.com/pfrederiksen/courtgrid/internal/links"
	"github.com/pfrederiksen/courtgrid/internal/logger"
	"github.com/pfrederiksen/courtgrid/internal/metrics"
	"github.com/pfrederiksen/courtgrid/internal/render"
	"github.com/pfrederiksen/courtgrid/internal/scraper"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagDays     int
	flagLogLevel string
	flagDate     string
)

// app bundles the configured pipeline shared by all commands
type app struct {
	cfg       *config.Config
	loc       *time.Location
	log       *logger.Logger
	collector *collector.Collector
	renderer  *render.Renderer
	links     *links.Builder
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courtgrid",
		Short: "Show free court slots as a weekly grid",
		Long: `courtgrid scrapes the facility reservation page for a run of days, merges
the courts of each category and renders the free and reserved hourly slots as a grid.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().IntVar(&flagDays, "days", 0, "Number of days per grid (default from COURTGRID_DAYS)")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(
		newServeCmd(),
		newGridCmd(),
		newLinksCmd(),
		newAnnounceCmd(),
		newBotCmd(),
	)

	return cmd
}

// newApp loads configuration, applies flag overrides and wires the pipeline
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if flagDays != 0 {
		cfg.Days = flagDays
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log := logger.New(level, os.Stderr)
	logger.SetDefault(log)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	fetcher := scraper.New(cfg.SourceURL, cfg.FetchTimeout).WithUserAgent(cfg.UserAgent)
	parser := scraper.NewParser(cfg.TennisSelector, cfg.SharedSelector, cfg.ReservedClass)

	return &app{
		cfg:       cfg,
		loc:       loc,
		log:       log,
		collector: collector.New(metrics.InstrumentFetcher(fetcher), parser, cfg.MaxInFlight),
		renderer:  render.New(render.DefaultPalette),
		links:     links.New(cfg.BaseURL, cfg.Facility),
	}, nil
}

// startDate parses --date in the facility timezone, defaulting to today
func (a *app) startDate() (time.Time, error) {
	if flagDate == "" {
		return a.cfg.Today(), nil
	}
	date, err := time.ParseInLocation("2006-01-02", flagDate, a.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (want YYYY-MM-DD): %w", flagDate, err)
	}
	return date, nil
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Execute runs the CLI
func Execute() {
	if code := run(os.Args[1:]); code != ExitSuccess {
		os.Exit(code)
	}
}

// run executes the root command with args and returns the process exit code
func run(args []string) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)

	executed, err := cmd.ExecuteC()
	if err != nil {
		logger.Error("Command failed", logger.Fields{"command": executed.CommandPath()}, err)
		return ExitError
	}
	return ExitSuccess
}
