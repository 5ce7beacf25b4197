// Package harness wires settings, logging, scenarios and the browser into a
// ready-to-run verification session shared by every uiverify binary.
package harness

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/entrhq/uiverify/pkg/browser"
	"github.com/entrhq/uiverify/pkg/config"
	"github.com/entrhq/uiverify/pkg/logging"
	"github.com/entrhq/uiverify/pkg/runner"
	"github.com/entrhq/uiverify/pkg/scenario"
)

// Harness owns the browser driver and scenario catalogue for one process.
type Harness struct {
	settings  *config.Settings
	scenarios scenario.Set
	driver    runner.Driver
	manager   *browser.SessionManager
	logger    *logging.Logger
	stdout    io.Writer
	ownLogger bool
}

// Option customizes a Harness.
type Option func(*Harness)

// WithDriver uses d instead of launching Playwright.
func WithDriver(d runner.Driver) Option {
	return func(h *Harness) { h.driver = d }
}

// WithStdout redirects console output.
func WithStdout(w io.Writer) Option {
	return func(h *Harness) { h.stdout = w }
}

// WithLogger uses l instead of the shared file logger.
func WithLogger(l *logging.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// New loads scenarios and starts the browser driver described by s.
func New(s *config.Settings, opts ...Option) (*Harness, error) {
	h := &Harness{
		settings: s,
		stdout:   os.Stdout,
	}
	for _, opt := range opts {
		opt(h)
	}

	if h.logger == nil {
		logging.Configure(logging.Options{
			Dir:        s.Logging.Dir,
			MaxSizeMB:  s.Logging.MaxSizeMB,
			MaxBackups: s.Logging.MaxBackups,
			MaxAgeDays: s.Logging.MaxAgeDays,
		})
		// The fallback logger already warns on stderr
		h.logger, _ = logging.NewLogger("harness")
		h.ownLogger = true
	}

	set, err := LoadScenarios(s)
	if err != nil {
		h.logger.Errorf("failed to load scenarios: %v", err)
		h.closeLogger()
		return nil, err
	}
	h.scenarios = set
	h.logger.Debugf("loaded %d scenarios: %v", len(set), set.Names())

	if h.driver == nil {
		mgr := browser.NewSessionManager()
		h.logger.Infof("starting playwright (skip_install=%v)", s.Browser.SkipInstall)
		if err := mgr.Initialize(browser.InitOptions{
			SkipInstall: s.Browser.SkipInstall,
			Verbose:     s.Logging.Verbosity == "debug",
		}); err != nil {
			h.logger.Errorf("failed to initialize browser: %v", err)
			h.closeLogger()
			return nil, fmt.Errorf("failed to initialize browser: %w", err)
		}
		h.manager = mgr
		h.driver = runner.NewBrowserDriver(mgr)
	}

	return h, nil
}

// LoadScenarios returns the built-in scenarios for s.Targets, with any
// scenarios from s.ScenarioFile layered on top.
func LoadScenarios(s *config.Settings) (scenario.Set, error) {
	set := scenario.Builtins(s.Targets)
	if s.ScenarioFile == "" {
		return set, nil
	}

	extra, err := scenario.LoadFile(s.ScenarioFile)
	if err != nil {
		return nil, err
	}
	return set.Merge(extra), nil
}

// Scenarios returns every scenario the harness knows about.
func (h *Harness) Scenarios() scenario.Set {
	return h.scenarios
}

// Run executes the scenarios matching patterns (all when empty). When more
// than one scenario is selected each writes into its own subdirectory.
func (h *Harness) Run(ctx context.Context, patterns []string) ([]*runner.Result, error) {
	selected, err := h.scenarios.Select(patterns)
	if err != nil {
		return nil, err
	}

	cfg := runner.ConfigFromSettings(h.settings)
	if len(selected) > 1 {
		cfg.PerScenario = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run configuration: %w", err)
	}

	runLogger := h.logger
	if h.ownLogger {
		if l, err := logging.NewLogger("runner"); err == nil {
			runLogger = l
			defer l.Close()
		}
	}

	r := runner.New(h.driver, cfg,
		runner.WithReporter(runner.NewReporterTo(h.stdout, runner.ParseLogLevel(cfg.Verbosity))),
		runner.WithLogger(runLogger),
	)

	h.logger.Infof("running %d scenarios: %v", len(selected), selected.Names())
	return r.RunAll(ctx, selected), nil
}

// Close stops the browser driver and flushes logs. Safe to call more than once.
func (h *Harness) Close() error {
	var err error
	if h.manager != nil {
		err = h.manager.Shutdown()
		if err != nil {
			h.logger.Warnf("browser shutdown: %v", err)
		}
	}
	h.closeLogger()
	return err
}

func (h *Harness) closeLogger() {
	if !h.ownLogger {
		return
	}
	_ = h.logger.Close()
	_ = logging.Shutdown()
}
