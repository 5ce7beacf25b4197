package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/entrhq/uiverify/pkg/browser"
	"github.com/entrhq/uiverify/pkg/logging"
	"github.com/entrhq/uiverify/pkg/scenario"
)

// Runner executes scenarios one at a time against a Driver.
type Runner struct {
	driver   Driver
	config   *Config
	reporter *Reporter
	logger   *logging.Logger
	artifact *ArtifactWriter
	checks   []Check
	runID    string
}

// Option customizes a Runner.
type Option func(*Runner)

// WithReporter replaces the stdout reporter.
func WithReporter(r *Reporter) Option {
	return func(rn *Runner) { rn.reporter = r }
}

// WithLogger sets the debug logger.
func WithLogger(l *logging.Logger) Option {
	return func(rn *Runner) { rn.logger = l }
}

// WithChecks adds preflight checks run before every scenario, in addition
// to the reachability probe enabled by the config.
func WithChecks(checks ...Check) Option {
	return func(rn *Runner) { rn.checks = append(rn.checks, checks...) }
}

// New creates a runner. A nil cfg uses DefaultConfig.
func New(driver Driver, cfg *Config, opts ...Option) *Runner {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	r := &Runner{
		driver:   driver,
		config:   cfg,
		artifact: NewArtifactWriter(cfg.Artifacts),
		runID:    logging.GetRunID(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.reporter == nil {
		r.reporter = NewReporter(ParseLogLevel(cfg.Verbosity))
	}
	if r.logger == nil {
		r.logger = logging.Nop()
	}
	return r
}

// RunAll runs scenarios sequentially. Cancellation of ctx stops before the
// next scenario; scenarios not started get no result.
func (r *Runner) RunAll(ctx context.Context, scenarios []*scenario.Scenario) []*Result {
	results := make([]*Result, 0, len(scenarios))
	for _, sc := range scenarios {
		if ctx.Err() != nil {
			r.reporter.Warningf("run cancelled, skipping %s", sc.Name)
			r.logger.Warnf("run cancelled before scenario %s", sc.Name)
			continue
		}
		results = append(results, r.Run(ctx, sc))
	}
	if len(results) > 1 {
		r.reporter.Totals(results)
	}
	return results
}

// Run executes one scenario. The outcome is recorded in the returned Result;
// a failing scenario never surfaces as a panic or Go error.
func (r *Runner) Run(ctx context.Context, sc *scenario.Scenario) *Result {
	res := newResult(r.runID, sc, r.outputDir(sc.Name))
	log := r.logger.With("scenario", sc.Name)

	r.reporter.ResetSteps()
	r.reporter.Header(fmt.Sprintf("Verifying %s", sc.Name))
	if sc.Description != "" {
		r.reporter.Infof("%s", sc.Description)
	}
	log.Infof("scenario started, output in %s", res.OutputDir)

	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("panic during scenario: %v", p)
			log.Errorf("%v", err)
			r.reportFailure(res, err)
		}
		res.finish()
		r.writeArtifacts(res, log)
		log.Infof("scenario finished: status=%s duration=%s", res.Status, res.Duration)
		r.reporter.Summary(res)
	}()

	if err := sc.Validate(); err != nil {
		r.reportFailure(res, err)
		log.Errorf("invalid scenario: %v", err)
		return res
	}

	if err := r.preflight(ctx, sc, res, log); err != nil {
		r.reportFailure(res, err)
		return res
	}

	page, err := r.driver.Open(sc.Name, r.config.sessionOptions())
	if err != nil {
		err = fmt.Errorf("failed to start browser: %w", err)
		log.Errorf("%v", err)
		r.reportFailure(res, err)
		return res
	}
	defer func() {
		if err := r.driver.Close(sc.Name); err != nil {
			log.Warnf("failed to close browser session: %v", err)
			r.reporter.Warningf("failed to close browser: %v", err)
			return
		}
		log.Debugf("browser session closed")
	}()

	if err := r.execute(ctx, page, sc, res, log); err != nil {
		r.reportFailure(res, err)
		r.captureFailure(page, res, log)
	}
	res.FinalURL = safeURL(page)

	return res
}

// execute runs the steps in order and stops at the first failure.
func (r *Runner) execute(ctx context.Context, page Page, sc *scenario.Scenario, res *Result, log *logging.Logger) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic during scenario: %v", p)
			log.Errorf("%v", err)
		}
	}()

	for i := range sc.Steps {
		step := &sc.Steps[i]

		if ctxErr := ctx.Err(); ctxErr != nil {
			return &StepError{Index: i, Action: step.Action, Err: fmt.Errorf("run cancelled: %w", ctxErr)}
		}

		desc := step.Describe()
		r.reporter.Step(desc)
		log.Debugf("step %d: %s", i+1, desc)

		start := time.Now()
		stepErr := r.runStep(page, step, res)
		sr := StepResult{
			Index:       i,
			Action:      step.Action,
			Description: desc,
			Status:      StatusPassed,
			Duration:    time.Since(start),
		}

		if stepErr != nil {
			sr.Status = StatusFailed
			sr.Error = stepErr.Error()
			res.Steps = append(res.Steps, sr)
			log.Errorf("step %d failed after %s: %v", i+1, sr.Duration, stepErr)
			return &StepError{Index: i, Action: step.Action, Err: stepErr}
		}

		res.Steps = append(res.Steps, sr)
		r.reporter.Verbosef("done in %s", sr.Duration.Round(time.Millisecond))
	}

	return nil
}

// runStep dispatches one step to the page.
func (r *Runner) runStep(page Page, step *scenario.Step, res *Result) error {
	timeout := step.TimeoutMillis()

	switch step.Action {
	case scenario.ActionGoto:
		return page.Navigate(step.URL, browser.NavigateOptions{WaitUntil: step.WaitUntil, Timeout: timeout})
	case scenario.ActionFill:
		return page.Fill(*step.Locator, step.Value, timeout)
	case scenario.ActionClick:
		return page.Click(*step.Locator, timeout)
	case scenario.ActionWait:
		return page.WaitFor(*step.Locator, step.State, timeout)
	case scenario.ActionExpectURL:
		return page.ExpectURL(step.URL, timeout)
	case scenario.ActionExpectVisible:
		return page.ExpectVisible(*step.Locator, timeout)
	case scenario.ActionExpectHidden:
		return page.ExpectHidden(*step.Locator, timeout)
	case scenario.ActionScreenshot:
		path := filepath.Join(res.OutputDir, step.Path)
		n, err := page.Screenshot(browser.ScreenshotOptions{
			Path:     path,
			Locator:  step.Locator,
			FullPage: step.FullPage,
			Timeout:  timeout,
		})
		if err != nil {
			return err
		}
		res.Screenshots = append(res.Screenshots, path)
		r.reporter.Outcome(MessageScreenshot, false)
		r.reporter.Verbosef("%s (%d bytes)", path, n)
		return nil
	default:
		return fmt.Errorf("unknown action: %s", step.Action)
	}
}

// preflight runs configured checks. Only a failed required check is returned.
func (r *Runner) preflight(ctx context.Context, sc *scenario.Scenario, res *Result, log *logging.Logger) error {
	checks := make([]Check, 0, len(r.checks)+1)
	if r.config.Preflight.Enabled {
		if u := sc.EntryURL(); u != "" {
			checks = append(checks, NewReachabilityCheck(u, r.config.Preflight.Required, r.config.Preflight.Timeout))
		}
	}
	checks = append(checks, r.checks...)
	if len(checks) == 0 {
		return nil
	}

	r.reporter.Section("Preflight")
	results := NewCheckRunner(checks).RunAll(ctx)
	res.Preflight = results

	for _, c := range results.Results {
		switch {
		case c.Passed:
			r.reporter.Successf("%s", c.Name)
			log.Debugf("preflight %s passed in %s", c.Name, c.Duration)
		case c.Required:
			r.reporter.Errorf("%s: %s", c.Name, c.Error)
			log.Errorf("preflight %s failed: %s", c.Name, c.Error)
		default:
			r.reporter.Warningf("%s: %s", c.Name, c.Error)
			log.Warnf("preflight %s failed (optional): %s", c.Name, c.Error)
		}
	}

	r.reporter.Section("Steps")
	return results.Err()
}

// reportFailure records err and prints the fixed failure message.
func (r *Runner) reportFailure(res *Result, err error) {
	if res.err != nil {
		return
	}
	res.fail(err)
	if res.FailureKind == FailureTimeout {
		r.reporter.Outcome(MessageTimeout, true)
		return
	}
	r.reporter.Outcome(fmt.Sprintf(MessageErrorFmt, err), true)
}

// captureFailure saves error.png and the cleaned DOM. Both are best-effort:
// problems are logged as warnings and never change the scenario outcome.
func (r *Runner) captureFailure(page Page, res *Result, log *logging.Logger) {
	path := filepath.Join(res.OutputDir, ErrorScreenshot)
	if _, err := page.Screenshot(browser.ScreenshotOptions{Path: path, FullPage: true}); err != nil {
		log.Warnf("failed to capture error screenshot: %v", err)
		r.reporter.Warningf("failed to capture error screenshot: %v", err)
	} else {
		res.ErrorScreenshot = path
		r.reporter.Infof("Error screenshot saved to %s", path)
	}

	if !r.config.Artifacts.DOMSnapshot {
		return
	}

	raw, err := page.Content()
	if err != nil {
		log.Warnf("failed to read page content: %v", err)
		return
	}
	snap, err := browser.CleanDOM(raw, 0)
	if err != nil {
		log.Warnf("failed to clean page content: %v", err)
		return
	}

	domPath := filepath.Join(res.OutputDir, ErrorDOM)
	if err := os.MkdirAll(res.OutputDir, 0755); err != nil {
		log.Warnf("failed to create output directory: %v", err)
		return
	}
	if err := os.WriteFile(domPath, []byte(snap.HTML), 0600); err != nil {
		log.Warnf("failed to write DOM snapshot: %v", err)
		return
	}
	res.DOMSnapshot = domPath
	log.Debugf("DOM snapshot written to %s (truncated=%v)", domPath, snap.Truncated)
}

func (r *Runner) writeArtifacts(res *Result, log *logging.Logger) {
	if err := r.artifact.WriteAll(res); err != nil {
		log.Warnf("failed to write artifacts: %v", err)
		r.reporter.Warningf("failed to write artifacts: %v", err)
		return
	}
	r.reporter.Verbosef("artifacts written to %s", res.OutputDir)
}

func (r *Runner) outputDir(name string) string {
	if r.config.PerScenario {
		return filepath.Join(r.config.OutputDir, name)
	}
	return r.config.OutputDir
}

// safeURL reads the current page URL, tolerating a page that already died.
func safeURL(page Page) (u string) {
	defer func() {
		if recover() != nil {
			u = ""
		}
	}()
	return page.URL()
}

// IsCancelled reports whether a result failed because the run was cancelled.
func IsCancelled(res *Result) bool {
	return errors.Is(res.Err(), context.Canceled)
}
