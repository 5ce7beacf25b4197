package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Check is a probe run before the browser is launched.
type Check interface {
	// Name returns the name of the check
	Name() string

	// Required returns true if failure should abort the scenario
	Required() bool

	// Execute runs the check and returns an error if it fails
	Execute(ctx context.Context) error
}

// ReachabilityCheck verifies that a URL answers HTTP requests.
type ReachabilityCheck struct {
	url      string
	required bool
	timeout  time.Duration
	retries  int
}

// NewReachabilityCheck creates a check that GETs url. Any response below
// 500 counts as reachable, so login redirects and 404s on SPA routes pass.
func NewReachabilityCheck(url string, required bool, timeout time.Duration) *ReachabilityCheck {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ReachabilityCheck{
		url:      url,
		required: required,
		timeout:  timeout,
		retries:  1,
	}
}

// Name returns the name of the check
func (c *ReachabilityCheck) Name() string {
	return "reachable " + c.url
}

// Required returns true if failure should abort the scenario
func (c *ReachabilityCheck) Required() bool {
	return c.required
}

// Execute issues the GET request
func (c *ReachabilityCheck) Execute(ctx context.Context) error {
	if c.url == "" {
		return fmt.Errorf("no URL to probe")
	}

	client := resty.New().
		SetTimeout(c.timeout).
		SetRetryCount(c.retries).
		SetRetryWaitTime(250*time.Millisecond).
		SetCloseConnection(true).
		SetHeader("User-Agent", "uiverify-preflight")
	defer client.GetClient().CloseIdleConnections()

	resp, err := client.R().SetContext(ctx).Get(c.url)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode() >= 500 {
		return fmt.Errorf("server answered %s", resp.Status())
	}
	return nil
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name     string        `json:"name"`
	Required bool          `json:"required"`
	Passed   bool          `json:"passed"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// PreflightResults aggregates all checks of a run.
type PreflightResults struct {
	AllPassed bool          `json:"all_passed"`
	Results   []CheckResult `json:"results"`

	// firstRequired is the first failed required check, if any
	firstRequired *PreflightError
}

// CheckRunner executes checks in order.
type CheckRunner struct {
	checks []Check
}

// NewCheckRunner creates a runner for the given checks.
func NewCheckRunner(checks []Check) *CheckRunner {
	return &CheckRunner{checks: checks}
}

// RunAll executes every check. AllPassed is false only when a required
// check fails; optional failures are recorded but tolerated.
func (r *CheckRunner) RunAll(ctx context.Context) *PreflightResults {
	results := &PreflightResults{
		AllPassed: true,
		Results:   make([]CheckResult, 0, len(r.checks)),
	}

	for _, check := range r.checks {
		start := time.Now()
		result := CheckResult{
			Name:     check.Name(),
			Required: check.Required(),
		}

		if err := check.Execute(ctx); err != nil {
			result.Error = err.Error()
			if check.Required() {
				results.AllPassed = false
				if results.firstRequired == nil {
					results.firstRequired = &PreflightError{Check: check.Name(), Err: err}
				}
			}
		} else {
			result.Passed = true
		}

		result.Duration = time.Since(start)
		results.Results = append(results.Results, result)
	}

	return results
}

// Err returns the first required failure, or nil.
func (p *PreflightResults) Err() error {
	if p == nil || p.firstRequired == nil {
		return nil
	}
	return p.firstRequired
}
