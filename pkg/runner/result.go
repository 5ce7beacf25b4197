package runner

import (
	"fmt"
	"time"

	"github.com/entrhq/uiverify/pkg/browser"
	"github.com/entrhq/uiverify/pkg/scenario"
)

// Status is the outcome of a scenario or a step.
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
)

// FailureKind separates slow pages from everything else.
type FailureKind string

const (
	FailureTimeout FailureKind = "timeout"
	FailureError   FailureKind = "error"
)

// Console messages printed for every run. Scripts and CI jobs grep for these.
const (
	MessageTimeout    = "Timeout error: The page or a specific element took too long to load."
	MessageErrorFmt   = "An error occurred: %v"
	MessageScreenshot = "Screenshot taken successfully."
)

// Result is the record of one scenario run.
type Result struct {
	RunID       string      `json:"run_id"`
	Scenario    string      `json:"scenario"`
	Description string      `json:"description,omitempty"`
	Status      Status      `json:"status"`
	FailureKind FailureKind `json:"failure_kind,omitempty"`
	Error       string      `json:"error,omitempty"`

	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`

	Steps           []StepResult      `json:"steps"`
	Screenshots     []string          `json:"screenshots,omitempty"`
	ErrorScreenshot string            `json:"error_screenshot,omitempty"`
	DOMSnapshot     string            `json:"dom_snapshot,omitempty"`
	Evidence        string            `json:"evidence,omitempty"`
	Preflight       *PreflightResults `json:"preflight,omitempty"`
	OutputDir       string            `json:"output_dir"`
	FinalURL        string            `json:"final_url,omitempty"`

	err error
}

// StepResult records one executed step.
type StepResult struct {
	Index       int             `json:"index"`
	Action      scenario.Action `json:"action"`
	Description string          `json:"description"`
	Status      Status          `json:"status"`
	Duration    time.Duration   `json:"duration"`
	Error       string          `json:"error,omitempty"`
}

func newResult(runID string, sc *scenario.Scenario, outputDir string) *Result {
	return &Result{
		RunID:       runID,
		Scenario:    sc.Name,
		Description: sc.Description,
		Status:      StatusPassed,
		StartTime:   time.Now(),
		Steps:       []StepResult{},
		OutputDir:   outputDir,
	}
}

// Passed reports whether every step succeeded.
func (r *Result) Passed() bool {
	return r.Status == StatusPassed
}

// Err returns the failure cause, or nil for a passed run.
func (r *Result) Err() error {
	return r.err
}

func (r *Result) fail(err error) {
	if r.err != nil {
		return
	}
	r.err = err
	r.Status = StatusFailed
	r.Error = err.Error()
	r.FailureKind = Classify(err)
}

func (r *Result) finish() {
	r.EndTime = time.Now()
	if r.EndTime.Before(r.StartTime) {
		r.EndTime = r.StartTime
	}
	r.Duration = r.EndTime.Sub(r.StartTime)
}

// Classify maps an error to the failure kind reported for it.
func Classify(err error) FailureKind {
	if browser.IsTimeout(err) {
		return FailureTimeout
	}
	return FailureError
}

// StepError wraps a failure with the step that produced it.
type StepError struct {
	Index  int
	Action scenario.Action
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Action, e.Err)
}

// Unwrap returns the underlying error
func (e *StepError) Unwrap() error {
	return e.Err
}

// PreflightError reports a required check that failed before the browser started.
type PreflightError struct {
	Check string
	Err   error
}

func (e *PreflightError) Error() string {
	return fmt.Sprintf("preflight check '%s' failed: %v", e.Check, e.Err)
}

// Unwrap returns the underlying error
func (e *PreflightError) Unwrap() error {
	return e.Err
}
