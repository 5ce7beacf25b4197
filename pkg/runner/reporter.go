package runner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// LogLevel represents the console verbosity level
type LogLevel int

const (
	// LogLevelQuiet shows only failures, warnings and the final summary
	LogLevelQuiet LogLevel = iota
	// LogLevelNormal shows step progress (default)
	LogLevelNormal
	// LogLevelVerbose adds step timings and artifact paths
	LogLevelVerbose
	// LogLevelDebug shows all internal details for debugging
	LogLevelDebug
)

// Color palette shared by every reporter.
var (
	salmonPink  = lipgloss.Color("#FFB3BA") // primary accent
	mintGreen   = lipgloss.Color("#A8E6CF") // success
	amber       = lipgloss.Color("#FCD34D") // warnings
	errorRed    = lipgloss.Color("203")
	mutedGray   = lipgloss.Color("#6B7280") // secondary text
	brightWhite = lipgloss.Color("#F9FAFB") // primary text
)

// Reporter prints human-readable progress for verification runs.
type Reporter struct {
	level  LogLevel
	writer io.Writer

	header  lipgloss.Style
	section lipgloss.Style
	step    lipgloss.Style
	success lipgloss.Style
	info    lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style

	stepCount int
}

// NewReporter creates a reporter that writes to stdout.
func NewReporter(level LogLevel) *Reporter {
	return NewReporterTo(os.Stdout, level)
}

// NewReporterTo creates a reporter for w. Colors are dropped automatically
// when w is not a terminal.
func NewReporterTo(w io.Writer, level LogLevel) *Reporter {
	r := lipgloss.NewRenderer(w)
	return &Reporter{
		level:   level,
		writer:  w,
		header:  r.NewStyle().Foreground(brightWhite).Bold(true),
		section: r.NewStyle().Foreground(salmonPink).Bold(true),
		step:    r.NewStyle().Foreground(salmonPink),
		success: r.NewStyle().Foreground(mintGreen).Bold(true),
		info:    r.NewStyle().Foreground(brightWhite),
		warning: r.NewStyle().Foreground(amber),
		failure: r.NewStyle().Foreground(errorRed).Bold(true),
		muted:   r.NewStyle().Foreground(mutedGray),
	}
}

// Header prints a prominent header message
func (r *Reporter) Header(message string) {
	if r.level >= LogLevelNormal {
		rule := strings.Repeat("=", 70)
		r.println(r.header.Render(rule))
		r.println(r.header.Render("  " + message))
		r.println(r.header.Render(rule))
	}
}

// Section prints a section divider
func (r *Reporter) Section(title string) {
	if r.level >= LogLevelNormal {
		r.println("")
		r.println(r.section.Render("▶ " + title))
		r.println(r.muted.Render(strings.Repeat("─", 50)))
	}
}

// Step prints a numbered step
func (r *Reporter) Step(message string) {
	if r.level >= LogLevelNormal {
		r.stepCount++
		r.println(r.step.Render(fmt.Sprintf("[%d] %s", r.stepCount, message)))
	}
}

// ResetSteps restarts step numbering for the next scenario
func (r *Reporter) ResetSteps() {
	r.stepCount = 0
}

// Successf prints a success message
func (r *Reporter) Successf(format string, args ...interface{}) {
	if r.level >= LogLevelNormal {
		r.println(r.success.Render("✓ " + fmt.Sprintf(format, args...)))
	}
}

// Infof prints an informational message
func (r *Reporter) Infof(format string, args ...interface{}) {
	if r.level >= LogLevelNormal {
		r.println(r.info.Render(fmt.Sprintf(format, args...)))
	}
}

// Warningf prints a warning message
func (r *Reporter) Warningf(format string, args ...interface{}) {
	if r.level >= LogLevelQuiet {
		r.println(r.warning.Render("⚠ Warning: " + fmt.Sprintf(format, args...)))
	}
}

// Errorf prints an error message
func (r *Reporter) Errorf(format string, args ...interface{}) {
	if r.level >= LogLevelQuiet {
		r.println(r.failure.Render("✗ Error: " + fmt.Sprintf(format, args...)))
	}
}

// Verbosef prints detailed information (only in verbose mode)
func (r *Reporter) Verbosef(format string, args ...interface{}) {
	if r.level >= LogLevelVerbose {
		r.println(r.muted.Render("→ " + fmt.Sprintf(format, args...)))
	}
}

// Debugf prints debug information (only in debug mode)
func (r *Reporter) Debugf(format string, args ...interface{}) {
	if r.level >= LogLevelDebug {
		r.println(r.muted.Render("[DEBUG] " + fmt.Sprintf(format, args...)))
	}
}

// Outcome prints one of the fixed run messages verbatim. Failures are
// printed at every level; the success line follows normal verbosity.
func (r *Reporter) Outcome(message string, failed bool) {
	if failed {
		r.println(r.failure.Render(message))
		return
	}
	if r.level >= LogLevelNormal {
		r.println(r.success.Render(message))
	}
}

// Summary prints the final record of one scenario
func (r *Reporter) Summary(res *Result) {
	rule := strings.Repeat("=", 70)
	r.println("")
	r.println(r.header.Render(rule))
	r.println(r.header.Render("  VERIFICATION SUMMARY"))
	r.println(r.header.Render(rule))

	status := r.success.Render("✓ PASSED")
	if !res.Passed() {
		status = r.failure.Render("✗ FAILED")
	}
	r.println("  Status: " + status)
	r.println("  Scenario: " + res.Scenario)
	r.println(fmt.Sprintf("  Duration: %s", res.Duration.Round(time.Millisecond)))
	r.println(fmt.Sprintf("  Steps: %d/%d passed", countPassed(res.Steps), len(res.Steps)))

	if len(res.Screenshots) > 0 {
		r.println("  Screenshots:")
		for _, s := range res.Screenshots {
			r.println("    • " + s)
		}
	}
	if res.ErrorScreenshot != "" {
		r.println("  Error screenshot: " + res.ErrorScreenshot)
	}
	if r.level >= LogLevelVerbose {
		if res.DOMSnapshot != "" {
			r.println("  DOM snapshot: " + res.DOMSnapshot)
		}
		if res.Evidence != "" {
			r.println("  Evidence: " + res.Evidence)
		}
	}
	if res.Error != "" {
		r.println("")
		r.println(r.failure.Render(fmt.Sprintf("  Error Details (%s):", res.FailureKind)))
		r.println(r.failure.Render("    " + res.Error))
	}

	r.println(r.header.Render(rule))
	r.println("")
}

// Totals prints a one-line tally across several scenarios
func (r *Reporter) Totals(results []*Result) {
	passed := 0
	for _, res := range results {
		if res.Passed() {
			passed++
		}
	}

	line := fmt.Sprintf("%d/%d scenarios passed", passed, len(results))
	if passed == len(results) {
		r.println(r.success.Render(line))
		return
	}
	r.println(r.failure.Render(line))
}

func (r *Reporter) println(s string) {
	fmt.Fprintln(r.writer, s)
}

func countPassed(steps []StepResult) int {
	n := 0
	for _, s := range steps {
		if s.Status == StatusPassed {
			n++
		}
	}
	return n
}

// ParseLogLevel converts a verbosity name to a LogLevel
func ParseLogLevel(level string) LogLevel {
	switch level {
	case "quiet":
		return LogLevelQuiet
	case "normal":
		return LogLevelNormal
	case "verbose":
		return LogLevelVerbose
	case "debug":
		return LogLevelDebug
	default:
		return LogLevelNormal
	}
}
