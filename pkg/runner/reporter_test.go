package runner

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReporterLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   LogLevel
		want    []string
		notWant []string
	}{
		{
			name:    "quiet keeps failures and warnings",
			level:   LogLevelQuiet,
			want:    []string{MessageTimeout, "⚠ Warning: slow network", "✗ Error: broken"},
			notWant: []string{"[1] goto", MessageScreenshot, "→ detail", "[DEBUG]", "▶ Steps"},
		},
		{
			name:    "normal shows progress",
			level:   LogLevelNormal,
			want:    []string{"[1] goto", "[2] click", MessageScreenshot, MessageTimeout, "▶ Steps", "✓ reachable"},
			notWant: []string{"→ detail", "[DEBUG]"},
		},
		{
			name:    "verbose adds details",
			level:   LogLevelVerbose,
			want:    []string{"→ detail"},
			notWant: []string{"[DEBUG]"},
		},
		{
			name:  "debug shows everything",
			level: LogLevelDebug,
			want:  []string{"→ detail", "[DEBUG] internals"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := NewReporterTo(&buf, tt.level)

			r.Section("Steps")
			r.Step("goto")
			r.Step("click")
			r.Successf("reachable")
			r.Outcome(MessageScreenshot, false)
			r.Outcome(MessageTimeout, true)
			r.Warningf("slow network")
			r.Errorf("broken")
			r.Verbosef("detail")
			r.Debugf("internals")

			out := buf.String()
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, out, nw)
			}
		})
	}
}

func TestReporterPlainOutputForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporterTo(&buf, LogLevelNormal)

	r.Outcome(MessageScreenshot, false)

	assert.Equal(t, MessageScreenshot+"\n", buf.String())
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestReporterStepNumbering(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporterTo(&buf, LogLevelNormal)

	r.Step("a")
	r.Step("b")
	r.ResetSteps()
	r.Step("c")

	assert.Contains(t, buf.String(), "[1] a")
	assert.Contains(t, buf.String(), "[2] b")
	assert.Contains(t, buf.String(), "[1] c")
}

func TestReporterSummary(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	failed := &Result{
		Scenario:        "deployed-login",
		Status:          StatusFailed,
		FailureKind:     FailureTimeout,
		Error:           "step 1 (goto): navigation failed",
		StartTime:       start,
		EndTime:         start.Add(1500 * time.Millisecond),
		Duration:        1500 * time.Millisecond,
		Steps:           []StepResult{{Status: StatusFailed}},
		ErrorScreenshot: "verification/error.png",
		DOMSnapshot:     "verification/error.html",
	}

	var buf bytes.Buffer
	NewReporterTo(&buf, LogLevelQuiet).Summary(failed)
	out := buf.String()

	assert.Contains(t, out, "VERIFICATION SUMMARY")
	assert.Contains(t, out, "✗ FAILED")
	assert.Contains(t, out, "Scenario: deployed-login")
	assert.Contains(t, out, "Duration: 1.5s")
	assert.Contains(t, out, "Steps: 0/1 passed")
	assert.Contains(t, out, "Error screenshot: verification/error.png")
	assert.Contains(t, out, "Error Details (timeout):")
	assert.NotContains(t, out, "DOM snapshot:")

	buf.Reset()
	NewReporterTo(&buf, LogLevelVerbose).Summary(failed)
	assert.Contains(t, buf.String(), "DOM snapshot: verification/error.html")

	buf.Reset()
	passed := &Result{Scenario: "app-loads", Status: StatusPassed, Screenshots: []string{"verification/verification.png"}}
	NewReporterTo(&buf, LogLevelNormal).Summary(passed)
	assert.Contains(t, buf.String(), "✓ PASSED")
	assert.Contains(t, buf.String(), "• verification/verification.png")
}

func TestReporterTotals(t *testing.T) {
	pass := &Result{Status: StatusPassed}
	fail := &Result{Status: StatusFailed}
	fail.fail(errors.New("x"))

	var buf bytes.Buffer
	r := NewReporterTo(&buf, LogLevelQuiet)
	r.Totals([]*Result{pass, fail})
	r.Totals([]*Result{pass})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{"1/2 scenarios passed", "1/1 scenarios passed"}, lines)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelQuiet, ParseLogLevel("quiet"))
	assert.Equal(t, LogLevelNormal, ParseLogLevel("normal"))
	assert.Equal(t, LogLevelVerbose, ParseLogLevel("verbose"))
	assert.Equal(t, LogLevelDebug, ParseLogLevel("debug"))
	assert.Equal(t, LogLevelNormal, ParseLogLevel("loud"))
}
