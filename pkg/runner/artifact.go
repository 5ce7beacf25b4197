package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
)

// Artifact file names written into each scenario's output directory.
const (
	ResultFile      = "result.json"
	SummaryFile     = "summary.md"
	EvidenceFile    = "evidence.pdf"
	ErrorScreenshot = "error.png"
	ErrorDOM        = "error.html"
)

var pdfcpuOnce sync.Once

// ArtifactWriter handles writing run artifacts
type ArtifactWriter struct {
	config ArtifactConfig
}

// NewArtifactWriter creates a new artifact writer
func NewArtifactWriter(config ArtifactConfig) *ArtifactWriter {
	return &ArtifactWriter{config: config}
}

// WriteAll writes all configured artifact formats into res.OutputDir.
// Every writer runs even if an earlier one fails; the first error is returned.
func (w *ArtifactWriter) WriteAll(res *Result) error {
	if err := os.MkdirAll(res.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	// The PDF goes first so result.json can point at it
	if w.config.PDF {
		keep(w.WriteEvidencePDF(res))
	}
	if w.config.JSON {
		keep(w.WriteResultJSON(res))
	}
	if w.config.Markdown {
		keep(w.WriteSummaryMarkdown(res))
	}

	return firstErr
}

// WriteResultJSON writes the full result as JSON
func (w *ArtifactWriter) WriteResultJSON(res *Result) error {
	path := filepath.Join(res.OutputDir, ResultFile)

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if writeErr := os.WriteFile(path, data, 0600); writeErr != nil {
		return fmt.Errorf("failed to write result JSON: %w", writeErr)
	}

	return nil
}

// WriteSummaryMarkdown writes a human-readable markdown summary
func (w *ArtifactWriter) WriteSummaryMarkdown(res *Result) error {
	path := filepath.Join(res.OutputDir, SummaryFile)

	var md strings.Builder

	md.WriteString(fmt.Sprintf("# Verification: %s\n\n", res.Scenario))
	if res.Description != "" {
		md.WriteString(res.Description + "\n\n")
	}
	md.WriteString(fmt.Sprintf("**Run:** %s\n\n", res.RunID))
	md.WriteString(fmt.Sprintf("**Status:** %s\n\n", res.Status))
	md.WriteString(fmt.Sprintf("**Started:** %s\n\n", res.StartTime.Format(time.RFC3339)))
	md.WriteString(fmt.Sprintf("**Completed:** %s\n\n", res.EndTime.Format(time.RFC3339)))
	md.WriteString(fmt.Sprintf("**Duration:** %s\n\n", res.Duration))

	md.WriteString("## Result\n\n")
	if res.Error != "" {
		md.WriteString(fmt.Sprintf("❌ **%s:** %s\n\n", res.FailureKind, res.Error))
	} else {
		md.WriteString("✅ **Passed**\n\n")
	}

	if res.Preflight != nil && len(res.Preflight.Results) > 0 {
		md.WriteString("## Preflight\n\n")
		for _, c := range res.Preflight.Results {
			mark := "✅"
			if !c.Passed {
				mark = "❌"
			}
			md.WriteString(fmt.Sprintf("%s **%s**", mark, c.Name))
			if c.Required {
				md.WriteString(" (required)")
			}
			md.WriteString("\n")
			if c.Error != "" {
				md.WriteString(fmt.Sprintf("   Error: %s\n", c.Error))
			}
		}
		md.WriteString("\n")
	}

	if len(res.Steps) > 0 {
		md.WriteString("## Steps\n\n")
		md.WriteString("| # | Step | Status | Duration |\n")
		md.WriteString("|---|------|--------|----------|\n")
		for _, s := range res.Steps {
			md.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n",
				s.Index+1, escapeCell(s.Description), s.Status, s.Duration.Round(time.Millisecond)))
		}
		md.WriteString("\n")
	}

	evidence := append([]string{}, res.Screenshots...)
	if res.ErrorScreenshot != "" {
		evidence = append(evidence, res.ErrorScreenshot)
	}
	if len(evidence) > 0 {
		md.WriteString("## Screenshots\n\n")
		for _, p := range evidence {
			rel := relativeTo(res.OutputDir, p)
			md.WriteString(fmt.Sprintf("![%s](%s)\n\n", filepath.Base(p), rel))
		}
	}

	if writeErr := os.WriteFile(path, []byte(md.String()), 0600); writeErr != nil {
		return fmt.Errorf("failed to write summary markdown: %w", writeErr)
	}

	return nil
}

// WriteEvidencePDF bundles every screenshot of the run into one PDF,
// one image per page. Runs without screenshots produce no file.
func (w *ArtifactWriter) WriteEvidencePDF(res *Result) error {
	images := make([]string, 0, len(res.Screenshots)+1)
	for _, p := range res.Screenshots {
		if fileExists(p) {
			images = append(images, p)
		}
	}
	if res.ErrorScreenshot != "" && fileExists(res.ErrorScreenshot) {
		images = append(images, res.ErrorScreenshot)
	}
	if len(images) == 0 {
		return nil
	}

	pdfcpuOnce.Do(api.DisableConfigDir)

	path := filepath.Join(res.OutputDir, EvidenceFile)
	// ImportImagesFile appends to an existing file
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to replace evidence PDF: %w", err)
	}

	if err := api.ImportImagesFile(images, path, pdfcpu.DefaultImportConfig(), nil); err != nil {
		return fmt.Errorf("failed to write evidence PDF: %w", err)
	}

	res.Evidence = path
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func relativeTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
