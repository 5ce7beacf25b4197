package runner

import (
	"fmt"
	"time"

	"github.com/entrhq/uiverify/pkg/browser"
	"github.com/entrhq/uiverify/pkg/config"
)

// Config represents the configuration for a verification run
type Config struct {
	// OutputDir receives screenshots and reports
	OutputDir string `yaml:"output_dir" json:"output_dir"`

	// PerScenario writes each scenario under OutputDir/<name>
	PerScenario bool `yaml:"per_scenario" json:"per_scenario"`

	// Browser launch options
	Headless       bool             `yaml:"headless" json:"headless"`
	Viewport       browser.Viewport `yaml:"viewport" json:"viewport"`
	SlowMo         time.Duration    `yaml:"slow_mo" json:"slow_mo"`
	DefaultTimeout time.Duration    `yaml:"default_timeout" json:"default_timeout"`

	// Artifacts configuration
	Artifacts ArtifactConfig `yaml:"artifacts" json:"artifacts"`

	// Preflight configuration
	Preflight PreflightConfig `yaml:"preflight" json:"preflight"`

	// Verbosity of console output: quiet, normal, verbose, debug
	Verbosity string `yaml:"verbosity" json:"verbosity"`
}

// ArtifactConfig selects the reports written after each scenario
type ArtifactConfig struct {
	JSON        bool `yaml:"json" json:"json"`
	Markdown    bool `yaml:"markdown" json:"markdown"`
	PDF         bool `yaml:"pdf" json:"pdf"`
	DOMSnapshot bool `yaml:"dom_snapshot" json:"dom_snapshot"`
}

// PreflightConfig controls checks run before the browser starts
type PreflightConfig struct {
	Enabled  bool          `yaml:"enabled" json:"enabled"`
	Required bool          `yaml:"required" json:"required"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "verification",
		Headless:  true,
		Viewport: browser.Viewport{
			Width:  browser.DefaultViewportWidth,
			Height: browser.DefaultViewportHeight,
		},
		DefaultTimeout: 30 * time.Second,
		Artifacts: ArtifactConfig{
			JSON:        true,
			Markdown:    true,
			PDF:         true,
			DOMSnapshot: true,
		},
		Preflight: PreflightConfig{
			Timeout: 5 * time.Second,
		},
		Verbosity: "normal",
	}
}

// ConfigFromSettings maps loaded settings onto a runner configuration.
func ConfigFromSettings(s *config.Settings) *Config {
	return &Config{
		OutputDir:   s.Output.Dir,
		PerScenario: s.Output.PerScenario,
		Headless:    s.Browser.Headless,
		Viewport: browser.Viewport{
			Width:  s.Browser.ViewportWidth,
			Height: s.Browser.ViewportHeight,
		},
		SlowMo:         s.Browser.SlowMo,
		DefaultTimeout: s.Browser.DefaultTimeout,
		Artifacts: ArtifactConfig{
			JSON:        s.Output.JSON,
			Markdown:    s.Output.Markdown,
			PDF:         s.Output.PDF,
			DOMSnapshot: s.Output.DOMSnapshot,
		},
		Preflight: PreflightConfig{
			Enabled:  s.Preflight.Enabled,
			Required: s.Preflight.Required,
			Timeout:  s.Preflight.Timeout,
		},
		Verbosity: s.Logging.Verbosity,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height)
	}
	if c.DefaultTimeout < 0 {
		return fmt.Errorf("default_timeout cannot be negative")
	}
	if c.SlowMo < 0 {
		return fmt.Errorf("slow_mo cannot be negative")
	}
	if c.Preflight.Timeout < 0 {
		return fmt.Errorf("preflight timeout cannot be negative")
	}
	return nil
}

// sessionOptions converts the launch settings to browser options
func (c *Config) sessionOptions() browser.SessionOptions {
	vp := c.Viewport
	return browser.SessionOptions{
		Headless: c.Headless,
		Viewport: &vp,
		Timeout:  float64(c.DefaultTimeout) / float64(time.Millisecond),
		SlowMo:   float64(c.SlowMo) / float64(time.Millisecond),
	}
}
