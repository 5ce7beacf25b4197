package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// UIVERIFY_TARGETS_LOCAL_URL or UIVERIFY_BROWSER_HEADLESS.
const EnvPrefix = "UIVERIFY"

// DefaultConfigName is the file name (without extension) searched for in the
// working directory when no explicit config path is given.
const DefaultConfigName = "uiverify"

// Settings is the runtime configuration shared by every verification binary.
type Settings struct {
	Browser   BrowserSettings   `mapstructure:"browser" yaml:"browser"`
	Output    OutputSettings    `mapstructure:"output" yaml:"output"`
	Targets   Targets           `mapstructure:"targets" yaml:"targets"`
	Logging   LoggingSettings   `mapstructure:"logging" yaml:"logging"`
	Preflight PreflightSettings `mapstructure:"preflight" yaml:"preflight"`

	// ScenarioFile optionally points at a YAML file with extra scenarios
	ScenarioFile string `mapstructure:"scenario_file" yaml:"scenario_file"`
}

// BrowserSettings controls how the Chromium instance is launched.
type BrowserSettings struct {
	Headless       bool          `mapstructure:"headless" yaml:"headless"`
	ViewportWidth  int           `mapstructure:"viewport_width" yaml:"viewport_width"`
	ViewportHeight int           `mapstructure:"viewport_height" yaml:"viewport_height"`
	SlowMo         time.Duration `mapstructure:"slow_mo" yaml:"slow_mo"`
	DefaultTimeout time.Duration `mapstructure:"default_timeout" yaml:"default_timeout"`

	// SkipInstall assumes the playwright driver and browsers are already present
	SkipInstall bool `mapstructure:"skip_install" yaml:"skip_install"`
}

// OutputSettings controls where screenshots and reports are written.
type OutputSettings struct {
	Dir         string `mapstructure:"dir" yaml:"dir"`
	PerScenario bool   `mapstructure:"per_scenario" yaml:"per_scenario"`
	JSON        bool   `mapstructure:"json" yaml:"json"`
	Markdown    bool   `mapstructure:"markdown" yaml:"markdown"`
	PDF         bool   `mapstructure:"pdf" yaml:"pdf"`
	DOMSnapshot bool   `mapstructure:"dom_snapshot" yaml:"dom_snapshot"`
}

// Targets holds the application endpoints and the accounts used against them.
type Targets struct {
	LocalURL    string      `mapstructure:"local_url" yaml:"local_url"`
	DeployedURL string      `mapstructure:"deployed_url" yaml:"deployed_url"`
	Local       Credentials `mapstructure:"local" yaml:"local"`
	Deployed    Credentials `mapstructure:"deployed" yaml:"deployed"`
}

// Credentials is an email/password pair for a login form.
type Credentials struct {
	Email    string `mapstructure:"email" yaml:"email"`
	Password string `mapstructure:"password" yaml:"password"`
}

// LoggingSettings configures console verbosity and the debug log file.
type LoggingSettings struct {
	// Verbosity controls console output: quiet, normal, verbose, debug
	Verbosity  string `mapstructure:"verbosity" yaml:"verbosity"`
	Dir        string `mapstructure:"dir" yaml:"dir"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
}

// PreflightSettings controls the reachability probe run before a browser starts.
type PreflightSettings struct {
	Enabled  bool          `mapstructure:"enabled" yaml:"enabled"`
	Required bool          `mapstructure:"required" yaml:"required"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

var defaults = map[string]interface{}{
	"browser.headless":        true,
	"browser.viewport_width":  1280,
	"browser.viewport_height": 720,
	"browser.slow_mo":         time.Duration(0),
	"browser.default_timeout": 30 * time.Second,
	"browser.skip_install":    false,

	"output.dir":          "verification",
	"output.per_scenario": false,
	"output.json":         true,
	"output.markdown":     true,
	"output.pdf":          true,
	"output.dom_snapshot": true,

	"targets.local_url":         "http://localhost:5173",
	"targets.deployed_url":      "https://articulosdelimpiezaevita.netlify.app/",
	"targets.local.email":       "test@example.com",
	"targets.local.password":    "password",
	"targets.deployed.email":    "gerente@evita.com",
	"targets.deployed.password": "gerente123",

	"logging.verbosity":    "normal",
	"logging.dir":          "~/.uiverify/logs",
	"logging.max_size_mb":  10,
	"logging.max_backups":  3,
	"logging.max_age_days": 14,

	"preflight.enabled":  false,
	"preflight.required": false,
	"preflight.timeout":  5 * time.Second,

	"scenario_file": "",
}

// newViper returns a viper instance with defaults and env binding applied.
func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Default returns the settings produced by defaults alone, without reading
// any file or environment variable.
func Default() *Settings {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	s := &Settings{}
	// Defaults are static and always decode
	_ = v.Unmarshal(s)
	_ = s.expandPaths()
	return s
}

// Load reads settings from defaults, an optional YAML file and UIVERIFY_*
// environment variables, in increasing order of precedence.
//
// When path is empty, ./uiverify.yaml is used if it exists; a missing file
// is not an error in that case. An explicit path must exist.
func Load(path string) (*Settings, error) {
	v := newViper()

	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("failed to expand config path: %w", err)
		}
		v.SetConfigFile(expanded)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	if err := s.expandPaths(); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return s, nil
}

func (s *Settings) expandPaths() error {
	var err error
	if s.Output.Dir, err = homedir.Expand(s.Output.Dir); err != nil {
		return fmt.Errorf("failed to expand output dir: %w", err)
	}
	if s.Logging.Dir, err = homedir.Expand(s.Logging.Dir); err != nil {
		return fmt.Errorf("failed to expand log dir: %w", err)
	}
	if s.ScenarioFile, err = homedir.Expand(s.ScenarioFile); err != nil {
		return fmt.Errorf("failed to expand scenario file path: %w", err)
	}
	return nil
}

// Validate checks the settings for values the harness cannot work with.
func (s *Settings) Validate() error {
	if s.Output.Dir == "" {
		return fmt.Errorf("output directory is required")
	}

	if s.Browser.ViewportWidth <= 0 || s.Browser.ViewportHeight <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", s.Browser.ViewportWidth, s.Browser.ViewportHeight)
	}

	if s.Browser.DefaultTimeout < 0 {
		return fmt.Errorf("default_timeout cannot be negative")
	}

	if s.Browser.SlowMo < 0 {
		return fmt.Errorf("slow_mo cannot be negative")
	}

	if s.Preflight.Timeout < 0 {
		return fmt.Errorf("preflight timeout cannot be negative")
	}

	if err := validateURL("local_url", s.Targets.LocalURL); err != nil {
		return err
	}
	if err := validateURL("deployed_url", s.Targets.DeployedURL); err != nil {
		return err
	}

	if s.Logging.Verbosity == "" {
		s.Logging.Verbosity = "normal"
	}
	validLevels := map[string]bool{
		"quiet":   true,
		"normal":  true,
		"verbose": true,
		"debug":   true,
	}
	if !validLevels[s.Logging.Verbosity] {
		return fmt.Errorf("invalid logging verbosity: %s (must be 'quiet', 'normal', 'verbose', or 'debug')", s.Logging.Verbosity)
	}

	return nil
}

func validateURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s has no host: %q", field, raw)
	}
	return nil
}
