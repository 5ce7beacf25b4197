package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()

	assert.True(t, s.Browser.Headless)
	assert.Equal(t, 1280, s.Browser.ViewportWidth)
	assert.Equal(t, 720, s.Browser.ViewportHeight)
	assert.Equal(t, 30*time.Second, s.Browser.DefaultTimeout)
	assert.Equal(t, "verification", s.Output.Dir)
	assert.Equal(t, "http://localhost:5173", s.Targets.LocalURL)
	assert.Equal(t, "https://articulosdelimpiezaevita.netlify.app/", s.Targets.DeployedURL)
	assert.Equal(t, "test@example.com", s.Targets.Local.Email)
	assert.Equal(t, "gerente@evita.com", s.Targets.Deployed.Email)
	assert.Equal(t, "normal", s.Logging.Verbosity)
	assert.False(t, s.Preflight.Enabled)
	assert.NoError(t, s.Validate())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Targets, s.Targets)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("UIVERIFY_TARGETS_LOCAL_URL", "http://127.0.0.1:4000")
	t.Setenv("UIVERIFY_BROWSER_HEADLESS", "false")
	t.Setenv("UIVERIFY_TARGETS_DEPLOYED_PASSWORD", "s3cret")
	t.Setenv("UIVERIFY_PREFLIGHT_TIMEOUT", "2s")

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:4000", s.Targets.LocalURL)
	assert.False(t, s.Browser.Headless)
	assert.Equal(t, "s3cret", s.Targets.Deployed.Password)
	assert.Equal(t, 2*time.Second, s.Preflight.Timeout)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `
browser:
  headless: false
  slow_mo: 250ms
output:
  dir: out/evidence
  pdf: false
targets:
  local_url: http://localhost:3000
logging:
  verbosity: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.False(t, s.Browser.Headless)
	assert.Equal(t, 250*time.Millisecond, s.Browser.SlowMo)
	assert.Equal(t, "out/evidence", s.Output.Dir)
	assert.False(t, s.Output.PDF)
	assert.True(t, s.Output.JSON, "unset keys keep defaults")
	assert.Equal(t, "http://localhost:3000", s.Targets.LocalURL)
	assert.Equal(t, "debug", s.Logging.Verbosity)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "uiverify.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  dir: from-file\n"), 0600))
	t.Setenv("UIVERIFY_OUTPUT_DIR", "from-env")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", s.Output.Dir)
}

func TestLoad_DiscoversFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "uiverify.yaml"), []byte("output:\n  dir: discovered\n"), 0600))

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "discovered", s.Output.Dir)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("UIVERIFY_LOGGING_VERBOSITY", "chatty")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verbosity")
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Settings)
		wantErr bool
	}{
		{
			name:    "defaults",
			mutate:  func(s *Settings) {},
			wantErr: false,
		},
		{
			name:    "empty output dir",
			mutate:  func(s *Settings) { s.Output.Dir = "" },
			wantErr: true,
		},
		{
			name:    "zero viewport",
			mutate:  func(s *Settings) { s.Browser.ViewportWidth = 0 },
			wantErr: true,
		},
		{
			name:    "negative timeout",
			mutate:  func(s *Settings) { s.Browser.DefaultTimeout = -time.Second },
			wantErr: true,
		},
		{
			name:    "non-http local url",
			mutate:  func(s *Settings) { s.Targets.LocalURL = "ftp://localhost" },
			wantErr: true,
		},
		{
			name:    "deployed url without host",
			mutate:  func(s *Settings) { s.Targets.DeployedURL = "https://" },
			wantErr: true,
		},
		{
			name:    "empty verbosity falls back to normal",
			mutate:  func(s *Settings) { s.Logging.Verbosity = "" },
			wantErr: false,
		},
		{
			name:    "negative preflight timeout",
			mutate:  func(s *Settings) { s.Preflight.Timeout = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Settings.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
