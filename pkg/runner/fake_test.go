package runner

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/entrhq/uiverify/pkg/browser"
)

// writePNG writes a small valid PNG so pdf import has something real to read.
func writePNG(path string) (int, error) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 0xFF, G: 0xB3, B: 0xBA, A: 0xFF})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}

// fakePage records calls and fails on demand.
type fakePage struct {
	mu    sync.Mutex
	calls []string

	// failOn maps a method name to the error it returns
	failOn map[string]error
	// panicOn makes a method panic
	panicOn string

	url     string
	content string
}

func (p *fakePage) record(name string) error {
	p.mu.Lock()
	p.calls = append(p.calls, name)
	p.mu.Unlock()
	if p.panicOn == name {
		panic("page exploded")
	}
	return p.failOn[name]
}

func (p *fakePage) Navigate(url string, _ browser.NavigateOptions) error {
	if err := p.record("Navigate"); err != nil {
		return err
	}
	p.url = url
	return nil
}

func (p *fakePage) Fill(browser.Locator, string, float64) error {
	return p.record("Fill")
}

func (p *fakePage) Click(browser.Locator, float64) error {
	return p.record("Click")
}

func (p *fakePage) WaitFor(browser.Locator, string, float64) error {
	return p.record("WaitFor")
}

func (p *fakePage) ExpectURL(url string, _ float64) error {
	if err := p.record("ExpectURL"); err != nil {
		return err
	}
	p.url = url
	return nil
}

func (p *fakePage) ExpectVisible(browser.Locator, float64) error {
	return p.record("ExpectVisible")
}

func (p *fakePage) ExpectHidden(browser.Locator, float64) error {
	return p.record("ExpectHidden")
}

func (p *fakePage) Screenshot(opts browser.ScreenshotOptions) (int, error) {
	name := "Screenshot"
	if filepath.Base(opts.Path) == ErrorScreenshot {
		name = "ErrorScreenshot"
	}
	if err := p.record(name); err != nil {
		return 0, err
	}
	return writePNG(opts.Path)
}

func (p *fakePage) Content() (string, error) {
	if err := p.record("Content"); err != nil {
		return "", err
	}
	if p.content == "" {
		return "<html><head><title>Fake</title><script>x()</script></head><body><h1>Tablero</h1></body></html>", nil
	}
	return p.content, nil
}

func (p *fakePage) URL() string {
	return p.url
}

func (p *fakePage) called(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, c := range p.calls {
		if c == name {
			n++
		}
	}
	return n
}

// fakeDriver hands out fakePages and tracks open sessions.
type fakeDriver struct {
	page    *fakePage
	openErr error

	opened []string
	closed []string
	opts   []browser.SessionOptions
}

func (d *fakeDriver) Open(name string, opts browser.SessionOptions) (Page, error) {
	d.opened = append(d.opened, name)
	d.opts = append(d.opts, opts)
	if d.openErr != nil {
		return nil, d.openErr
	}
	return d.page, nil
}

func (d *fakeDriver) Close(name string) error {
	d.closed = append(d.closed, name)
	return nil
}

// stubCheck is a preflight check with a fixed outcome.
type stubCheck struct {
	name     string
	required bool
	err      error
}

func (c *stubCheck) Name() string { return c.name }

func (c *stubCheck) Required() bool { return c.required }

func (c *stubCheck) Execute(context.Context) error { return c.err }

var errBoom = errors.New("boom")

func newTestRunner(t *testing.T, d Driver, mutate func(*Config), opts ...Option) (*Runner, *bytes.Buffer) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()
	if mutate != nil {
		mutate(cfg)
	}
	var out bytes.Buffer
	opts = append([]Option{WithReporter(NewReporterTo(&out, LogLevelNormal))}, opts...)
	return New(d, cfg, opts...), &out
}
