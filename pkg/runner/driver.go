package runner

import (
	"github.com/entrhq/uiverify/pkg/browser"
)

// Page is the set of browser operations a scenario step can use.
// *browser.Session implements it.
type Page interface {
	Navigate(url string, opts browser.NavigateOptions) error
	Fill(loc browser.Locator, value string, timeout float64) error
	Click(loc browser.Locator, timeout float64) error
	WaitFor(loc browser.Locator, state string, timeout float64) error
	ExpectURL(url string, timeout float64) error
	ExpectVisible(loc browser.Locator, timeout float64) error
	ExpectHidden(loc browser.Locator, timeout float64) error
	Screenshot(opts browser.ScreenshotOptions) (int, error)
	Content() (string, error)
	URL() string
}

// Driver acquires and releases pages. Each scenario opens exactly one page
// and closes it when done, whatever the outcome.
type Driver interface {
	Open(name string, opts browser.SessionOptions) (Page, error)
	Close(name string) error
}

// BrowserDriver adapts a browser.SessionManager to Driver.
type BrowserDriver struct {
	manager *browser.SessionManager
}

// NewBrowserDriver wraps an initialized session manager.
func NewBrowserDriver(manager *browser.SessionManager) *BrowserDriver {
	return &BrowserDriver{manager: manager}
}

// Open starts a browser session named name.
func (d *BrowserDriver) Open(name string, opts browser.SessionOptions) (Page, error) {
	session, err := d.manager.StartSession(name, opts)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Close ends the session named name.
func (d *BrowserDriver) Close(name string) error {
	return d.manager.CloseSession(name)
}
