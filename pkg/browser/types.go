package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session represents an active browser session with its associated resources.
type Session struct {
	// Name is the unique identifier for this session
	Name string

	// Browser is the Playwright browser instance
	Browser playwright.Browser

	// Context is the browser context (isolated cookies and storage)
	Context playwright.BrowserContext

	// Page is the current active page
	Page playwright.Page

	// Headless indicates if the browser is running in headless mode
	Headless bool

	// CreatedAt is the timestamp when the session was created
	CreatedAt time.Time

	// LastUsedAt is the timestamp of the last operation on this session
	LastUsedAt time.Time

	// CurrentURL is the URL of the current page
	CurrentURL string
}

// InitOptions configures the Playwright driver start.
type InitOptions struct {
	// SkipInstall assumes the driver and Chromium are already installed
	SkipInstall bool

	// Verbose forwards driver install output to stderr
	Verbose bool
}

// SessionOptions configures a new browser session.
type SessionOptions struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// Viewport sets the initial viewport size
	Viewport *Viewport

	// Timeout sets the default timeout for operations (in milliseconds)
	Timeout float64

	// SlowMo slows every operation down by this many milliseconds
	SlowMo float64
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// NavigateOptions configures page navigation behavior.
type NavigateOptions struct {
	// WaitUntil specifies when to consider navigation successful
	// Valid values: "load", "domcontentloaded", "networkidle", "commit"
	WaitUntil string

	// Timeout in milliseconds (0 means default)
	Timeout float64
}

// ScreenshotOptions configures a screenshot capture.
type ScreenshotOptions struct {
	// Path is where the PNG is written
	Path string

	// Locator restricts the capture to one element; nil captures the page
	Locator *Locator

	// FullPage captures the whole scrollable page (page captures only)
	FullPage bool

	// Timeout in milliseconds
	Timeout float64
}

// Wait states accepted by Session.WaitFor.
const (
	StateAttached = "attached"
	StateDetached = "detached"
	StateVisible  = "visible"
	StateHidden   = "hidden"
)

// Default values for various operations
const (
	DefaultTimeout        = 30000.0 // 30 seconds in milliseconds
	DefaultAssertTimeout  = 5000.0  // matches Playwright's expect() default
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
	DefaultMaxSessions    = 5
)

// ValidWaitState reports whether state is accepted by WaitFor.
func ValidWaitState(state string) bool {
	switch state {
	case StateAttached, StateDetached, StateVisible, StateHidden:
		return true
	}
	return false
}

// ValidWaitUntil reports whether s is a navigation wait condition.
func ValidWaitUntil(s string) bool {
	switch s {
	case "", "load", "domcontentloaded", "networkidle", "commit":
		return true
	}
	return false
}
