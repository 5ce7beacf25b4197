package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// UpdateLastUsed updates the LastUsedAt timestamp to the current time.
func (s *Session) UpdateLastUsed() {
	s.LastUsedAt = time.Now()
}

// Navigate navigates the session's page to the specified URL.
func (s *Session) Navigate(url string, opts NavigateOptions) error {
	s.UpdateLastUsed()

	if !ValidWaitUntil(opts.WaitUntil) {
		return fmt.Errorf("invalid wait_until: %s (must be 'load', 'domcontentloaded', 'networkidle', or 'commit')", opts.WaitUntil)
	}

	playwrightOpts := playwright.PageGotoOptions{}
	if opts.WaitUntil != "" {
		waitUntil := playwright.WaitUntilState(opts.WaitUntil)
		playwrightOpts.WaitUntil = &waitUntil
	}
	if opts.Timeout > 0 {
		playwrightOpts.Timeout = playwright.Float(opts.Timeout)
	}

	if _, err := s.Page.Goto(url, playwrightOpts); err != nil {
		return fmt.Errorf("navigation to %s failed: %w", url, err)
	}

	s.CurrentURL = s.Page.URL()
	return nil
}

// Fill types value into the element matched by loc.
func (s *Session) Fill(loc Locator, value string, timeout float64) error {
	s.UpdateLastUsed()

	l, err := resolve(s.Page, loc)
	if err != nil {
		return err
	}

	opts := playwright.LocatorFillOptions{}
	if timeout > 0 {
		opts.Timeout = playwright.Float(timeout)
	}
	if err := l.Fill(value, opts); err != nil {
		return fmt.Errorf("fill %s failed: %w", loc, err)
	}
	return nil
}

// Click clicks the element matched by loc.
func (s *Session) Click(loc Locator, timeout float64) error {
	s.UpdateLastUsed()

	l, err := resolve(s.Page, loc)
	if err != nil {
		return err
	}

	opts := playwright.LocatorClickOptions{}
	if timeout > 0 {
		opts.Timeout = playwright.Float(timeout)
	}
	if err := l.Click(opts); err != nil {
		return fmt.Errorf("click %s failed: %w", loc, err)
	}

	s.CurrentURL = s.Page.URL()
	return nil
}

// WaitFor blocks until the element matched by loc reaches state.
// An empty state waits for visibility.
func (s *Session) WaitFor(loc Locator, state string, timeout float64) error {
	s.UpdateLastUsed()

	if state == "" {
		state = StateVisible
	}
	if !ValidWaitState(state) {
		return fmt.Errorf("invalid state: %s (must be 'attached', 'detached', 'visible', or 'hidden')", state)
	}

	l, err := resolve(s.Page, loc)
	if err != nil {
		return err
	}

	waitState := playwright.WaitForSelectorState(state)
	opts := playwright.LocatorWaitForOptions{State: &waitState}
	if timeout > 0 {
		opts.Timeout = playwright.Float(timeout)
	}
	if err := l.WaitFor(opts); err != nil {
		return fmt.Errorf("wait for %s to be %s failed: %w", loc, state, err)
	}
	return nil
}

// ExpectURL asserts that the page URL becomes url, retrying until timeout.
func (s *Session) ExpectURL(url string, timeout float64) error {
	s.UpdateLastUsed()

	if err := assertions(timeout).Page(s.Page).ToHaveURL(url); err != nil {
		return fmt.Errorf("expected URL %s: %w", url, err)
	}

	s.CurrentURL = s.Page.URL()
	return nil
}

// ExpectVisible asserts that the element matched by loc becomes visible.
func (s *Session) ExpectVisible(loc Locator, timeout float64) error {
	s.UpdateLastUsed()

	l, err := resolve(s.Page, loc)
	if err != nil {
		return err
	}
	if err := assertions(timeout).Locator(l).ToBeVisible(); err != nil {
		return fmt.Errorf("expected %s to be visible: %w", loc, err)
	}
	return nil
}

// ExpectHidden asserts that the element matched by loc is hidden or absent.
func (s *Session) ExpectHidden(loc Locator, timeout float64) error {
	s.UpdateLastUsed()

	l, err := resolve(s.Page, loc)
	if err != nil {
		return err
	}
	if err := assertions(timeout).Locator(l).Not().ToBeVisible(); err != nil {
		return fmt.Errorf("expected %s to be hidden: %w", loc, err)
	}
	return nil
}

// Screenshot writes a PNG of the page, or of one element when
// opts.Locator is set, and returns the number of bytes captured.
func (s *Session) Screenshot(opts ScreenshotOptions) (int, error) {
	s.UpdateLastUsed()

	if opts.Path == "" {
		return 0, fmt.Errorf("screenshot path is required")
	}
	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("failed to create screenshot directory: %w", err)
		}
	}

	var (
		data []byte
		err  error
	)
	if opts.Locator != nil {
		var l playwright.Locator
		l, err = resolve(s.Page, *opts.Locator)
		if err != nil {
			return 0, err
		}
		lopts := playwright.LocatorScreenshotOptions{Path: playwright.String(opts.Path)}
		if opts.Timeout > 0 {
			lopts.Timeout = playwright.Float(opts.Timeout)
		}
		data, err = l.Screenshot(lopts)
	} else {
		popts := playwright.PageScreenshotOptions{
			Path:     playwright.String(opts.Path),
			FullPage: playwright.Bool(opts.FullPage),
		}
		if opts.Timeout > 0 {
			popts.Timeout = playwright.Float(opts.Timeout)
		}
		data, err = s.Page.Screenshot(popts)
	}
	if err != nil {
		return 0, fmt.Errorf("screenshot failed: %w", err)
	}
	if len(data) == 0 {
		return 0, ErrEmptyScreenshot
	}

	return len(data), nil
}

// Content returns the current page HTML.
func (s *Session) Content() (string, error) {
	s.UpdateLastUsed()

	content, err := s.Page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}
	return content, nil
}

// URL returns the URL of the current page.
func (s *Session) URL() string {
	return s.Page.URL()
}

func assertions(timeout float64) playwright.PlaywrightAssertions {
	if timeout <= 0 {
		timeout = DefaultAssertTimeout
	}
	return playwright.NewPlaywrightAssertions(timeout)
}
