// Package browser drives Chromium through Playwright for UI verification runs.
//
// A SessionManager owns the Playwright driver process. Each Session wraps one
// browser, context and page, and exposes the handful of operations a
// verification scenario needs:
//
//   - Navigate to a URL with a load condition and timeout
//   - Fill and Click elements found by a Locator
//   - WaitFor an element state
//   - ExpectURL, ExpectVisible and ExpectHidden assertions that retry until
//     their timeout
//   - Screenshot of the page or of a single element
//
// Locators are plain values (role, placeholder, label, text, xpath or css) so
// that scenarios can be declared in YAML and printed in reports.
//
// # Usage
//
//	mgr := browser.NewSessionManager()
//	if err := mgr.Initialize(browser.InitOptions{}); err != nil {
//	    return err
//	}
//	defer mgr.Shutdown()
//
//	s, err := mgr.StartSession("app-loads", browser.SessionOptions{Headless: true})
//	if err != nil {
//	    return err
//	}
//	if err := s.Navigate("http://localhost:5173/", browser.NavigateOptions{WaitUntil: "load"}); err != nil {
//	    return err
//	}
//	_, err = s.Screenshot(browser.ScreenshotOptions{Path: "verification.png"})
//
// CleanDOM reduces a page's HTML to the markup that matters for locating
// elements, and is used to save a readable snapshot next to error screenshots.
package browser
