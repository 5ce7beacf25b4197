package browser

import (
	"context"
	"errors"

	"github.com/playwright-community/playwright-go"
)

// ErrEmptyScreenshot is returned when the browser produced a zero-byte image.
var ErrEmptyScreenshot = errors.New("screenshot is empty")

// IsTimeout reports whether err came from a navigation, wait or action
// that ran out of time.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, playwright.ErrTimeout) || errors.Is(err, context.DeadlineExceeded)
}
