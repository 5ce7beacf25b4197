package scenario

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/entrhq/uiverify/pkg/browser"
)

// Action is the kind of work a Step performs.
type Action string

const (
	// ActionGoto navigates to URL
	ActionGoto Action = "goto"
	// ActionFill types Value into Locator
	ActionFill Action = "fill"
	// ActionClick clicks Locator
	ActionClick Action = "click"
	// ActionWait waits for Locator to reach State
	ActionWait Action = "wait"
	// ActionExpectURL asserts the page URL equals URL
	ActionExpectURL Action = "expect_url"
	// ActionExpectVisible asserts Locator is visible
	ActionExpectVisible Action = "expect_visible"
	// ActionExpectHidden asserts Locator is hidden or absent
	ActionExpectHidden Action = "expect_hidden"
	// ActionScreenshot captures the page, or Locator if set, to Path
	ActionScreenshot Action = "screenshot"
)

// Step is one operation in a scenario. Which fields apply depends on Action.
type Step struct {
	Action    Action           `yaml:"action" json:"action"`
	URL       string           `yaml:"url,omitempty" json:"url,omitempty"`
	Locator   *browser.Locator `yaml:"locator,omitempty" json:"locator,omitempty"`
	Value     string           `yaml:"value,omitempty" json:"-"`
	Secret    bool             `yaml:"secret,omitempty" json:"secret,omitempty"`
	State     string           `yaml:"state,omitempty" json:"state,omitempty"`
	WaitUntil string           `yaml:"wait_until,omitempty" json:"wait_until,omitempty"`
	Path      string           `yaml:"path,omitempty" json:"path,omitempty"`
	FullPage  bool             `yaml:"full_page,omitempty" json:"full_page,omitempty"`
	Timeout   time.Duration    `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// Scenario is a named verification flow.
type Scenario struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Steps       []Step `yaml:"steps" json:"steps"`
}

// Validate checks that the scenario has a name and that every step carries
// the fields its action needs.
func (s *Scenario) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("scenario name is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %q has no steps", s.Name)
	}
	for i := range s.Steps {
		if err := s.Steps[i].Validate(); err != nil {
			return fmt.Errorf("scenario %q step %d (%s): %w", s.Name, i+1, s.Steps[i].Action, err)
		}
	}
	return nil
}

// EntryURL returns the URL of the first goto step, or "" if there is none.
func (s *Scenario) EntryURL() string {
	for _, step := range s.Steps {
		if step.Action == ActionGoto {
			return step.URL
		}
	}
	return ""
}

// Validate checks the step fields against its action.
func (st *Step) Validate() error {
	if st.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}

	switch st.Action {
	case ActionGoto:
		if st.URL == "" {
			return fmt.Errorf("url is required")
		}
		if !browser.ValidWaitUntil(st.WaitUntil) {
			return fmt.Errorf("invalid wait_until: %s", st.WaitUntil)
		}
	case ActionExpectURL:
		if st.URL == "" {
			return fmt.Errorf("url is required")
		}
	case ActionFill, ActionClick, ActionExpectVisible, ActionExpectHidden:
		if err := st.requireLocator(); err != nil {
			return err
		}
	case ActionWait:
		if err := st.requireLocator(); err != nil {
			return err
		}
		if st.State != "" && !browser.ValidWaitState(st.State) {
			return fmt.Errorf("invalid state: %s (must be 'attached', 'detached', 'visible', or 'hidden')", st.State)
		}
	case ActionScreenshot:
		if st.Path == "" {
			return fmt.Errorf("path is required")
		}
		if filepath.IsAbs(st.Path) || strings.HasPrefix(filepath.Clean(st.Path), "..") {
			return fmt.Errorf("path must be relative to the output directory: %s", st.Path)
		}
		if !strings.EqualFold(filepath.Ext(st.Path), ".png") {
			return fmt.Errorf("path must end in .png: %s", st.Path)
		}
		if st.Locator != nil {
			if err := st.Locator.Validate(); err != nil {
				return err
			}
		}
	case "":
		return fmt.Errorf("action is required")
	default:
		return fmt.Errorf("unknown action: %s", st.Action)
	}
	return nil
}

func (st *Step) requireLocator() error {
	if st.Locator == nil {
		return fmt.Errorf("locator is required")
	}
	return st.Locator.Validate()
}

// TimeoutMillis returns the step timeout in the unit Playwright expects,
// or 0 when the step uses the session default.
func (st *Step) TimeoutMillis() float64 {
	return float64(st.Timeout) / float64(time.Millisecond)
}

// Describe renders the step on one line with secret values masked.
func (st *Step) Describe() string {
	switch st.Action {
	case ActionGoto:
		return fmt.Sprintf("goto %s", st.URL)
	case ActionExpectURL:
		return fmt.Sprintf("expect url %s", st.URL)
	case ActionFill:
		value := st.Value
		if st.Secret {
			value = strings.Repeat("*", 8)
		}
		return fmt.Sprintf("fill %s with %q", st.Locator, value)
	case ActionClick:
		return fmt.Sprintf("click %s", st.Locator)
	case ActionWait:
		state := st.State
		if state == "" {
			state = browser.StateVisible
		}
		return fmt.Sprintf("wait for %s to be %s", st.Locator, state)
	case ActionExpectVisible:
		return fmt.Sprintf("expect %s visible", st.Locator)
	case ActionExpectHidden:
		return fmt.Sprintf("expect %s hidden", st.Locator)
	case ActionScreenshot:
		if st.Locator != nil {
			return fmt.Sprintf("screenshot %s to %s", st.Locator, st.Path)
		}
		return fmt.Sprintf("screenshot page to %s", st.Path)
	default:
		return string(st.Action)
	}
}
