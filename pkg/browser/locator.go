package browser

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// LocatorKind identifies how a Locator finds its element.
type LocatorKind string

const (
	// ByRole matches the ARIA role in Value and, if set, the accessible Name
	ByRole LocatorKind = "role"
	// ByPlaceholder matches an input by its placeholder text
	ByPlaceholder LocatorKind = "placeholder"
	// ByLabel matches a form control by its associated label text
	ByLabel LocatorKind = "label"
	// ByText matches an element by its text content
	ByText LocatorKind = "text"
	// ByXPath matches an XPath expression
	ByXPath LocatorKind = "xpath"
	// ByCSS matches a CSS selector
	ByCSS LocatorKind = "css"
)

// Locator is a serializable description of a page element query.
type Locator struct {
	By    LocatorKind `yaml:"by" json:"by"`
	Value string      `yaml:"value" json:"value"`
	Name  string      `yaml:"name,omitempty" json:"name,omitempty"`
	Exact bool        `yaml:"exact,omitempty" json:"exact,omitempty"`
}

// Role returns a locator for the ARIA role with the given accessible name.
func Role(role, name string) Locator {
	return Locator{By: ByRole, Value: role, Name: name}
}

// Placeholder returns a locator for an input with the given placeholder.
func Placeholder(text string) Locator {
	return Locator{By: ByPlaceholder, Value: text}
}

// Label returns a locator for the control labelled text.
func Label(text string) Locator {
	return Locator{By: ByLabel, Value: text}
}

// Text returns a locator for an element containing text.
func Text(text string) Locator {
	return Locator{By: ByText, Value: text}
}

// XPath returns a locator for an XPath expression.
func XPath(expr string) Locator {
	return Locator{By: ByXPath, Value: expr}
}

// CSS returns a locator for a CSS selector.
func CSS(selector string) Locator {
	return Locator{By: ByCSS, Value: selector}
}

// Validate checks that the locator can be resolved.
func (l Locator) Validate() error {
	if strings.TrimSpace(l.Value) == "" {
		return fmt.Errorf("locator value is required")
	}

	switch l.By {
	case ByRole, ByPlaceholder, ByLabel, ByText, ByXPath, ByCSS:
	case "":
		return fmt.Errorf("locator kind is required")
	default:
		return fmt.Errorf("unknown locator kind: %s (must be one of role, placeholder, label, text, xpath, css)", l.By)
	}

	if l.Name != "" && l.By != ByRole {
		return fmt.Errorf("name is only valid for role locators")
	}

	return nil
}

// String renders the locator the way Playwright prints selectors.
func (l Locator) String() string {
	switch l.By {
	case ByRole:
		if l.Name == "" {
			return fmt.Sprintf("role=%s", l.Value)
		}
		return fmt.Sprintf("role=%s[name=%q]", l.Value, l.Name)
	case "":
		return l.Value
	default:
		return fmt.Sprintf("%s=%s", l.By, l.Value)
	}
}

// resolve turns the description into a live Playwright locator on page.
func resolve(page playwright.Page, l Locator) (playwright.Locator, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	var exact *bool
	if l.Exact {
		exact = playwright.Bool(true)
	}

	switch l.By {
	case ByRole:
		opts := playwright.PageGetByRoleOptions{Exact: exact}
		if l.Name != "" {
			opts.Name = l.Name
		}
		return page.GetByRole(playwright.AriaRole(l.Value), opts), nil
	case ByPlaceholder:
		return page.GetByPlaceholder(l.Value, playwright.PageGetByPlaceholderOptions{Exact: exact}), nil
	case ByLabel:
		return page.GetByLabel(l.Value, playwright.PageGetByLabelOptions{Exact: exact}), nil
	case ByText:
		return page.GetByText(l.Value, playwright.PageGetByTextOptions{Exact: exact}), nil
	case ByXPath:
		return page.Locator("xpath=" + l.Value), nil
	default:
		return page.Locator(l.Value), nil
	}
}
