package scenario

import (
	"strings"
	"time"

	"github.com/entrhq/uiverify/pkg/browser"
	"github.com/entrhq/uiverify/pkg/config"
)

// Names of the built-in scenarios.
const (
	AppLoads      = "app-loads"
	HiddenButtons = "hidden-buttons"
	DeployedLogin = "deployed-login"
)

// VerificationFile is the screenshot every built-in scenario writes on success.
const VerificationFile = "verification.png"

// Builtins returns the three standard verification flows against targets.
func Builtins(targets config.Targets) Set {
	return Set{
		appLoads(targets),
		hiddenButtons(targets),
		deployedLogin(targets),
	}
}

func appLoads(t config.Targets) *Scenario {
	button := browser.Role("button", "Iniciar Sesión")
	return &Scenario{
		Name:        AppLoads,
		Description: "Application root loads and shows the login button",
		Steps: []Step{
			{Action: ActionGoto, URL: joinURL(t.LocalURL, "/"), WaitUntil: "load", Timeout: 60 * time.Second},
			{Action: ActionWait, Locator: &button, State: browser.StateVisible, Timeout: 30 * time.Second},
			{Action: ActionScreenshot, Path: VerificationFile},
		},
	}
}

func hiddenButtons(t config.Targets) *Scenario {
	email := browser.Placeholder("nombre@empresa.com")
	password := browser.Placeholder("••••••••")
	submit := browser.Role("button", "Ingresar")
	accounting := browser.Role("button", "Contabilidad")
	prospects := browser.Role("link", "Prospectos")
	sidebar := browser.XPath(`//div[contains(@class, "lg:w-64")]`)

	return &Scenario{
		Name:        HiddenButtons,
		Description: "Restricted navigation is hidden after a standard user logs in",
		Steps: []Step{
			{Action: ActionGoto, URL: joinURL(t.LocalURL, "/login")},
			{Action: ActionFill, Locator: &email, Value: t.Local.Email},
			{Action: ActionFill, Locator: &password, Value: t.Local.Password, Secret: true},
			{Action: ActionClick, Locator: &submit},
			{Action: ActionExpectURL, URL: joinURL(t.LocalURL, "/tablero")},
			{Action: ActionExpectHidden, Locator: &accounting},
			{Action: ActionExpectHidden, Locator: &prospects},
			{Action: ActionScreenshot, Locator: &sidebar, Path: VerificationFile},
		},
	}
}

func deployedLogin(t config.Targets) *Scenario {
	email := browser.Label("Email")
	password := browser.Label("Contraseña")
	submit := browser.Role("button", "Iniciar Sesión")
	logout := browser.Role("button", "Cerrar Sesión")

	return &Scenario{
		Name:        DeployedLogin,
		Description: "Manager account can log in to the deployed site",
		Steps: []Step{
			{Action: ActionGoto, URL: t.DeployedURL},
			{Action: ActionFill, Locator: &email, Value: t.Deployed.Email},
			{Action: ActionFill, Locator: &password, Value: t.Deployed.Password, Secret: true},
			{Action: ActionClick, Locator: &submit},
			{Action: ActionExpectVisible, Locator: &logout},
			{Action: ActionScreenshot, Path: VerificationFile},
		},
	}
}

// joinURL appends path to base without doubling the slash between them.
func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
