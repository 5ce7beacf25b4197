package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestLocatorValidate(t *testing.T) {
	tests := []struct {
		name    string
		loc     Locator
		wantErr string
	}{
		{name: "role with name", loc: Role("button", "Ingresar")},
		{name: "role without name", loc: Role("navigation", "")},
		{name: "placeholder", loc: Placeholder("nombre@empresa.com")},
		{name: "label", loc: Label("Contraseña")},
		{name: "text", loc: Text("Bienvenido")},
		{name: "xpath", loc: XPath(`//div[contains(@class, "lg:w-64")]`)},
		{name: "css", loc: CSS("#sidebar")},
		{name: "empty value", loc: Locator{By: ByRole}, wantErr: "locator value is required"},
		{name: "blank value", loc: Locator{By: ByCSS, Value: "  "}, wantErr: "locator value is required"},
		{name: "missing kind", loc: Locator{Value: "x"}, wantErr: "locator kind is required"},
		{name: "unknown kind", loc: Locator{By: "id", Value: "x"}, wantErr: "unknown locator kind: id"},
		{name: "name on non-role", loc: Locator{By: ByLabel, Value: "Email", Name: "x"}, wantErr: "name is only valid for role locators"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.loc.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLocatorString(t *testing.T) {
	tests := []struct {
		loc  Locator
		want string
	}{
		{Role("button", "Iniciar Sesión"), `role=button[name="Iniciar Sesión"]`},
		{Role("link", ""), "role=link"},
		{Placeholder("••••••••"), "placeholder=••••••••"},
		{Label("Email"), "label=Email"},
		{XPath("//div"), "xpath=//div"},
		{CSS(".btn"), "css=.btn"},
		{Locator{Value: "raw"}, "raw"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.loc.String())
		})
	}
}

func TestLocatorYAML(t *testing.T) {
	src := `
by: role
value: button
name: Cerrar Sesión
exact: true
`
	var loc Locator
	assert.NoError(t, yaml.Unmarshal([]byte(src), &loc))
	assert.Equal(t, Locator{By: ByRole, Value: "button", Name: "Cerrar Sesión", Exact: true}, loc)
	assert.NoError(t, loc.Validate())
}

func TestValidWaitState(t *testing.T) {
	for _, s := range []string{StateAttached, StateDetached, StateVisible, StateHidden} {
		assert.True(t, ValidWaitState(s), s)
	}
	assert.False(t, ValidWaitState(""))
	assert.False(t, ValidWaitState("enabled"))
}

func TestValidWaitUntil(t *testing.T) {
	for _, s := range []string{"", "load", "domcontentloaded", "networkidle", "commit"} {
		assert.True(t, ValidWaitUntil(s), s)
	}
	assert.False(t, ValidWaitUntil("idle"))
}
