package browser

import (
	"strings"
	"testing"
)

func TestCleanDOM(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxLength int
		wantTitle string
		wantHTML  []string // substrings that should be present
		wantNot   []string // substrings that should NOT be present
		truncated bool
	}{
		{
			name: "drops script style and comments",
			input: `<html>
				<head>
					<title>Evita</title>
					<script>window.secret = 1;</script>
					<style>body { color: red; }</style>
				</head>
				<body>
					<!-- build 42 -->
					<h1 id="title">Iniciar Sesión</h1>
				</body>
			</html>`,
			maxLength: 10000,
			wantTitle: "Evita",
			wantHTML:  []string{`<h1 id="title">`, "Iniciar Sesión"},
			wantNot:   []string{"<script>", "window.secret", "<style>", "color: red", "build 42"},
		},
		{
			name: "keeps locator attributes",
			input: `<html><body>
				<form>
					<label for="email">Email</label>
					<input id="email" type="email" placeholder="nombre@empresa.com" onclick="steal()">
					<button type="submit" aria-label="Ingresar" data-testid="submit">Ingresar</button>
				</form>
			</body></html>`,
			maxLength: 10000,
			wantHTML: []string{
				`for="email"`,
				`placeholder="nombre@empresa.com"`,
				`aria-label="Ingresar"`,
				`data-testid="submit"`,
			},
			wantNot: []string{"onclick", "steal()"},
		},
		{
			name:      "keeps sidebar class for xpath matching",
			input:     `<html><body><div class="hidden lg:w-64 bg-white"><a href="/tablero">Tablero</a></div></body></html>`,
			maxLength: 10000,
			wantHTML:  []string{`class="hidden lg:w-64 bg-white"`, `href="/tablero"`},
		},
		{
			name:      "void elements have no closing tag",
			input:     `<html><body><input type="password"><br></body></html>`,
			maxLength: 10000,
			wantHTML:  []string{`<input type="password">`},
			wantNot:   []string{"</input>", "</br>"},
		},
		{
			name:      "truncates long content",
			input:     `<html><body><p>` + strings.Repeat("a", 500) + `</p></body></html>`,
			maxLength: 100,
			wantHTML:  []string{"..."},
			truncated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanDOM(tt.input, tt.maxLength)
			if err != nil {
				t.Fatalf("CleanDOM() error = %v", err)
			}

			if got.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got.Title, tt.wantTitle)
			}
			if got.Truncated != tt.truncated {
				t.Errorf("Truncated = %v, want %v", got.Truncated, tt.truncated)
			}
			for _, want := range tt.wantHTML {
				if !strings.Contains(got.HTML, want) {
					t.Errorf("HTML missing %q\ngot:\n%s", want, got.HTML)
				}
			}
			for _, notWant := range tt.wantNot {
				if strings.Contains(got.HTML, notWant) {
					t.Errorf("HTML should not contain %q\ngot:\n%s", notWant, got.HTML)
				}
			}
		})
	}
}

func TestCleanDOMDefaultLength(t *testing.T) {
	got, err := CleanDOM(`<p>`+strings.Repeat("x", 1000)+`</p>`, 0)
	if err != nil {
		t.Fatalf("CleanDOM() error = %v", err)
	}
	if got.Truncated {
		t.Error("1000 bytes should fit in the default snapshot length")
	}
}
