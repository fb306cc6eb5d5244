package errors

import "testing"

func TestWrapOrdersLayersOutermostFirst(t *testing.T) {
	err := New(KindRuntime, 3, Position{Line: 1, Column: 4}, "undefined constant: n")
	err.Wrap("while evaluating invoke parameters")
	err.Wrap("while calling function sq")

	want := []string{
		"while calling function sq",
		"while evaluating invoke parameters",
		"undefined constant: n",
	}
	if len(err.Layers) != len(want) {
		t.Fatalf("Layers = %v, want %v", err.Layers, want)
	}
	for i, layer := range want {
		if err.Layers[i] != layer {
			t.Errorf("Layers[%d] = %q, want %q", i, err.Layers[i], layer)
		}
	}
}

func TestErrorReturnsInnermostMessage(t *testing.T) {
	err := New(KindParse, 0, Position{Line: 1, Column: 1}, "invalid literal")
	err.Wrap("while lexing")
	if got := err.Error(); got != "invalid literal" {
		t.Errorf("Error() = %q, want %q", got, "invalid literal")
	}
}

func TestRenderWindowAndCaret(t *testing.T) {
	source := []string{"[", "+", " ", "2", " ", "x", "]"}
	err := New(KindRuntime, 5, Position{Line: 1, Column: 6}, "undefined constant: x")
	err.WithSource(source)

	rendered := err.Render()
	if rendered == "" {
		t.Fatal("Render() returned empty string")
	}
	if !contains(rendered, "undefined constant: x") {
		t.Errorf("Render() missing base message: %q", rendered)
	}
	if !contains(rendered, "^") {
		t.Errorf("Render() missing caret marker: %q", rendered)
	}
}

func TestRenderEscapesWhitespace(t *testing.T) {
	source := []string{"a", "\n", "b"}
	err := New(KindParse, 1, Position{Line: 1, Column: 2}, "invalid literal")
	err.WithSource(source)

	rendered := err.Render()
	if !contains(rendered, `\n`) {
		t.Errorf("Render() did not escape newline: %q", rendered)
	}
}

func TestRenderWithoutSourceOmitsWindow(t *testing.T) {
	err := New(KindSemantic, 0, Position{Line: 2, Column: 1}, "unterminated list")
	rendered := err.Render()
	if !contains(rendered, "unterminated list") {
		t.Errorf("Render() missing message: %q", rendered)
	}
}

func contains(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}
