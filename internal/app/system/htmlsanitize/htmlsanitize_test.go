package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/perceptai/perceptai/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	if got := htmlsanitize.Sanitize("Hello, World!"); got != "Hello, World!" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestSanitize_SafeHTML(t *testing.T) {
	input := "<p><strong>Bold</strong> and <em>italic</em></p>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected safe HTML preserved, got %q", got)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	input := "<p>Hello</p><script>alert('xss')</script>"
	if got := htmlsanitize.Sanitize(input); got != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestSanitize_RemovesOnclick(t *testing.T) {
	input := `<button onclick="alert('xss')">Click</button>`
	if got := htmlsanitize.Sanitize(input); strings.Contains(got, "onclick") {
		t.Errorf("expected onclick attribute removed, got %q", got)
	}
}

func TestStrip_RemovesAllMarkup(t *testing.T) {
	input := `<a href="https://example.com">Link</a> text`
	if got := htmlsanitize.Strip(input); got != "Link text" {
		t.Errorf("expected all markup stripped, got %q", got)
	}
}

func TestStripAll(t *testing.T) {
	got := htmlsanitize.StripAll([]string{"<b>go</b>", "opencv"})
	if got[0] != "go" || got[1] != "opencv" {
		t.Errorf("StripAll = %v", got)
	}
}
