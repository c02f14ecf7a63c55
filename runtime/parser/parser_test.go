package parser

import (
	"strings"
	"testing"

	"github.com/yay-lang/yay/core/diag"
	"github.com/yay-lang/yay/core/value"
	"github.com/yay-lang/yay/runtime/outline"
	"github.com/yay-lang/yay/runtime/scanner"
)

// parseDoc runs the full pipeline over one document.
func parseDoc(t *testing.T, src string) (*value.Value, *diag.Error) {
	t.Helper()
	lines, err := scanner.Scan([]byte(src))
	if err != nil {
		return nil, err
	}
	return Parse(outline.Lex(lines))
}

// mustParse fails the test on any parse error.
func mustParse(t *testing.T, src string) *value.Value {
	t.Helper()
	v, err := parseDoc(t, src)
	if err != nil {
		t.Fatalf("parse(%q): unexpected error: %s at %d:%d", src, err.Message, err.Line, err.Column)
	}
	return v
}

// wantValue parses src and compares against want structurally.
func wantValue(t *testing.T, src string, want *value.Value) {
	t.Helper()
	got := mustParse(t, src)
	if !value.Equal(want, got) {
		t.Errorf("parse(%q):\n  want: %s\n  got:  %s", src, want, got)
	}
}

// wantError parses src and checks message substring and 1-based
// position.
func wantError(t *testing.T, src, message string, line, column int) {
	t.Helper()
	_, err := parseDoc(t, src)
	if err == nil {
		t.Fatalf("parse(%q): expected error containing %q, got success", src, message)
	}
	if !strings.Contains(err.Message, message) {
		t.Errorf("parse(%q): error = %q, want it to contain %q", src, err.Message, message)
	}
	if line > 0 && (err.Line != line || err.Column != column) {
		t.Errorf("parse(%q): error at %d:%d, want %d:%d (%s)", src, err.Line, err.Column, line, column, err.Message)
	}
}
