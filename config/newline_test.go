package config

import (
	"runtime"
	"testing"
)

func TestNewLineKindResolve(t *testing.T) {
	system := "\n"
	if runtime.GOOS == "windows" {
		system = "\r\n"
	}
	tests := []struct {
		kind NewLineKind
		text string
		want string
	}{
		{LF, "a\r\nb\r\n", "\n"},
		{CRLF, "a\nb\n", "\r\n"},
		{Auto, "", "\n"},
		{Auto, "no newline", "\n"},
		{Auto, "a\r\nb\r\n", "\r\n"},
		{Auto, "a\nb\n", "\n"},
		{Auto, "a\nb\r\n", "\r\n"},
		{Auto, "\n", "\n"},
		{System, "a\r\n", system},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.Resolve(tt.text); got != tt.want {
				t.Errorf("%s.Resolve(%q) = %q want %q", tt.kind, tt.text, got, tt.want)
			}
		})
	}
}

func TestParseNewLineKind(t *testing.T) {
	for _, name := range []string{"auto", "lf", "crlf", "system"} {
		k, err := ParseNewLineKind(name)
		if err != nil {
			t.Fatal(err)
		}
		if k.String() != name {
			t.Errorf("got %s want %s", k, name)
		}
	}
	if _, err := ParseNewLineKind("CRLF"); err == nil {
		t.Errorf("expected error for upper case name")
	}
}
