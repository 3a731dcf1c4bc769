package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"--version"}, true},
		{[]string{"-V"}, true},
		{[]string{"--workers", "4", "-version"}, true},
		{[]string{"--", "--version"}, false},
		{[]string{"-v"}, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%q) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintVersion(&buf)
	for _, want := range []string{"hashrace " + Version, "commit:", "go:"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("PrintVersion() missing %q:\n%s", want, buf.String())
		}
	}
}
