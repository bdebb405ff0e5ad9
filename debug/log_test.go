package debug

import (
	"bytes"
	"testing"

	"github.com/signadot/clangfmt/ir"
)

func TestLogfRendersNodes(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	prev := SetOutput(buf)
	defer SetOutput(prev)

	n := ir.FromKeyVals([]ir.KeyVal{{Key: ir.FromString("ColumnLimit"), Val: ir.FromInt(80)}})
	Logf("settings %v (%d)\n", n, 1)

	if got, want := buf.String(), "settings {\"ColumnLimit\":80} (1)\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestLogAny(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	prev := SetOutput(buf)
	defer SetOutput(prev)

	LogAny(map[string]int{"a": 1})
	if got, want := buf.String(), "{\"a\":1}\n"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}
