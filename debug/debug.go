package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
)

type debug struct {
	Resolve bool
	Style   bool
	Exec    bool
	LSP     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Resolve = boolEnv("CLANGFMT_DEBUG_RESOLVE")
	d.Style = boolEnv("CLANGFMT_DEBUG_STYLE")
	d.Exec = boolEnv("CLANGFMT_DEBUG_EXEC")
	d.LSP = boolEnv("CLANGFMT_DEBUG_LSP")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Resolve() bool {
	return d.Resolve
}
func Style() bool {
	return d.Style
}
func Exec() bool {
	return d.Exec
}
func LSP() bool {
	return d.LSP
}

var (
	outMu sync.Mutex
	out   io.Writer = os.Stderr
)

// SetOutput redirects debug output, returning the previous writer.
func SetOutput(w io.Writer) io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	prev := out
	out = w
	return prev
}

func LogAny(v any) {
	outMu.Lock()
	defer outMu.Unlock()
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(out, "%v\n", v)
		return
	}
	out.Write(d)
	out.Write([]byte{'\n'})
}
