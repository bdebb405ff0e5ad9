package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/signadot/clangfmt/config"
	"github.com/signadot/clangfmt/debug"
	"github.com/signadot/clangfmt/style"
)

// waitDelay bounds how long Wait lingers on output pipes held open after
// a cancelled formatter is killed.
const waitDelay = time.Second

// Range is a half-open byte span of a document.
type Range struct {
	Start, End int
}

type Request struct {
	Text   string
	Range  *Range
	Config *config.Configuration
	// Path is the document's file path, if any.
	Path string
}

// Runner runs one formatter process per request. It holds no per-request
// state and is safe for concurrent use.
type Runner struct {
	command        string
	args           []string
	timeout        time.Duration
	dir            string
	env            []string
	assumeFilename bool
}

func New(opts ...Option) *Runner {
	r := &Runner{command: DefaultCommand}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) Command() string {
	return r.command
}

// Run formats req.Text. Range requests are never formatted and yield
// Unchanged. A failed run never affects later runs.
func (r *Runner) Run(ctx context.Context, req *Request) Outcome {
	if req.Range != nil {
		return Outcome{Kind: Unchanged}
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.command, r.argv(req)...)
	cmd.Dir = r.dir
	cmd.Env = r.env
	cmd.WaitDelay = waitDelay
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return failed(&StartError{Command: r.command, Err: err})
	}
	oBuf := bytes.NewBuffer(nil)
	cmd.Stdout = oBuf
	eBuf := bytes.NewBuffer(nil)
	cmd.Stderr = eBuf

	if debug.Exec() {
		debug.Logf("exec %s (%d bytes in)\n", cmd, len(req.Text))
	}
	if err := cmd.Start(); err != nil {
		return failed(&StartError{Command: r.command, Err: err})
	}

	// The formatter may emit output before consuming all of its input, so
	// stdin is fed concurrently with exec draining stdout and stderr.
	g := &errgroup.Group{}
	g.Go(func() error {
		_, err := io.WriteString(stdin, req.Text)
		if cErr := stdin.Close(); err == nil {
			err = cErr
		}
		return err
	})
	waitErr := cmd.Wait()
	writeErr := g.Wait()
	return r.outcome(ctx, req, waitErr, writeErr, oBuf.String(), eBuf.String())
}

// outcome classifies a finished run. A formatter that exited successfully
// keeps its output even if ctx expired meanwhile.
func (r *Runner) outcome(ctx context.Context, req *Request, waitErr, writeErr error, stdout, stderr string) Outcome {
	if waitErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return failed(fmt.Errorf("error running %s: %w", r.command, ctxErr))
		}
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return failed(&ExitError{
				Command:  r.command,
				ExitCode: exitErr.ExitCode(),
				Stderr:   lossy(stderr),
			})
		}
		return failed(fmt.Errorf("error running %s: %w (%q)", r.command, waitErr, stderr))
	}
	if writeErr != nil && !benignWriteErr(writeErr) {
		return failed(fmt.Errorf("error writing to %s: %w", r.command, writeErr))
	}

	out := stdout
	if debug.Exec() {
		debug.Logf("exec %s done (%d bytes out)\n", r.command, len(out))
	}
	if out == req.Text {
		return Outcome{Kind: Unchanged}
	}
	// Documents that are not UTF-8 get the bytes back as written.
	if utf8.ValidString(req.Text) {
		out = lossy(out)
	}
	return Outcome{Kind: Rewritten, Text: out}
}

func (r *Runner) argv(req *Request) []string {
	args := slices.Clone(r.args)
	args = append(args, style.Flag(req.Config, req.Text))
	if r.assumeFilename && req.Path != "" {
		args = append(args, "--assume-filename="+req.Path)
	}
	return args
}

// lossy replaces each invalid UTF-8 sequence of s with U+FFFD.
func lossy(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		r, n := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && n == 1 {
			b.WriteRune(utf8.RuneError)
		} else {
			b.WriteString(s[:n])
		}
		s = s[n:]
	}
	return b.String()
}

// benignWriteErr reports errors caused by a formatter that exited
// successfully without reading all of its input.
func benignWriteErr(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, os.ErrClosed)
}
