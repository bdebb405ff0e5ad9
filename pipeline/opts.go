package pipeline

import (
	"slices"
	"time"
)

// DefaultCommand is the formatter looked up in PATH.
const DefaultCommand = "clang-format"

type Option func(*Runner)

// WithCommand sets the formatter executable and arguments placed before
// the style flag.
func WithCommand(command string, args ...string) Option {
	return func(r *Runner) {
		r.command = command
		r.args = slices.Clone(args)
	}
}

// WithTimeout bounds each run. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) { r.timeout = d }
}

// WithDir sets the working directory of the formatter, which is where
// clang-format starts looking for .clang-format files.
func WithDir(dir string) Option {
	return func(r *Runner) { r.dir = dir }
}

// WithEnv sets the formatter's environment. Nil inherits ours.
func WithEnv(env []string) Option {
	return func(r *Runner) { r.env = slices.Clone(env) }
}

// WithAssumeFilename passes Request.Path to the formatter as
// --assume-filename, so language detection and .clang-format discovery
// follow the document's path.
func WithAssumeFilename(v bool) Option {
	return func(r *Runner) { r.assumeFilename = v }
}
