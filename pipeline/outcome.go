package pipeline

import (
	"fmt"
)

// Kind classifies the outcome of a format request.
type Kind int

const (
	// Unchanged means no formatting changes are needed.
	Unchanged Kind = iota
	Rewritten
	Failed
)

func (k Kind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Rewritten:
		return "rewritten"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("<kind %d>", int(k))
	}
}

// Outcome is the result of one Run. Text is set for Rewritten, Err for
// Failed.
type Outcome struct {
	Kind Kind
	Text string
	Err  error
}

// Message returns the failure message, or "" if the run did not fail.
func (o Outcome) Message() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

func failed(err error) Outcome {
	return Outcome{Kind: Failed, Err: err}
}

// ExitError reports a formatter that exited with a non-zero status. Its
// message is the formatter's standard error, verbatim.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	return e.Stderr
}

// StartError reports a formatter that could not be launched.
type StartError struct {
	Command string
	Err     error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("error starting %s: %v", e.Command, e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}
