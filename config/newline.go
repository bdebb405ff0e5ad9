package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// NewLineKind selects the line ending clang-format is asked to produce.
type NewLineKind int

const (
	LF NewLineKind = iota
	CRLF
	// Auto keeps the convention of the document being formatted.
	Auto
	// System uses the convention of the running operating system.
	System
)

var ErrBadNewLineKind = errors.New("bad new line kind")

var newLineKindNames = map[NewLineKind]string{
	LF:     "lf",
	CRLF:   "crlf",
	Auto:   "auto",
	System: "system",
}

func ParseNewLineKind(v string) (NewLineKind, error) {
	for k, name := range newLineKindNames {
		if name == v {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q, expected one of auto, lf, crlf, system", ErrBadNewLineKind, v)
}

func (k NewLineKind) String() string {
	d, err := k.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (k NewLineKind) MarshalText() ([]byte, error) {
	name, ok := newLineKindNames[k]
	if !ok {
		return nil, fmt.Errorf("<err: %d is not a new line kind>", k)
	}
	return []byte(name), nil
}

func (k *NewLineKind) UnmarshalText(d []byte) error {
	pk, err := ParseNewLineKind(string(d))
	if err != nil {
		return err
	}
	*k = pk
	return nil
}

// Resolve returns the line ending to use for text, "\n" or "\r\n".
func (k NewLineKind) Resolve(text string) string {
	switch k {
	case CRLF:
		return "\r\n"
	case Auto:
		i := strings.LastIndexByte(text, '\n')
		if i > 0 && text[i-1] == '\r' {
			return "\r\n"
		}
		return "\n"
	case System:
		if runtime.GOOS == "windows" {
			return "\r\n"
		}
		return "\n"
	default:
		return "\n"
	}
}
