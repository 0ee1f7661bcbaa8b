// Package fdt reads, edits, and emits Flattened Device Tree (FDT) binary
// blobs — the "Device Tree Blob" (DTB) format boot firmware uses to
// describe hardware to operating-system kernels, per Devicetree
// Specification v0.4.
package fdt

import (
	"errors"
	"fmt"

	"github.com/scigolib/fdt/internal/codec"
	"github.com/scigolib/fdt/internal/tree"
)

// ErrorKind classifies an Error (spec.md §7).
type ErrorKind int

const (
	ErrBufferTooSmall ErrorKind = iota
	ErrInvalidMagic
	ErrInvalidPointer
	ErrInvalidInput
	ErrUnterminatedString
	ErrUTF8
	ErrNotFoundKind
	ErrNoMemory
)

// Error is the single result-error type the public API returns. It wraps
// the lower-level codec/tree errors and exposes a stable Kind for callers
// that want to branch on failure class (errors.Is still works against the
// sentinel vars below).
type Error struct {
	Kind  ErrorKind
	Pos   int
	Cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrBufferTooSmall:
		return fmt.Sprintf("fdt: buffer too small at byte %d", e.Pos)
	case ErrInvalidMagic:
		return "fdt: invalid magic"
	case ErrInvalidPointer:
		return "fdt: invalid (nil) pointer"
	case ErrInvalidInput:
		return "fdt: invalid input"
	case ErrUnterminatedString:
		return "fdt: unterminated string"
	case ErrUTF8:
		return "fdt: invalid utf8"
	case ErrNotFoundKind:
		return "fdt: not found"
	case ErrNoMemory:
		return "fdt: out of memory"
	default:
		if e.Cause != nil {
			return fmt.Sprintf("fdt: %v", e.Cause)
		}
		return "fdt: error"
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// ErrNotFound is the sentinel identifying lookup failures (path, phandle,
// property, or node-by-name), matching spec.md §7's "NotFound" variant.
// Fast-path accessors return (zero, false) instead of this error,
// reserving it for APIs that return error (spec.md §7).
var ErrNotFound = &Error{Kind: ErrNotFoundKind}

// Is implements errors.Is support so callers can write
// errors.Is(err, fdt.ErrNotFound).
func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == te.Kind
}

func wrapCodecErr(err error) error {
	if err == nil {
		return nil
	}
	var ce *codec.Error
	if errors.As(err, &ce) {
		switch ce.Kind {
		case codec.ErrBufferTooSmall:
			return &Error{Kind: ErrBufferTooSmall, Pos: ce.Pos, Cause: err}
		case codec.ErrInvalidMagic:
			return &Error{Kind: ErrInvalidMagic, Cause: err}
		case codec.ErrUnterminated:
			return &Error{Kind: ErrUnterminatedString, Pos: ce.Pos, Cause: err}
		case codec.ErrUTF8:
			return &Error{Kind: ErrUTF8, Pos: ce.Pos, Cause: err}
		case codec.ErrBadToken:
			return &Error{Kind: ErrInvalidInput, Pos: ce.Pos, Cause: err}
		}
	}
	if errors.Is(err, tree.ErrNotFound) {
		return &Error{Kind: ErrNotFoundKind, Cause: err}
	}
	return &Error{Cause: err}
}
