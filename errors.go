//
// Copyright 2019-2020 Nestybox, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package rootpath is a race-free, escape-resistant path resolution and
// filesystem-operation library scoped to a fixed root subtree. A Root
// captures a directory as the logical filesystem root for every subsequent
// lookup, creation, deletion, or rename expressed as a path underneath it;
// absolute paths are reinterpreted relative to the root and symlinks are
// reinterpreted so they cannot point outside it, even under a concurrently
// mutating attacker.
package rootpath

import (
	"fmt"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Kind tags the stable error categories this package produces. Kinds are
// never changed by wrapping -- only context accretes as an error travels up
// the call stack.
type Kind int

const (
	// KindNotImplemented marks a code path that has not been written yet.
	KindNotImplemented Kind = iota
	// KindNotSupported marks a missing runtime kernel capability.
	KindNotSupported
	// KindInvalidArgument marks caller-provided input failing a precondition.
	KindInvalidArgument
	// KindSafetyViolation marks a condition that might indicate an active
	// attacker. Never retried, always surfaced.
	KindSafetyViolation
	// KindOsError marks a standard-library I/O call failure.
	KindOsError
	// KindRawOsError marks a syscall wrapper failure, carrying the errno
	// plus a captured argument snapshot.
	KindRawOsError
	// KindWrapped marks an error decorated with a call-site context string.
	KindWrapped
)

func (k Kind) String() string {
	switch k {
	case KindNotImplemented:
		return "NotImplemented"
	case KindNotSupported:
		return "NotSupported"
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindSafetyViolation:
		return "SafetyViolation"
	case KindOsError:
		return "OsError"
	case KindRawOsError:
		return "RawOsError"
	case KindWrapped:
		return "Wrapped"
	default:
		return "Unknown"
	}
}

// captureBacktraces is the single process-wide, monotonic toggle gating
// whether errors constructed by this package capture a stack trace. There
// is no per-language equivalent here of Rust's cfg!(debug_assertions), so
// this defaults to on; a release host calls SetCaptureBacktraces(false)
// once at startup.
var captureBacktraces atomic.Bool

func init() {
	captureBacktraces.Store(true)
}

// SetCaptureBacktraces sets the process-wide backtrace-capture toggle. Not
// synchronized with in-flight error construction beyond what atomic.Bool
// itself guarantees; intended to be called once, early, by the host binary.
func SetCaptureBacktraces(enabled bool) {
	captureBacktraces.Store(enabled)
}

// CaptureBacktraces reports the current value of the toggle.
func CaptureBacktraces() bool {
	return captureBacktraces.Load()
}

// Error is the single error type this package returns from any public
// operation. Feature/Name/Description/Operation/Context are populated
// according to Kind; Source chains to whatever caused this error, if
// anything.
type Error struct {
	Kind Kind

	// KindNotImplemented, KindNotSupported
	Feature string

	// KindInvalidArgument
	Name        string
	Description string

	// KindSafetyViolation
	Violation string

	// KindOsError, KindRawOsError, KindWrapped
	Operation string
	Context   string

	Source error
	stack  error // set via errors.WithStack when backtraces are enabled
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotImplemented:
		return fmt.Sprintf("not implemented: %s", e.Feature)
	case KindNotSupported:
		return fmt.Sprintf("not supported: %s", e.Feature)
	case KindInvalidArgument:
		return fmt.Sprintf("invalid argument %s: %s", e.Name, e.Description)
	case KindSafetyViolation:
		return fmt.Sprintf("safety violation: %s", e.Violation)
	case KindOsError:
		return fmt.Sprintf("%s: %s", e.Operation, e.Source)
	case KindRawOsError:
		return fmt.Sprintf("%s: %s", e.Operation, e.Source)
	case KindWrapped:
		return fmt.Sprintf("%s: %s", e.Context, e.Source)
	default:
		return "unknown error"
	}
}

// Unwrap exposes Source so errors.Is/errors.As from both the standard
// library and github.com/pkg/errors see through this package's wrapping.
func (e *Error) Unwrap() error {
	return e.Source
}

func newErr(e *Error) *Error {
	if captureBacktraces.Load() {
		e.stack = errors.WithStack(e)
	}
	return e
}

// StackTrace exposes the captured backtrace, if any was captured, in the
// same shape github.com/pkg/errors produces. Returns nil when backtrace
// capture was disabled at construction time.
func (e *Error) StackTrace() errors.StackTrace {
	type tracer interface{ StackTrace() errors.StackTrace }
	if t, ok := e.stack.(tracer); ok {
		return t.StackTrace()
	}
	return nil
}

// NotImplemented constructs a KindNotImplemented error.
func NotImplemented(feature string) *Error {
	return newErr(&Error{Kind: KindNotImplemented, Feature: feature})
}

// NotSupported constructs a KindNotSupported error.
func NotSupported(feature string) *Error {
	return newErr(&Error{Kind: KindNotSupported, Feature: feature})
}

// InvalidArgument constructs a KindInvalidArgument error.
func InvalidArgument(name, description string) *Error {
	return newErr(&Error{Kind: KindInvalidArgument, Name: name, Description: description})
}

// SafetyViolation constructs a KindSafetyViolation error.
func SafetyViolation(description string) *Error {
	return newErr(&Error{Kind: KindSafetyViolation, Violation: description})
}

// OsErrorf constructs a KindOsError error wrapping source.
func OsErrorf(operation string, source error) *Error {
	return newErr(&Error{Kind: KindOsError, Operation: operation, Source: source})
}

// RawOsErrorf constructs a KindRawOsError error wrapping source (typically
// an *internal/sysx.Error carrying the errno and argument snapshot).
func RawOsErrorf(operation string, source error) *Error {
	return newErr(&Error{Kind: KindRawOsError, Operation: operation, Source: source})
}

// Wrap decorates source with a call-site context string, forming a chain
// from innermost cause to outermost. Wrapping never changes the kind of an
// existing chain link; it only adds a new KindWrapped link on top.
func Wrap(source error, context string) *Error {
	return newErr(&Error{Kind: KindWrapped, Context: context, Source: source})
}

// Chain iterates a chain of *Error values from outermost to innermost,
// calling visit for each link. Stops early if visit returns false.
func Chain(err error, visit func(*Error) bool) {
	for err != nil {
		e, ok := err.(*Error)
		if !ok {
			return
		}
		if !visit(e) {
			return
		}
		err = e.Source
	}
}

// RootCause walks the error chain to its innermost *Error link, or to the
// innermost non-*Error cause if the chain bottoms out in one. Mirrors the
// "root_cause" convenience accessor of the system this chain shape is
// modeled on.
func RootCause(err error) error {
	var last error = err
	for {
		e, ok := last.(*Error)
		if !ok || e.Source == nil {
			return last
		}
		last = e.Source
	}
}
