// Package errors provides error annotation with slog attributes and source
// locations. It re-exports the stdlib helpers so callers only need one import.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// maxStackDepth bounds the stack capture for annotated errors.
const maxStackDepth = 32

// annotatedError carries a message, an optional wrapped error, slog attributes
// for structured logging, and the program counters captured where the error
// was annotated.
type annotatedError struct {
	msg   string
	err   error
	attrs []slog.Attr
	pcs   []uintptr
}

// New returns an error that formats as the given text. See [errors.New].
func New(text string) error {
	return errors.New(text)
}

// NewSentinel creates an error meant to be used as a package-level sentinel.
// Sentinels carry no stack trace since they are created at program start.
func NewSentinel(msg string) error {
	return &annotatedError{msg: msg, err: nil, attrs: nil, pcs: nil}
}

// Wrap annotates err with a message and optional slog attributes. The source
// location of the Wrap call is captured for logging with [SlogError].
//
// Wrapping a nil error yields an error with only the message so that careless
// call sites do not panic.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{
		msg:   msg,
		err:   err,
		attrs: attrs,
		pcs:   callers(3), //nolint:mnd // skip runtime.Callers, callers, and Wrap.
	}
}

// callers captures up to maxStackDepth program counters, skipping the given
// number of frames.
func callers(skip int) []uintptr {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip, pcs)
	return pcs[:n]
}

// Error implements the error interface by joining the annotation messages with
// the wrapped error.
func (e *annotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

// Unwrap returns the wrapped error.
func (e *annotatedError) Unwrap() error {
	return e.err
}

// Unwrap calls [errors.Unwrap].
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Is calls [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As calls [errors.As].
func As(err error, target any) bool {
	return errors.As(err, target) //nolint:errorlint // passthrough.
}

// Join calls [errors.Join].
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// SlogError converts an error into a structured slog attribute containing the
// message, the annotations collected from the whole error chain, and the
// source location closest to the error site.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Group("error", slog.String("message", "<nil>"))
	}

	annotations := collectAttrs(err)
	attrs := []any{slog.String("message", err.Error())}
	if source := sourceLocation(err); source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	if len(annotations) > 0 {
		groupArgs := make([]any, 0, len(annotations))
		for _, a := range annotations {
			groupArgs = append(groupArgs, a)
		}
		attrs = append(attrs, slog.Group("annotations", groupArgs...))
	}
	return slog.Group("error", attrs...)
}

// collectAttrs gathers slog attributes from every annotated error in the chain,
// including errors joined with [errors.Join].
func collectAttrs(err error) []slog.Attr {
	var attrs []slog.Attr
	for err != nil {
		var annotated *annotatedError
		if errors.As(err, &annotated) {
			attrs = append(attrs, annotated.attrs...)
			err = annotated.err
			continue
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, sub := range joined.Unwrap() {
				attrs = append(attrs, collectAttrs(sub)...)
			}
			return attrs
		}
		err = errors.Unwrap(err)
	}
	return attrs
}

// sourceLocation returns the file:line of the outermost annotation site,
// skipping frames belonging to this package and the runtime.
func sourceLocation(err error) string {
	var annotated *annotatedError
	if !errors.As(err, &annotated) || len(annotated.pcs) == 0 {
		return ""
	}

	frames := runtime.CallersFrames(annotated.pcs)
	afterPanic := false
	var fallback string
	for {
		frame, more := frames.Next()
		if frame.Function == "runtime.gopanic" {
			afterPanic = true
			if !more {
				break
			}
			continue
		}
		if isInternalFrame(frame) {
			if !more {
				break
			}
			continue
		}
		loc := fmt.Sprintf("%s:%d", trimPath(frame.File), frame.Line)
		if afterPanic {
			// A panic was decorated; report where the panic happened, not the
			// recover site.
			return loc
		}
		if fallback == "" {
			fallback = loc
		}
		if !more {
			break
		}
	}
	return fallback
}

// isInternalFrame reports whether the frame belongs to this package or the
// runtime and should be hidden from logs.
func isInternalFrame(frame runtime.Frame) bool {
	return strings.Contains(frame.File, "annotatederror.go") ||
		strings.HasPrefix(frame.Function, "runtime.")
}

// trimPath shortens an absolute file path to its last two path segments.
func trimPath(file string) string {
	parts := strings.Split(file, "/")
	if len(parts) <= 2 { //nolint:mnd // keep pkg/file.go.
		return file
	}
	return strings.Join(parts[len(parts)-2:], "/")
}

// DecoratePanic converts a recovered panic value into an annotated error that
// points at the panic site.
func DecoratePanic(recovered any) error {
	if recovered == nil {
		return nil
	}
	return &annotatedError{
		msg:   fmt.Sprintf("panic: %v", recovered),
		err:   nil,
		attrs: nil,
		pcs:   callers(3), //nolint:mnd // skip runtime.Callers, callers, and DecoratePanic.
	}
}
