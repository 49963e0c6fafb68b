package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFormat             = errors.New("format error")
	ErrConfiguration      = errors.New("configuration error")
	ErrTransient          = errors.New("transient failure")
	ErrTimeout            = errors.New("timeout")
	ErrSegment            = errors.New("segment failure")
	ErrAlignmentMismatch  = errors.New("alignment mismatch")
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether err must abort a run before any output is written.
// Segment-level failures are recovered by the orchestrator and are not fatal.
func IsFatal(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrFormat), errors.Is(err, ErrConfiguration), errors.Is(err, ErrBackendUnavailable):
		return true
	default:
		return false
	}
}

// Kind returns a short label for the error class, used in logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrFormat):
		return "format"
	case errors.Is(err, ErrConfiguration):
		return "config"
	case errors.Is(err, ErrBackendUnavailable):
		return "unavailable"
	case errors.Is(err, ErrAlignmentMismatch):
		return "alignment"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrSegment):
		return "segment"
	default:
		return "transient"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
