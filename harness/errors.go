package harness

import (
	"errors"
	"fmt"
)

// ConfigError reports an invalid run configuration: a malformed filter
// pattern, a duplicate case name, or a missing corpus root. It is
// fatal and surfaces before any corpus file is touched.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: %s: %v", e.Reason, e.Err)
	}
	return "config: " + e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// CodecError reports that a codec rejected its input during one
// invocation. Codec failures are data-quality issues, never harness
// failures: the invocation is recorded as a skip and the run continues.
type CodecError struct {
	Case string
	File string
	Err  error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("codec %s rejected %s: %v", e.Case, e.File, e.Err)
}

func (e *CodecError) Unwrap() error { return e.Err }
