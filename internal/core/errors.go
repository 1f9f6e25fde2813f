package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedEnvironment reports that the presentation or compute
	// capability is unavailable. Fatal for the session.
	ErrUnsupportedEnvironment = errors.New("unsupported environment")

	// ErrResourceLost reports that the surface became invalid mid-run.
	ErrResourceLost = errors.New("resource lost")

	// ErrConfiguration is wrapped by every ConfigError.
	ErrConfiguration = errors.New("invalid configuration")
)

// ConfigError describes a configuration value rejected at construction.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrConfiguration.
func (e *ConfigError) Unwrap() error { return ErrConfiguration }

func configErrorf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func checkExtent(w, h int) error {
	if w <= 0 {
		return configErrorf("width", "must be positive, got %d", w)
	}
	if h <= 0 {
		return configErrorf("height", "must be positive, got %d", h)
	}
	return nil
}

// CheckLayout reports a ConfigError when a buffer of n values cannot back a
// grid of the given size.
func CheckLayout(size Size, n int) error {
	if want := size.W * size.H; n != want {
		return configErrorf("layout", "buffer holds %d cells, grid %dx%d needs %d", n, size.W, size.H, want)
	}
	return nil
}
