// models/errors.go
package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSessionExpired means the saved Naver login no longer works. The current
// run is aborted; re-initializing the session recovers.
var ErrSessionExpired = errors.New("naver session expired, refresh required")

// ErrRunNotFound is returned when no run log has ever been persisted.
var ErrRunNotFound = errors.New("no run log found")

// ConfigError lists the environment keys that are missing. Checked before
// any network call is attempted.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "missing configuration: " + strings.Join(e.Missing, ", ")
}

// ParseError means a booking time string did not match the expected
// "오전|오후 H:MM" grammar.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unrecognized booking time %q", e.Input)
}

// ProviderError is a non-200 response from the messaging API.
type ProviderError struct {
	Status int
	Body   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider rejected request (status=%d): %s", e.Status, e.Body)
}
