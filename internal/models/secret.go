// internal/models/secret.go

package models

import (
	"log/slog"
	"strconv"
)

const redacted = "********"

// Secret holds a sensitive value such as a host password. It is written to
// JSON as-is but never printed by fmt or slog.
type Secret string

func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return redacted
}

func (s Secret) GoString() string {
	return strconv.Quote(s.String())
}

func (s Secret) LogValue() slog.Value {
	return slog.StringValue(s.String())
}

// Reveal returns the plaintext value.
func (s Secret) Reveal() string {
	return string(s)
}

// IsSet reports whether the secret holds a value.
func (s Secret) IsSet() bool {
	return s != ""
}
