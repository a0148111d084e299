package config

import "strings"

const placeholderPrefix = "YOUR_"

// Secret is an optional credential. The zero value means "not configured".
type Secret struct {
	value string
}

// NewSecret wraps v, treating blanks and YOUR_* placeholders as absent.
func NewSecret(v string) Secret {
	v = strings.TrimSpace(v)
	if v == "" || strings.HasPrefix(strings.ToUpper(v), placeholderPrefix) {
		return Secret{}
	}
	return Secret{value: v}
}

// Value returns the credential and whether it is configured.
func (s Secret) Value() (string, bool) {
	return s.value, s.value != ""
}

// IsSet reports whether the credential is configured.
func (s Secret) IsSet() bool {
	return s.value != ""
}

// String masks the value so configs can be logged.
func (s Secret) String() string {
	if s.value == "" {
		return "<unset>"
	}
	return "<redacted>"
}
