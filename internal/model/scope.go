package model

import (
	"fmt"
	"strings"
)

// Scope represents where a variable is persisted: per-user or system-wide.
// Only the Windows registry backend distinguishes the two; the shell-profile
// backends have a single effective scope and always act on the invoking
// user's profile.
type Scope string

const (
	// ScopeUser persists variables for the current user.
	ScopeUser Scope = "user"

	// ScopeSystem persists variables machine-wide. Requires elevated
	// privileges and is only meaningful on Windows.
	ScopeSystem Scope = "system"
)

// IsValid returns true if the scope is recognized.
func (s Scope) IsValid() bool {
	switch s {
	case ScopeUser, ScopeSystem:
		return true
	default:
		return false
	}
}

// AllScopes returns all supported scopes.
func AllScopes() []Scope {
	return []Scope{ScopeUser, ScopeSystem}
}

// String returns the string representation of the scope.
func (s Scope) String() string {
	return string(s)
}

// Description returns a human-readable description of the scope.
func (s Scope) Description() string {
	switch s {
	case ScopeUser:
		return "Variables persisted for the current user"
	case ScopeSystem:
		return "Variables persisted machine-wide (Windows only, requires elevation)"
	default:
		return "Unknown scope"
	}
}

// ParseScope converts a string to a Scope type.
// Returns an error if the scope is not recognized.
func ParseScope(s string) (Scope, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))

	scope := Scope(normalized)
	if scope.IsValid() {
		return scope, nil
	}

	// Common aliases
	switch normalized {
	case "current-user", "hkcu":
		return ScopeUser, nil
	case "machine", "local-machine", "hklm":
		return ScopeSystem, nil
	default:
		return "", fmt.Errorf("unknown scope %q (valid: user, system)", s)
	}
}
