// Package model defines the core types shared across envsync: platform
// identity, persistence scope, and variable sets.
package model

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform identifies the host operating system family, which determines
// the backing store for persisted variables.
type Platform string

const (
	Linux   Platform = "linux"
	Darwin  Platform = "darwin"
	Windows Platform = "windows"
)

// IsValid returns true if the platform is recognized.
func (p Platform) IsValid() bool {
	switch p {
	case Linux, Darwin, Windows:
		return true
	default:
		return false
	}
}

// AllPlatforms returns all supported platforms.
func AllPlatforms() []Platform {
	return []Platform{Linux, Darwin, Windows}
}

// String returns the string representation of the platform.
func (p Platform) String() string {
	return string(p)
}

// Description returns a human-readable description of the platform's
// persistence medium.
func (p Platform) Description() string {
	switch p {
	case Linux:
		return "Shell profile (~/.bashrc)"
	case Darwin:
		return "Shell profile (~/.zshrc or ~/.bashrc)"
	case Windows:
		return "Registry (Environment key)"
	default:
		return "Unknown platform"
	}
}

// DetectPlatform returns the platform identity of the running host.
// The result is read once at process start and injected into the store
// factory; it is never re-queried mid-run.
func DetectPlatform() Platform {
	return Platform(runtime.GOOS)
}

// ParsePlatform converts a string to a Platform type.
// Returns an error if the platform is not recognized.
func ParsePlatform(s string) (Platform, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))

	platform := Platform(normalized)
	if platform.IsValid() {
		return platform, nil
	}

	switch normalized {
	case "macos", "mac", "osx":
		return Darwin, nil
	case "win", "win32":
		return Windows, nil
	default:
		return "", fmt.Errorf("unknown platform %q (valid: linux, darwin, windows)", s)
	}
}
