package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauern/envsync/internal/logging"
	"github.com/klauern/envsync/internal/model"
)

const exportPrefix = "export "

// ShellStore persists variables as `export KEY=VALUE` lines in a shell
// profile file. The POSIX and macOS backends differ only in which profile
// file they resolve; both ignore scope and act on the invoking user's
// profile.
type ShellStore struct {
	profile string
}

// NewShellStore returns a store bound to the given profile file.
func NewShellStore(profile string) *ShellStore {
	return &ShellStore{profile: profile}
}

// Profile returns the profile file this store reads and mutates.
func (s *ShellStore) Profile() string {
	return s.profile
}

// ResolveProfilePath determines which profile file to target for the given
// platform. macOS prefers ~/.zshrc when the configured login shell
// references zsh; Linux and the macOS fallback use ~/.bashrc.
func ResolveProfilePath(platform model.Platform, getenv func(string) string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	if platform == model.Darwin && strings.Contains(getenv("SHELL"), "zsh") {
		return filepath.Join(home, ".zshrc"), nil
	}
	return filepath.Join(home, ".bashrc"), nil
}

// Set appends a new export line to the profile. A blank line precedes the
// entry to separate it from prior content, and the value is written
// verbatim, without quoting.
func (s *ShellStore) Set(key, value string, _ model.Scope) error {
	f, err := os.OpenFile(s.profile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &WriteError{Key: key, Path: s.profile, Err: err}
	}
	if _, err := fmt.Fprintf(f, "\nexport %s=%s\n", key, value); err != nil {
		_ = f.Close()
		return &WriteError{Key: key, Path: s.profile, Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Key: key, Path: s.profile, Err: err}
	}

	logging.Debug("variable written to profile",
		logging.Key(key),
		logging.Path(s.profile),
		logging.Operation("set"),
	)
	return nil
}

// Delete rewrites the profile omitting every line that sets the given key.
// The rewrite reads the whole file, filters, and overwrites it; any change
// made to the profile by another process in between is lost.
func (s *ShellStore) Delete(key string, _ model.Scope) error {
	data, err := os.ReadFile(s.profile)
	if err != nil {
		return &DeleteError{Key: key, Path: s.profile, Err: err}
	}

	prefix := exportPrefix + key + "="
	lines := strings.Split(string(data), "\n")
	kept := make([]string, 0, len(lines))
	removed := 0
	for _, line := range lines {
		if strings.HasPrefix(line, prefix) {
			removed++
			continue
		}
		kept = append(kept, line)
	}

	if removed == 0 {
		return &DeleteError{Key: key, Path: s.profile, Err: ErrNotFound}
	}

	if err := os.WriteFile(s.profile, []byte(strings.Join(kept, "\n")), 0o644); err != nil {
		return &DeleteError{Key: key, Path: s.profile, Err: err}
	}

	logging.Debug("variable removed from profile",
		logging.Key(key),
		logging.Path(s.profile),
		logging.Count(removed),
		logging.Operation("delete"),
	)
	return nil
}

// Exists checks for the literal substring `export KEY=` in the profile.
// A missing profile is simply "not found"; any other read failure is
// reported alongside the false result.
func (s *ShellStore) Exists(key string, _ model.Scope) (bool, error) {
	data, err := os.ReadFile(s.profile)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &ReadError{Path: s.profile, Err: err}
	}
	return strings.Contains(string(data), exportPrefix+key+"="), nil
}

// Export parses every export line in the profile into a VariableSet.
// A nil filter returns everything; otherwise only the named keys. Values
// are trimmed of surrounding whitespace and one layer of matching quotes.
func (s *ShellStore) Export(filter []string, _ model.Scope) (model.VariableSet, error) {
	vars := model.VariableSet{}

	data, err := os.ReadFile(s.profile)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Debug("profile not found, exporting empty set",
				logging.Path(s.profile),
			)
			return vars, nil
		}
		return vars, &ReadError{Path: s.profile, Err: err}
	}

	wanted := keyFilter(filter)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, exportPrefix) {
			continue
		}
		name, value, ok := strings.Cut(line[len(exportPrefix):], "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if wanted != nil {
			if _, ok := wanted[name]; !ok {
				continue
			}
		}
		vars[name] = trimQuotes(strings.TrimSpace(value))
	}

	return vars, nil
}

// trimQuotes strips a single layer of matching single or double quotes.
// Set writes values verbatim, so only entries quoted by hand are affected.
func trimQuotes(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}
