// Package store implements the platform-specific persistence backends for
// environment variables.
//
// Three backends exist: a POSIX shell-profile store appending export lines
// to ~/.bashrc, a macOS variant preferring ~/.zshrc when the login shell is
// zsh, and a Windows registry store over the Environment key. The backend is
// selected once at process start via New from an injected platform identity
// and never re-selected.
//
// All backends assume a single-process, single-threaded writer with
// exclusive access to the persistence medium. The shell-profile delete is a
// full-file read-filter-write: a concurrent external modification between
// the read and the write is silently lost. That is a documented limitation
// of the medium, not a locking bug to fix at this scale.
package store

import "github.com/klauern/envsync/internal/model"

// Store persists environment variables in a platform-specific medium.
type Store interface {
	// Set persists key=value in the given scope. Shell-profile backends
	// append a new export line unconditionally, so callers must Delete
	// first to avoid duplicate entries; the registry backend replaces the
	// value atomically. Fails with *WriteError when the medium cannot be
	// opened for writing.
	Set(key, value string, scope model.Scope) error

	// Delete removes the variable from the given scope. Fails with
	// *DeleteError when the key is absent or access is denied; callers
	// report this and continue, it is never fatal to a sync.
	Delete(key string, scope model.Scope) error

	// Exists reports whether key is already persisted in the given scope.
	// A read failure yields false together with a *ReadError so callers
	// can distinguish genuine absence from an unreadable store.
	Exists(key string, scope model.Scope) (bool, error)

	// Export returns the persisted variables. A nil filter means every
	// variable visible in the store; otherwise the result is the
	// intersection of the filter and what exists.
	Export(filter []string, scope model.Scope) (model.VariableSet, error)
}

// keyFilter converts a filter slice into a lookup set. A nil slice stays
// nil, meaning "no filtering".
func keyFilter(keys []string) map[string]struct{} {
	if keys == nil {
		return nil
	}
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return m
}
