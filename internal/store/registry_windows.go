//go:build windows

package store

import (
	"errors"

	"golang.org/x/sys/windows/registry"

	"github.com/klauern/envsync/internal/logging"
	"github.com/klauern/envsync/internal/model"
)

const environmentKey = "Environment"

// RegistryStore persists variables as string values under the Environment
// registry key. User scope targets HKEY_CURRENT_USER; system scope targets
// HKEY_LOCAL_MACHINE and requires elevation.
type RegistryStore struct{}

func newRegistryStore() (Store, error) {
	return &RegistryStore{}, nil
}

func rootKey(scope model.Scope) registry.Key {
	if scope == model.ScopeSystem {
		return registry.LOCAL_MACHINE
	}
	return registry.CURRENT_USER
}

// scopePath renders the registry location for error messages.
func scopePath(scope model.Scope) string {
	if scope == model.ScopeSystem {
		return `HKEY_LOCAL_MACHINE\` + environmentKey
	}
	return `HKEY_CURRENT_USER\` + environmentKey
}

// Set creates or replaces the value for key. The registry set-value
// primitive replaces atomically, so no pre-delete is needed.
func (s *RegistryStore) Set(key, value string, scope model.Scope) error {
	k, err := registry.OpenKey(rootKey(scope), environmentKey, registry.SET_VALUE)
	if err != nil {
		return &WriteError{Key: key, Path: scopePath(scope), Err: err}
	}
	defer k.Close()

	if err := k.SetStringValue(key, value); err != nil {
		return &WriteError{Key: key, Path: scopePath(scope), Err: err}
	}

	logging.Debug("variable written to registry",
		logging.Key(key),
		logging.Scope(string(scope)),
		logging.Operation("set"),
	)
	return nil
}

// Delete removes the value entry for key.
func (s *RegistryStore) Delete(key string, scope model.Scope) error {
	k, err := registry.OpenKey(rootKey(scope), environmentKey, registry.SET_VALUE)
	if err != nil {
		return &DeleteError{Key: key, Path: scopePath(scope), Err: err}
	}
	defer k.Close()

	if err := k.DeleteValue(key); err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return &DeleteError{Key: key, Path: scopePath(scope), Err: ErrNotFound}
		}
		return &DeleteError{Key: key, Path: scopePath(scope), Err: err}
	}

	logging.Debug("variable removed from registry",
		logging.Key(key),
		logging.Scope(string(scope)),
		logging.Operation("delete"),
	)
	return nil
}

// Exists queries the value for key. "Not found" is a clean false; any other
// access failure is reported alongside the false result so callers can tell
// absence from denial.
func (s *RegistryStore) Exists(key string, scope model.Scope) (bool, error) {
	k, err := registry.OpenKey(rootKey(scope), environmentKey, registry.QUERY_VALUE)
	if err != nil {
		return false, &ReadError{Path: scopePath(scope), Err: err}
	}
	defer k.Close()

	if _, _, err := k.GetStringValue(key); err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, &ReadError{Path: scopePath(scope), Err: err}
	}
	return true, nil
}

// Export enumerates every value under the Environment key, restricted to
// the filter when one is given.
func (s *RegistryStore) Export(filter []string, scope model.Scope) (model.VariableSet, error) {
	vars := model.VariableSet{}

	k, err := registry.OpenKey(rootKey(scope), environmentKey, registry.QUERY_VALUE)
	if err != nil {
		return vars, &ReadError{Path: scopePath(scope), Err: err}
	}
	defer k.Close()

	names, err := k.ReadValueNames(0)
	if err != nil {
		return vars, &ReadError{Path: scopePath(scope), Err: err}
	}

	wanted := keyFilter(filter)
	for _, name := range names {
		if wanted != nil {
			if _, ok := wanted[name]; !ok {
				continue
			}
		}
		value, _, err := k.GetStringValue(name)
		if err != nil {
			logging.Warn("skipping unreadable registry value",
				logging.Key(name),
				logging.Err(err),
			)
			continue
		}
		vars[name] = value
	}

	return vars, nil
}
