//go:build !windows

package store

import "errors"

// The registry backend only compiles on Windows. Reaching this stub means
// the injected platform identity does not match the running build.
func newRegistryStore() (Store, error) {
	return nil, errors.New("windows registry store is unavailable on this build")
}
