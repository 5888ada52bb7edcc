package store

import (
	"errors"
	"fmt"

	"github.com/klauern/envsync/internal/model"
)

// ErrNotFound indicates a delete target that is not persisted in the store.
var ErrNotFound = errors.New("variable not found")

// WriteError reports a failed backend mutation for a single key.
// It is recovered locally: the key's change is skipped and processing
// continues with the remaining keys.
type WriteError struct {
	Key  string
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s to %s: %v", e.Key, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// DeleteError reports a failed removal of a single key, including deleting
// a key that does not exist (wrapping ErrNotFound).
type DeleteError struct {
	Key  string
	Path string
	Err  error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("deleting %s from %s: %v", e.Key, e.Path, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }

// ReadError reports a backend that could not be queried for existence or
// export. Probing and export treat it as "not found" / "empty" rather than
// fatal, since both are best-effort against a store that may not exist yet.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// UnsupportedPlatformError is returned by New when no backend exists for
// the platform. It is fatal: no store can be constructed and the whole
// operation aborts.
type UnsupportedPlatformError struct {
	Platform model.Platform
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform %q (supported: linux, darwin, windows)", e.Platform)
}
