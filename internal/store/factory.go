package store

import (
	"os"

	"github.com/klauern/envsync/internal/logging"
	"github.com/klauern/envsync/internal/model"
)

// Options configures store construction.
type Options struct {
	// ProfilePath overrides the resolved shell profile file. The config
	// file and tests use this; an empty value resolves the platform
	// default. Ignored by the registry backend.
	ProfilePath string

	// Getenv is the environment lookup used to resolve the login shell on
	// macOS. Defaults to os.Getenv.
	Getenv func(string) string
}

// New constructs the backend store for the given platform identity.
// The identity is detected once at process start and injected here; New
// never probes the host itself, so tests can exercise any backend's wiring.
// Unrecognized platforms fail with *UnsupportedPlatformError, which is
// fatal to the whole operation.
func New(platform model.Platform, opts Options) (Store, error) {
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}

	switch platform {
	case model.Linux:
		return NewPosixShellStore(opts)
	case model.Darwin:
		return NewMacShellStore(opts)
	case model.Windows:
		return newRegistryStore()
	default:
		return nil, &UnsupportedPlatformError{Platform: platform}
	}
}

// NewPosixShellStore returns the Linux backend, bound to ~/.bashrc unless
// overridden.
func NewPosixShellStore(opts Options) (*ShellStore, error) {
	return newShellStore(model.Linux, opts)
}

// NewMacShellStore returns the macOS backend, preferring ~/.zshrc when the
// configured login shell references zsh.
func NewMacShellStore(opts Options) (*ShellStore, error) {
	return newShellStore(model.Darwin, opts)
}

func newShellStore(platform model.Platform, opts Options) (*ShellStore, error) {
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}

	profile := opts.ProfilePath
	if profile == "" {
		var err error
		profile, err = ResolveProfilePath(platform, opts.Getenv)
		if err != nil {
			return nil, err
		}
	}

	logging.Debug("constructed shell store",
		logging.Platform(string(platform)),
		logging.Path(profile),
	)
	return NewShellStore(profile), nil
}
