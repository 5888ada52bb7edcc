package store

import (
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/klauern/envsync/internal/model"
)

func TestNew_ProfileOverride(t *testing.T) {
	profile := filepath.Join(t.TempDir(), "custom_profile")

	for _, platform := range []model.Platform{model.Linux, model.Darwin} {
		st, err := New(platform, Options{ProfilePath: profile})
		if err != nil {
			t.Fatalf("New(%s) failed: %v", platform, err)
		}
		shell, ok := st.(*ShellStore)
		if !ok {
			t.Fatalf("New(%s) returned %T, want *ShellStore", platform, st)
		}
		if shell.Profile() != profile {
			t.Errorf("Profile() = %q, want %q", shell.Profile(), profile)
		}
	}
}

func TestNew_UnsupportedPlatform(t *testing.T) {
	_, err := New(model.Platform("plan9"), Options{})
	if err == nil {
		t.Fatal("expected error for unsupported platform")
	}

	var upErr *UnsupportedPlatformError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected *UnsupportedPlatformError, got %T", err)
	}
	if upErr.Platform != "plan9" {
		t.Errorf("Platform = %q, want plan9", upErr.Platform)
	}
}

func TestNew_WindowsUnavailableOffPlatform(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("registry backend is available on windows")
	}
	if _, err := New(model.Windows, Options{}); err == nil {
		t.Fatal("registry store should be unavailable on non-windows builds")
	}
}

func TestResolveProfilePath_Linux(t *testing.T) {
	path, err := ResolveProfilePath(model.Linux, func(string) string { return "/bin/zsh" })
	if err != nil {
		t.Fatalf("ResolveProfilePath failed: %v", err)
	}
	// The login shell only matters on macOS.
	if !strings.HasSuffix(path, ".bashrc") {
		t.Errorf("expected .bashrc, got %q", path)
	}
}

func TestResolveProfilePath_DarwinZsh(t *testing.T) {
	path, err := ResolveProfilePath(model.Darwin, func(k string) string {
		if k == "SHELL" {
			return "/bin/zsh"
		}
		return ""
	})
	if err != nil {
		t.Fatalf("ResolveProfilePath failed: %v", err)
	}
	if !strings.HasSuffix(path, ".zshrc") {
		t.Errorf("expected .zshrc, got %q", path)
	}
}

func TestResolveProfilePath_DarwinBashFallback(t *testing.T) {
	path, err := ResolveProfilePath(model.Darwin, func(string) string { return "/bin/bash" })
	if err != nil {
		t.Fatalf("ResolveProfilePath failed: %v", err)
	}
	if !strings.HasSuffix(path, ".bashrc") {
		t.Errorf("expected .bashrc, got %q", path)
	}
}
