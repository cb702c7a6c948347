package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetFullVersion(t *testing.T) {
	full := GetFullVersion()
	if !strings.Contains(full, Version) {
		t.Errorf("full version %q does not contain version %q", full, Version)
	}
	if !strings.Contains(full, Build) || !strings.Contains(full, GitCommit) {
		t.Errorf("full version %q is missing build info", full)
	}
}

func TestLoadVersionFromFile(t *testing.T) {
	exePath, err := os.Executable()
	if err != nil {
		t.Skipf("cannot resolve executable path: %v", err)
	}
	versionFile := filepath.Join(filepath.Dir(exePath), ".version")
	if err := os.WriteFile(versionFile, []byte("1.2.3\n"), 0644); err != nil {
		t.Skipf("executable directory not writable: %v", err)
	}
	orig := Version
	t.Cleanup(func() {
		Version = orig
		os.Remove(versionFile)
	})

	if got := LoadVersionFromFile(); got != "1.2.3" {
		t.Errorf("got %q, want 1.2.3", got)
	}
}
