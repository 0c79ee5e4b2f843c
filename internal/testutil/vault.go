// Package testutil provides test fixtures: a temporary vault and a builder
// for miniature Zotero databases.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestVault is a temporary vault directory for tests.
type TestVault struct {
	t    *testing.T
	Path string
}

// NewVault creates a temporary vault.
func NewVault(t *testing.T) *TestVault {
	t.Helper()
	return &TestVault{t: t, Path: t.TempDir()}
}

// WriteFile writes a file inside the vault, creating parent directories.
func (v *TestVault) WriteFile(relPath, content string) string {
	v.t.Helper()
	fullPath := filepath.Join(v.Path, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		v.t.Fatalf("mkdir for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		v.t.Fatalf("write %s: %v", relPath, err)
	}
	return fullPath
}

// ReadFile reads a file inside the vault.
func (v *TestVault) ReadFile(relPath string) string {
	v.t.Helper()
	data, err := os.ReadFile(filepath.Join(v.Path, relPath))
	if err != nil {
		v.t.Fatalf("read %s: %v", relPath, err)
	}
	return string(data)
}

// AssertFileExists fails the test if the file does not exist.
func (v *TestVault) AssertFileExists(relPath string) {
	v.t.Helper()
	if _, err := os.Stat(filepath.Join(v.Path, relPath)); os.IsNotExist(err) {
		v.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (v *TestVault) AssertFileNotExists(relPath string) {
	v.t.Helper()
	if _, err := os.Stat(filepath.Join(v.Path, relPath)); err == nil {
		v.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (v *TestVault) AssertFileContains(relPath, substr string) {
	v.t.Helper()
	content := v.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		v.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}
