package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestResolveHomeEnvOverride tests that PAGEMARK_HOME wins over everything
func TestResolveHomeEnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("PAGEMARK_HOME", tmpDir)

	home, err := ResolveHome()
	if err != nil {
		t.Fatalf("ResolveHome() error = %v", err)
	}
	if home != tmpDir {
		t.Errorf("ResolveHome() = %q, want %q", home, tmpDir)
	}
}

// TestResolveHomeWithoutEnv tests the working-directory fallback when no
// workspace marker exists anywhere above
func TestResolveHomeWithoutEnv(t *testing.T) {
	t.Setenv("PAGEMARK_HOME", "")

	home, err := ResolveHome()
	if err != nil {
		t.Fatalf("ResolveHome() error = %v", err)
	}
	if home == "" {
		t.Error("ResolveHome() returned empty path")
	}
	if !filepath.IsAbs(home) {
		t.Errorf("ResolveHome() = %q, want absolute path", home)
	}
}

// TestFindWorkspaceRootMarkerFile tests ancestor discovery via .pagemark-root
func TestFindWorkspaceRootMarkerFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".pagemark-root"), nil, 0644); err != nil {
		t.Fatalf("write marker: %v", err)
	}

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}

	got, ok := findWorkspaceRoot(nested)
	if !ok {
		t.Fatal("findWorkspaceRoot() should find the marker")
	}
	if got != root {
		t.Errorf("findWorkspaceRoot() = %q, want %q", got, root)
	}
}

// TestFindWorkspaceRootDotDir tests ancestor discovery via a .pagemark directory
func TestFindWorkspaceRootDotDir(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".pagemark"), 0755); err != nil {
		t.Fatalf("mkdir .pagemark: %v", err)
	}

	nested := filepath.Join(root, "input")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}

	got, ok := findWorkspaceRoot(nested)
	if !ok {
		t.Fatal("findWorkspaceRoot() should find the workspace directory")
	}
	if got != root {
		t.Errorf("findWorkspaceRoot() = %q, want %q", got, root)
	}
}

// TestFindWorkspaceRootIgnoresPlainFile tests that a .pagemark regular file
// does not mark a workspace
func TestFindWorkspaceRootIgnoresPlainFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".pagemark"), []byte("not a dir"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if got, ok := findWorkspaceRoot(root); ok {
		t.Errorf("findWorkspaceRoot() = %q, want no match for a plain file", got)
	}
}

// TestEnsureDir tests directory creation including parents
func TestEnsureDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "c")

	if err := EnsureDir(target); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("stat after EnsureDir: %v", err)
	}
	if !info.IsDir() {
		t.Error("EnsureDir() target is not a directory")
	}

	// Second call on an existing directory is a no-op
	if err := EnsureDir(target); err != nil {
		t.Errorf("EnsureDir() on existing directory error = %v", err)
	}
}
