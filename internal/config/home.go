package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveHome returns the workspace root that relative input, output,
// coordinate and log paths resolve against.
// Priority order:
//  1. PAGEMARK_HOME environment variable (if set)
//  2. Nearest ancestor of the working directory marked as a workspace
//     (a .pagemark-root file or an existing .pagemark directory)
//  3. Current working directory (fallback)
func ResolveHome() (string, error) {
	if home := os.Getenv("PAGEMARK_HOME"); home != "" {
		return home, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	if root, ok := findWorkspaceRoot(cwd); ok {
		return root, nil
	}

	return cwd, nil
}

// findWorkspaceRoot walks from dir toward the filesystem root looking for a
// directory previously claimed as a pagemark workspace.
func findWorkspaceRoot(dir string) (string, bool) {
	current := dir
	for {
		// Explicit marker file wins over an inherited .pagemark directory.
		if _, err := os.Stat(filepath.Join(current, ".pagemark-root")); err == nil {
			return current, true
		}

		if info, err := os.Stat(filepath.Join(current, ".pagemark")); err == nil && info.IsDir() {
			return current, true
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// EnsureDir creates dir and its parents if they do not exist yet.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}
