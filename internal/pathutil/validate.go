// Package pathutil confines document paths supplied by MCP clients to
// configured root directories.
package pathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoots is returned when a path resolves outside every allowed root.
var ErrOutsideRoots = errors.New("path is outside allowed directories")

// RedactPath reduces a full path to .../<parent>/<basename> for error messages.
// For example, "/home/user/books/russia.txt" becomes ".../books/russia.txt".
func RedactPath(path string) string {
	if path == "" {
		return ""
	}
	cleaned := filepath.Clean(path)
	parent := filepath.Base(filepath.Dir(cleaned))
	base := filepath.Base(cleaned)
	if parent == "." || parent == string(filepath.Separator) {
		return base
	}
	return ".../" + parent + "/" + base
}

// Resolve turns path into an absolute, symlink-resolved path and checks that
// it lies inside one of roots. A relative path is taken relative to the
// first root.
func Resolve(path string, roots []string) (string, error) {
	switch {
	case path == "":
		return "", errors.New("path validation failed: path is empty")
	case len(roots) == 0:
		return "", errors.New("path validation failed: no allowed directories configured")
	case strings.ContainsRune(path, '\x00'):
		return "", errors.New("path validation failed: path contains null byte")
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(roots[0], path)
	}
	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("path validation failed: cannot resolve absolute path: %w", err)
	}

	// Resolve the parent so a symlinked directory inside a root cannot
	// point outside it. The file itself may not exist.
	resolvedDir, err := resolveExisting(filepath.Dir(absPath))
	if err != nil {
		return "", fmt.Errorf("path validation failed: %w", err)
	}
	resolved := filepath.Join(resolvedDir, filepath.Base(absPath))
	if target, err := filepath.EvalSymlinks(resolved); err == nil {
		resolved = target
	}

	for _, root := range roots {
		rootAbs, err := filepath.Abs(filepath.Clean(root))
		if err != nil {
			continue
		}
		rootResolved, err := resolveExisting(rootAbs)
		if err != nil {
			continue
		}
		if isSubpath(resolved, rootResolved) {
			return resolved, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrOutsideRoots, RedactPath(absPath))
}

// ValidatePath reports whether path lies inside one of roots.
func ValidatePath(path string, roots []string) error {
	_, err := Resolve(path, roots)
	return err
}

// resolveExisting resolves symlinks on the deepest existing ancestor of dir
// and re-appends the missing tail.
func resolveExisting(dir string) (string, error) {
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		return resolved, nil
	}
	parent := filepath.Dir(dir)
	if parent == dir {
		return "", fmt.Errorf("cannot resolve path: %s", RedactPath(dir))
	}
	resolvedParent, err := resolveExisting(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedParent, filepath.Base(dir)), nil
}

// isSubpath checks whether path is equal to or inside base.
func isSubpath(path, base string) bool {
	if path == base {
		return true
	}
	return strings.HasPrefix(path, strings.TrimSuffix(base, string(os.PathSeparator))+string(os.PathSeparator))
}
