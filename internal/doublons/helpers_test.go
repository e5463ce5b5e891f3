package doublons

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFile creates path with content and exact permission bits.
func writeFile(t *testing.T, path, content string, perm os.FileMode) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating directory: %v", err)
	}

	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	// WriteFile is subject to umask.
	if err := os.Chmod(path, perm); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	return path
}
