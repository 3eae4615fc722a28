package textio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
)

// Default file names for saved results.
const (
	DefaultOutputFile = "output.txt"
	DefaultExportFile = "brute_results.txt"
)

// clipboardWriteAll is a package-level variable to allow stubbing in tests.
var clipboardWriteAll = clipboard.WriteAll

// Copy places text on the system clipboard.
func Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not available on this system")
	}
	if err := clipboardWriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

// Save writes text to path atomically, falling back to fallback when path is empty.
// It returns the path written.
func Save(path, fallback, text string) (string, error) {
	if path == "" {
		path = fallback
	}
	if path == "" {
		return "", fmt.Errorf("output path is empty")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, ".caesar-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.WriteString(text); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return "", fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
