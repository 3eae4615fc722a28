package textio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atotto/clipboard"
)

func TestReadInputFromReaderTrimsNewlines(t *testing.T) {
	got, err := ReadInput(strings.NewReader("Khoor, Zruog!\n\n"), "")
	if err != nil {
		t.Fatalf("ReadInput failed: %v", err)
	}
	if got != "Khoor, Zruog!" {
		t.Fatalf("unexpected input: %q", got)
	}
}

func TestReadInputFromFileVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(path, []byte("line one\nline two\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	got, err := ReadInput(strings.NewReader("ignored"), path)
	if err != nil {
		t.Fatalf("ReadInput failed: %v", err)
	}
	if got != "line one\nline two\n" {
		t.Fatalf("unexpected input: %q", got)
	}
}

func TestReadInputMissingFile(t *testing.T) {
	if _, err := ReadInput(nil, filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := ReadInput(nil, ""); err == nil {
		t.Fatalf("expected error without a source")
	}
}

func TestSaveWritesFile(t *testing.T) {
	dir := t.TempDir()
	path, err := Save(filepath.Join(dir, "sub", "out.txt"), DefaultOutputFile, "Key 3: hello")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "Key 3: hello" {
		t.Fatalf("unexpected content: %q", data)
	}
	entries, err := os.ReadDir(filepath.Join(dir, "sub"))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp file cleanup, found %d entries", len(entries))
	}
}

func TestSaveUsesFallback(t *testing.T) {
	fallback := filepath.Join(t.TempDir(), DefaultExportFile)
	path, err := Save("", fallback, "x")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if path != fallback {
		t.Fatalf("expected fallback path %s, got %s", fallback, path)
	}
	if _, err := Save("", "", "x"); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestCopyUsesClipboard(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("clipboard unsupported")
	}
	var copied string
	orig := clipboardWriteAll
	clipboardWriteAll = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { clipboardWriteAll = orig })

	if err := Copy("secret"); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if copied != "secret" {
		t.Fatalf("expected clipboard content, got %q", copied)
	}

	clipboardWriteAll = func(string) error { return errors.New("no display") }
	if err := Copy("secret"); err == nil || !strings.Contains(err.Error(), "no display") {
		t.Fatalf("expected wrapped clipboard error, got %v", err)
	}
}
