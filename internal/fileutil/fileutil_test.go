package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomicCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "state.txt")
	if err := WriteFileAtomic(path, []byte("March,2024"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "March,2024" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestWriteFileAtomicOverwritesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.txt")
	if err := WriteFileAtomic(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteFileAtomic(path, []byte(""), 0o644); err != nil {
		t.Fatalf("second write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty content, got %q", data)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the target file, got %d entries", len(entries))
	}
}

func TestReadFileIfExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	data, ok, err := ReadFileIfExists(path)
	if err != nil || ok || data != nil {
		t.Fatalf("expected missing file to be absent, got %q %v %v", data, ok, err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, ok, err = ReadFileIfExists(path)
	if err != nil || !ok || string(data) != "x" {
		t.Fatalf("unexpected result %q %v %v", data, ok, err)
	}
}

func TestReadFileIfExistsReportsOtherErrors(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := ReadFileIfExists(dir); err == nil {
		t.Fatal("expected reading a directory to fail")
	}
}

func TestRemoveIfExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.txt")
	removed, err := RemoveIfExists(path)
	if err != nil || removed {
		t.Fatalf("expected no-op on missing file, got %v %v", removed, err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	removed, err = RemoveIfExists(path)
	if err != nil || !removed {
		t.Fatalf("expected removal, got %v %v", removed, err)
	}
}
