package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestReadTextConcatenates(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(a, []byte("hello "), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("world"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadText([]string{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello world" {
		t.Fatalf("ReadText() = %q", got)
	}

	if _, err := ReadText([]string{a, filepath.Join(dir, "missing")}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestEmit(t *testing.T) {
	var buf bytes.Buffer
	if err := Emit(&buf, "", false, "out"); err != nil || buf.String() != "out" {
		t.Fatalf("Emit to writer: %q, %v", buf.String(), err)
	}
	if err := Emit(&buf, "", true, "out"); err == nil {
		t.Fatal("expected error for -w without path")
	}

	path := filepath.Join(t.TempDir(), "labels.yaml")
	if err := Emit(nil, path, true, "first"); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatal(err)
	}
	if err := Emit(nil, path, true, "first"); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.ModTime().After(old.Add(time.Minute)) {
		t.Fatal("unchanged content was rewritten")
	}
}
