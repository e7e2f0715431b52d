package plaintext

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hello\nworld"), 0600); err != nil {
		t.Fatal(err)
	}

	got, err := New().Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "hello\nworld" {
		t.Errorf("got %q", got)
	}
}

func TestExtractMissingFile(t *testing.T) {
	_, err := New().Extract(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected error")
	}
}
