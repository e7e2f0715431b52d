package ocr

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type stubOCR struct {
	got  []byte
	text string
	err  error
}

func (s *stubOCR) OCRImage(_ context.Context, image []byte) (string, error) {
	s.got = image
	return s.text, s.err
}

func TestExtractPassesImageBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.png")
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0600); err != nil {
		t.Fatal(err)
	}

	stub := &stubOCR{text: "recognized"}
	got, err := New(stub).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "recognized" {
		t.Errorf("got %q", got)
	}
	if len(stub.got) != 3 || stub.got[0] != 1 {
		t.Errorf("image bytes not passed through, got %v", stub.got)
	}
}

func TestExtractOCRFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.png")
	if err := os.WriteFile(path, []byte{1}, 0600); err != nil {
		t.Fatal(err)
	}

	wantErr := errors.New("vision unavailable")
	_, err := New(&stubOCR{err: wantErr}).Extract(context.Background(), path)
	if !errors.Is(err, wantErr) {
		t.Fatalf("got %v", err)
	}
}

func TestExtractMissingFile(t *testing.T) {
	_, err := New(&stubOCR{}).Extract(context.Background(), filepath.Join(t.TempDir(), "nope.png"))
	if err == nil {
		t.Fatal("expected error")
	}
}
