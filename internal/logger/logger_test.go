package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func resetLogger() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer resetLogger()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
}

func TestDebugRespectsVerbose(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)

	SetVerbose(false)
	Debug("hidden %s", "message")
	if buf.Len() != 0 {
		t.Errorf("expected no output when not verbose, got %q", buf.String())
	}

	SetVerbose(true)
	Debug("embedding chunk %d", 3)
	if !strings.Contains(buf.String(), "[DEBUG] embedding chunk 3") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestInfoAndWarnPrefixes(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Info("ingested %d chunks", 5)
	Warn("retrying after %s", "rate limit")

	out := buf.String()
	if !strings.Contains(out, "[INFO] ingested 5 chunks") {
		t.Errorf("missing info line in %q", out)
	}
	if !strings.Contains(out, "[WARN] retrying after rate limit") {
		t.Errorf("missing warn line in %q", out)
	}
}
