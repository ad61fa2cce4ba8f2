package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// capture routes output to a buffer for the duration of the test.
func capture(t *testing.T, v bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	SetVerbose(v)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(prev)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false after SetVerbose(false)")
	}
}

func TestSetOutput_ReturnsPrevious(t *testing.T) {
	var a, b bytes.Buffer
	orig := SetOutput(&a)
	defer SetOutput(orig)

	if prev := SetOutput(&b); prev != &a {
		t.Error("expected SetOutput to return the previous writer")
	}
}

func TestVerboseLevels(t *testing.T) {
	tests := []struct {
		name    string
		log     func(string, ...any)
		verbose bool
		want    string
	}{
		{"debug verbose", Debug, true, "[DEBUG] page 3 of 7\n"},
		{"debug quiet", Debug, false, ""},
		{"info verbose", Info, true, "[INFO] page 3 of 7\n"},
		{"info quiet", Info, false, ""},
		{"warn verbose", Warn, true, "[WARN] page 3 of 7\n"},
		{"warn quiet", Warn, false, "[WARN] page 3 of 7\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, tt.verbose)
			tt.log("page %d of %d", 3, 7)
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWarn_LiteralPercent(t *testing.T) {
	buf := capture(t, false)
	Warn("%s", "zoom 100%")
	if got := buf.String(); got != "[WARN] zoom 100%\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestToFile(t *testing.T) {
	buf := capture(t, false)
	path := filepath.Join(t.TempDir(), "logs", "plancanvas.log")

	restore, err := ToFile(path)
	if err != nil {
		t.Fatalf("ToFile: %v", err)
	}
	Warn("save failed for %s", "p1")
	restore()
	Warn("after restore")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "[WARN] save failed for p1") {
		t.Errorf("log file missing warning: %q", data)
	}
	if strings.Contains(string(data), "after restore") {
		t.Error("log file written after restore")
	}
	if buf.String() != "[WARN] after restore\n" {
		t.Errorf("expected restored output, got %q", buf.String())
	}
}
