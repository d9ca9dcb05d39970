package tileindex

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/chipviz/tileindex/geom"
)

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	if _, err := Build([]geom.Shape{rect(0, 0, 10, 10)}, 64); err != nil {
		t.Fatalf("Build(): %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("built tile index")) {
		t.Errorf("log output missing build summary: %q", buf.String())
	}
}

func TestSetLogger_NilRestoresSilence(t *testing.T) {
	SetLogger(nil)
	l := Logger()
	if l == nil {
		t.Fatal("Logger() = nil")
	}
	if l.Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger is enabled, want silent")
	}
}

func TestSetLogger_WarnOnSkippedShapes(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	shapes := []geom.Shape{
		rect(0, 0, 10, 10),
		rect(5, 5, 5, 5),
	}
	if _, err := Build(shapes, 64, WithSkipInvalid()); err != nil {
		t.Fatalf("Build(): %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("skipping invalid shape")) {
		t.Errorf("log output missing skip warning: %q", buf.String())
	}
}
