package logging

import "testing"

func TestLoggerInitializers(t *testing.T) {
	t.Parallel()

	Init()
	if l := Logger(SourceApp); l == nil {
		t.Fatal("Logger returned nil")
	}
	if l := Logger(SourceDataset); l == nil {
		t.Fatal("Logger returned nil for dataset source")
	}
}

func TestSetLevel(t *testing.T) {
	t.Parallel()

	l := Logger(SourcePlot)

	if err := SetLevel("warn"); err != nil {
		t.Fatalf("SetLevel(warn) failed: %v", err)
	}
	if got := l.GetLevel().String(); got != "warn" {
		t.Fatalf("expected issued logger level warn, got %q", got)
	}

	if err := SetLevel("not-a-level"); err == nil {
		t.Fatal("expected error for unknown level")
	}

	if err := SetLevel("info"); err != nil {
		t.Fatalf("SetLevel(info) failed: %v", err)
	}
}
