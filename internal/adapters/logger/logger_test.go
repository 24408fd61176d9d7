package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"go.trai.ch/weft/internal/adapters/logger"
)

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Info("loaded definition", "source", "rig.weft.yaml")

	out := buf.String()
	if !strings.Contains(out, "INFO") {
		t.Errorf("Expected output to contain 'INFO', got: %s", out)
	}
	if !strings.Contains(out, "loaded definition") {
		t.Errorf("Expected output to contain the message, got: %s", out)
	}
	if !strings.Contains(out, "rig.weft.yaml") {
		t.Errorf("Expected output to contain the source attr, got: %s", out)
	}
}

func TestLogger_Warn(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Warn("plug migration failed", "plug", "rig.user.scale")

	out := buf.String()
	if !strings.Contains(out, "WARN") {
		t.Errorf("Expected output to contain 'WARN', got: %s", out)
	}
	if !strings.Contains(out, "rig.user.scale") {
		t.Errorf("Expected output to contain the plug attr, got: %s", out)
	}
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Error("load failed", "error", "permission denied")

	out := buf.String()
	if !strings.Contains(out, "ERROR") {
		t.Errorf("Expected output to contain 'ERROR', got: %s", out)
	}
	if !strings.Contains(out, "permission denied") {
		t.Errorf("Expected output to contain the error attr, got: %s", out)
	}
}
