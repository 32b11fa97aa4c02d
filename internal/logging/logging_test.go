package logging

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("warn", FormatJSON, &buf)
	logger.Info("hidden")
	logger.Warn("shown", zap.String("form", "contact"))
	_ = logger.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected a single line, got %q", buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry["msg"] != "shown" || entry["level"] != "WARN" || entry["form"] != "contact" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestParse(t *testing.T) {
	if ParseLevel("Debug") != zapcore.DebugLevel || ParseLevel("bogus") != zapcore.InfoLevel {
		t.Fatalf("unexpected level mapping")
	}
	if ParseFormat("json") != FormatJSON || ParseFormat("") != FormatConsole {
		t.Fatalf("unexpected format mapping")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "ERROR")
	t.Setenv(EnvFormat, "JSON")

	var buf bytes.Buffer
	logger := FromEnv(&buf)
	logger.Warn("dropped")
	logger.Error("kept")
	_ = logger.Sync()

	if strings.Contains(buf.String(), "dropped") || !strings.Contains(buf.String(), `"msg":"kept"`) {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
