package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gapfill.log")
	l, err := New(Config{Level: "debug", Encoding: "json", OutputPath: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Debug("hello", zap.String("tier", "foundation"))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var line map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &line); err != nil {
		t.Fatalf("log line is not JSON: %s", data)
	}
	if line["level"] != "DEBUG" || line["msg"] != "hello" || line["tier"] != "foundation" {
		t.Fatalf("unexpected line: %v", line)
	}
	if _, ok := line["timestamp"]; !ok {
		t.Fatal("missing timestamp key")
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gapfill.log")
	l, err := New(Config{Level: "WARN", OutputPath: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Info("dropped")
	l.Warn("kept")
	_ = l.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "dropped") || !strings.Contains(string(data), "kept") {
		t.Fatalf("unexpected output: %s", data)
	}
}

func TestNew_BadLevelAndEncodingFallBack(t *testing.T) {
	l, err := New(Config{Level: "loud", Encoding: "xml", OutputPath: filepath.Join(t.TempDir(), "x.log")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !l.Core().Enabled(zap.InfoLevel) || l.Core().Enabled(zap.DebugLevel) {
		t.Fatal("expected info level")
	}
}
