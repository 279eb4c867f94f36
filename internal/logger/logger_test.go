package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/config"
)

func TestLogRotation(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "meshview.log")

	// 1MB is the smallest size lumberjack accepts.
	l, err := New(config.LoggingConfig{
		Level:      "debug",
		LogFile:    logFile,
		MaxSizeMB:  1,
		MaxBackups: 2,
		MaxAgeDays: 1,
	}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	payload := strings.Repeat("x", 200)
	for i := 0; i < 15000; i++ {
		l.Info("edge batch", zap.Int("batch", i), zap.String("payload", payload))
	}
	_ = l.Sync()

	if _, err := os.Stat(logFile); err != nil {
		t.Fatalf("main log file: %v", err)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	rotated := 0
	for _, f := range files {
		name := f.Name()
		if name == "meshview.log" {
			continue
		}
		rotated++
		// meshview-YYYY-MM-DDTHH-MM-SS.SSS.log
		if !strings.HasPrefix(name, "meshview-20") {
			t.Errorf("unexpected rotated file name %s", name)
		}
	}
	if rotated == 0 {
		t.Error("no rotated files found")
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(t.TempDir(), "levels.log")
			l, err := New(config.LoggingConfig{Level: tt.level, LogFile: logFile}, nil)
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			l.Debug("debug message")
			l.Info("info message")
			l.Warn("warn message")
			l.Error("error message")
			_ = l.Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatal(err)
			}
			out := string(content)
			for _, want := range tt.expected {
				if !strings.Contains(out, want) {
					t.Errorf("expected %s in output", want)
				}
			}
			for _, not := range tt.excluded {
				if strings.Contains(out, not) {
					t.Errorf("unexpected %s at level %q", not, tt.level)
				}
			}
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(config.LoggingConfig{Level: "verbose"}, nil); err == nil {
		t.Error("expected an error for level verbose")
	}
}

func TestConsoleSink(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(config.LoggingConfig{Level: "info"}, &buf)
	if err != nil {
		t.Fatal(err)
	}

	l.Named("mesh").Info("loaded", zap.Int("triangles", 12))
	l.Debug("hidden")

	out := buf.String()
	for _, want := range []string{"mesh", "loaded", "triangles", "12"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug entry written at info level")
	}
}

func TestInit(t *testing.T) {
	defer func(prev *zap.Logger) { Log = prev }(Log)

	logFile := filepath.Join(t.TempDir(), "cfg.log")
	if err := Init(config.LoggingConfig{Level: "warn", LogFile: logFile}); err != nil {
		t.Fatal(err)
	}
	if Log.Core().Enabled(zap.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}

	Named("watch").Warn("reload failed")
	Sync()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "watch") {
		t.Errorf("component name missing from %q", content)
	}
}
