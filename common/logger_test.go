package common

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("LogLevel.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAppLogger_LogFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	if buf.Len() > 0 {
		t.Error("Debug/Info messages should be filtered when level is Warn")
	}

	logger.Warn("warn message")
	if !strings.Contains(buf.String(), "[WARN]") {
		t.Error("Warn message should be logged")
	}

	buf.Reset()
	logger.Error("error message")
	if !strings.Contains(buf.String(), "[ERROR]") {
		t.Error("Error message should be logged")
	}
}

func TestAppLogger_LogFormatting(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelDebug)

	logger.Info("Kill failed for pid %d", 42)
	output := buf.String()

	if !strings.Contains(output, time.Now().Format("2006/01/02")) {
		t.Error("Log should contain date in YYYY/MM/DD format")
	}
	if !strings.Contains(output, "[INFO]") {
		t.Error("Log should contain level indicator")
	}
	if !strings.Contains(output, "logger_test.go") {
		t.Errorf("Log should name the calling file, got %q", output)
	}
	if !strings.Contains(output, "Kill failed for pid 42") {
		t.Error("Log should contain formatted message")
	}
}

func TestAppLogger_SetOutput(t *testing.T) {
	var first, second bytes.Buffer
	logger := NewLogger(&first, LevelInfo)

	logger.SetOutput(&second)
	logger.Info("moved")

	if first.Len() != 0 {
		t.Error("old writer should not receive lines after SetOutput")
	}
	if !strings.Contains(second.String(), "moved") {
		t.Error("new writer should receive lines")
	}
}

func TestAppLogger_EnableFileLogging(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer
	logger := NewLogger(&console, LevelInfo)

	if err := logger.EnableFileLogging(dir); err != nil {
		t.Fatalf("EnableFileLogging() error = %v", err)
	}
	logger.Info("to both")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to both") {
		t.Error("log file should contain the line")
	}
	if !strings.Contains(console.String(), "to both") {
		t.Error("console should contain the line")
	}
}

func TestDefaultLogConfig(t *testing.T) {
	if defaultMaxFileSize != 5*1024*1024 {
		t.Errorf("defaultMaxFileSize = %v, want 5MB", defaultMaxFileSize)
	}
	if defaultMaxBackups != 5 {
		t.Errorf("defaultMaxBackups = %v, want 5", defaultMaxBackups)
	}
}

func TestLogRotation(t *testing.T) {
	tempDir := t.TempDir()
	logFile := filepath.Join(tempDir, LogFileName)

	largeContent := strings.Repeat("x", 1024*1024)
	if err := os.WriteFile(logFile, []byte(largeContent), 0600); err != nil {
		t.Fatal(err)
	}

	logger := NewLogger(&bytes.Buffer{}, LevelInfo)
	logger.maxFileSize = 512 * 1024
	logger.maxBackups = 2

	logger.rotateIfNeeded(logFile)

	if info, err := os.Stat(logFile); err == nil && info.Size() > 0 {
		t.Error("Original log file should be removed after rotation")
	}

	matches, _ := filepath.Glob(filepath.Join(tempDir, LogFileName+".*"))
	if len(matches) == 0 {
		t.Error("Backup file should be created after rotation")
	}
}

func TestWrapError(t *testing.T) {
	wrapped := WrapError(ErrKillFailed, "pid 42")

	if wrapped == nil {
		t.Fatal("WrapError should return non-nil error")
	}
	if !strings.Contains(wrapped.Error(), "pid 42") {
		t.Error("WrapError should include additional context")
	}
	if !errors.Is(wrapped, ErrKillFailed) {
		t.Error("WrapError should unwrap to the original error")
	}
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatRate(t *testing.T) {
	if got := FormatRate(2048); got != "2.0 KiB/s" {
		t.Errorf("FormatRate(2048) = %q", got)
	}
	if got := FormatRate(-5); got != "0 B/s" {
		t.Errorf("FormatRate(-5) = %q, negative rates clamp to zero", got)
	}
}

func TestContainsFold(t *testing.T) {
	if !ContainsFold("Firefox", "fire") {
		t.Error("ContainsFold should ignore case")
	}
	if ContainsFold("bash", "zsh") {
		t.Error("ContainsFold should not match unrelated strings")
	}
}

func TestFileExists(t *testing.T) {
	tempFile, err := os.CreateTemp(t.TempDir(), "test")
	if err != nil {
		t.Fatal(err)
	}
	tempFile.Close()

	if !FileExists(tempFile.Name()) {
		t.Error("FileExists() should return true for existing file")
	}
	if FileExists("/nonexistent/path/to/file") {
		t.Error("FileExists() should return false for non-existing file")
	}
}
