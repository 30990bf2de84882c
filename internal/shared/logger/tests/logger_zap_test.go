package tests

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/logger"
)

func TestNew_CreatesLogFileAndWrites(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "http.log")

	l := logger.New(logger.Options{File: logPath})
	// пишем лог
	l.Info("test message")
	// закрываем буферы zap
	_ = l.Sync()

	// проверяем, что файл создан
	if _, err := os.Stat(logPath); err != nil {
		t.Fatalf("expected log file to exist at %q, got error: %v", logPath, err)
	}

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	s := string(b)

	if len(s) == 0 {
		t.Fatalf("expected non-empty log file")
	}
	if !regexp.MustCompile(`\btest message\b`).MatchString(s) {
		t.Fatalf("expected log to contain message, got: %q", s)
	}

	// формат времени: "HH:MM:SS DD.MM.YYYY", пример: 11:57:16 16.01.2026
	timeRe := regexp.MustCompile(`\b\d{2}:\d{2}:\d{2} \d{2}\.\d{2}\.\d{4}\b`)
	if !timeRe.MatchString(s) {
		t.Fatalf("expected custom time format (HH:MM:SS DD.MM.YYYY), got: %q", s)
	}
}

func TestHTTPLogger_LogRequest_WritesStructuredFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "http.log")

	l := logger.New(logger.Options{File: logPath})
	l.LogRequest(logger.RequestLog{
		Method:    "POST",
		URI:       "/api/auth/login",
		Status:    401,
		Size:      20,
		Duration:  158546 * time.Microsecond,
		RequestID: "host/abc-000001",
	})
	_ = l.Sync()

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	s := string(b)

	mustContain := []string{
		"HTTP request",
		"method", "POST",
		"uri", "/api/auth/login",
		"status", "401",
		"response_size", "20",
		"duration_ms", "158.546",
		"request_id", "host/abc-000001",
		"warn",
	}
	for _, sub := range mustContain {
		if !strings.Contains(s, sub) {
			t.Fatalf("expected log to contain %q, got: %q", sub, s)
		}
	}
	// анонимный запрос без user_id
	if strings.Contains(s, "user_id") {
		t.Fatalf("user_id must be omitted when empty: %q", s)
	}
}

// 5xx пишется уровнем error и с user_id
func TestHTTPLogger_LogRequest_ServerErrorLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "http.log")

	l := logger.New(logger.Options{File: logPath, Format: "json"})
	l.LogRequest(logger.RequestLog{Method: "GET", URI: "/api/qr/history", Status: 500, UserID: "u1"})
	_ = l.Sync()

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(b))), &entry); err != nil {
		t.Fatalf("expected json line, got %q: %v", b, err)
	}
	if entry["level"] != "error" {
		t.Fatalf("expected level error, got %v", entry["level"])
	}
	if entry["user_id"] != "u1" {
		t.Fatalf("expected user_id u1, got %v", entry["user_id"])
	}
}

// json формат пишет по объекту на строку
func TestNew_JSONFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "http.log")

	l := logger.New(logger.Options{File: logPath, Format: "json"})
	l.Info("json message")
	_ = l.Sync()

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	line := strings.TrimSpace(strings.Split(string(b), "\n")[0])
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("expected json line, got %q: %v", line, err)
	}
	if entry["msg"] != "json message" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
}

// debug не пишется при уровне warn
func TestNew_LevelFiltersMessages(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "http.log")

	l := logger.New(logger.Options{File: logPath, Level: "warn"})
	l.Info("hidden message")
	l.Warn("visible message")
	_ = l.Sync()

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	s := string(b)

	if strings.Contains(s, "hidden message") {
		t.Fatalf("info message must be filtered at warn level: %q", s)
	}
	if !strings.Contains(s, "visible message") {
		t.Fatalf("expected warn message, got %q", s)
	}
}
