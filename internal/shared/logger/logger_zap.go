// Package logger содержит общий логгер для server и agent.
//
// Пакет предоставляет Zap-логгер, настроенный на запись в файл с ротацией
// (lumberjack) и удобный метод для логирования HTTP-запросов.
package logger

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultFile — файл логов по умолчанию.
var DefaultFile = filepath.Join("runtime", "logs", "http.log")

// Options описывает, куда и как писать логи.
type Options struct {
	Level       string // debug|info|warn|error
	Format      string // json|console
	File        string // путь к файлу, пусто — DefaultFile
	Development bool   // дублировать логи в stdout
}

// HTTPLogger представляет обёртку над zap.Logger для логирования HTTP-событий.
//
// Встраивание *zap.Logger позволяет использовать все методы zap напрямую.
type HTTPLogger struct {
	*zap.Logger
}

// NewHTTPLogger создаёт файловый zap-логгер с настройками по умолчанию:
// уровень info, текстовый формат, файл runtime/logs/http.log.
func NewHTTPLogger() *HTTPLogger {
	return New(Options{})
}

// New создаёт zap-логгер по переданным настройкам.
//
// Для файлов включена ротация (MaxSize/MaxBackups/MaxAge) и сжатие архивов.
// Формат времени: "HH:MM:SS DD.MM.YYYY".
func New(opts Options) *HTTPLogger {
	logFile := opts.File
	if logFile == "" {
		logFile = DefaultFile
	}
	_ = os.MkdirAll(filepath.Dir(logFile), 0755)

	// lumberjack отвечает за ротацию файлов
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100, // MB
		MaxBackups: 10,
		MaxAge:     30, // дней
		Compress:   true,
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = customTimeEncoder

	var encoder zapcore.Encoder
	if strings.EqualFold(opts.Format, "json") {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	level := parseLevel(opts.Level)
	core := zapcore.NewCore(encoder, writer, level)

	// в dev режиме удобно видеть логи и в консоли
	if opts.Development {
		core = zapcore.NewTee(core, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderCfg),
			zapcore.Lock(os.Stdout),
			level,
		))
	}

	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	return &HTTPLogger{Logger: logger}
}

// RequestLog — одна запись о выполненном HTTP-запросе.
type RequestLog struct {
	Method    string
	URI       string
	Status    int
	Size      int
	Duration  time.Duration
	RequestID string
	// UserID заполняется, только если запрос прошёл проверку токена
	UserID string
}

// LogRequest записывает структурированный лог об HTTP-запросе.
//
// Уровень зависит от статуса: 5xx — error, 4xx — warn, остальное — info.
// Пустые request_id и user_id в запись не попадают.
func (logger *HTTPLogger) LogRequest(e RequestLog) {
	fields := []zap.Field{
		zap.String("method", e.Method),
		zap.String("uri", e.URI),
		zap.Int("status", e.Status),
		zap.Int("response_size", e.Size),
		zap.Float64("duration_ms", float64(e.Duration.Microseconds())/1000),
	}
	if e.RequestID != "" {
		fields = append(fields, zap.String("request_id", e.RequestID))
	}
	if e.UserID != "" {
		fields = append(fields, zap.String("user_id", e.UserID))
	}

	switch {
	case e.Status >= 500:
		logger.Error("HTTP request", fields...)
	case e.Status >= 400:
		logger.Warn("HTTP request", fields...)
	default:
		logger.Info("HTTP request", fields...)
	}
}

func parseLevel(s string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || s == "" {
		return zap.InfoLevel
	}
	return lvl
}

// customTimeEncoder форматирует время для логов в виде "HH:MM:SS DD.MM.YYYY".
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05 02.01.2006"))
}
