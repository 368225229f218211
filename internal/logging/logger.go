// Package logging is dex's free-text file log, next to the structured event
// log in otel. Helpers are no-ops until Init or InitWriter runs, so packages
// can log without checking.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abelbrown/dex/internal/config"
)

// Version is reported when logging starts.
const Version = "0.1.0"

// LevelEnv overrides the default debug level ("info", "warn", ...).
const LevelEnv = "DEX_LOG_LEVEL"

var (
	// Logger is nil until Init or InitWriter.
	Logger *log.Logger

	file *os.File
)

// Path returns today's log file under config.Dir()/logs.
func Path() string {
	name := fmt.Sprintf("dex-%s.log", time.Now().Format("2006-01-02"))
	return filepath.Join(config.Dir(), "logs", name)
}

// Init opens Path for append and logs there.
func Init() error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	file = f
	InitWriter(f)
	Logger.Info("dex started", "version", Version, "path", path)
	return nil
}

// InitWriter logs to w. Tests use it to capture output.
func InitWriter(w io.Writer) {
	level := log.DebugLevel
	if v := os.Getenv(LevelEnv); v != "" {
		if parsed, err := log.ParseLevel(v); err == nil {
			level = parsed
		}
	}
	Logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
	})
}

// Close logs shutdown and releases the file. Helpers go quiet again.
func Close() {
	if Logger != nil {
		Logger.Info("dex shutting down")
		Logger = nil
	}
	if file != nil {
		_ = file.Close()
		file = nil
	}
}

func Debug(msg string, keyvals ...any) { emit(log.DebugLevel, msg, keyvals) }
func Info(msg string, keyvals ...any)  { emit(log.InfoLevel, msg, keyvals) }
func Warn(msg string, keyvals ...any)  { emit(log.WarnLevel, msg, keyvals) }
func Error(msg string, keyvals ...any) { emit(log.ErrorLevel, msg, keyvals) }

func emit(level log.Level, msg string, keyvals []any) {
	if Logger == nil {
		return
	}
	Logger.Log(level, msg, keyvals...)
}
