package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var base = zap.NewNop()

// SetupLogger builds the process logger: console output plus a daily file under logDir.
func SetupLogger(logDir, level string) error {
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	logFileName := filepath.Join(logDir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	lvl := parseLevel(level)

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	fileCfg := zap.NewProductionEncoderConfig()
	fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stdout), lvl),
		zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(logFile), lvl),
	)

	base = zap.New(core, zap.AddCaller())
	zap.ReplaceGlobals(base)
	return nil
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// L returns the structured logger handed to services.
func L() *zap.Logger {
	return base
}

// Info logs at info level
func Info(format string, v ...interface{}) {
	base.WithOptions(zap.AddCallerSkip(1)).Info(fmt.Sprintf(format, v...))
}

// Warning logs at warn level
func Warning(format string, v ...interface{}) {
	base.WithOptions(zap.AddCallerSkip(1)).Warn(fmt.Sprintf(format, v...))
}

// Error logs at error level
func Error(format string, v ...interface{}) {
	base.WithOptions(zap.AddCallerSkip(1)).Error(fmt.Sprintf(format, v...))
}

// Sync flushes buffered entries.
func Sync() {
	_ = base.Sync()
}
