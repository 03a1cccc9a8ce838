package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the application logger. It logs to stderr until InitLogger is called.
var Logger = logrus.New()

// InitLogger configures the logger to write JSON lines to stdout and a daily file in logDir
func InitLogger(level, logDir string) error {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %v", err)
	}

	timestamp := time.Now().Format("2006-01-02")
	logFile, err := os.OpenFile(
		filepath.Join(logDir, fmt.Sprintf("app-%s.log", timestamp)),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	Logger.SetOutput(io.MultiWriter(os.Stdout, logFile))
	Logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	Logger.SetLevel(lvl)
	return nil
}

// LogInfo logs an informational message
func LogInfo(format string, v ...interface{}) {
	Logger.Infof(format, v...)
}

// LogWarn logs a warning
func LogWarn(format string, v ...interface{}) {
	Logger.Warnf(format, v...)
}

// LogError logs an error message
func LogError(format string, v ...interface{}) {
	Logger.Errorf(format, v...)
}

// LogDebug logs a debug message
func LogDebug(format string, v ...interface{}) {
	Logger.Debugf(format, v...)
}

// LogRequest logs HTTP request details
func LogRequest(method, path, ip, requestID string, status int, duration time.Duration) {
	Logger.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"ip":         ip,
		"status":     status,
		"latency_ms": duration.Milliseconds(),
		"request_id": requestID,
	}).Info("request completed")
}

// LogErrorWithStack logs an error with stack trace
func LogErrorWithStack(err error, stack []byte) {
	Logger.WithField("stack", string(stack)).Errorf("panic: %v", err)
}
