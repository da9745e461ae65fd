package httpapi

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Logger provides structured logging for upstream API calls.
type Logger interface {
	// LogRequest logs an outgoing API request (token redacted)
	LogRequest(ctx context.Context, req RequestLog)

	// LogResponse logs an API response with timing info
	LogResponse(ctx context.Context, resp ResponseLog)

	// LogError logs an API error
	LogError(ctx context.Context, err ErrorLog)
}

// RequestLog contains request information for logging.
type RequestLog struct {
	API       string
	Method    string
	URL       string
	Timestamp time.Time
	Token     string // Will be redacted to last 4 chars
}

// ResponseLog contains response information for logging.
type ResponseLog struct {
	API        string
	Method     string
	URL        string
	Timestamp  time.Time
	Duration   time.Duration
	StatusCode int
	BodyBytes  int
	FromCache  bool
}

// ErrorLog contains error information for logging.
type ErrorLog struct {
	API        string
	Method     string
	URL        string
	Timestamp  time.Time
	Duration   time.Duration
	Error      error
	StatusCode int
}

// LogLevel defines the logging verbosity level.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelError
)

// LogFormat defines the output format for logs.
type LogFormat int

const (
	LogFormatHuman LogFormat = iota
	LogFormatJSON
)

// DefaultLogger writes logs in structured format via the standard logger.
type DefaultLogger struct {
	level        LogLevel
	format       LogFormat
	redactTokens bool
}

// NewDefaultLogger creates a logger with the specified config.
func NewDefaultLogger(level LogLevel, format LogFormat, redactTokens bool) *DefaultLogger {
	return &DefaultLogger{
		level:        level,
		format:       format,
		redactTokens: redactTokens,
	}
}

// LogRequest logs an API request.
func (l *DefaultLogger) LogRequest(ctx context.Context, req RequestLog) {
	if l.level > LogLevelDebug {
		return
	}

	redacted := l.RedactToken(req.Token)

	if l.format == LogFormatJSON {
		log.Printf(`{"level":"debug","type":"request","api":"%s","method":"%s","url":"%s","timestamp":"%s","token":"%s"}`,
			req.API, req.Method, req.URL, req.Timestamp.Format(time.RFC3339), redacted)
	} else {
		log.Printf("[DEBUG] %s: %s %s (token=%s)", req.API, req.Method, req.URL, redacted)
	}
}

// LogResponse logs an API response.
func (l *DefaultLogger) LogResponse(ctx context.Context, resp ResponseLog) {
	if l.level > LogLevelInfo {
		return
	}

	if l.format == LogFormatJSON {
		log.Printf(`{"level":"info","type":"response","api":"%s","method":"%s","url":"%s","timestamp":"%s","duration_ms":%d,"status_code":%d,"body_bytes":%d,"from_cache":%t}`,
			resp.API, resp.Method, resp.URL, resp.Timestamp.Format(time.RFC3339),
			resp.Duration.Milliseconds(), resp.StatusCode, resp.BodyBytes, resp.FromCache)
	} else {
		source := "network"
		if resp.FromCache {
			source = "cache"
		}
		log.Printf("[INFO] %s: %s %s -> %d (%.1fs, %d bytes, %s)",
			resp.API, resp.Method, resp.URL, resp.StatusCode,
			resp.Duration.Seconds(), resp.BodyBytes, source)
	}
}

// LogError logs an API error.
func (l *DefaultLogger) LogError(ctx context.Context, err ErrorLog) {
	if l.level > LogLevelError {
		return
	}

	if l.format == LogFormatJSON {
		log.Printf(`{"level":"error","type":"error","api":"%s","method":"%s","url":"%s","timestamp":"%s","duration_ms":%d,"error":"%s","status_code":%d}`,
			err.API, err.Method, err.URL, err.Timestamp.Format(time.RFC3339),
			err.Duration.Milliseconds(), err.Error.Error(), err.StatusCode)
	} else {
		log.Printf("[ERROR] %s: %s %s failed (status=%d): %v",
			err.API, err.Method, err.URL, err.StatusCode, err.Error)
	}
}

// RedactToken shows only the last 4 characters of a token with explicit redaction markers.
func (l *DefaultLogger) RedactToken(token string) string {
	if !l.redactTokens {
		return token
	}
	if token == "" {
		return ""
	}
	if len(token) <= 4 {
		return "[REDACTED]"
	}
	return fmt.Sprintf("[REDACTED-%s]", token[len(token)-4:])
}
