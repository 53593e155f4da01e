// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger is the zerolog setup shared by the file keeper server, its
// workers and the CLI client.
//
// Entries are JSON with a "role" field naming the process, a timestamp, and
// the calling function under "func". Request handlers do not receive a
// logger: the trace-id middleware stores one in the request context, the
// auth middleware adds the user id to it, and code below reads it back with
// FromRequest or FromContext.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	logDirMode  = 0o750
	logFileMode = 0o600
)

// Logger embeds zerolog.Logger, so the full zerolog API is available on it.
type Logger struct {
	zerolog.Logger
}

// NewLogger returns the server logger: JSON on stdout at debug level.
func NewLogger(role string) *Logger {
	return newRoleLogger(os.Stdout, role, zerolog.DebugLevel)
}

// NewClientLogger returns the CLI logger. Stdout belongs to command output,
// so entries are appended to logPath, or go to stderr when the file cannot
// be opened.
func NewClientLogger(role, logPath string) *Logger {
	return newRoleLogger(openClientLog(logPath), role, zerolog.InfoLevel)
}

func newRoleLogger(out io.Writer, role string, level zerolog.Level) *Logger {
	zerolog.SetGlobalLevel(level)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}

	return &Logger{zerolog.New(out).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()}
}

func openClientLog(logPath string) io.Writer {
	if logPath == "" {
		return os.Stderr
	}
	if err := os.MkdirAll(filepath.Dir(logPath), logDirMode); err != nil {
		return os.Stderr
	}

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode)
	if err != nil {
		return os.Stderr
	}
	return logFile
}

// Nop discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy that can take extra fields without touching
// the receiver. The trace-id middleware builds one per request.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithUserID returns a child whose entries carry the authenticated file
// owner as "user_id".
func (l *Logger) WithUserID(userID int64) *Logger {
	return &Logger{l.With().Int64("user_id", userID).Logger()}
}

// FromRequest returns the logger stored in the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger stored in ctx, or zerolog's global logger
// when none was stored. It never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
