// SPDX-FileCopyrightText: The weather2wear authors
//
// SPDX-License-Identifier: MIT

// Package logger provides the slog-based logging facility that is shared by
// all components of weather2wear.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger is a type wrapper for the Go stdlib slog.Logger
type Logger struct {
	*slog.Logger
}

// New returns a new Logger that writes to STDERR with the given log level
func New(level slog.Level) *Logger {
	return NewLogger(level, os.Stderr)
}

// NewLogger returns a new Logger that writes to the given output with the given
// log level
func NewLogger(level slog.Level, output io.Writer) *Logger {
	return &Logger{slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))}
}

// Err returns a slog.Attr for the given error
func Err(err error) slog.Attr {
	return slog.Any("error", err)
}
