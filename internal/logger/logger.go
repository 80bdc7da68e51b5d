// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/fatih/color"
)

type Color func() PrintFunc
type PrintFunc func(io.Writer, string, ...any)

func Yellow() PrintFunc {
	return color.New(envColor("MISH_COLOR_YELLOW", color.FgYellow)).FprintfFunc()
}
func Magenta() PrintFunc {
	return color.New(envColor("MISH_COLOR_MAGENTA", color.FgMagenta)).FprintfFunc()
}
func Red() PrintFunc {
	return color.New(envColor("MISH_COLOR_RED", color.FgRed)).FprintfFunc()
}

func envColor(env string, defaultColor color.Attribute) color.Attribute {
	override, err := strconv.Atoi(os.Getenv(env))
	if err == nil {
		return color.Attribute(override)
	}
	return defaultColor
}

// Logger writes shell diagnostics, with optional color.
// Each line is written with a single locked call, so one Logger may be
// shared between goroutines.
type Logger struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Verbose bool
	Color   bool

	mu sync.Mutex
}

// New returns a Logger writing to the given streams.
func New(stdout, stderr io.Writer) *Logger {
	return &Logger{Stdout: stdout, Stderr: stderr}
}

// WithStderr returns a Logger with the same settings writing diagnostics
// to stderr instead.
func (l *Logger) WithStderr(stderr io.Writer) *Logger {
	return &Logger{Stdout: l.Stdout, Stderr: stderr, Verbose: l.Verbose, Color: l.Color}
}

// Outf prints a line to Stdout.
func (l *Logger) Outf(c Color, s string, args ...any) {
	l.fprintf(l.Stdout, c, s, args...)
}

// Errf prints a line to Stderr.
func (l *Logger) Errf(c Color, s string, args ...any) {
	l.fprintf(l.Stderr, c, s, args...)
}

// VerboseErrf prints a line to Stderr if verbose mode is enabled.
func (l *Logger) VerboseErrf(c Color, s string, args ...any) {
	if l.Verbose {
		l.Errf(c, s, args...)
	}
}

func (l *Logger) fprintf(w io.Writer, c Color, s string, args ...any) {
	if w == nil {
		return
	}
	if len(args) == 0 {
		s, args = "%s", []any{s}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.Color {
		fmt.Fprintf(w, s+"\n", args...)
		return
	}
	print := c()
	print(w, s+"\n", args...)
}
