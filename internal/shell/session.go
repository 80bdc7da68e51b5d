// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

// Package shell holds the state of one interactive session and turns
// submitted lines into parsed, executed and recorded commands.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/marcelocantos/mish/internal/audit"
	"github.com/marcelocantos/mish/internal/builtin"
	"github.com/marcelocantos/mish/internal/history"
	"github.com/marcelocantos/mish/internal/launch"
	"github.com/marcelocantos/mish/internal/logger"
	"github.com/marcelocantos/mish/internal/pipeline"
)

// Options configures a Session.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Log receives diagnostics. Defaults to a plain logger on Stdout/Stderr.
	Log *logger.Logger

	// Dir is the initial working directory. Defaults to the process's.
	Dir string

	HistorySize int
	Parse       pipeline.ParseOptions

	// Audit, if set, receives one entry per executed line.
	Audit *audit.Logger
}

// Session is the state shared by every line submitted to one shell.
type Session struct {
	stdout io.Writer
	stderr io.Writer

	log      *logger.Logger
	launcher *launch.Launcher
	registry *builtin.Registry
	history  *history.Log
	audit    *audit.Logger
	parse    pipeline.ParseOptions
	dir      string

	// exit is set when the exit builtin runs.
	exit *builtin.ExitRequest

	mu     sync.Mutex
	cancel context.CancelFunc
}

var (
	_ pipeline.Runner = (*Session)(nil)
	_ builtin.Env     = (*Session)(nil)
)

// New creates a session.
func New(opts Options) (*Session, error) {
	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}
	log := opts.Log
	if log == nil {
		log = logger.New(opts.Stdout, opts.Stderr)
	}

	reg := builtin.NewRegistry()
	builtin.RegisterAll(reg)

	return &Session{
		stdout:   opts.Stdout,
		stderr:   opts.Stderr,
		log:      log,
		launcher: launch.New(opts.Stdin, opts.Stdout, opts.Stderr, log),
		registry: reg,
		history:  history.New(opts.HistorySize),
		audit:    opts.Audit,
		parse:    opts.Parse,
		dir:      dir,
	}, nil
}

// Submit parses and executes one line, then records it in the history.
// Blank lines do nothing. The returned error is non-nil only when the
// line asked the shell to exit, in which case it is an *builtin.ExitRequest.
func (s *Session) Submit(ctx context.Context, line string) (pipeline.Outcome, error) {
	line = strings.TrimRight(line, "\r\n")
	text := strings.TrimSpace(line)
	if text == "" {
		return pipeline.Exited(0), nil
	}
	if text == "exit" {
		return pipeline.Exited(0), &builtin.ExitRequest{}
	}

	ctx, cancel := context.WithCancel(ctx)
	s.setCancel(cancel)
	defer func() {
		s.setCancel(nil)
		cancel()
	}()

	parsed := pipeline.ParseLine(line, s.parse)
	start := time.Now()
	s.exit = nil
	out := pipeline.ExecuteLine(ctx, parsed, s)
	elapsed := time.Since(start)

	if ctx.Err() != nil && s.exit == nil {
		s.log.VerboseErrf(logger.Yellow, "mish: interrupted")
	}

	s.history.Add(line)
	s.record(parsed, out, elapsed)

	if s.exit != nil {
		return out, s.exit
	}
	return out, nil
}

// Run executes one pipeline. A one-stage pipeline naming a builtin runs
// in-process; everything else is handed to the launcher.
func (s *Session) Run(ctx context.Context, p *pipeline.Pipeline) pipeline.Outcome {
	for _, st := range p.Stages {
		if st.Degraded {
			s.log.VerboseErrf(logger.Yellow, "mish: %s: redirection without a file path ignored", st.Name())
		}
	}
	if len(p.Stages) == 1 {
		if b, ok := s.registry.Lookup(p.Stages[0].Name()); ok {
			return s.runBuiltin(ctx, b, p.Stages[0])
		}
	}
	return s.launcher.Run(ctx, s.dir, p.Stages)
}

// Reject reports a clause that could not be parsed.
func (s *Session) Reject(err error) pipeline.Outcome {
	s.log.Errf(logger.Red, "mish: %v", err)
	return pipeline.Exited(2)
}

func (s *Session) runBuiltin(ctx context.Context, b builtin.Builtin, st pipeline.Stage) pipeline.Outcome {
	streams, err := launch.OpenRedirects(s.dir, st.Redirects)
	if err != nil {
		s.log.Errf(logger.Red, "mish: %v", err)
		return pipeline.Exited(1)
	}
	defer streams.Close()

	stdout := s.stdout
	if streams.Stdout != nil {
		stdout = streams.Stdout
	}

	err = b.Run(ctx, s, st.Args[1:], stdout, s.stderr)

	var exitReq *builtin.ExitRequest
	var statusErr *builtin.StatusError
	switch {
	case err == nil:
		return pipeline.Exited(0)
	case errors.As(err, &exitReq):
		s.exit = exitReq
		s.Interrupt()
		return pipeline.Exited(exitReq.Code)
	case errors.As(err, &statusErr):
		return pipeline.Exited(statusErr.Code)
	default:
		s.log.Errf(logger.Red, "mish: %s: %v", b.Name(), err)
		return pipeline.Exited(1)
	}
}

// Interrupt cancels the line currently executing, if any, sending SIGINT
// to its running children. It reports whether a line was interrupted.
func (s *Session) Interrupt() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return false
	}
	s.cancel()
	return true
}

func (s *Session) setCancel(cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel = cancel
}

// Chdir changes the working directory of the shell process and of every
// command started afterwards. Relative paths resolve against the current
// directory.
func (s *Session) Chdir(dir string) error {
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(s.dir, dir)
	}
	if err := os.Chdir(dir); err != nil {
		return err
	}
	s.dir = filepath.Clean(dir)
	return nil
}

// Dir returns the session's working directory.
func (s *Session) Dir() string { return s.dir }

// History returns the session's history log.
func (s *Session) History() *history.Log { return s.history }

// Builtins returns the builtins this session dispatches.
func (s *Session) Builtins() []builtin.Builtin { return s.registry.All() }

func (s *Session) record(line *pipeline.Line, out pipeline.Outcome, elapsed time.Duration) {
	if s.audit == nil {
		return
	}
	var commands []string
	for _, p := range line.Pipelines() {
		commands = append(commands, p.Names()...)
	}
	r := audit.Record{
		Line:     line.Text,
		Commands: commands,
		ExitCode: out.Code,
		Duration: elapsed,
		Cwd:      s.dir,
	}
	if out.IsSignaled() {
		r.Signal = unix.SignalName(out.Signal)
	}
	if err := s.audit.Log(r); err != nil {
		s.log.Errf(logger.Yellow, "mish: audit: %v", err)
	}
}
