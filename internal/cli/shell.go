// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/marcelocantos/mish/internal/audit"
	"github.com/marcelocantos/mish/internal/builtin"
	"github.com/marcelocantos/mish/internal/config"
	"github.com/marcelocantos/mish/internal/logger"
	"github.com/marcelocantos/mish/internal/shell"
)

// Start assembles a session from cfg.
func Start(cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) (*shell.Session, *logger.Logger, error) {
	log := logger.New(stdout, stderr)
	log.Verbose = cfg.Verbose
	log.Color = cfg.UseColor(isTerminal(stderr))

	var auditLog *audit.Logger
	if cfg.Audit.Enabled {
		l, err := audit.NewLogger(cfg.Audit.Path)
		if err != nil {
			// Continue without audit logging.
			log.Errf(logger.Yellow, "mish: audit: %v", err)
		} else {
			auditLog = l
		}
	}

	sess, err := shell.New(shell.Options{
		Stdin:       stdin,
		Stdout:      stdout,
		Stderr:      stderr,
		Log:         log,
		HistorySize: cfg.HistorySize,
		Parse:       cfg.ParseOptions(),
		Audit:       auditLog,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("start session: %w", err)
	}
	return sess, log, nil
}

// RunCommand executes a single line and returns the shell's exit status.
func RunCommand(ctx context.Context, sess *shell.Session, line string) int {
	out, err := sess.Submit(ctx, line)
	var req *builtin.ExitRequest
	if errors.As(err, &req) {
		return req.Code
	}
	return out.ExitStatus()
}

// RunInteractive reads and executes lines until end of input or exit.
// An interrupt while a line runs stops that line; the loop carries on.
func RunInteractive(ctx context.Context, sess *shell.Session, r LineReader, log *logger.Logger) int {
	defer r.Close()

	stop := forwardInterrupts(sess, log)
	defer stop()

	for {
		line, err := r.ReadLine()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			// The editor reads ^C as a key, so no signal is raised.
			quitHint(log, os.Interrupt)
			continue
		case errors.Is(err, io.EOF):
			return 0
		case err != nil:
			log.Errf(logger.Red, "mish: read: %v", err)
			return 1
		}

		out, err := sess.Submit(ctx, line)
		if err != nil {
			var req *builtin.ExitRequest
			if errors.As(err, &req) {
				return req.Code
			}
			log.Errf(logger.Red, "mish: %v", err)
		}
		if out.Signal == syscall.SIGINT {
			// Start the next prompt on a fresh line after ^C.
			log.Outf(logger.Yellow, "")
		}
	}
}

// forwardInterrupts catches SIGINT so the shell survives it and passes
// it on to the running line. Returns a cleanup function to deregister
// the handler.
func forwardInterrupts(sess *shell.Session, log *logger.Logger) func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	go handleInterrupts(ch, sess, log)
	return func() {
		signal.Stop(ch)
		close(ch)
	}
}

// handleInterrupts interrupts the running line for each signal on ch.
// With no line running it reminds the user how to leave the shell.
func handleInterrupts(ch <-chan os.Signal, sess *shell.Session, log *logger.Logger) {
	for sig := range ch {
		if !sess.Interrupt() {
			quitHint(log, sig)
		}
	}
}

func quitHint(log *logger.Logger, sig os.Signal) {
	log.Outf(logger.Yellow, "Caught %v. Use 'exit' to quit.", sig)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
