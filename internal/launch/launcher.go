// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package launch

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/marcelocantos/mish/internal/logger"
	"github.com/marcelocantos/mish/internal/pipeline"
)

// Launcher spawns one process per pipeline stage.
type Launcher struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Log    *logger.Logger
}

// New returns a Launcher bound to the given standard streams.
// Diagnostics are formatted by log and written to stderr.
func New(stdin io.Reader, stdout, stderr io.Writer, log *logger.Logger) *Launcher {
	return &Launcher{Stdin: stdin, Stdout: stdout, Stderr: stderr, Log: log}
}

// process is one spawned (or failed) stage.
type process struct {
	name    string
	cmd     *exec.Cmd
	outcome pipeline.Outcome
}

// Run starts every stage, connecting stage i's stdout to stage i+1's stdin,
// then waits for all of them. Children run in dir. The parent closes its
// copy of each pipe end as soon as the stage using it has been started, so
// readers see EOF and no stage blocks on a pipe nobody drains.
// The pipeline's outcome is the last stage's outcome.
//
// When ctx is cancelled every running child receives SIGINT.
func (l *Launcher) Run(ctx context.Context, dir string, stages []pipeline.Stage) pipeline.Outcome {
	n := len(stages)
	if n == 0 {
		return pipeline.Exited(0)
	}

	// Create N-1 pipes between N stages. ins[i] feeds stage i, outs[i] is
	// written by stage i.
	ins := make([]*os.File, n)
	outs := make([]*os.File, n)
	for i := 0; i < n-1; i++ {
		r, w, err := os.Pipe()
		if err != nil {
			l.Log.Errf(logger.Red, "mish: pipe: %v", err)
			closeFiles(ins...)
			closeFiles(outs...)
			return pipeline.Exited(1)
		}
		outs[i], ins[i+1] = w, r
	}

	ws := lockWriters(l.Stdout, l.Stderr)
	stdout, stderr := ws[0], ws[1]

	// Diagnostics share the lock children's stderr copying takes.
	log := l.Log
	if stderr != nil {
		log = l.Log.WithStderr(stderr)
	}

	procs := make([]*process, n)
	for i, st := range stages {
		procs[i] = l.start(ctx, log, dir, st, ins[i], outs[i], stdout, stderr)
		closeFiles(ins[i], outs[i])
	}

	for _, p := range procs {
		p.wait(log)
	}
	return procs[n-1].outcome
}

// start launches one stage. Failures are reported and recorded as exit
// code 1 without affecting the other stages.
func (l *Launcher) start(ctx context.Context, log *logger.Logger, dir string, st pipeline.Stage, in, out *os.File, stdout, stderr io.Writer) *process {
	p := &process{name: st.Name()}

	cmd := exec.CommandContext(ctx, st.Name(), st.Args[1:]...)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.Dir = dir
	cmd.Stdin = l.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if in != nil {
		cmd.Stdin = in
	}
	if out != nil {
		cmd.Stdout = out
	}

	streams, err := OpenRedirects(dir, st.Redirects)
	if err != nil {
		log.Errf(logger.Red, "mish: %v", err)
		p.outcome = pipeline.Exited(1)
		return p
	}
	defer streams.Close()
	if streams.Stdin != nil {
		cmd.Stdin = streams.Stdin
	}
	if streams.Stdout != nil {
		cmd.Stdout = streams.Stdout
	}

	if err := cmd.Start(); err != nil {
		if ctx.Err() != nil {
			p.outcome = pipeline.Signaled(syscall.SIGINT)
			return p
		}
		if errors.Is(err, exec.ErrNotFound) {
			log.Errf(logger.Red, "mish: %s: command not found", st.Name())
		} else {
			log.Errf(logger.Red, "mish: %s: %v", st.Name(), unwrapExecError(err))
		}
		p.outcome = pipeline.Exited(1)
		return p
	}

	p.cmd = cmd
	return p
}

func (p *process) wait(log *logger.Logger) {
	if p.cmd == nil {
		return
	}
	err := p.cmd.Wait()
	p.outcome = outcomeOf(p.cmd.ProcessState)
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		log.VerboseErrf(logger.Magenta, "mish: %s: %v", p.name, err)
	}
	log.VerboseErrf(logger.Magenta, "mish: %s: %v", p.name, p.outcome)
}

// outcomeOf translates a finished process state.
func outcomeOf(state *os.ProcessState) pipeline.Outcome {
	if state == nil {
		return pipeline.Exited(1)
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return pipeline.Signaled(ws.Signal())
	}
	return pipeline.Exited(state.ExitCode())
}

// unwrapExecError strips the exec: "name": prefix so diagnostics name the
// program once.
func unwrapExecError(err error) error {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return execErr.Err
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}

func closeFiles(files ...*os.File) {
	for _, f := range files {
		if f != nil {
			f.Close()
		}
	}
}
