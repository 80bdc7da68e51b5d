// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// Operators recognised in a command line, from lowest to highest binding.
// Operators are only recognised as whole whitespace-delimited tokens, except
// ; && and | which split the raw text before tokenizing.
const (
	OpSequential  = ";"  // run next clause regardless of outcome
	OpAndThen     = "&&" // run next sub-clause only if the previous one succeeded
	OpPipe        = "|"  // stdout → stdin
	OpRedirectIn  = "<"  // redirect stdin from file
	OpRedirectOut = ">"  // redirect stdout to file, truncating
	OpAppendOut   = ">>" // redirect stdout to file, appending
)

// Operator joins the sub-clauses of a Clause.
type Operator string

// RedirectKind says how a redirection target is opened and which stream it replaces.
type RedirectKind int

const (
	RedirectInput    RedirectKind = iota // read-only, replaces stdin
	RedirectTruncate                     // write, create, truncate; replaces stdout
	RedirectAppend                       // write, create, append; replaces stdout
)

func (k RedirectKind) String() string {
	switch k {
	case RedirectInput:
		return OpRedirectIn
	case RedirectTruncate:
		return OpRedirectOut
	case RedirectAppend:
		return OpAppendOut
	default:
		return fmt.Sprintf("redirect(%d)", int(k))
	}
}

// IsOutput reports whether the redirect replaces stdout.
func (k RedirectKind) IsOutput() bool {
	return k == RedirectTruncate || k == RedirectAppend
}

// Redirect is a parsed <, > or >> directive and its target path.
type Redirect struct {
	Kind RedirectKind
	Path string
}

func (r Redirect) String() string {
	return r.Kind.String() + " " + r.Path
}

// Stage is one command in a pipeline.
type Stage struct {
	Args      []string   // Args[0] is the program or builtin name
	Redirects []Redirect // in the order they appeared
	Degraded  bool       // a trailing redirect operator had no path and was dropped
}

// Name returns the program or builtin name.
func (s Stage) Name() string {
	return s.Args[0]
}

// Pipeline is an ordered, non-empty sequence of stages connected by |.
type Pipeline struct {
	Text   string // raw sub-clause text
	Stages []Stage
}

// Names returns the program name of every stage.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.Stages))
	for i, s := range p.Stages {
		names[i] = s.Name()
	}
	return names
}

// Clause is a ;-delimited unit of a line. Its steps are joined by Op.
// A clause that failed to parse carries Err and is not run.
type Clause struct {
	Text  string
	Op    Operator // OpAndThen when len(Steps) > 1, else empty
	Steps []*Pipeline
	Err   error
}

// Line is one parsed interactive submission.
type Line struct {
	Text    string
	Clauses []Clause
}

// Pipelines returns every successfully parsed pipeline in the line, in order.
func (l *Line) Pipelines() []*Pipeline {
	var ps []*Pipeline
	for _, c := range l.Clauses {
		ps = append(ps, c.Steps...)
	}
	return ps
}

// Outcome is the result of one process or builtin invocation.
// A process killed by a signal has Code -1 and a non-zero Signal.
type Outcome struct {
	Code   int
	Signal syscall.Signal
}

// Exited returns the outcome of a normal exit with the given code.
func Exited(code int) Outcome {
	return Outcome{Code: code}
}

// Signaled returns the outcome of a process terminated by sig.
func Signaled(sig syscall.Signal) Outcome {
	return Outcome{Code: -1, Signal: sig}
}

// Success reports a normal exit with code 0, the only predicate used by &&.
func (o Outcome) Success() bool {
	return o.Code == 0 && o.Signal == 0
}

// IsSignaled reports abnormal termination by a signal.
func (o Outcome) IsSignaled() bool {
	return o.Signal != 0
}

// ExitStatus maps the outcome to a process exit status, using the 128+n
// convention for signals.
func (o Outcome) ExitStatus() int {
	if o.IsSignaled() {
		return 128 + int(o.Signal)
	}
	return o.Code
}

func (o Outcome) String() string {
	if o.IsSignaled() {
		if name := unix.SignalName(o.Signal); name != "" {
			return "killed by " + name
		}
		return fmt.Sprintf("killed by signal %d", int(o.Signal))
	}
	return fmt.Sprintf("exit status %d", o.Code)
}

// SyntaxError reports text that could not be turned into a runnable clause.
type SyntaxError struct {
	Text string // offending clause or stage text
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error near %q: %s", e.Text, e.Msg)
}
