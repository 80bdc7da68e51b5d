// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"errors"
	"strings"
)

// ParseOptions selects how strictly redirections are parsed.
type ParseOptions struct {
	// RejectMalformed turns a redirect operator with no following path into
	// a syntax error. When false the operator is dropped and the stage is
	// marked Degraded.
	RejectMalformed bool

	// StrictRedirects only allows < on the first stage and > / >> on the
	// last stage of a pipeline.
	StrictRedirects bool
}

// Tokenize splits s into whitespace-delimited tokens. There is no quoting or
// escaping: " and \ are ordinary characters.
func Tokenize(s string) []string {
	return strings.Fields(s)
}

// ResolveRedirects extracts <, > and >> directives from a stage's tokens.
// It returns the remaining argument vector and the directives in order.
// An operator with no following token stops the scan and is dropped;
// degraded reports that this happened.
func ResolveRedirects(tokens []string) (args []string, redirects []Redirect, degraded bool) {
	args = make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		kind, ok := redirectKind(tokens[i])
		if !ok {
			args = append(args, tokens[i])
			continue
		}
		if i+1 >= len(tokens) {
			degraded = true
			break
		}
		i++
		redirects = append(redirects, Redirect{Kind: kind, Path: tokens[i]})
	}
	return args, redirects, degraded
}

func redirectKind(token string) (RedirectKind, bool) {
	switch token {
	case OpRedirectIn:
		return RedirectInput, true
	case OpRedirectOut:
		return RedirectTruncate, true
	case OpAppendOut:
		return RedirectAppend, true
	default:
		return 0, false
	}
}

// ParseStage tokenizes one stage's text and resolves its redirections.
func ParseStage(text string, opts ParseOptions) (Stage, error) {
	args, redirects, degraded := ResolveRedirects(Tokenize(text))
	if degraded && opts.RejectMalformed {
		return Stage{}, &SyntaxError{Text: strings.TrimSpace(text), Msg: "redirection requires a file path"}
	}
	if len(args) == 0 {
		return Stage{}, &SyntaxError{Text: strings.TrimSpace(text), Msg: "empty command"}
	}
	return Stage{Args: args, Redirects: redirects, Degraded: degraded}, nil
}

// ParsePipeline splits a sub-clause on | and parses every stage.
// Text without a | yields a one-stage pipeline.
func ParsePipeline(text string, opts ParseOptions) (*Pipeline, error) {
	parts := strings.Split(text, OpPipe)
	p := &Pipeline{Text: strings.TrimSpace(text), Stages: make([]Stage, 0, len(parts))}
	for _, part := range parts {
		stage, err := ParseStage(part, opts)
		if err != nil {
			var se *SyntaxError
			if len(parts) > 1 && errors.As(err, &se) {
				return nil, &SyntaxError{Text: p.Text, Msg: se.Msg + " in pipeline"}
			}
			return nil, err
		}
		p.Stages = append(p.Stages, stage)
	}
	if opts.StrictRedirects {
		if err := checkRedirectPlacement(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// checkRedirectPlacement rejects input redirection after the first stage and
// output redirection before the last.
func checkRedirectPlacement(p *Pipeline) error {
	last := len(p.Stages) - 1
	for i, s := range p.Stages {
		for _, r := range s.Redirects {
			if r.Kind == RedirectInput && i > 0 {
				return &SyntaxError{Text: p.Text, Msg: "input redirection is only allowed on the first command"}
			}
			if r.Kind.IsOutput() && i < last {
				return &SyntaxError{Text: p.Text, Msg: "output redirection is only allowed on the last command"}
			}
		}
	}
	return nil
}

// ParseClause splits a ;-delimited clause on && and parses each operand.
// An empty operand makes the whole clause invalid.
func ParseClause(text string, opts ParseOptions) Clause {
	c := Clause{Text: strings.TrimSpace(text)}
	operands := strings.Split(text, OpAndThen)
	for _, operand := range operands {
		if strings.TrimSpace(operand) == "" {
			c.Err = &SyntaxError{Text: c.Text, Msg: "empty command around " + OpAndThen}
			c.Steps = nil
			return c
		}
		p, err := ParsePipeline(operand, opts)
		if err != nil {
			c.Err = err
			c.Steps = nil
			return c
		}
		c.Steps = append(c.Steps, p)
	}
	if len(c.Steps) > 1 {
		c.Op = Operator(OpAndThen)
	}
	return c
}

// ParseLine splits a line on ; into clauses. Blank clauses are skipped.
// Parse failures are recorded per clause so the other clauses still run.
func ParseLine(text string, opts ParseOptions) *Line {
	line := &Line{Text: text}
	for _, part := range strings.Split(text, OpSequential) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		line.Clauses = append(line.Clauses, ParseClause(part, opts))
	}
	return line
}
