// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bufio"
	"io"
	"os"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// LineReader yields one submitted line per call. It returns io.EOF at end
// of input and readline.ErrInterrupt when the user abandons a line.
type LineReader interface {
	ReadLine() (string, error)
	Close() error
}

// NewLineReader returns a line editor when in is a terminal and a plain
// scanner otherwise. Only the line editor shows the prompt.
func NewLineReader(in io.Reader, out io.Writer, prompt string, historyLimit int) (LineReader, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          prompt,
			HistoryLimit:    historyLimit,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
			Stdin:           f,
			Stdout:          out,
		})
		if err == nil {
			return &editor{rl: rl}, nil
		}
	}
	return newScanner(in), nil
}

type editor struct {
	rl *readline.Instance
}

func (e *editor) ReadLine() (string, error) {
	return e.rl.Readline()
}

func (e *editor) Close() error {
	return e.rl.Close()
}

type scanner struct {
	s *bufio.Scanner
}

func newScanner(in io.Reader) *scanner {
	s := bufio.NewScanner(in)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &scanner{s: s}
}

func (s *scanner) ReadLine() (string, error) {
	if s.s.Scan() {
		return s.s.Text(), nil
	}
	if err := s.s.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (s *scanner) Close() error { return nil }
