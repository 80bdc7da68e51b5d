// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package builtin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

type Cd struct{}

var _ Builtin = (*Cd)(nil)

func (c *Cd) Name() string        { return "cd" }
func (c *Cd) Description() string { return "change the shell's working directory" }

func (c *Cd) Run(ctx context.Context, env Env, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "cd: missing argument")
		return &StatusError{Code: 1}
	}
	if err := env.Chdir(args[0]); err != nil {
		fmt.Fprintf(stderr, "cd: %v\n", describe(err))
		return &StatusError{Code: 1}
	}
	return nil
}

// describe renders a chdir failure as "<path>: <reason>".
func describe(err error) string {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Path + ": " + pathErr.Err.Error()
	}
	return err.Error()
}
