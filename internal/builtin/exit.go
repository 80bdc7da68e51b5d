// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package builtin

import (
	"context"
	"fmt"
	"io"
	"strconv"
)

type Exit struct{}

var _ Builtin = (*Exit)(nil)

func (e *Exit) Name() string        { return "exit" }
func (e *Exit) Description() string { return "terminate the shell with an optional status" }

// Run always returns an *ExitRequest. A status that is not an integer
// is reported and treated as 0.
func (e *Exit) Run(ctx context.Context, env Env, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return &ExitRequest{}
	}
	code, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "exit: %s: numeric argument required\n", args[0])
		return &ExitRequest{}
	}
	return &ExitRequest{Code: code}
}
