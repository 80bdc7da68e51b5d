// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package builtin

import (
	"context"
	"io"
)

type History struct{}

var _ Builtin = (*History)(nil)

func (h *History) Name() string        { return "history" }
func (h *History) Description() string { return "list the lines submitted this session" }

func (h *History) Run(ctx context.Context, env Env, args []string, stdout, stderr io.Writer) error {
	_, err := env.History().WriteTo(stdout)
	return err
}
