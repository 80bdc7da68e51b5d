// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"strings"

	"github.com/marcelocantos/mish/internal/builtin"
	"github.com/marcelocantos/mish/internal/pipeline"
)

// Usage describes the command language for the root command's help.
func Usage(builtins []builtin.Builtin) string {
	var b strings.Builder
	fmt.Fprintln(&b, "mish reads command lines and runs them. There is no quoting,")
	fmt.Fprintln(&b, "escaping, or expansion: words are split on whitespace.")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "operators:")
	fmt.Fprintf(&b, "  %-3s run next regardless\n", pipeline.OpSequential)
	fmt.Fprintf(&b, "  %-3s run next if previous succeeded\n", pipeline.OpAndThen)
	fmt.Fprintf(&b, "  %-3s pipe stdout to the next command's stdin\n", pipeline.OpPipe)
	fmt.Fprintf(&b, "  %-3s read stdin from file\n", pipeline.OpRedirectIn)
	fmt.Fprintf(&b, "  %-3s write stdout to file\n", pipeline.OpRedirectOut)
	fmt.Fprintf(&b, "  %-3s append stdout to file\n", pipeline.OpAppendOut)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "builtins:")
	for _, c := range builtins {
		fmt.Fprintf(&b, "  %-8s %s\n", c.Name(), c.Description())
	}
	return b.String()
}
