// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/marcelocantos/mish/internal/audit"
)

// RunAudit handles the mish audit subcommand.
func RunAudit(w io.Writer, logPath string, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(w, "usage: mish audit <verify|show [n]>")
		return 1
	}

	switch args[0] {
	case "verify":
		n, err := audit.Verify(logPath)
		if err != nil {
			fmt.Fprintf(w, "audit verification FAILED after %d entries: %v\n", n, err)
			return 1
		}
		fmt.Fprintf(w, "audit log integrity verified (%d entries)\n", n)
		return 0

	case "show", "tail":
		n := 20
		if len(args) > 1 {
			v, err := strconv.Atoi(args[1])
			if err != nil || v < 0 {
				fmt.Fprintf(w, "mish audit: invalid count %q\n", args[1])
				return 1
			}
			n = v
		}
		entries, err := audit.Tail(logPath, n)
		if err != nil {
			fmt.Fprintf(w, "mish audit: %v\n", err)
			return 1
		}
		if len(entries) == 0 {
			fmt.Fprintln(w, "no audit entries")
			return 0
		}
		for _, e := range entries {
			fmt.Fprintln(w, formatEntry(e))
		}
		return 0

	default:
		fmt.Fprintf(w, "mish audit: unknown subcommand %q\n", args[0])
		return 1
	}
}

func formatEntry(e audit.Entry) string {
	status := strconv.Itoa(e.ExitCode)
	if e.Signal != "" {
		status = e.Signal
	}
	return fmt.Sprintf("%d\t%s\t%s\t%s\t%s",
		e.Seq, e.Time.Local().Format(time.DateTime), status, e.Cwd, e.Line)
}
