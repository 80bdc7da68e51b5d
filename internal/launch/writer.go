// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package launch

import (
	"io"
	"os"
	"sync"
)

// lockedWriter serialises writes from the copy goroutines os/exec starts
// for every child whose stream is not a file. Writers sharing one mutex
// are safe to use from concurrent pipeline stages, and the launcher's own
// diagnostics go through the same writers.
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

// lockWriters wraps each non-file writer so that all of them share one mutex.
// Files and nil writers are returned unchanged so children inherit the
// descriptor directly.
func lockWriters(ws ...io.Writer) []io.Writer {
	mu := &sync.Mutex{}
	out := make([]io.Writer, len(ws))
	for i, w := range ws {
		switch w.(type) {
		case nil, *os.File:
			out[i] = w
		default:
			out[i] = &lockedWriter{mu: mu, w: w}
		}
	}
	return out
}
