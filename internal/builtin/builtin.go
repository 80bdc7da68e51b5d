// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package builtin

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/marcelocantos/mish/internal/history"
)

// Env is the session state a builtin may touch.
type Env interface {
	// Chdir changes the shell's working directory.
	Chdir(dir string) error

	// History returns the session's history log.
	History() *history.Log
}

// Builtin is a command executed inside the shell process.
type Builtin interface {
	// Name returns the command word that selects the builtin.
	Name() string

	// Description returns a human-readable summary for help output.
	Description() string

	// Run executes the builtin. args excludes the command name.
	// A returned *StatusError carries a non-zero code whose diagnostic
	// has already been written to stderr.
	Run(ctx context.Context, env Env, args []string, stdout, stderr io.Writer) error
}

// ExitRequest asks the read loop to terminate the shell with Code.
type ExitRequest struct {
	Code int
}

func (e *ExitRequest) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// StatusError reports a builtin failure that has already been diagnosed.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Registry maps command names to builtins.
type Registry struct {
	mu       sync.RWMutex
	builtins map[string]Builtin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{builtins: make(map[string]Builtin)}
}

// Register adds a builtin, replacing any existing one with the same name.
func (r *Registry) Register(b Builtin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builtins[b.Name()] = b
}

// Lookup returns the builtin for name.
func (r *Registry) Lookup(name string) (Builtin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.builtins[name]
	return b, ok
}

// All returns all registered builtins sorted by name.
func (r *Registry) All() []Builtin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Builtin, 0, len(r.builtins))
	for _, b := range r.builtins {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name() < out[j].Name()
	})
	return out
}
