// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package audit

import "time"

// Entry represents a single audit log record: one submitted line.
type Entry struct {
	Seq      uint64    `json:"seq"`
	Time     time.Time `json:"ts"`
	Session  string    `json:"session"`          // shell session ID
	PrevHash string    `json:"prev_hash"`
	Line     string    `json:"line"`             // line as submitted
	Commands []string  `json:"commands"`         // program name of every parsed stage
	ExitCode int       `json:"exit_code"`        // outcome code of the last pipeline
	Signal   string    `json:"signal,omitempty"` // terminating signal, if any
	Duration float64   `json:"duration_ms"`      // execution time in milliseconds
	Cwd      string    `json:"cwd"`              // working directory after the line ran
	Hash     string    `json:"hash"`             // SHA-256 of this entry (with hash field empty)
}

// Record carries the per-line fields the caller supplies.
type Record struct {
	Line     string
	Commands []string
	ExitCode int
	Signal   string
	Duration time.Duration
	Cwd      string
}
