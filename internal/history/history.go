// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package history

import (
	"fmt"
	"io"
)

// DefaultCapacity is the number of lines kept when no capacity is configured.
const DefaultCapacity = 100

// Entry is one recorded submission.
type Entry struct {
	Index int    // 1-based
	Text  string // line as submitted
}

func (e Entry) String() string {
	return fmt.Sprintf("%d: %s", e.Index, e.Text)
}

// Log is a bounded, append-only record of submitted lines. Once full,
// further lines are dropped; the oldest entries are never evicted.
type Log struct {
	capacity int
	entries  []Entry
}

// New creates a log holding at most capacity entries.
// A non-positive capacity selects DefaultCapacity.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{capacity: capacity}
}

// Add records text and reports whether it was kept.
func (l *Log) Add(text string) bool {
	if len(l.entries) >= l.capacity {
		return false
	}
	l.entries = append(l.entries, Entry{Index: len(l.entries) + 1, Text: text})
	return true
}

// Entries returns a copy of the recorded entries in ascending index order.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *Log) Len() int { return len(l.entries) }

// Cap returns the maximum number of entries.
func (l *Log) Cap() int { return l.capacity }

// Full reports whether further lines will be dropped.
func (l *Log) Full() bool { return len(l.entries) >= l.capacity }

// WriteTo prints every entry as "<index>: <text>" on its own line.
func (l *Log) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, e := range l.entries {
		n, err := fmt.Fprintln(w, e)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
