// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

const genesisInput = "mish-genesis"

// Logger is an append-only, hash-chained audit log writer.
type Logger struct {
	mu       sync.Mutex
	path     string
	session  string
	seq      uint64
	prevHash string
}

// NewLogger opens or creates an audit log at the given path.
// It reads the last entry to resume the hash chain. Every entry written
// through the returned Logger carries a fresh session ID.
func NewLogger(path string) (*Logger, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create audit dir: %w", err)
	}

	l := &Logger{
		path:     path,
		session:  uuid.NewString(),
		prevHash: genesisHash(),
	}

	// Read existing log to find last entry.
	if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
		lines := splitLines(data)
		if len(lines) > 0 {
			var last Entry
			if err := json.Unmarshal(lines[len(lines)-1], &last); err == nil {
				l.seq = last.Seq
				l.prevHash = last.Hash
			}
		}
	}

	return l, nil
}

// Log writes an audit entry to the log file.
func (l *Logger) Log(r Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := Entry{
		Seq:      l.seq + 1,
		Time:     time.Now().UTC(),
		Session:  l.session,
		PrevHash: l.prevHash,
		Line:     r.Line,
		Commands: r.Commands,
		ExitCode: r.ExitCode,
		Signal:   r.Signal,
		Duration: float64(r.Duration.Microseconds()) / 1000.0,
		Cwd:      r.Cwd,
	}

	// Compute hash with Hash field empty.
	entry.Hash = computeHash(entry)

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}
	data = append(data, '\n')

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write audit entry: %w", err)
	}
	l.seq = entry.Seq
	l.prevHash = entry.Hash
	return nil
}

// Path returns the audit log file path.
func (l *Logger) Path() string {
	return l.path
}

// Session returns the session ID stamped on every entry.
func (l *Logger) Session() string {
	return l.session
}

func genesisHash() string {
	h := sha256.Sum256([]byte(genesisInput))
	return fmt.Sprintf("%x", h)
}

func computeHash(e Entry) string {
	e.Hash = "" // hash is computed with this field empty
	data, _ := json.Marshal(e)
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h)
}

func splitLines(data []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range data {
		if b == '\n' {
			if i > start {
				lines = append(lines, data[start:i])
			}
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, data[start:])
	}
	return lines
}
