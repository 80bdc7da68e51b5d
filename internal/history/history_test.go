// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package history

import (
	"bytes"
	"fmt"
	"testing"
)

func TestAddAndEntries(t *testing.T) {
	l := New(10)
	for _, line := range []string{"ls -la", "echo hi > out.txt", "cat < out.txt"} {
		if !l.Add(line) {
			t.Fatalf("Add(%q) dropped", line)
		}
	}

	entries := l.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Index != i+1 {
			t.Errorf("entry %d: index %d", i, e.Index)
		}
	}
	if entries[1].Text != "echo hi > out.txt" {
		t.Errorf("entry 2 text = %q", entries[1].Text)
	}
}

func TestEntriesIsCopy(t *testing.T) {
	l := New(10)
	l.Add("first")
	entries := l.Entries()
	entries[0].Text = "changed"
	if got := l.Entries()[0].Text; got != "first" {
		t.Errorf("log was mutated through Entries: %q", got)
	}
}

func TestCapacityKeepsOldest(t *testing.T) {
	l := New(3)
	for i := 1; i <= 5; i++ {
		kept := l.Add(fmt.Sprintf("cmd %d", i))
		if want := i <= 3; kept != want {
			t.Errorf("Add #%d kept=%v, want %v", i, kept, want)
		}
	}
	if !l.Full() {
		t.Error("expected full log")
	}
	entries := l.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Text != "cmd 1" || entries[2].Text != "cmd 3" {
		t.Errorf("unexpected entries %v", entries)
	}
}

func TestDefaultCapacity(t *testing.T) {
	if got := New(0).Cap(); got != DefaultCapacity {
		t.Errorf("Cap() = %d, want %d", got, DefaultCapacity)
	}
}

func TestWriteTo(t *testing.T) {
	l := New(5)
	l.Add("echo a")
	l.Add("pwd")

	var buf bytes.Buffer
	n, err := l.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	want := "1: echo a\n2: pwd\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
	if n != int64(len(want)) {
		t.Errorf("n = %d, want %d", n, len(want))
	}
}
