// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"errors"
	"slices"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "echo hello", []string{"echo", "hello"}},
		{"runs of whitespace", "  ls \t -la   /tmp  ", []string{"ls", "-la", "/tmp"}},
		{"quotes are literal", `echo "a b"`, []string{"echo", `"a`, `b"`}},
		{"backslash is literal", `echo a\ b`, []string{"echo", `a\`, "b"}},
		{"empty", "", []string{}},
		{"only whitespace", " \t\n ", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveRedirects(t *testing.T) {
	args, redirects, degraded := ResolveRedirects([]string{"sort", "<", "in.txt", "-r", ">>", "out.txt"})
	if degraded {
		t.Error("unexpected degradation")
	}
	if !slices.Equal(args, []string{"sort", "-r"}) {
		t.Errorf("args = %q", args)
	}
	want := []Redirect{
		{Kind: RedirectInput, Path: "in.txt"},
		{Kind: RedirectAppend, Path: "out.txt"},
	}
	if !slices.Equal(redirects, want) {
		t.Errorf("redirects = %v, want %v", redirects, want)
	}
}

func TestResolveRedirectsTruncate(t *testing.T) {
	args, redirects, _ := ResolveRedirects([]string{"echo", "hi", ">", "out.txt"})
	if !slices.Equal(args, []string{"echo", "hi"}) {
		t.Errorf("args = %q", args)
	}
	if len(redirects) != 1 || redirects[0].Kind != RedirectTruncate || redirects[0].Path != "out.txt" {
		t.Errorf("redirects = %v", redirects)
	}
}

func TestResolveRedirectsTrailingOperator(t *testing.T) {
	args, redirects, degraded := ResolveRedirects([]string{"echo", "hi", ">", "a", ">"})
	if !degraded {
		t.Error("expected degradation")
	}
	if !slices.Equal(args, []string{"echo", "hi"}) {
		t.Errorf("args = %q", args)
	}
	if len(redirects) != 1 || redirects[0].Path != "a" {
		t.Errorf("redirects = %v", redirects)
	}
}

func TestResolveRedirectsAttachedOperatorIsArgument(t *testing.T) {
	args, redirects, _ := ResolveRedirects([]string{"echo", "hi>out"})
	if len(redirects) != 0 {
		t.Errorf("expected no redirects, got %v", redirects)
	}
	if !slices.Equal(args, []string{"echo", "hi>out"}) {
		t.Errorf("args = %q", args)
	}
}

func TestParsePipelineSingleStage(t *testing.T) {
	p, err := ParsePipeline(" echo ok ", ParseOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Stages) != 1 {
		t.Fatalf("expected 1 stage, got %d", len(p.Stages))
	}
	if p.Stages[0].Name() != "echo" {
		t.Errorf("expected echo, got %s", p.Stages[0].Name())
	}
	if p.Text != "echo ok" {
		t.Errorf("text = %q", p.Text)
	}
}

func TestParsePipelineStages(t *testing.T) {
	p, err := ParsePipeline("cat < in.txt | sort | uniq -c > out.txt", ParseOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Names(); !slices.Equal(got, []string{"cat", "sort", "uniq"}) {
		t.Fatalf("names = %q", got)
	}
	if len(p.Stages[0].Redirects) != 1 || p.Stages[0].Redirects[0].Kind != RedirectInput {
		t.Errorf("stage 0 redirects = %v", p.Stages[0].Redirects)
	}
	if len(p.Stages[2].Redirects) != 1 || p.Stages[2].Redirects[0].Kind != RedirectTruncate {
		t.Errorf("stage 2 redirects = %v", p.Stages[2].Redirects)
	}
}

func TestParsePipelineEmptyStage(t *testing.T) {
	for _, input := range []string{"echo a | | wc", "echo a |", "| wc", "> out.txt"} {
		_, err := ParsePipeline(input, ParseOptions{})
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("%q: expected SyntaxError, got %v", input, err)
		}
	}
}

func TestParsePipelineDegraded(t *testing.T) {
	p, err := ParsePipeline("echo hi >", ParseOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !p.Stages[0].Degraded {
		t.Error("expected degraded stage")
	}
	if !slices.Equal(p.Stages[0].Args, []string{"echo", "hi"}) {
		t.Errorf("args = %q", p.Stages[0].Args)
	}
}

func TestParsePipelineRejectMalformed(t *testing.T) {
	_, err := ParsePipeline("echo hi >", ParseOptions{RejectMalformed: true})
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
}

func TestParsePipelineStrictRedirects(t *testing.T) {
	opts := ParseOptions{StrictRedirects: true}
	if _, err := ParsePipeline("cat < in | sort > out", opts); err != nil {
		t.Errorf("redirects on the ends should be allowed: %v", err)
	}
	if _, err := ParsePipeline("cat | sort < in", opts); err == nil {
		t.Error("expected error for input redirect on a later stage")
	}
	if _, err := ParsePipeline("cat > out | sort", opts); err == nil {
		t.Error("expected error for output redirect on an earlier stage")
	}
	// The default policy allows both.
	if _, err := ParsePipeline("cat > out | sort < in", ParseOptions{}); err != nil {
		t.Errorf("default policy should allow interior redirects: %v", err)
	}
}

func TestParseClauseAndThen(t *testing.T) {
	c := ParseClause("false && echo unreachable", ParseOptions{})
	if c.Err != nil {
		t.Fatal(c.Err)
	}
	if c.Op != Operator(OpAndThen) {
		t.Errorf("expected and-then operator, got %q", c.Op)
	}
	if len(c.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(c.Steps))
	}
}

func TestParseClauseSingle(t *testing.T) {
	c := ParseClause("echo a | tr a b", ParseOptions{})
	if c.Err != nil {
		t.Fatal(c.Err)
	}
	if c.Op != "" {
		t.Errorf("expected no operator, got %q", c.Op)
	}
	if len(c.Steps) != 1 || len(c.Steps[0].Stages) != 2 {
		t.Errorf("unexpected steps: %+v", c.Steps)
	}
}

func TestParseClauseEmptyOperand(t *testing.T) {
	for _, input := range []string{"&& echo a", "echo a &&", "echo a && && echo b"} {
		c := ParseClause(input, ParseOptions{})
		if c.Err == nil {
			t.Errorf("%q: expected error", input)
		}
		if c.Steps != nil {
			t.Errorf("%q: invalid clause should have no steps", input)
		}
	}
}

func TestParseLine(t *testing.T) {
	line := ParseLine("false ; echo reached && echo again;; ", ParseOptions{})
	if len(line.Clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(line.Clauses))
	}
	if len(line.Clauses[0].Steps) != 1 {
		t.Errorf("clause 0: expected 1 step, got %d", len(line.Clauses[0].Steps))
	}
	if len(line.Clauses[1].Steps) != 2 {
		t.Errorf("clause 1: expected 2 steps, got %d", len(line.Clauses[1].Steps))
	}
	if got := len(line.Pipelines()); got != 3 {
		t.Errorf("expected 3 pipelines, got %d", got)
	}
}

func TestParseLineBadClauseKeepsOthers(t *testing.T) {
	line := ParseLine("echo a | ; echo b", ParseOptions{})
	if len(line.Clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(line.Clauses))
	}
	if line.Clauses[0].Err == nil {
		t.Error("expected clause 0 to fail")
	}
	if line.Clauses[1].Err != nil {
		t.Errorf("clause 1 should parse: %v", line.Clauses[1].Err)
	}
}

func TestParseLineEmpty(t *testing.T) {
	if line := ParseLine("  ;  ", ParseOptions{}); len(line.Clauses) != 0 {
		t.Errorf("expected no clauses, got %d", len(line.Clauses))
	}
}
