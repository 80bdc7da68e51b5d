// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
)

// Runner executes the pipelines of a parsed line.
type Runner interface {
	// Run executes one pipeline and blocks until every stage has finished.
	Run(ctx context.Context, p *Pipeline) Outcome

	// Reject reports a clause that failed to parse and returns its outcome.
	Reject(err error) Outcome
}

// ExecuteLine runs every clause of line in order. Within a clause each
// &&-joined step runs only if the previous step succeeded; a failure
// abandons the rest of that clause but never the following clauses.
// Once ctx is cancelled no further step is started.
// Returns the outcome of the last pipeline that ran.
func ExecuteLine(ctx context.Context, line *Line, r Runner) Outcome {
	var last Outcome

	for _, clause := range line.Clauses {
		if ctx.Err() != nil {
			break
		}
		if clause.Err != nil {
			last = r.Reject(clause.Err)
			continue
		}
		last = ExecuteClause(ctx, &clause, r)
	}

	return last
}

// ExecuteClause runs the steps of a single clause with short-circuit semantics.
func ExecuteClause(ctx context.Context, clause *Clause, r Runner) Outcome {
	var last Outcome

	for i, step := range clause.Steps {
		if i > 0 {
			switch clause.Op {
			case Operator(OpAndThen):
				if !last.Success() {
					return last
				}
			}
		}
		if ctx.Err() != nil {
			return last
		}
		last = r.Run(ctx, step)
	}

	return last
}
