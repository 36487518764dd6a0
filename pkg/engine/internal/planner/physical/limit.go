package physical

import (
	"context"
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/strata-db/strata/pkg/engine/internal/executor"
)

// Limit skips the first Skip rows of its input and returns at most Fetch rows
// after that. A Fetch of zero returns all remaining rows.
type Limit struct {
	input ExecutionPlan
	skip  uint64
	fetch uint64
}

var _ ExecutionPlan = (*Limit)(nil)

// NewLimit creates a limit over input. Skip and fetch must not exceed
// [math.MaxInt64].
func NewLimit(input ExecutionPlan, skip, fetch uint64) (*Limit, error) {
	if input == nil {
		return nil, fmt.Errorf("limit input is nil")
	}
	if skip > math.MaxInt64 {
		return nil, fmt.Errorf("limit skip %d exceeds maximum %d", skip, int64(math.MaxInt64))
	}
	if fetch > math.MaxInt64 {
		return nil, fmt.Errorf("limit fetch %d exceeds maximum %d", fetch, int64(math.MaxInt64))
	}
	return &Limit{input: input, skip: skip, fetch: fetch}, nil
}

// Input returns the child of the limit.
func (l *Limit) Input() ExecutionPlan { return l.input }

// Skip returns the number of rows skipped.
func (l *Limit) Skip() uint64 { return l.skip }

// Fetch returns the maximum number of rows returned, or zero for no limit.
func (l *Limit) Fetch() uint64 { return l.fetch }

// Schema implements ExecutionPlan.
func (l *Limit) Schema() *arrow.Schema { return l.input.Schema() }

// Children implements ExecutionPlan.
func (l *Limit) Children() []ExecutionPlan { return []ExecutionPlan{l.input} }

// WithNewChildren implements ExecutionPlan.
func (l *Limit) WithNewChildren(children []ExecutionPlan) (ExecutionPlan, error) {
	if err := checkChildren(l, children, 1); err != nil {
		return nil, err
	}
	return NewLimit(children[0], l.skip, l.fetch)
}

// Execute implements ExecutionPlan.
func (l *Limit) Execute(ctx context.Context, partition int) (executor.Pipeline, error) {
	input, err := l.input.Execute(ctx, partition)
	if err != nil {
		return nil, err
	}
	return executor.TracePipeline("physical.Limit", executor.NewLimitPipeline(input, l.skip, l.fetch)), nil
}

// Statistics implements ExecutionPlan.
func (l *Limit) Statistics() Statistics {
	stats := l.input.Statistics()
	if stats.NumRows == 0 && !stats.Exact {
		return stats
	}

	rows := max(stats.NumRows-int64(l.skip), 0)
	if l.fetch > 0 {
		rows = min(rows, int64(l.fetch))
	}
	return Statistics{NumRows: rows, Exact: stats.Exact}
}
