package executor

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// Evaluator computes one output column from an input record. The returned
// array is owned by the caller.
type Evaluator interface {
	Evaluate(arrow.Record) (arrow.Array, error)
}

// NewProjectPipeline evaluates exprs against every record of input and emits
// records with the given schema, one column per expression in order.
func NewProjectPipeline(input Pipeline, schema *arrow.Schema, exprs []Evaluator) (*GenericPipeline, error) {
	if schema.NumFields() != len(exprs) {
		return nil, fmt.Errorf("projection schema has %d fields, but %d expressions were given", schema.NumFields(), len(exprs))
	}

	return NewGenericPipeline(func(ctx context.Context, inputs []Pipeline) (arrow.Record, error) {
		if len(inputs) != 1 {
			return nil, fmt.Errorf("expected 1 input, got %d", len(inputs))
		}
		batch, err := inputs[0].Read(ctx)
		if err != nil {
			return nil, err
		}
		defer batch.Release()

		columns := make([]arrow.Array, 0, len(exprs))
		defer func() {
			for _, col := range columns {
				col.Release()
			}
		}()

		for i, expr := range exprs {
			col, err := expr.Evaluate(batch)
			if err != nil {
				return nil, fmt.Errorf("evaluating projection expression %d: %w", i, err)
			}
			columns = append(columns, col)
		}

		return array.NewRecord(schema, columns, batch.NumRows()), nil
	}, input), nil
}
