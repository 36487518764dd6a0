package plancodec

import (
	"context"
	"io"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/strata-db/strata/pkg/engine/internal/executor"
	"github.com/strata-db/strata/pkg/engine/internal/planner/physical"
	"github.com/strata-db/strata/pkg/engine/internal/types"
)

// WriteTree writes an indented tree of plan to w.
func WriteTree(w io.Writer, plan Plan) error {
	return physical.WriteTree(w, plan)
}

// Execute runs plan for partition and returns all records it produces. The
// caller must release the returned records.
func Execute(ctx context.Context, plan Plan, partition int) ([]arrow.Record, error) {
	pipeline, err := plan.Execute(ctx, partition)
	if err != nil {
		return nil, err
	}
	defer pipeline.Close()

	return executor.Collect(ctx, pipeline)
}

// SamplePlan returns a plan selecting id and name from a mock input called
// name, limited to fetch rows if fetch is non-zero, and tagged with a
// constant source column.
func SamplePlan(name string, fetch uint64) (Plan, error) {
	projection, err := physical.NewProjection([]physical.NamedExpression{
		{Expr: physical.NewColumn("id", 0), Name: "id"},
		{Expr: physical.NewColumn("name", 1), Name: "name"},
		{Expr: physical.NewLiteral(types.NewLiteral(name)), Name: "source"},
	}, physical.NewMockInput(name))
	if err != nil {
		return nil, err
	}
	if fetch == 0 {
		return projection, nil
	}

	limit, err := physical.NewLimit(projection, 0, fetch)
	if err != nil {
		return nil, err
	}
	return limit, nil
}
