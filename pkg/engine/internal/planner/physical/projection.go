package physical

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/strata-db/strata/pkg/engine/internal/executor"
)

// Projection evaluates an ordered list of expressions against every row of its
// input. The position of an expression defines the position of its output
// column.
type Projection struct {
	input  ExecutionPlan
	exprs  []NamedExpression
	schema *arrow.Schema
}

var _ ExecutionPlan = (*Projection)(nil)

// NewProjection creates a projection of exprs over input. It returns an error
// if any expression is not valid for the schema of input.
func NewProjection(exprs []NamedExpression, input ExecutionPlan) (*Projection, error) {
	if input == nil {
		return nil, fmt.Errorf("projection input is nil")
	}

	inputSchema := input.Schema()
	fields := make([]arrow.Field, len(exprs))
	for i, expr := range exprs {
		if expr.Expr == nil {
			return nil, fmt.Errorf("projection expression %d (%s) is nil", i, expr.Name)
		}
		dt, err := expr.Expr.DataType(inputSchema)
		if err != nil {
			return nil, fmt.Errorf("projection expression %d (%s): %w", i, expr.Name, err)
		}
		nullable, err := expr.Expr.Nullable(inputSchema)
		if err != nil {
			return nil, fmt.Errorf("projection expression %d (%s): %w", i, expr.Name, err)
		}
		fields[i] = arrow.Field{Name: expr.Name, Type: dt, Nullable: nullable}
	}

	return &Projection{
		input:  input,
		exprs:  append([]NamedExpression(nil), exprs...),
		schema: arrow.NewSchema(fields, nil),
	}, nil
}

// Input returns the child of the projection.
func (p *Projection) Input() ExecutionPlan { return p.input }

// Expressions returns the projected expressions in output order. The returned
// slice must not be modified.
func (p *Projection) Expressions() []NamedExpression { return p.exprs }

// Schema implements ExecutionPlan.
func (p *Projection) Schema() *arrow.Schema { return p.schema }

// Children implements ExecutionPlan.
func (p *Projection) Children() []ExecutionPlan { return []ExecutionPlan{p.input} }

// WithNewChildren implements ExecutionPlan.
func (p *Projection) WithNewChildren(children []ExecutionPlan) (ExecutionPlan, error) {
	if err := checkChildren(p, children, 1); err != nil {
		return nil, err
	}
	return NewProjection(p.exprs, children[0])
}

// Execute implements ExecutionPlan.
func (p *Projection) Execute(ctx context.Context, partition int) (executor.Pipeline, error) {
	input, err := p.input.Execute(ctx, partition)
	if err != nil {
		return nil, err
	}

	evaluators := make([]executor.Evaluator, len(p.exprs))
	for i, expr := range p.exprs {
		evaluators[i] = expr.Expr
	}

	pipeline, err := executor.NewProjectPipeline(input, p.schema, evaluators)
	if err != nil {
		input.Close()
		return nil, err
	}
	return executor.TracePipeline("physical.Projection", pipeline), nil
}

// Statistics implements ExecutionPlan. A projection produces as many rows as
// its input.
func (p *Projection) Statistics() Statistics { return p.input.Statistics() }
