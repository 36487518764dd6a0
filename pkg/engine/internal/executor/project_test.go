package executor

import (
	"errors"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/require"

	"github.com/strata-db/strata/pkg/util/arrowtest"
)

type columnEvaluator int

func (c columnEvaluator) Evaluate(rec arrow.Record) (arrow.Array, error) {
	col := rec.Column(int(c))
	col.Retain()
	return col, nil
}

type failingEvaluator struct{}

func (failingEvaluator) Evaluate(arrow.Record) (arrow.Array, error) {
	return nil, errors.New("cannot evaluate")
}

func TestProjectPipeline(t *testing.T) {
	input := newRowsPipeline(testSchema,
		arrowtest.Rows{row(1, "a"), row(2, "b")},
		arrowtest.Rows{row(3, "c")},
	)

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "label", Type: arrow.BinaryTypes.String},
		{Name: "key", Type: arrow.PrimitiveTypes.Uint32},
	}, nil)

	p, err := NewProjectPipeline(input, schema, []Evaluator{columnEvaluator(1), columnEvaluator(0)})
	require.NoError(t, err)
	defer p.Close()

	expect := []arrowtest.Rows{
		{{"label": "a", "key": uint32(1)}, {"label": "b", "key": uint32(2)}},
		{{"label": "c", "key": uint32(3)}},
	}
	require.Equal(t, expect, collectRows(t, p))
}

func TestProjectPipeline_SchemaMismatch(t *testing.T) {
	input := newRowsPipeline(testSchema)
	defer input.Close()

	_, err := NewProjectPipeline(input, testSchema, []Evaluator{columnEvaluator(0)})
	require.ErrorContains(t, err, "2 fields, but 1 expressions")
}

func TestProjectPipeline_EvaluationError(t *testing.T) {
	input := newRowsPipeline(testSchema, arrowtest.Rows{row(1, "a")})

	schema := arrow.NewSchema([]arrow.Field{{Name: "x", Type: arrow.PrimitiveTypes.Int64}}, nil)
	p, err := NewProjectPipeline(input, schema, []Evaluator{failingEvaluator{}})
	require.NoError(t, err)
	defer p.Close()

	_, err = p.Read(t.Context())
	require.ErrorContains(t, err, "cannot evaluate")
}
