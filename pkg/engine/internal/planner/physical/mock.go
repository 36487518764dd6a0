package physical

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/strata-db/strata/pkg/engine/internal/executor"
)

var mockSchema = arrow.NewSchema([]arrow.Field{
	{Name: "id", Type: arrow.PrimitiveTypes.Uint32},
	{Name: "name", Type: arrow.BinaryTypes.String},
	{Name: "age", Type: arrow.PrimitiveTypes.Uint32},
}, nil)

var (
	mockIDs   = []uint32{1, 2, 3, 4, 5}
	mockNames = []string{"zhangsan", "lisi", "wangwu", "Tony", "Mike"}
	mockAges  = []uint32{25, 28, 27, 35, 25}
)

// MockInput is a childless placeholder for a table scan. It produces a single
// fixed record of five rows with the columns id, name and age.
type MockInput struct {
	Name string
}

var _ ExecutionPlan = (*MockInput)(nil)

// NewMockInput returns a mock scan identified by name.
func NewMockInput(name string) *MockInput {
	return &MockInput{Name: name}
}

// Schema implements ExecutionPlan.
func (m *MockInput) Schema() *arrow.Schema { return mockSchema }

// Children implements ExecutionPlan.
func (m *MockInput) Children() []ExecutionPlan { return nil }

// WithNewChildren implements ExecutionPlan.
func (m *MockInput) WithNewChildren(children []ExecutionPlan) (ExecutionPlan, error) {
	if err := checkChildren(m, children, 0); err != nil {
		return nil, err
	}
	return &MockInput{Name: m.Name}, nil
}

// Execute implements ExecutionPlan. Every partition yields the same record.
func (m *MockInput) Execute(_ context.Context, partition int) (executor.Pipeline, error) {
	if partition < 0 {
		return nil, fmt.Errorf("invalid partition %d", partition)
	}

	mem := memory.DefaultAllocator

	idBuilder := array.NewUint32Builder(mem)
	defer idBuilder.Release()
	idBuilder.AppendValues(mockIDs, nil)

	nameBuilder := array.NewStringBuilder(mem)
	defer nameBuilder.Release()
	nameBuilder.AppendValues(mockNames, nil)

	ageBuilder := array.NewUint32Builder(mem)
	defer ageBuilder.Release()
	ageBuilder.AppendValues(mockAges, nil)

	columns := []arrow.Array{idBuilder.NewArray(), nameBuilder.NewArray(), ageBuilder.NewArray()}
	defer func() {
		for _, col := range columns {
			col.Release()
		}
	}()

	rec := array.NewRecord(mockSchema, columns, int64(len(mockIDs)))
	defer rec.Release()

	return executor.NewBufferedPipeline(rec), nil
}

// Statistics implements ExecutionPlan.
func (m *MockInput) Statistics() Statistics {
	return Statistics{NumRows: int64(len(mockIDs)), Exact: true}
}
