// Package physical defines the executable physical plan nodes and expressions
// exchanged between query coordinators and execution nodes.
//
// Plan nodes are immutable once constructed: a subtree may be shared by
// several concurrent executors, and transformations such as
// [ExecutionPlan.WithNewChildren] always return a new node.
package physical

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/strata-db/strata/pkg/engine/internal/executor"
)

// ExecutionPlan is a node of a physical plan tree.
type ExecutionPlan interface {
	// Schema returns the schema of the records produced by the node.
	Schema() *arrow.Schema

	// Children returns the inputs of the node in order.
	Children() []ExecutionPlan

	// WithNewChildren returns a copy of the node with its inputs replaced by
	// children. It returns an error if the number of children does not match
	// the node kind.
	WithNewChildren(children []ExecutionPlan) (ExecutionPlan, error)

	// Execute returns a lazy pipeline producing the records of the given
	// partition.
	Execute(ctx context.Context, partition int) (executor.Pipeline, error)

	// Statistics returns the statistics known for the output of the node.
	Statistics() Statistics
}

// Statistics describes the output of a plan node.
type Statistics struct {
	// NumRows is the number of rows produced by the node. It is only
	// meaningful if Exact is true or if it is non-zero.
	NumRows int64
	// Exact is true if NumRows is known precisely.
	Exact bool
}

func checkChildren(node ExecutionPlan, children []ExecutionPlan, want int) error {
	if len(children) != want {
		return fmt.Errorf("%T expects %d children, got %d", node, want, len(children))
	}
	for i, child := range children {
		if child == nil {
			return fmt.Errorf("%T child %d is nil", node, i)
		}
	}
	return nil
}
