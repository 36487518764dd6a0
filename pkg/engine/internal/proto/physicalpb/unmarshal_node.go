package physicalpb

import (
	"fmt"

	engineerrors "github.com/strata-db/strata/pkg/engine/internal/errors"
	"github.com/strata-db/strata/pkg/engine/internal/planner/physical"
	"github.com/strata-db/strata/pkg/engine/internal/proto/expressionpb"
)

type unmarshaler interface {
	UnmarshalPhysical(from physical.ExecutionPlan) error
}

// UnmarshalPhysical reads the plan tree rooted at from into n. Returns an
// error if from, or any node below it, is of an unsupported type. n is left
// unchanged on error.
func (n *Node) UnmarshalPhysical(from physical.ExecutionPlan) error {
	var kind isNode_Kind
	switch from := from.(type) {
	case *physical.Projection:
		if from != nil {
			kind = &Node_Projection{}
		}
	case *physical.MockInput:
		if from != nil {
			kind = &Node_Mock{}
		}
	case *physical.Limit:
		if from != nil {
			kind = &Node_Limit{}
		}
	}
	if kind == nil {
		return fmt.Errorf("%w: %T", engineerrors.ErrUnsupportedPlanType, from)
	}

	u, ok := kind.(unmarshaler)
	if !ok {
		return fmt.Errorf("%w: %T", engineerrors.ErrUnsupportedPlanType, from)
	}
	if err := u.UnmarshalPhysical(from); err != nil {
		return err
	}

	*n = Node{Kind: kind}
	return nil
}

// UnmarshalPhysical reads from into n.
func (n *Node_Projection) UnmarshalPhysical(from physical.ExecutionPlan) error {
	n.Projection = new(ProjectionNode)
	return n.Projection.UnmarshalPhysical(from)
}

// UnmarshalPhysical reads from into n.
func (n *Node_Mock) UnmarshalPhysical(from physical.ExecutionPlan) error {
	n.Mock = new(MockInputNode)
	return n.Mock.UnmarshalPhysical(from)
}

// UnmarshalPhysical reads from into n.
func (n *Node_Limit) UnmarshalPhysical(from physical.ExecutionPlan) error {
	n.Limit = new(LimitNode)
	return n.Limit.UnmarshalPhysical(from)
}

// UnmarshalPhysical reads from into n. The input is encoded first, followed
// by the expressions and their names in output order.
func (n *ProjectionNode) UnmarshalPhysical(from physical.ExecutionPlan) error {
	projection, ok := from.(*physical.Projection)
	if !ok {
		return fmt.Errorf("%w: expected *physical.Projection, got %T", engineerrors.ErrUnsupportedPlanType, from)
	}

	input := new(Node)
	if err := input.UnmarshalPhysical(projection.Input()); err != nil {
		return err
	}

	var (
		exprs []*expressionpb.Expression
		names []string
	)
	for _, namedExpr := range projection.Expressions() {
		expr := new(expressionpb.Expression)
		if err := expr.UnmarshalPhysical(namedExpr.Expr); err != nil {
			return err
		}
		exprs = append(exprs, expr)
		names = append(names, namedExpr.Name)
	}

	*n = ProjectionNode{
		Input:    input,
		Expr:     exprs,
		ExprName: names,
	}
	return nil
}

// UnmarshalPhysical reads from into n.
func (n *MockInputNode) UnmarshalPhysical(from physical.ExecutionPlan) error {
	mock, ok := from.(*physical.MockInput)
	if !ok {
		return fmt.Errorf("%w: expected *physical.MockInput, got %T", engineerrors.ErrUnsupportedPlanType, from)
	}
	*n = MockInputNode{Name: mock.Name}
	return nil
}

// UnmarshalPhysical reads from into n.
func (n *LimitNode) UnmarshalPhysical(from physical.ExecutionPlan) error {
	limit, ok := from.(*physical.Limit)
	if !ok {
		return fmt.Errorf("%w: expected *physical.Limit, got %T", engineerrors.ErrUnsupportedPlanType, from)
	}

	input := new(Node)
	if err := input.UnmarshalPhysical(limit.Input()); err != nil {
		return err
	}

	*n = LimitNode{
		Input: input,
		Skip:  limit.Skip(),
		Fetch: limit.Fetch(),
	}
	return nil
}
