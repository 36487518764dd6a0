package physicalpb

import (
	"fmt"

	engineerrors "github.com/strata-db/strata/pkg/engine/internal/errors"
	"github.com/strata-db/strata/pkg/engine/internal/planner/physical"
)

type marshaler interface {
	MarshalPhysical() (physical.ExecutionPlan, error)
}

// MarshalPhysical converts the plan tree rooted at n into an execution plan.
// Children are converted before their parent. Returns an error if a node has
// no kind set, is of an unsupported kind, or cannot be constructed.
func (n *Node) MarshalPhysical() (physical.ExecutionPlan, error) {
	if n.GetKind() == nil {
		if n != nil && n.unknownKind != 0 {
			return nil, fmt.Errorf("%w: unknown node kind %d", engineerrors.ErrUnsupportedPlanType, n.unknownKind)
		}
		return nil, fmt.Errorf("%w: Node{%s}", engineerrors.ErrEmptyPlan, n.String())
	}

	m, ok := n.Kind.(marshaler)
	if !ok {
		return nil, fmt.Errorf("%w: %T", engineerrors.ErrUnsupportedPlanType, n.Kind)
	}
	return m.MarshalPhysical()
}

// MarshalPhysical converts the wrapped projection into an execution plan.
func (n *Node_Projection) MarshalPhysical() (physical.ExecutionPlan, error) {
	if n.Projection == nil {
		return nil, fmt.Errorf("%w: projection is nil", engineerrors.ErrEmptyPlan)
	}
	return n.Projection.MarshalPhysical()
}

// MarshalPhysical converts the wrapped mock input into an execution plan.
func (n *Node_Mock) MarshalPhysical() (physical.ExecutionPlan, error) {
	if n.Mock == nil {
		return nil, fmt.Errorf("%w: mock is nil", engineerrors.ErrEmptyPlan)
	}
	return n.Mock.MarshalPhysical()
}

// MarshalPhysical converts the wrapped limit into an execution plan.
func (n *Node_Limit) MarshalPhysical() (physical.ExecutionPlan, error) {
	if n.Limit == nil {
		return nil, fmt.Errorf("%w: limit is nil", engineerrors.ErrEmptyPlan)
	}
	return n.Limit.MarshalPhysical()
}

// MarshalPhysical converts the projection into a [physical.Projection]. The
// i-th expression is named by the i-th entry of ExprName.
func (n *ProjectionNode) MarshalPhysical() (physical.ExecutionPlan, error) {
	if n.Input == nil {
		return nil, engineerrors.MissingField("input")
	}

	input, err := n.Input.MarshalPhysical()
	if err != nil {
		return nil, err
	}

	if len(n.Expr) != len(n.ExprName) {
		return nil, fmt.Errorf("%w: %d expressions but %d names", engineerrors.ErrProjectionConstruction, len(n.Expr), len(n.ExprName))
	}

	exprs := make([]physical.NamedExpression, len(n.Expr))
	for i, pbExpr := range n.Expr {
		expr, err := pbExpr.MarshalPhysical()
		if err != nil {
			return nil, err
		}
		exprs[i] = physical.NamedExpression{Expr: expr, Name: n.ExprName[i]}
	}

	projection, err := physical.NewProjection(exprs, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", engineerrors.ErrProjectionConstruction, err)
	}
	return projection, nil
}

// MarshalPhysical converts the mock input into a [physical.MockInput].
func (n *MockInputNode) MarshalPhysical() (physical.ExecutionPlan, error) {
	return physical.NewMockInput(n.Name), nil
}

// MarshalPhysical converts the limit into a [physical.Limit].
func (n *LimitNode) MarshalPhysical() (physical.ExecutionPlan, error) {
	if n.Input == nil {
		return nil, engineerrors.MissingField("input")
	}

	input, err := n.Input.MarshalPhysical()
	if err != nil {
		return nil, err
	}

	limit, err := physical.NewLimit(input, n.Skip, n.Fetch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", engineerrors.ErrLimitConstruction, err)
	}
	return limit, nil
}
