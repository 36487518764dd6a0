package expressionpb

import (
	"fmt"

	engineerrors "github.com/strata-db/strata/pkg/engine/internal/errors"
	"github.com/strata-db/strata/pkg/engine/internal/planner/physical"
	"github.com/strata-db/strata/pkg/engine/internal/types"
)

type marshaler interface {
	MarshalPhysical() (physical.Expression, error)
}

// MarshalPhysical converts a protobuf expression into a physical plan
// expression. Returns an error if the expression kind is not set or is
// unsupported.
func (e *Expression) MarshalPhysical() (physical.Expression, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: expression is nil", engineerrors.ErrUnsupportedExpression)
	}
	if e.Kind == nil {
		if e.unknownKind != 0 {
			return nil, fmt.Errorf("%w: unknown expression kind %d", engineerrors.ErrUnsupportedExpression, e.unknownKind)
		}
		return nil, fmt.Errorf("%w: expression kind is not set", engineerrors.ErrUnsupportedExpression)
	}

	m, ok := e.Kind.(marshaler)
	if !ok {
		return nil, fmt.Errorf("%w: %T", engineerrors.ErrUnsupportedExpression, e.Kind)
	}
	return m.MarshalPhysical()
}

// MarshalPhysical converts a protobuf expression into a physical plan
// expression.
func (e *Expression_Column) MarshalPhysical() (physical.Expression, error) {
	return e.Column.MarshalPhysical()
}

// MarshalPhysical converts a protobuf expression into a physical plan
// expression.
func (e *Expression_Literal) MarshalPhysical() (physical.Expression, error) {
	return e.Literal.MarshalPhysical()
}

// MarshalPhysical converts a protobuf column reference into a physical plan
// expression. The reference is validated against an input schema only when
// the expression is used to build a plan node.
func (e *ColumnExpression) MarshalPhysical() (physical.Expression, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: column expression is nil", engineerrors.ErrUnsupportedExpression)
	}
	return physical.NewColumn(e.Name, int(e.Index)), nil
}

// MarshalPhysical converts a protobuf literal into a physical plan expression.
func (e *LiteralExpression) MarshalPhysical() (physical.Expression, error) {
	literal, err := e.MarshalLiteral()
	if err != nil {
		return nil, err
	}
	return physical.NewLiteral(literal), nil
}

// MarshalLiteral converts a protobuf literal into a literal value.
func (e *LiteralExpression) MarshalLiteral() (types.Literal, error) {
	if e == nil {
		return types.Literal{}, fmt.Errorf("%w: literal expression is nil", engineerrors.ErrUnsupportedExpression)
	}

	switch k := e.Kind.(type) {
	case *LiteralExpression_Null:
		return types.NewNullLiteral(), nil
	case *LiteralExpression_BoolValue:
		return types.NewLiteral(k.BoolValue), nil
	case *LiteralExpression_Int64Value:
		return types.NewLiteral(k.Int64Value), nil
	case *LiteralExpression_Uint64Value:
		return types.NewLiteral(k.Uint64Value), nil
	case *LiteralExpression_Float64Value:
		return types.NewLiteral(k.Float64Value), nil
	case *LiteralExpression_StringValue:
		return types.NewLiteral(k.StringValue), nil
	case nil:
		return types.Literal{}, fmt.Errorf("%w: literal kind is not set", engineerrors.ErrUnsupportedExpression)
	default:
		return types.Literal{}, fmt.Errorf("%w: literal %T", engineerrors.ErrUnsupportedExpression, e.Kind)
	}
}
