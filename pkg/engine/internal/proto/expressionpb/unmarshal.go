package expressionpb

import (
	"fmt"

	engineerrors "github.com/strata-db/strata/pkg/engine/internal/errors"
	"github.com/strata-db/strata/pkg/engine/internal/planner/physical"
	"github.com/strata-db/strata/pkg/engine/internal/types"
)

// UnmarshalPhysical reads from into e. Returns an error if from is not a
// supported expression. e is left unchanged on error.
func (e *Expression) UnmarshalPhysical(from physical.Expression) error {
	switch expr := from.(type) {
	case *physical.ColumnExpr:
		if expr == nil {
			break
		}
		if expr.Index < 0 {
			return fmt.Errorf("%w: column %s has negative index %d", engineerrors.ErrUnsupportedExpression, expr.Name, expr.Index)
		}
		*e = Expression{Kind: &Expression_Column{Column: &ColumnExpression{
			Name:  expr.Name,
			Index: uint64(expr.Index),
		}}}
		return nil

	case *physical.LiteralExpr:
		if expr == nil {
			break
		}
		literal := new(LiteralExpression)
		if err := literal.UnmarshalLiteral(expr.Literal); err != nil {
			return err
		}
		*e = Expression{Kind: &Expression_Literal{Literal: literal}}
		return nil
	}

	return fmt.Errorf("%w: %T", engineerrors.ErrUnsupportedExpression, from)
}

// UnmarshalLiteral reads from into e.
func (e *LiteralExpression) UnmarshalLiteral(from types.Literal) error {
	switch from.Type() {
	case types.ValueTypeNull:
		e.Kind = &LiteralExpression_Null{Null: &NullValue{}}
	case types.ValueTypeBool:
		e.Kind = &LiteralExpression_BoolValue{BoolValue: from.Bool()}
	case types.ValueTypeInt:
		e.Kind = &LiteralExpression_Int64Value{Int64Value: from.Int()}
	case types.ValueTypeUint:
		e.Kind = &LiteralExpression_Uint64Value{Uint64Value: from.Uint()}
	case types.ValueTypeFloat:
		e.Kind = &LiteralExpression_Float64Value{Float64Value: from.Float()}
	case types.ValueTypeString:
		e.Kind = &LiteralExpression_StringValue{StringValue: from.Str()}
	default:
		return fmt.Errorf("%w: literal of type %s", engineerrors.ErrUnsupportedExpression, from.Type())
	}
	return nil
}
