package physical

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/strata-db/strata/pkg/engine/internal/types"
)

// Expression is a scalar expression evaluated against every row of a record.
type Expression interface {
	fmt.Stringer

	// DataType returns the type the expression produces for input records of
	// the given schema. It returns an error if the expression is not valid
	// for the schema.
	DataType(schema *arrow.Schema) (arrow.DataType, error)

	// Nullable reports whether the expression may produce NULL values for
	// input records of the given schema.
	Nullable(schema *arrow.Schema) (bool, error)

	// Evaluate computes the expression for every row of batch. The caller
	// owns the returned array.
	Evaluate(batch arrow.Record) (arrow.Array, error)
}

// NamedExpression pairs an expression with the name of the output column it
// produces.
type NamedExpression struct {
	Expr Expression
	Name string
}

// ColumnExpr references the column at position Index of the input, which must
// be named Name.
type ColumnExpr struct {
	Name  string
	Index int
}

var _ Expression = (*ColumnExpr)(nil)

// NewColumn returns a reference to the column name at position index.
func NewColumn(name string, index int) *ColumnExpr {
	return &ColumnExpr{Name: name, Index: index}
}

// String returns the string representation of the column expression, for
// example `id@0`.
func (e *ColumnExpr) String() string {
	return fmt.Sprintf("%s@%d", e.Name, e.Index)
}

func (e *ColumnExpr) field(schema *arrow.Schema) (arrow.Field, error) {
	if e.Index < 0 || e.Index >= schema.NumFields() {
		return arrow.Field{}, fmt.Errorf("column %s: index %d out of range for schema with %d fields", e.Name, e.Index, schema.NumFields())
	}
	field := schema.Field(e.Index)
	if field.Name != e.Name {
		return arrow.Field{}, fmt.Errorf("column %s: field at index %d is named %s", e.Name, e.Index, field.Name)
	}
	return field, nil
}

// DataType implements Expression.
func (e *ColumnExpr) DataType(schema *arrow.Schema) (arrow.DataType, error) {
	field, err := e.field(schema)
	if err != nil {
		return nil, err
	}
	return field.Type, nil
}

// Nullable implements Expression.
func (e *ColumnExpr) Nullable(schema *arrow.Schema) (bool, error) {
	field, err := e.field(schema)
	if err != nil {
		return false, err
	}
	return field.Nullable, nil
}

// Evaluate implements Expression.
func (e *ColumnExpr) Evaluate(batch arrow.Record) (arrow.Array, error) {
	if _, err := e.field(batch.Schema()); err != nil {
		return nil, err
	}
	col := batch.Column(e.Index)
	col.Retain()
	return col, nil
}

// LiteralExpr is a constant value repeated for every input row.
type LiteralExpr struct {
	Literal types.Literal
}

var _ Expression = (*LiteralExpr)(nil)

// NewLiteral returns a literal expression for value.
func NewLiteral(value types.Literal) *LiteralExpr {
	return &LiteralExpr{Literal: value}
}

// String returns the string representation of the literal.
func (e *LiteralExpr) String() string {
	return e.Literal.String()
}

// DataType implements Expression.
func (e *LiteralExpr) DataType(_ *arrow.Schema) (arrow.DataType, error) {
	dt := e.Literal.Type().ArrowType()
	if dt == nil {
		return nil, fmt.Errorf("literal of type %s has no data type", e.Literal.Type())
	}
	return dt, nil
}

// Nullable implements Expression.
func (e *LiteralExpr) Nullable(_ *arrow.Schema) (bool, error) {
	return e.Literal.IsNull(), nil
}

// Evaluate implements Expression.
func (e *LiteralExpr) Evaluate(batch arrow.Record) (arrow.Array, error) {
	n := int(batch.NumRows())
	mem := memory.DefaultAllocator

	switch e.Literal.Type() {
	case types.ValueTypeNull:
		return array.NewNull(n), nil

	case types.ValueTypeBool:
		b := array.NewBooleanBuilder(mem)
		defer b.Release()
		for range n {
			b.Append(e.Literal.Bool())
		}
		return b.NewArray(), nil

	case types.ValueTypeInt:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		for range n {
			b.Append(e.Literal.Int())
		}
		return b.NewArray(), nil

	case types.ValueTypeUint:
		b := array.NewUint64Builder(mem)
		defer b.Release()
		for range n {
			b.Append(e.Literal.Uint())
		}
		return b.NewArray(), nil

	case types.ValueTypeFloat:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		for range n {
			b.Append(e.Literal.Float())
		}
		return b.NewArray(), nil

	case types.ValueTypeString:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		for range n {
			b.Append(e.Literal.Str())
		}
		return b.NewArray(), nil
	}

	return nil, fmt.Errorf("cannot evaluate literal of type %s", e.Literal.Type())
}
