package types

import (
	"fmt"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
)

const (
	typeInvalid = "invalid"
)

// ValueType represents the type of a literal value.
type ValueType uint32

const (
	ValueTypeInvalid ValueType = iota // zero-value is an invalid type

	ValueTypeNull   // NULL value.
	ValueTypeBool   // Boolean value
	ValueTypeInt    // Signed 64bit integer value
	ValueTypeUint   // Unsigned 64bit integer value
	ValueTypeFloat  // 64bit floating point value
	ValueTypeString // String value
)

// String returns the string representation of the ValueType.
func (t ValueType) String() string {
	switch t {
	case ValueTypeInvalid:
		return typeInvalid
	case ValueTypeNull:
		return "null"
	case ValueTypeBool:
		return "bool"
	case ValueTypeInt:
		return "int"
	case ValueTypeUint:
		return "uint"
	case ValueTypeFloat:
		return "float"
	case ValueTypeString:
		return "string"
	default:
		return typeInvalid
	}
}

// ArrowType returns the Arrow data type used to materialize values of type t.
// It returns nil for [ValueTypeInvalid].
func (t ValueType) ArrowType() arrow.DataType {
	switch t {
	case ValueTypeNull:
		return arrow.Null
	case ValueTypeBool:
		return arrow.FixedWidthTypes.Boolean
	case ValueTypeInt:
		return arrow.PrimitiveTypes.Int64
	case ValueTypeUint:
		return arrow.PrimitiveTypes.Uint64
	case ValueTypeFloat:
		return arrow.PrimitiveTypes.Float64
	case ValueTypeString:
		return arrow.BinaryTypes.String
	default:
		return nil
	}
}

// Literal is an immutable constant value. The zero value is invalid.
type Literal struct {
	typ ValueType
	val any
}

// NewNullLiteral returns a NULL literal.
func NewNullLiteral() Literal { return Literal{typ: ValueTypeNull} }

// NewLiteral returns a literal holding v. NewLiteral panics if the Go type of
// v has no literal representation.
func NewLiteral[T bool | int64 | uint64 | float64 | string](v T) Literal {
	switch v := any(v).(type) {
	case bool:
		return Literal{typ: ValueTypeBool, val: v}
	case int64:
		return Literal{typ: ValueTypeInt, val: v}
	case uint64:
		return Literal{typ: ValueTypeUint, val: v}
	case float64:
		return Literal{typ: ValueTypeFloat, val: v}
	case string:
		return Literal{typ: ValueTypeString, val: v}
	}
	panic(fmt.Sprintf("invalid literal type %T", v))
}

// Type returns the type of the literal.
func (l Literal) Type() ValueType { return l.typ }

// IsNull reports whether l is the NULL literal.
func (l Literal) IsNull() bool { return l.typ == ValueTypeNull }

// Any returns the underlying Go value, or nil for NULL and invalid literals.
func (l Literal) Any() any { return l.val }

// Bool returns the value of a bool literal.
func (l Literal) Bool() bool {
	v, _ := l.val.(bool)
	return v
}

// Int returns the value of an int literal.
func (l Literal) Int() int64 {
	v, _ := l.val.(int64)
	return v
}

// Uint returns the value of a uint literal.
func (l Literal) Uint() uint64 {
	v, _ := l.val.(uint64)
	return v
}

// Float returns the value of a float literal.
func (l Literal) Float() float64 {
	v, _ := l.val.(float64)
	return v
}

// Str returns the value of a string literal.
func (l Literal) Str() string {
	v, _ := l.val.(string)
	return v
}

// Equal reports whether l and o have the same type and value.
func (l Literal) Equal(o Literal) bool { return l.typ == o.typ && l.val == o.val }

// String returns a printable form of the literal. Strings are quoted.
func (l Literal) String() string {
	switch l.typ {
	case ValueTypeNull:
		return "NULL"
	case ValueTypeBool:
		return strconv.FormatBool(l.Bool())
	case ValueTypeInt:
		return strconv.FormatInt(l.Int(), 10)
	case ValueTypeUint:
		return strconv.FormatUint(l.Uint(), 10)
	case ValueTypeFloat:
		return strconv.FormatFloat(l.Float(), 'g', -1, 64)
	case ValueTypeString:
		return strconv.Quote(l.Str())
	default:
		return typeInvalid
	}
}
