// Package expressionpb contains the wire representation of physical plan
// expressions. The message types mirror expression.proto.
package expressionpb

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/strata-db/strata/pkg/engine/internal/proto/wireutil"
)

// Expression is a scalar expression. Exactly one of the Kind wrappers is set
// for a valid expression.
type Expression struct {
	Kind isExpression_Kind

	// unknownKind is the field number of an unrecognized expression kind
	// read from the wire.
	unknownKind protowire.Number
}

type isExpression_Kind interface {
	isExpression_Kind()
}

type Expression_Column struct {
	Column *ColumnExpression
}

type Expression_Literal struct {
	Literal *LiteralExpression
}

func (*Expression_Column) isExpression_Kind()  {}
func (*Expression_Literal) isExpression_Kind() {}

// GetColumn returns the column expression, or nil if another kind is set.
func (m *Expression) GetColumn() *ColumnExpression {
	if x, ok := m.GetKind().(*Expression_Column); ok {
		return x.Column
	}
	return nil
}

// GetLiteral returns the literal expression, or nil if another kind is set.
func (m *Expression) GetLiteral() *LiteralExpression {
	if x, ok := m.GetKind().(*Expression_Literal); ok {
		return x.Literal
	}
	return nil
}

// GetKind returns the kind of the expression, or nil.
func (m *Expression) GetKind() isExpression_Kind {
	if m != nil {
		return m.Kind
	}
	return nil
}

// ColumnExpression references the column at position Index, named Name.
type ColumnExpression struct {
	Name  string
	Index uint64
}

// NullValue marks a NULL literal.
type NullValue struct{}

// LiteralExpression is a constant value.
type LiteralExpression struct {
	Kind isLiteralExpression_Kind
}

type isLiteralExpression_Kind interface {
	isLiteralExpression_Kind()
}

type LiteralExpression_Null struct {
	Null *NullValue
}

type LiteralExpression_BoolValue struct {
	BoolValue bool
}

type LiteralExpression_Int64Value struct {
	Int64Value int64
}

type LiteralExpression_Uint64Value struct {
	Uint64Value uint64
}

type LiteralExpression_Float64Value struct {
	Float64Value float64
}

type LiteralExpression_StringValue struct {
	StringValue string
}

func (*LiteralExpression_Null) isLiteralExpression_Kind()         {}
func (*LiteralExpression_BoolValue) isLiteralExpression_Kind()    {}
func (*LiteralExpression_Int64Value) isLiteralExpression_Kind()   {}
func (*LiteralExpression_Uint64Value) isLiteralExpression_Kind()  {}
func (*LiteralExpression_Float64Value) isLiteralExpression_Kind() {}
func (*LiteralExpression_StringValue) isLiteralExpression_Kind()  {}

const (
	fieldExpressionColumn  protowire.Number = 1
	fieldExpressionLiteral protowire.Number = 2

	fieldColumnName  protowire.Number = 1
	fieldColumnIndex protowire.Number = 2

	fieldLiteralNull    protowire.Number = 1
	fieldLiteralBool    protowire.Number = 2
	fieldLiteralInt64   protowire.Number = 3
	fieldLiteralUint64  protowire.Number = 4
	fieldLiteralFloat64 protowire.Number = 5
	fieldLiteralString  protowire.Number = 6
)

func (m *Expression) Reset()      { *m = Expression{} }
func (*Expression) ProtoMessage() {}

// String returns a compact text form of the expression.
func (m *Expression) String() string {
	switch k := m.GetKind().(type) {
	case *Expression_Column:
		return "column:<" + k.Column.String() + ">"
	case *Expression_Literal:
		return "literal:<" + k.Literal.String() + ">"
	}
	if m != nil && m.unknownKind != 0 {
		return fmt.Sprintf("%d:<>", m.unknownKind)
	}
	return ""
}

// Marshal encodes the expression in protobuf wire format.
func (m *Expression) Marshal() ([]byte, error) {
	var b []byte
	switch k := m.Kind.(type) {
	case *Expression_Column:
		if k.Column != nil {
			return wireutil.AppendMessage(b, fieldExpressionColumn, k.Column)
		}
	case *Expression_Literal:
		if k.Literal != nil {
			return wireutil.AppendMessage(b, fieldExpressionLiteral, k.Literal)
		}
	}
	return b, nil
}

// Unmarshal decodes the expression from protobuf wire format.
func (m *Expression) Unmarshal(b []byte) error {
	m.Reset()
	return wireutil.RangeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldExpressionColumn:
			v, n, err := wireutil.ConsumeBytes(num, typ, b)
			if err != nil {
				return 0, err
			}
			column := new(ColumnExpression)
			if err := column.Unmarshal(v); err != nil {
				return 0, err
			}
			m.Kind = &Expression_Column{Column: column}
			return n, nil

		case fieldExpressionLiteral:
			v, n, err := wireutil.ConsumeBytes(num, typ, b)
			if err != nil {
				return 0, err
			}
			literal := new(LiteralExpression)
			if err := literal.Unmarshal(v); err != nil {
				return 0, err
			}
			m.Kind = &Expression_Literal{Literal: literal}
			return n, nil
		}

		m.Kind = nil
		m.unknownKind = num
		return wireutil.SkipField(num, typ, b)
	})
}

func (m *ColumnExpression) Reset()      { *m = ColumnExpression{} }
func (*ColumnExpression) ProtoMessage() {}

func (m *ColumnExpression) String() string {
	if m == nil {
		return ""
	}
	return fmt.Sprintf("name:%q index:%d", m.Name, m.Index)
}

// Marshal encodes the column expression in protobuf wire format.
func (m *ColumnExpression) Marshal() ([]byte, error) {
	var b []byte
	if m.Name != "" {
		b = wireutil.AppendString(b, fieldColumnName, m.Name)
	}
	if m.Index != 0 {
		b = wireutil.AppendVarint(b, fieldColumnIndex, m.Index)
	}
	return b, nil
}

// Unmarshal decodes the column expression from protobuf wire format.
func (m *ColumnExpression) Unmarshal(b []byte) error {
	m.Reset()
	return wireutil.RangeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldColumnName:
			v, n, err := wireutil.ConsumeString(num, typ, b)
			m.Name = v
			return n, err
		case fieldColumnIndex:
			v, n, err := wireutil.ConsumeVarint(num, typ, b)
			m.Index = v
			return n, err
		}
		return wireutil.SkipField(num, typ, b)
	})
}

func (m *LiteralExpression) Reset()      { *m = LiteralExpression{} }
func (*LiteralExpression) ProtoMessage() {}

func (m *LiteralExpression) String() string {
	if m == nil {
		return ""
	}
	switch k := m.Kind.(type) {
	case *LiteralExpression_Null:
		return "null:<>"
	case *LiteralExpression_BoolValue:
		return fmt.Sprintf("bool_value:%t", k.BoolValue)
	case *LiteralExpression_Int64Value:
		return fmt.Sprintf("int64_value:%d", k.Int64Value)
	case *LiteralExpression_Uint64Value:
		return fmt.Sprintf("uint64_value:%d", k.Uint64Value)
	case *LiteralExpression_Float64Value:
		return fmt.Sprintf("float64_value:%g", k.Float64Value)
	case *LiteralExpression_StringValue:
		return fmt.Sprintf("string_value:%q", k.StringValue)
	}
	return ""
}

// Marshal encodes the literal in protobuf wire format. Oneof scalar values are
// always written, including zero values.
func (m *LiteralExpression) Marshal() ([]byte, error) {
	var b []byte
	switch k := m.Kind.(type) {
	case *LiteralExpression_Null:
		b = wireutil.AppendBytes(b, fieldLiteralNull, nil)
	case *LiteralExpression_BoolValue:
		b = wireutil.AppendBool(b, fieldLiteralBool, k.BoolValue)
	case *LiteralExpression_Int64Value:
		b = wireutil.AppendVarint(b, fieldLiteralInt64, uint64(k.Int64Value))
	case *LiteralExpression_Uint64Value:
		b = wireutil.AppendVarint(b, fieldLiteralUint64, k.Uint64Value)
	case *LiteralExpression_Float64Value:
		b = wireutil.AppendDouble(b, fieldLiteralFloat64, k.Float64Value)
	case *LiteralExpression_StringValue:
		b = wireutil.AppendString(b, fieldLiteralString, k.StringValue)
	}
	return b, nil
}

// Unmarshal decodes the literal from protobuf wire format.
func (m *LiteralExpression) Unmarshal(b []byte) error {
	m.Reset()
	return wireutil.RangeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldLiteralNull:
			_, n, err := wireutil.ConsumeBytes(num, typ, b)
			m.Kind = &LiteralExpression_Null{Null: &NullValue{}}
			return n, err
		case fieldLiteralBool:
			v, n, err := wireutil.ConsumeBool(num, typ, b)
			m.Kind = &LiteralExpression_BoolValue{BoolValue: v}
			return n, err
		case fieldLiteralInt64:
			v, n, err := wireutil.ConsumeVarint(num, typ, b)
			m.Kind = &LiteralExpression_Int64Value{Int64Value: int64(v)}
			return n, err
		case fieldLiteralUint64:
			v, n, err := wireutil.ConsumeVarint(num, typ, b)
			m.Kind = &LiteralExpression_Uint64Value{Uint64Value: v}
			return n, err
		case fieldLiteralFloat64:
			v, n, err := wireutil.ConsumeDouble(num, typ, b)
			m.Kind = &LiteralExpression_Float64Value{Float64Value: v}
			return n, err
		case fieldLiteralString:
			v, n, err := wireutil.ConsumeString(num, typ, b)
			m.Kind = &LiteralExpression_StringValue{StringValue: v}
			return n, err
		}
		return wireutil.SkipField(num, typ, b)
	})
}
