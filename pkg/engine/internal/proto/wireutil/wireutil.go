// Package wireutil provides helpers for reading and writing protobuf wire
// format fields, shared by the message types of the engine's proto packages.
package wireutil

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Marshaler is implemented by messages that can encode themselves.
type Marshaler interface {
	Marshal() ([]byte, error)
}

// AppendMessage appends m as a length-delimited field num.
func AppendMessage(b []byte, num protowire.Number, m Marshaler) ([]byte, error) {
	data, err := m.Marshal()
	if err != nil {
		return nil, err
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, data), nil
}

// AppendBytes appends v as a length-delimited field num.
func AppendBytes(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// AppendString appends v as a length-delimited field num.
func AppendString(b []byte, num protowire.Number, v string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

// AppendVarint appends v as a varint field num.
func AppendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// AppendBool appends v as a varint field num.
func AppendBool(b []byte, num protowire.Number, v bool) []byte {
	return AppendVarint(b, num, protowire.EncodeBool(v))
}

// AppendDouble appends v as a fixed64 field num.
func AppendDouble(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

// FieldFunc decodes the value of field num with wire type typ at the start of
// b. It returns the number of bytes consumed.
type FieldFunc func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

// RangeFields calls fn for every field of the encoded message b, in wire
// order.
func RangeFields(b []byte, fn FieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		n, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// SkipField consumes the value of an unrecognized field.
func SkipField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return n, nil
}

func checkType(num protowire.Number, got, want protowire.Type) error {
	if got != want {
		return fmt.Errorf("field %d: unexpected wire type %d, want %d", num, got, want)
	}
	return nil
}

// ConsumeBytes decodes a length-delimited field value. The returned slice
// aliases b.
func ConsumeBytes(num protowire.Number, typ protowire.Type, b []byte) ([]byte, int, error) {
	if err := checkType(num, typ, protowire.BytesType); err != nil {
		return nil, 0, err
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

// ConsumeString decodes a length-delimited field value as a string.
func ConsumeString(num protowire.Number, typ protowire.Type, b []byte) (string, int, error) {
	v, n, err := ConsumeBytes(num, typ, b)
	if err != nil {
		return "", 0, err
	}
	return string(v), n, nil
}

// ConsumeVarint decodes a varint field value.
func ConsumeVarint(num protowire.Number, typ protowire.Type, b []byte) (uint64, int, error) {
	if err := checkType(num, typ, protowire.VarintType); err != nil {
		return 0, 0, err
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

// ConsumeBool decodes a varint field value as a bool.
func ConsumeBool(num protowire.Number, typ protowire.Type, b []byte) (bool, int, error) {
	v, n, err := ConsumeVarint(num, typ, b)
	return protowire.DecodeBool(v), n, err
}

// ConsumeDouble decodes a fixed64 field value as a float64.
func ConsumeDouble(num protowire.Number, typ protowire.Type, b []byte) (float64, int, error) {
	if err := checkType(num, typ, protowire.Fixed64Type); err != nil {
		return 0, 0, err
	}
	v, n := protowire.ConsumeFixed64(b)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}
	return math.Float64frombits(v), n, nil
}
