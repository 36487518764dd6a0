// Package arrowtest provides helpers for writing tests against Arrow records
// as plain Go values.
package arrowtest

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Rows is a list of rows, each mapping a column name to its value. A NULL
// value is represented by a missing key or a nil value.
type Rows []map[string]any

// RecordRows converts rec into [Rows]. Columns are read by name, so records
// with duplicate column names are rejected.
func RecordRows(rec arrow.Record) (Rows, error) {
	schema := rec.Schema()
	seen := make(map[string]struct{}, schema.NumFields())
	for _, field := range schema.Fields() {
		if _, ok := seen[field.Name]; ok {
			return nil, fmt.Errorf("duplicate column %q", field.Name)
		}
		seen[field.Name] = struct{}{}
	}

	rows := make(Rows, rec.NumRows())
	for i := range rows {
		row := make(map[string]any, rec.NumCols())
		for j, col := range rec.Columns() {
			value, err := columnValue(col, i)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", schema.Field(j).Name, err)
			}
			row[schema.Field(j).Name] = value
		}
		rows[i] = row
	}
	return rows, nil
}

func columnValue(col arrow.Array, i int) (any, error) {
	if col.IsNull(i) {
		return nil, nil
	}

	switch col := col.(type) {
	case *array.Null:
		return nil, nil
	case *array.Boolean:
		return col.Value(i), nil
	case *array.Int64:
		return col.Value(i), nil
	case *array.Uint32:
		return col.Value(i), nil
	case *array.Uint64:
		return col.Value(i), nil
	case *array.Float32:
		return col.Value(i), nil
	case *array.Float64:
		return col.Value(i), nil
	case *array.String:
		return col.Value(i), nil
	case *array.Timestamp:
		return col.Value(i), nil
	}
	return nil, fmt.Errorf("unsupported column type %s", col.DataType())
}

// Record builds a record of schema from rows. Record panics if a value does
// not match the type of its column.
func (rows Rows) Record(mem memory.Allocator, schema *arrow.Schema) arrow.Record {
	builder := array.NewRecordBuilder(mem, schema)
	defer builder.Release()

	for _, row := range rows {
		for i, field := range schema.Fields() {
			appendValue(builder.Field(i), row[field.Name])
		}
	}
	return builder.NewRecord()
}

func appendValue(b array.Builder, value any) {
	if value == nil {
		b.AppendNull()
		return
	}

	switch b := b.(type) {
	case *array.BooleanBuilder:
		b.Append(value.(bool))
	case *array.Int64Builder:
		b.Append(value.(int64))
	case *array.Uint32Builder:
		b.Append(value.(uint32))
	case *array.Uint64Builder:
		b.Append(value.(uint64))
	case *array.Float32Builder:
		b.Append(value.(float32))
	case *array.Float64Builder:
		b.Append(value.(float64))
	case *array.StringBuilder:
		b.Append(value.(string))
	case *array.TimestampBuilder:
		b.Append(value.(arrow.Timestamp))
	default:
		panic(fmt.Sprintf("arrowtest: unsupported builder %T", b))
	}
}
