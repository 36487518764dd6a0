package sqlhandler

import (
	"bytes"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"
)

func demoColumns(tsType string) []ColumnDef {
	return []ColumnDef{
		{Name: "host", DataType: "string"},
		{Name: "ts", DataType: tsType},
		{Name: "cpu", DataType: "double"},
		{Name: "memory", DataType: "double"},
	}
}

func timeIndex(col string) TableConstraint {
	return TableConstraint{Kind: ConstraintUnique, Name: TimeIndexName, Columns: []string{col}}
}

func primaryKey(cols ...string) TableConstraint {
	return TableConstraint{Kind: ConstraintUnique, Columns: cols, IsPrimary: true}
}

func TestCreateToRequest(t *testing.T) {
	stmt := CreateTable{
		Name:        []string{"demo_table"},
		Columns:     demoColumns("timestamp"),
		Constraints: []TableConstraint{timeIndex("ts"), primaryKey("host")},
		Options:     map[string]string{"regions": "1"},
	}

	req, err := New(nil).CreateToRequest(42, stmt)
	require.NoError(t, err)

	require.Equal(t, uint32(42), req.ID)
	require.Equal(t, DefaultCatalogName, req.CatalogName)
	require.Equal(t, DefaultSchemaName, req.SchemaName)
	require.Equal(t, "demo_table", req.TableName)
	require.False(t, req.CreateIfNotExists)
	require.Equal(t, []int{0}, req.PrimaryKeyIndices)
	require.Equal(t, 1, req.TimestampIndex)
	require.Equal(t, []uint32{0}, req.RegionNumbers)
	require.Equal(t, map[string]string{"regions": "1"}, req.TableOptions)
	require.Equal(t, 4, req.Schema.NumFields())

	ts, ok := req.Schema.FieldsByName("ts")
	require.True(t, ok)
	require.False(t, ts[0].Nullable)

	idx := req.Schema.Metadata().FindKey(TimeIndexMetadataKey)
	require.GreaterOrEqual(t, idx, 0)
	require.Equal(t, "ts", req.Schema.Metadata().Values()[idx])
}

func TestCreateToRequest_QualifiedName(t *testing.T) {
	stmt := CreateTable{
		Name:        []string{"c", "s", "demo"},
		Columns:     demoColumns("timestamp"),
		Constraints: []TableConstraint{timeIndex("ts"), primaryKey("host")},
	}

	req, err := New(nil).CreateToRequest(42, stmt)
	require.NoError(t, err)

	require.Equal(t, "c", req.CatalogName)
	require.Equal(t, "s", req.SchemaName)
	require.Equal(t, "demo", req.TableName)
	require.Equal(t, []int{0}, req.PrimaryKeyIndices)

	expect := map[string]arrow.DataType{
		"host":   arrow.BinaryTypes.String,
		"ts":     arrow.FixedWidthTypes.Timestamp_ms,
		"cpu":    arrow.PrimitiveTypes.Float64,
		"memory": arrow.PrimitiveTypes.Float64,
	}
	for name, dt := range expect {
		fields, ok := req.Schema.FieldsByName(name)
		require.True(t, ok, name)
		require.True(t, arrow.TypeEqual(dt, fields[0].Type), "column %s has type %s", name, fields[0].Type)
	}

	stmt.Name = []string{"s", "demo"}
	req, err = New(nil).CreateToRequest(42, stmt)
	require.NoError(t, err)
	require.Equal(t, DefaultCatalogName, req.CatalogName)
	require.Equal(t, "s", req.SchemaName)
}

func TestCreateToRequest_PrimaryKeyNotSpecified(t *testing.T) {
	var logs bytes.Buffer
	stmt := CreateTable{
		Name:        []string{"demo_table"},
		Columns:     demoColumns("timestamp"),
		Constraints: []TableConstraint{timeIndex("ts")},
		IfNotExists: true,
	}

	req, err := New(log.NewLogfmtLogger(&logs)).CreateToRequest(42, stmt)
	require.NoError(t, err)
	require.Equal(t, []int{req.TimestampIndex}, req.PrimaryKeyIndices)
	require.True(t, req.CreateIfNotExists)
	require.Contains(t, logs.String(), "primary key not set")
}

func TestCreateToRequest_Errors(t *testing.T) {
	tests := map[string]struct {
		stmt   CreateTable
		expect error
	}{
		"time index not specified": {
			stmt: CreateTable{
				Name:        []string{"demo_table"},
				Columns:     demoColumns("bigint"),
				Constraints: []TableConstraint{primaryKey("host")},
			},
			expect: ErrMissingTimestampColumn,
		},
		"key not found": {
			stmt: CreateTable{
				Name:        []string{"demo_table"},
				Columns:     []ColumnDef{{Name: "host", DataType: "string"}},
				Constraints: []TableConstraint{timeIndex("ts")},
			},
			expect: ErrKeyColumnNotFound,
		},
		"primary key not found": {
			stmt: CreateTable{
				Name:        []string{"demo_table"},
				Columns:     demoColumns("timestamp"),
				Constraints: []TableConstraint{timeIndex("ts"), primaryKey("region")},
			},
			expect: ErrKeyColumnNotFound,
		},
		"time index in primary key": {
			stmt: CreateTable{
				Name:        []string{"c", "s", "demo"},
				Columns:     demoColumns("timestamp"),
				Constraints: []TableConstraint{timeIndex("ts"), primaryKey("host", "cpu", "ts")},
			},
			expect: ErrInvalidPrimaryKey,
		},
		"too many name parts": {
			stmt: CreateTable{
				Name:    []string{"a", "b", "c", "d"},
				Columns: demoColumns("timestamp"),
			},
			expect: ErrParseSQL,
		},
		"empty name": {
			stmt:   CreateTable{Columns: demoColumns("timestamp")},
			expect: ErrParseSQL,
		},
		"named unique constraint": {
			stmt: CreateTable{
				Name:        []string{"demo_table"},
				Columns:     demoColumns("timestamp"),
				Constraints: []TableConstraint{{Kind: ConstraintUnique, Name: "uniq_host", Columns: []string{"host"}}},
			},
			expect: ErrInvalidSQL,
		},
		"unnamed unique constraint": {
			stmt: CreateTable{
				Name:        []string{"demo_table"},
				Columns:     demoColumns("timestamp"),
				Constraints: []TableConstraint{{Kind: ConstraintUnique, Columns: []string{"host"}}},
			},
			expect: ErrInvalidSQL,
		},
		"check constraint": {
			stmt: CreateTable{
				Name:        []string{"demo_table"},
				Columns:     demoColumns("timestamp"),
				Constraints: []TableConstraint{{Kind: ConstraintCheck}},
			},
			expect: ErrConstraintNotSupported,
		},
		"unsupported data type": {
			stmt: CreateTable{
				Name:        []string{"demo_table"},
				Columns:     append(demoColumns("timestamp"), ColumnDef{Name: "blob", DataType: "geometry"}),
				Constraints: []TableConstraint{timeIndex("ts")},
			},
			expect: ErrParseSQL,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req, err := New(nil).CreateToRequest(42, tc.stmt)
			require.ErrorIs(t, err, tc.expect)
			require.Nil(t, req)
		})
	}
}
