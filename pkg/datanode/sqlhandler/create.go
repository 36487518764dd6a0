// Package sqlhandler converts parsed SQL statements into datanode requests.
package sqlhandler

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	DefaultCatalogName = "greptime"
	DefaultSchemaName  = "public"

	// TimeIndexName is the name of the constraint declaring the time index
	// column of a table, as produced by `TIME INDEX (col)`.
	TimeIndexName = "__time_index"

	// TimeIndexMetadataKey is the schema metadata key holding the name of the
	// time index column.
	TimeIndexMetadataKey = "greptime:time_index"
)

// ColumnDef is a column of a CREATE TABLE statement.
type ColumnDef struct {
	Name     string
	DataType string
	NotNull  bool
}

// ConstraintKind is the kind of a table constraint.
type ConstraintKind int

const (
	ConstraintUnique ConstraintKind = iota
	ConstraintForeignKey
	ConstraintCheck
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintUnique:
		return "UNIQUE"
	case ConstraintForeignKey:
		return "FOREIGN KEY"
	case ConstraintCheck:
		return "CHECK"
	default:
		return fmt.Sprintf("ConstraintKind(%d)", int(k))
	}
}

// TableConstraint is a table-level constraint. PRIMARY KEY is an unnamed
// unique constraint with IsPrimary set; TIME INDEX is a unique constraint
// named [TimeIndexName].
type TableConstraint struct {
	Kind      ConstraintKind
	Name      string
	Columns   []string
	IsPrimary bool
}

// CreateTable is a parsed CREATE TABLE statement.
type CreateTable struct {
	IfNotExists bool
	// Name holds the parts of the possibly qualified table name.
	Name        []string
	Columns     []ColumnDef
	Constraints []TableConstraint
	Options     map[string]string
}

// CreateTableRequest asks the table engine to create a table.
type CreateTableRequest struct {
	ID                uint32
	CatalogName       string
	SchemaName        string
	TableName         string
	Schema            *arrow.Schema
	TimestampIndex    int
	RegionNumbers     []uint32
	PrimaryKeyIndices []int
	CreateIfNotExists bool
	TableOptions      map[string]string
}

// Handler converts SQL statements into requests.
type Handler struct {
	logger log.Logger
}

// New returns a new Handler.
func New(logger log.Logger) *Handler {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Handler{logger: logger}
}

// CreateToRequest converts stmt into a request creating table tableID.
func (h *Handler) CreateToRequest(tableID uint32, stmt CreateTable) (*CreateTableRequest, error) {
	catalogName, schemaName, tableName, err := tableIdentsToFullName(stmt.Name)
	if err != nil {
		return nil, err
	}

	colIndex := make(map[string]int, len(stmt.Columns))
	for i, col := range stmt.Columns {
		colIndex[col.Name] = i
	}
	lookup := func(name string) (int, error) {
		idx, ok := colIndex[name]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrKeyColumnNotFound, name)
		}
		return idx, nil
	}

	var (
		tsIndex     = -1
		primaryKeys []int
	)
	for _, c := range stmt.Constraints {
		if c.Kind != ConstraintUnique {
			return nil, fmt.Errorf("%w: %s", ErrConstraintNotSupported, c.Kind)
		}

		switch {
		case c.Name == TimeIndexName:
			if len(c.Columns) == 0 {
				return nil, fmt.Errorf("%w: time index without column", ErrInvalidSQL)
			}
			if tsIndex, err = lookup(c.Columns[0]); err != nil {
				return nil, err
			}
		case c.Name != "":
			return nil, fmt.Errorf("%w: cannot recognize named UNIQUE constraint: %s", ErrInvalidSQL, c.Name)
		case c.IsPrimary:
			for _, col := range c.Columns {
				idx, err := lookup(col)
				if err != nil {
					return nil, err
				}
				primaryKeys = append(primaryKeys, idx)
			}
		default:
			return nil, fmt.Errorf("%w: unrecognized non-primary unnamed UNIQUE constraint", ErrInvalidSQL)
		}
	}

	for _, idx := range primaryKeys {
		if idx == tsIndex {
			return nil, fmt.Errorf("%w: time index column can't be included in primary key", ErrInvalidPrimaryKey)
		}
	}
	if tsIndex < 0 {
		return nil, ErrMissingTimestampColumn
	}

	if len(primaryKeys) == 0 {
		level.Info(h.logger).Log("msg", "primary key not set, using time index column", "catalog", catalogName, "schema", schemaName, "table", tableName, "time_index", tsIndex)
		primaryKeys = append(primaryKeys, tsIndex)
	}

	fields := make([]arrow.Field, len(stmt.Columns))
	for i, col := range stmt.Columns {
		field, err := columnDefToField(col, i == tsIndex)
		if err != nil {
			return nil, err
		}
		fields[i] = field
	}
	metadata := arrow.NewMetadata([]string{TimeIndexMetadataKey}, []string{stmt.Columns[tsIndex].Name})

	options := make(map[string]string, len(stmt.Options))
	for k, v := range stmt.Options {
		options[k] = v
	}

	return &CreateTableRequest{
		ID:                tableID,
		CatalogName:       catalogName,
		SchemaName:        schemaName,
		TableName:         tableName,
		Schema:            arrow.NewSchema(fields, &metadata),
		TimestampIndex:    tsIndex,
		RegionNumbers:     []uint32{0},
		PrimaryKeyIndices: primaryKeys,
		CreateIfNotExists: stmt.IfNotExists,
		TableOptions:      options,
	}, nil
}

// tableIdentsToFullName resolves a possibly qualified table name into catalog,
// schema and table names.
func tableIdentsToFullName(name []string) (catalog, schema, table string, err error) {
	switch len(name) {
	case 1:
		return DefaultCatalogName, DefaultSchemaName, name[0], nil
	case 2:
		return DefaultCatalogName, name[0], name[1], nil
	case 3:
		return name[0], name[1], name[2], nil
	}
	return "", "", "", fmt.Errorf("%w: expect table name to be <catalog>.<schema>.<table>, <schema>.<table> or <table>, actual: %s", ErrParseSQL, strings.Join(name, "."))
}

func columnDefToField(col ColumnDef, isTimeIndex bool) (arrow.Field, error) {
	dt, err := sqlDataTypeToArrow(col.DataType)
	if err != nil {
		return arrow.Field{}, fmt.Errorf("column %s: %w", col.Name, err)
	}
	return arrow.Field{
		Name:     col.Name,
		Type:     dt,
		Nullable: !col.NotNull && !isTimeIndex,
	}, nil
}

func sqlDataTypeToArrow(sqlType string) (arrow.DataType, error) {
	switch strings.ToLower(sqlType) {
	case "string", "text", "varchar":
		return arrow.BinaryTypes.String, nil
	case "timestamp":
		return arrow.FixedWidthTypes.Timestamp_ms, nil
	case "double", "float64":
		return arrow.PrimitiveTypes.Float64, nil
	case "float", "float32":
		return arrow.PrimitiveTypes.Float32, nil
	case "bigint", "int64":
		return arrow.PrimitiveTypes.Int64, nil
	case "int", "integer", "int32":
		return arrow.PrimitiveTypes.Int32, nil
	case "boolean", "bool":
		return arrow.FixedWidthTypes.Boolean, nil
	}
	return nil, fmt.Errorf("%w: unsupported data type %s", ErrParseSQL, sqlType)
}
