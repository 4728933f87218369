package action

import (
	"fmt"
	"strings"

	"github.com/orsinium-labs/enum"
)

// DataType is the logical type of a column added with AddColumn.
type DataType enum.Member[string]

var (
	DataTypeString  = DataType{Value: "string"}
	DataTypeInteger = DataType{Value: "integer"}
	DataTypeFloat   = DataType{Value: "float"}
	DataTypeDouble  = DataType{Value: "double"}
	DataTypeBlob    = DataType{Value: "blob"}
	DataTypeNull    = DataType{Value: "null"}

	DataTypes = enum.New(
		DataTypeString,
		DataTypeInteger,
		DataTypeFloat,
		DataTypeDouble,
		DataTypeBlob,
		DataTypeNull,
	)
)

// ParseDataType resolves a data type name, ignoring case and surrounding
// spaces.
func ParseDataType(name string) (DataType, error) {
	dataType := DataTypes.Parse(strings.ToLower(strings.TrimSpace(name)))
	if dataType == nil {
		return DataType{}, fmt.Errorf("unknown data type %q", name)
	}
	return *dataType, nil
}

// NativeType returns the SQLite type keyword used for the column.
// Null and unknown types map to BLOB.
func (d DataType) NativeType() string {
	switch d {
	case DataTypeString:
		return "TEXT"
	case DataTypeInteger:
		return "INTEGER"
	case DataTypeFloat:
		return "NUMERIC"
	case DataTypeDouble:
		return "REAL"
	default:
		return "BLOB"
	}
}
