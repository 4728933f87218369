package engine

import (
	"github.com/VeldsparCrypto/SWSQLite/internal/sqlitec"
	"github.com/VeldsparCrypto/SWSQLite/internal/value"
)

// RowSource is a statement positioned on a result row.
type RowSource interface {
	ColumnCount() int
	ColumnName(index int) string
	ColumnType(index int) sqlitec.ColumnType
	ColumnInt64(index int) int64
	ColumnFloat64(index int) float64
	ColumnText(index int) string
	ColumnBlob(index int) []byte
}

// DecodeRow reads every column of the current row using the storage class
// SQLite reports for it. Columns sharing a name keep the last value.
func DecodeRow(src RowSource) Record {
	var record Record

	for i := 0; i < src.ColumnCount(); i++ {
		record.Set(src.ColumnName(i), decodeColumn(src, i))
	}

	return record
}

func decodeColumn(src RowSource, index int) value.Value {
	switch src.ColumnType(index) {
	case sqlitec.ColumnTypeInteger:
		return value.Integer(src.ColumnInt64(index))
	case sqlitec.ColumnTypeFloat:
		return value.Real(src.ColumnFloat64(index))
	case sqlitec.ColumnTypeText:
		return value.Text(src.ColumnText(index))
	case sqlitec.ColumnTypeBlob:
		blob := src.ColumnBlob(index)
		if blob == nil {
			blob = []byte{}
		}
		return value.Blob(blob)
	default:
		return value.Null{}
	}
}
