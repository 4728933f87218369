// Package value provides the typed values that can be bound into and read
// back from SQLite statements.
//
// A Value is one of exactly five types: Text, Blob, Integer, Real and Null.
// The concrete type is the tag, so a Value never carries more than one
// payload.
package value

import (
	"encoding/hex"
	"strconv"

	"github.com/orsinium-labs/enum"
)

// Kind is the tag of a Value.
type Kind enum.Member[string]

var (
	KindText    = Kind{Value: "text"}
	KindBlob    = Kind{Value: "blob"}
	KindInteger = Kind{Value: "integer"}
	KindReal    = Kind{Value: "real"}
	KindNull    = Kind{Value: "null"}

	// Kinds lists every Kind in declaration order.
	Kinds = enum.New(KindText, KindBlob, KindInteger, KindReal, KindNull)
)

// Value is a bindable and retrievable column value.
type Value interface {
	// Kind returns the tag of the value.
	Kind() Kind
	// Any returns the payload as string, []byte, int64, float64 or nil.
	Any() any
	// String returns a human readable rendering of the value.
	String() string

	sealed()
}

// Text is a UTF-8 text value.
type Text string

// Blob is a raw bytes value. A nil Blob is a zero-length blob, not NULL.
type Blob []byte

// Integer is a 64-bit signed integer value.
type Integer int64

// Real is a 64-bit floating point value.
type Real float64

// Null is the SQL NULL value.
type Null struct{}

func (Text) Kind() Kind    { return KindText }
func (Blob) Kind() Kind    { return KindBlob }
func (Integer) Kind() Kind { return KindInteger }
func (Real) Kind() Kind    { return KindReal }
func (Null) Kind() Kind    { return KindNull }

func (v Text) Any() any    { return string(v) }
func (v Blob) Any() any    { return []byte(v) }
func (v Integer) Any() any { return int64(v) }
func (v Real) Any() any    { return float64(v) }
func (Null) Any() any      { return nil }

func (v Text) String() string    { return string(v) }
func (v Blob) String() string    { return "x'" + hex.EncodeToString(v) + "'" }
func (v Integer) String() string { return strconv.FormatInt(int64(v), 10) }
func (v Real) String() string    { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (Null) String() string      { return "NULL" }

func (Text) sealed()    {}
func (Blob) sealed()    {}
func (Integer) sealed() {}
func (Real) sealed()    {}
func (Null) sealed()    {}

// IsNull reports whether v is nil or a Null value.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}
