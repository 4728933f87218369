package engine

import "github.com/VeldsparCrypto/SWSQLite/internal/value"

// Record is one result row: column names mapped to values, in column order.
type Record struct {
	columns []string
	values  map[string]value.Value
}

// Set stores v under name. Setting an existing name replaces its value and
// keeps its original position.
func (r *Record) Set(name string, v value.Value) {
	if r.values == nil {
		r.values = map[string]value.Value{}
	}
	if _, ok := r.values[name]; !ok {
		r.columns = append(r.columns, name)
	}
	r.values[name] = v
}

// Get returns the value stored under name.
func (r Record) Get(name string) (value.Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Columns returns the column names in insertion order.
func (r Record) Columns() []string {
	return append([]string(nil), r.columns...)
}

// Len returns the number of distinct columns.
func (r Record) Len() int {
	return len(r.columns)
}

// Map returns a copy of the record as a plain map.
func (r Record) Map() map[string]value.Value {
	m := make(map[string]value.Value, len(r.values))
	for name, v := range r.values {
		m[name] = v
	}
	return m
}
