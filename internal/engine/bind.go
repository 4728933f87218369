package engine

import (
	"fmt"

	"github.com/VeldsparCrypto/SWSQLite/internal/value"
)

// Tokens replaced by a fresh identifier when they are the whole value of a
// bound Text. The match is unconditional, so user data equal to one of them
// can't be stored through a parameter.
const (
	UUIDToken        = "%uuid%"
	ClusterTimeToken = "%clustertime%"
)

// IDGenerator produces the identifiers substituted for the tokens.
type IDGenerator interface {
	UUID() string
	ClusterTime() string
}

// BindTarget is a prepared statement accepting positional parameters.
type BindTarget interface {
	BindParameterCount() int
	BindText(index int, value string) error
	BindBlob(index int, data []byte) error
	BindInt64(index int, value int64) error
	BindFloat64(index int, value float64) error
	BindNull(index int) error
}

// Binder binds values into a statement by their tag.
type Binder struct {
	// IDs replaces the tokens. A nil IDs binds them literally.
	IDs IDGenerator
}

// Bind binds params at positions 1..len(params). It returns an error wrapping
// ErrArityMismatch, without binding anything, when the statement expects a
// different number of parameters.
func (b Binder) Bind(target BindTarget, params []value.Value) error {
	if expected := target.BindParameterCount(); expected != len(params) {
		return fmt.Errorf(
			"%w: statement expects %d, got %d",
			ErrArityMismatch, expected, len(params),
		)
	}

	for i, param := range params {
		if err := b.bindOne(target, i+1, param); err != nil {
			return fmt.Errorf("failed to bind parameter %d: %w", i+1, err)
		}
	}

	return nil
}

func (b Binder) bindOne(target BindTarget, index int, param value.Value) error {
	switch v := param.(type) {
	case value.Text:
		return target.BindText(index, b.substitute(string(v)))
	case value.Blob:
		return target.BindBlob(index, v)
	case value.Integer:
		return target.BindInt64(index, int64(v))
	case value.Real:
		return target.BindFloat64(index, float64(v))
	default:
		return target.BindNull(index)
	}
}

func (b Binder) substitute(text string) string {
	if b.IDs == nil {
		return text
	}

	switch text {
	case UUIDToken:
		return b.IDs.UUID()
	case ClusterTimeToken:
		return b.IDs.ClusterTime()
	}
	return text
}
