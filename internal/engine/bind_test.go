package engine

import (
	"errors"
	"testing"

	"github.com/VeldsparCrypto/SWSQLite/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bindCall struct {
	index int
	kind  string
	value any
}

type fakeTarget struct {
	paramCount int
	failAt     int
	calls      []bindCall
}

func (f *fakeTarget) record(index int, kind string, v any) error {
	if index == f.failAt {
		return errors.New("bind refused")
	}
	f.calls = append(f.calls, bindCall{index: index, kind: kind, value: v})
	return nil
}

func (f *fakeTarget) BindParameterCount() int { return f.paramCount }
func (f *fakeTarget) BindText(i int, v string) error {
	return f.record(i, "text", v)
}
func (f *fakeTarget) BindBlob(i int, v []byte) error {
	return f.record(i, "blob", v)
}
func (f *fakeTarget) BindInt64(i int, v int64) error {
	return f.record(i, "int64", v)
}
func (f *fakeTarget) BindFloat64(i int, v float64) error {
	return f.record(i, "float64", v)
}
func (f *fakeTarget) BindNull(i int) error {
	return f.record(i, "null", nil)
}

type fixedIDs struct{}

func (fixedIDs) UUID() string        { return "uuid-1" }
func (fixedIDs) ClusterTime() string { return "clustertime-1" }

func TestBinder(t *testing.T) {
	t.Run("BindsByTag", func(t *testing.T) {
		target := &fakeTarget{paramCount: 6}
		params := []value.Value{
			value.Text("Alice"),
			value.Blob{1, 2},
			value.Integer(30),
			value.Real(1.5),
			value.Null{},
			nil,
		}

		require.NoError(t, Binder{}.Bind(target, params))
		assert.Equal(t, []bindCall{
			{index: 1, kind: "text", value: "Alice"},
			{index: 2, kind: "blob", value: []byte{1, 2}},
			{index: 3, kind: "int64", value: int64(30)},
			{index: 4, kind: "float64", value: 1.5},
			{index: 5, kind: "null"},
			{index: 6, kind: "null"},
		}, target.calls)
	})

	t.Run("SubstitutesTokens", func(t *testing.T) {
		target := &fakeTarget{paramCount: 4}
		params := value.Values(UUIDToken, ClusterTimeToken, "%uuid% ", "%UUID%")

		require.NoError(t, Binder{IDs: fixedIDs{}}.Bind(target, params))
		assert.Equal(t, []bindCall{
			{index: 1, kind: "text", value: "uuid-1"},
			{index: 2, kind: "text", value: "clustertime-1"},
			{index: 3, kind: "text", value: "%uuid% "},
			{index: 4, kind: "text", value: "%UUID%"},
		}, target.calls)
	})

	t.Run("TokensWithoutGenerator", func(t *testing.T) {
		target := &fakeTarget{paramCount: 1}

		require.NoError(t, Binder{}.Bind(target, value.Values(UUIDToken)))
		assert.Equal(t, "%uuid%", target.calls[0].value)
	})

	t.Run("ArityMismatchBindsNothing", func(t *testing.T) {
		target := &fakeTarget{paramCount: 3}

		err := Binder{}.Bind(target, value.Values("a", "b"))
		require.ErrorIs(t, err, ErrArityMismatch)
		assert.Contains(t, err.Error(), "statement expects 3, got 2")
		assert.Empty(t, target.calls)
	})

	t.Run("BindFailureHasIndex", func(t *testing.T) {
		target := &fakeTarget{paramCount: 3, failAt: 2}

		err := Binder{}.Bind(target, value.Values(1, 2, 3))
		assert.EqualError(t, err, "failed to bind parameter 2: bind refused")
	})
}
