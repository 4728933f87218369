package schema

import (
	"path/filepath"
	"testing"

	"github.com/VeldsparCrypto/SWSQLite/internal/action"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statements(actions []action.Action) []string {
	res := make([]string, len(actions))
	for i, a := range actions {
		res[i] = a.Statement()
	}
	return res
}

func TestLoad(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		s, err := Load("testdata/people.yml")
		require.NoError(t, err)
		require.Len(t, s.Tables, 2)
		assert.Equal(t, Index{Column: "age", Descending: true}, s.Tables[0].Indexes[0])

		assert.Equal(t, []string{
			"CREATE TABLE IF NOT EXISTS people (_id_ TEXT PRIMARY KEY, _timestamp_ TEXT);",
			"ALTER TABLE people ADD COLUMN name TEXT;",
			"ALTER TABLE people ADD COLUMN age INTEGER;",
			"ALTER TABLE people ADD COLUMN avatar BLOB;",
			"CREATE INDEX IF NOT EXISTS idx_people_age ON people (age DESC);",
			"CREATE INDEX IF NOT EXISTS idx_people_name ON people (name ASC);",
			"CREATE TABLE IF NOT EXISTS scores (_id_ TEXT PRIMARY KEY, _timestamp_ TEXT);",
			"ALTER TABLE scores ADD COLUMN value REAL;",
		}, statements(s.Actions()))
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := Load("testdata/invalid.yml")
		require.Error(t, err)

		var merr *multierror.Error
		require.ErrorAs(t, err, &merr)
		assert.Len(t, merr.Errors, 4)
		assert.Contains(t, err.Error(), `unknown data type "boolean"`)
		assert.Contains(t, err.Error(), "column _id_ is defined twice or reserved")
		assert.Contains(t, err.Error(), `index on unknown column "email"`)
		assert.Contains(t, err.Error(), "table 2 has no name")
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		assert.ErrorContains(t, err, "can't read schema")
	})
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
		tables  int
	}{
		{name: "empty document", data: "", tables: 0},
		{name: "no tables", data: "tables: []", tables: 0},
		{name: "unknown key", data: "tables:\n  - name: a\n    colums: []\n", wantErr: "field colums not found"},
		{name: "not yaml", data: "tables: [", wantErr: "can't unmarshal schema"},
		{name: "duplicated table", data: "tables:\n  - name: a\n  - name: a\n", wantErr: "table a is defined twice"},
		{name: "index on reserved column", data: "tables:\n  - name: a\n    indexes:\n      - column: _timestamp_\n", tables: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(tt.data))
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, s.Tables, tt.tables)
		})
	}
}
