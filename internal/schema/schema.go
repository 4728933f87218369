// Package schema loads table definitions from a YAML file and turns them
// into the actions that create them.
//
//	tables:
//	  - name: people
//	    columns:
//	      - {name: name, type: string}
//	      - {name: age, type: integer}
//	    indexes:
//	      - {column: age, descending: true}
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/VeldsparCrypto/SWSQLite/internal/action"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Schema is the content of a schema file.
type Schema struct {
	Tables []Table `yaml:"tables"`
}

// Table defines one table. The reserved _id_ and _timestamp_ columns are
// always created and must not be listed.
type Table struct {
	Name    string   `yaml:"name"`
	Columns []Column `yaml:"columns"`
	Indexes []Index  `yaml:"indexes"`
}

// Column is a column added to a table.
type Column struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Index is a single column index, ascending unless Descending is set.
type Index struct {
	Column     string `yaml:"column"`
	Descending bool   `yaml:"descending"`
}

// Load reads and validates the schema file at path.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read schema %s: %w", path, err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", path, err)
	}

	return s, nil
}

// Parse decodes and validates a schema. Unknown keys are rejected.
func Parse(data []byte) (*Schema, error) {
	s := &Schema{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("can't unmarshal schema: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate reports every problem of the schema at once.
func (s *Schema) Validate() error {
	errs := new(multierror.Error)

	tables := map[string]bool{}
	for i, table := range s.Tables {
		if table.Name == "" {
			errs = multierror.Append(errs, fmt.Errorf("table %d has no name", i+1))
			continue
		}
		if tables[table.Name] {
			errs = multierror.Append(errs, fmt.Errorf("table %s is defined twice", table.Name))
		}
		tables[table.Name] = true

		columns := map[string]bool{action.IDColumn: true, action.TimestampColumn: true}
		for j, column := range table.Columns {
			if column.Name == "" {
				errs = multierror.Append(errs, fmt.Errorf("table %s: column %d has no name", table.Name, j+1))
				continue
			}
			if columns[column.Name] {
				errs = multierror.Append(errs, fmt.Errorf("table %s: column %s is defined twice or reserved", table.Name, column.Name))
			}
			columns[column.Name] = true

			if _, err := action.ParseDataType(column.Type); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("table %s: column %s: %w", table.Name, column.Name, err))
			}
		}

		for _, index := range table.Indexes {
			if !columns[index.Column] {
				errs = multierror.Append(errs, fmt.Errorf("table %s: index on unknown column %q", table.Name, index.Column))
			}
		}
	}

	return errs.ErrorOrNil()
}

// Actions renders the schema in file order: for each table its CreateTable,
// then one AddColumn per column, then one CreateIndex per index. The schema
// must be valid.
func (s *Schema) Actions() []action.Action {
	var actions []action.Action

	for _, table := range s.Tables {
		actions = append(actions, action.CreateTable(table.Name))

		for _, column := range table.Columns {
			dataType, _ := action.ParseDataType(column.Type)
			actions = append(actions, action.AddColumn(table.Name, column.Name, dataType))
		}

		for _, index := range table.Indexes {
			actions = append(actions, action.CreateIndex(table.Name, index.Column, !index.Descending))
		}
	}

	return actions
}
