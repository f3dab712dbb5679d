// Package gen turns a YAML schema descriptor into Go source files with typed
// table and column accessors for the query builder.
//
// The descriptor lists tables and their columns:
//
//	package: db
//	tables:
//	  - name: person
//	    columns:
//	      - name: id
//	        type: int64
//	        generated: true
//	      - name: first_name
//	        type: string
//	      - name: middle_name
//	        type: string
//	        nullable: true
//
// For each table the generator emits a descriptor struct whose fields are
// column references, a shared descriptor value, column-name lists and a typed
// row struct for scanning. The output is plain data wiring; nothing here adds
// runtime validation to the query engine.
package gen

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-openapi/inflect"
	"gopkg.in/yaml.v3"
)

// Schema is the root of a descriptor file.
type Schema struct {
	Package string  `yaml:"package,omitempty"`
	Tables  []Table `yaml:"tables"`
}

// Table describes one database table.
type Table struct {
	Name    string   `yaml:"name"`
	Columns []Column `yaml:"columns"`
}

// Column describes one column. Generated marks database-populated columns
// such as serial keys and timestamp defaults; Nullable maps to a pointer
// field in the row struct.
type Column struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Generated bool   `yaml:"generated,omitempty"`
	Nullable  bool   `yaml:"nullable,omitempty"`
}

// columnTypes is the accepted type vocabulary and its Go mapping.
var columnTypes = map[string]struct{ pkg, ident string }{
	"string":  {"", "string"},
	"int":     {"", "int"},
	"int64":   {"", "int64"},
	"float64": {"", "float64"},
	"bool":    {"", "bool"},
	"bytes":   {"", "[]byte"},
	"time":    {"time", "Time"},
	"uuid":    {"github.com/google/uuid", "UUID"},
	"json":    {"encoding/json", "RawMessage"},
}

// Load reads and validates a schema descriptor file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gen: read schema: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a schema descriptor.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("gen: parse schema: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// validate rejects schemas the generator cannot emit unambiguously: empty
// names, unknown column types, and names that collide after camelizing.
func (s *Schema) validate() error {
	if len(s.Tables) == 0 {
		return errors.New("gen: schema declares no tables")
	}
	descriptors := make(map[string]string, len(s.Tables))
	for _, t := range s.Tables {
		if t.Name == "" {
			return errors.New("gen: table with empty name")
		}
		if len(t.Columns) == 0 {
			return fmt.Errorf("gen: table %q declares no columns", t.Name)
		}
		if prev, ok := descriptors[structName(t.Name)]; ok {
			return fmt.Errorf("gen: tables %q and %q map to the same descriptor name", prev, t.Name)
		}
		descriptors[structName(t.Name)] = t.Name

		fields := make(map[string]string, len(t.Columns))
		for _, c := range t.Columns {
			if c.Name == "" {
				return fmt.Errorf("gen: table %q: column with empty name", t.Name)
			}
			if _, ok := columnTypes[c.Type]; !ok {
				return fmt.Errorf("gen: table %q: column %q has unknown type %q", t.Name, c.Name, c.Type)
			}
			if prev, ok := fields[fieldName(c.Name)]; ok {
				return fmt.Errorf("gen: table %q: columns %q and %q map to the same field name", t.Name, prev, c.Name)
			}
			fields[fieldName(c.Name)] = c.Name
		}
	}
	return nil
}

// ColumnNames returns all column names in declaration order.
func (t Table) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// GeneratedColumns returns the names of database-generated columns.
func (t Table) GeneratedColumns() []string {
	var out []string
	for _, c := range t.Columns {
		if c.Generated {
			out = append(out, c.Name)
		}
	}
	return out
}

// structName returns the descriptor struct name for a table: singularized and
// camelized with a Table suffix. "user_profiles" becomes UserProfileTable.
func structName(table string) string {
	return inflect.Camelize(inflect.Singularize(table)) + "Table"
}

// varName returns the shared descriptor variable name. "user_profiles"
// becomes UserProfile.
func varName(table string) string {
	return inflect.Camelize(inflect.Singularize(table))
}

// rowName returns the scan struct name. "user_profiles" becomes
// UserProfileRow.
func rowName(table string) string {
	return inflect.Camelize(inflect.Singularize(table)) + "Row"
}

// fieldName returns the struct field for a column. "first_name" becomes
// FirstName.
func fieldName(column string) string {
	return inflect.Camelize(column)
}

// fileName returns the output file for a table.
func fileName(table string) string {
	return strings.ToLower(table) + ".go"
}
