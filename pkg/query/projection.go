// Package query builds parameterized SQL over a projection of one table.
package query

import "strings"

// ProjectionMap maps field names to qualified columns (alias.column) of a
// single table. Lookups are case-insensitive and accept either the field
// name or the underlying column name.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	lookup  map[string]string
	columns []string
}

// NewProjectionMap creates a ProjectionMap for schema.table under alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		lookup: make(map[string]string),
	}
}

// Project selects column and exposes it under field.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.lookup[strings.ToLower(field)] = qualified
	p.lookup[strings.ToLower(column)] = qualified
	p.columns = append(p.columns, qualified)
	return p
}

// From returns the table reference used in FROM clauses.
func (p *ProjectionMap) From() string {
	return p.schema + "." + p.table + " " + p.alias
}

// Column resolves a field or column name to its qualified column.
func (p *ProjectionMap) Column(name string) (string, bool) {
	col, ok := p.lookup[strings.ToLower(name)]
	return col, ok
}

// Columns returns the projected columns as a select list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columns, ", ")
}

// column resolves names fixed in code. Unprojected names are used verbatim.
func (p *ProjectionMap) column(name string) string {
	if col, ok := p.Column(name); ok {
		return col
	}
	return name
}
