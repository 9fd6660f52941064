package query

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// SortField is one ORDER BY term. Field is resolved through the projection.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending,omitempty"`
}

// ParseSortFields parses "name,-position" style sort strings. A leading "-"
// sorts descending. Empty input yields nil.
func ParseSortFields(s string) []SortField {
	var fields []SortField
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, desc := strings.CutPrefix(part, "-")
		fields = append(fields, SortField{Field: name, Descending: desc})
	}
	return fields
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Builder accumulates WHERE conditions and ordering for a projection.
// Placeholders are numbered as conditions are added.
type Builder struct {
	projection *ProjectionMap
	where      []string
	args       []any
	sort       []SortField
	fallback   []SortField
}

// NewBuilder creates a Builder. defaultSort applies when no explicit order
// is set.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection: projection,
		fallback:   defaultSort,
	}
}

// WhereEquals adds "field = value". Nil values are ignored.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	b.where = append(b.where, b.projection.column(field)+" = "+b.bind(value))
	return b
}

// WhereSearch matches search as a substring of any of fields, ignoring case.
// LIKE wildcards in search are matched literally.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" || len(fields) == 0 {
		return b
	}

	param := b.bind("%" + likeEscaper.Replace(*search) + "%")
	terms := make([]string, len(fields))
	for i, f := range fields {
		terms[i] = b.projection.column(f) + " ILIKE " + param
	}

	b.where = append(b.where, "("+strings.Join(terms, " OR ")+")")
	return b
}

// OrderByFields replaces the default order. Fields the projection does not
// know are skipped.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.sort = fields
	return b
}

// Build returns the SELECT with conditions and ordering.
func (b *Builder) Build() (string, []any) {
	return b.selectSQL() + b.whereSQL() + b.orderSQL(), slices.Clone(b.args)
}

// BuildCount returns a COUNT(*) over the current conditions.
func (b *Builder) BuildCount() (string, []any) {
	sql := "SELECT COUNT(*) FROM " + b.projection.From() + b.whereSQL()
	return sql, slices.Clone(b.args)
}

// BuildPage returns the ordered SELECT restricted to limit rows after offset.
func (b *Builder) BuildPage(limit, offset int) (string, []any) {
	sql, args := b.Build()
	return fmt.Sprintf("%s LIMIT %d OFFSET %d", sql, limit, offset), args
}

// BuildSingle selects the row whose field equals id, ignoring any
// accumulated conditions.
func (b *Builder) BuildSingle(field string, id any) (string, []any) {
	sql := b.selectSQL() + " WHERE " + b.projection.column(field) + " = $1"
	return sql, []any{id}
}

// BuildSingleOrNull selects at most one row matching the conditions.
func (b *Builder) BuildSingleOrNull() (string, []any) {
	return b.selectSQL() + b.whereSQL() + " LIMIT 1", slices.Clone(b.args)
}

func (b *Builder) bind(value any) string {
	b.args = append(b.args, value)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *Builder) selectSQL() string {
	return "SELECT " + b.projection.Columns() + " FROM " + b.projection.From()
}

func (b *Builder) whereSQL() string {
	if len(b.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.where, " AND ")
}

func (b *Builder) orderSQL() string {
	fields := b.sort
	if len(fields) == 0 {
		fields = b.fallback
	}

	var terms []string
	for _, f := range fields {
		col, ok := b.projection.Column(f.Field)
		if !ok {
			continue
		}
		if f.Descending {
			col += " DESC"
		} else {
			col += " ASC"
		}
		terms = append(terms, col)
	}

	if len(terms) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
