package infoschema

import (
	"cloud.google.com/go/spanner/spansql"
	"github.com/samber/lo"
)

// Column is one column of a materialized introspection table. Name carries
// the dialect casing; Canonical is the native spelling used by the registry
// and by typed decoding.
type Column struct {
	Name      string
	Canonical string
	Type      spansql.Type
	NotNull   bool
}

// Table is one materialized introspection table: a fixed shape plus the
// rows derived for it. Rows are positional over Columns and hold string,
// int64, bool, time.Time, or the spanner.Null* counterpart of the column
// type. A Table is read-only once the catalog is built.
type Table struct {
	Name      string
	Canonical string
	Columns   []Column
	rows      [][]any
}

// newTable materializes a table shape from its registry entry, dropping
// Postgres-only columns under the native dialect.
func newTable(a dialectAdapter, meta tableMeta) *Table {
	t := &Table{Name: a.nameFor(meta.Name), Canonical: meta.Name}
	for _, c := range meta.Columns {
		if c.PGOnly && !a.pg {
			continue
		}
		t.Columns = append(t.Columns, Column{
			Name:      a.nameFor(c.Name),
			Canonical: c.Name,
			Type:      c.Type,
			NotNull:   c.NotNull,
		})
	}
	return t
}

// Rows returns the synthesized rows in derivation order.
func (t *Table) Rows() [][]any {
	return t.rows
}

// ColumnNames returns the dialect-cased column names in declared order.
func (t *Table) ColumnNames() []string {
	return lo.Map(t.Columns, func(c Column, _ int) string { return c.Name })
}

func (t *Table) appendRow(row []any) {
	t.rows = append(t.rows, row)
}
