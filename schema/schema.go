// Package schema models a Cloud Spanner database schema as a resolved object
// graph: tables with their columns, keys, indexes and constraints, plus
// views. The graph is built from DDL text by Parse and is read-only
// afterwards.
package schema

import (
	"cloud.google.com/go/spanner/spansql"
)

type Schema struct {
	Tables []*Table
	Views  []*View
}

// Table returns the table with the given name, or nil.
func (s *Schema) Table(name string) *Table {
	for _, t := range s.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

type Table struct {
	Name             string
	Columns          []*Column
	PrimaryKey       []KeyPart
	Indexes          []*Index
	ForeignKeys      []*ForeignKey
	CheckConstraints []*CheckConstraint

	// Parent is the interleave parent, nil for top-level tables. OnDelete
	// is only meaningful when Parent is set.
	Parent   *Table
	OnDelete spansql.OnDelete

	// RowDeletionPolicy holds the policy expression text, "" when none.
	RowDeletionPolicy string
}

// Column returns the named column, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

type Column struct {
	Name    string
	Type    spansql.Type
	NotNull bool

	// DefaultExpr and GenerationExpr hold expression text, "" when absent.
	// A column has at most one of the two.
	DefaultExpr    string
	GenerationExpr string

	// DependentColumns lists the columns a generated column reads, in
	// table declaration order.
	DependentColumns []string

	AllowCommitTimestamp bool

	genExpr spansql.Expr
}

func (c *Column) IsGenerated() bool { return c.GenerationExpr != "" }

func (c *Column) HasDefault() bool { return c.DefaultExpr != "" }

type KeyPart struct {
	Column string
	Desc   bool
}

type Index struct {
	Name         string
	Table        string
	Keys         []KeyPart
	Storing      []string
	Unique       bool
	NullFiltered bool

	// Managed marks an index synthesized to back a foreign key rather
	// than declared in the DDL.
	Managed bool

	// Parent is the name of the table the index is interleaved in, "" for
	// top-level indexes.
	Parent string
}

type ForeignKey struct {
	Name              string
	Table             string
	Columns           []string
	ReferencedTable   *Table
	ReferencedColumns []string

	// BackingIndex is the unique index on the referenced table that
	// enforces uniqueness of the referenced columns. It is nil when the
	// referenced table's primary key serves that role.
	BackingIndex *Index
}

type CheckConstraint struct {
	Name             string
	Expression       string
	DependentColumns []string
}

type View struct {
	Name       string
	Definition string
	Columns    []ViewColumn
}

type ViewColumn struct {
	Name string
	Type spansql.Type
}
