package schema

import (
	"fmt"
	"strings"

	"cloud.google.com/go/spanner/spansql"
	"github.com/cespare/xxhash/v2"
)

// Parse builds a Schema from Cloud Spanner DDL text. Statements are applied
// in order; the resulting graph is fully resolved: indexes are attached to
// their tables, interleave parents are linked, foreign keys have their
// backing indexes resolved, and dependent columns of generated columns and
// check constraints are computed.
func Parse(filename, ddl string) (*Schema, error) {
	parsed, err := spansql.ParseDDL(filename, ddl)
	if err != nil {
		return nil, fmt.Errorf("parse ddl: %w", err)
	}

	b := &builder{
		schema:  &Schema{},
		tables:  make(map[string]*Table),
		parents: make(map[string]string),
		deletes: make(map[string]spansql.OnDelete),
		pending: make(map[string][]spansql.TableConstraint),
	}
	for _, stmt := range parsed.List {
		if err := b.apply(stmt); err != nil {
			return nil, err
		}
	}
	if err := b.resolve(); err != nil {
		return nil, err
	}
	return b.schema, nil
}

type builder struct {
	schema  *Schema
	tables  map[string]*Table
	parents map[string]string
	deletes map[string]spansql.OnDelete
	pending map[string][]spansql.TableConstraint
	indexes []*spansql.CreateIndex
	views   []*spansql.CreateView
}

func (b *builder) apply(stmt spansql.DDLStmt) error {
	switch s := stmt.(type) {
	case *spansql.CreateTable:
		return b.createTable(s)
	case *spansql.CreateIndex:
		b.indexes = append(b.indexes, s)
		return nil
	case *spansql.CreateView:
		b.views = append(b.views, s)
		return nil
	case *spansql.AlterTable:
		return b.alterTable(s)
	default:
		return fmt.Errorf("unsupported ddl statement %T", stmt)
	}
}

func (b *builder) createTable(ct *spansql.CreateTable) error {
	name := string(ct.Name)
	if _, ok := b.tables[name]; ok {
		return fmt.Errorf("table %s defined twice", name)
	}

	t := &Table{Name: name}
	for _, cd := range ct.Columns {
		t.Columns = append(t.Columns, newColumn(cd))
	}
	for _, kp := range ct.PrimaryKey {
		if t.Column(string(kp.Column)) == nil {
			return fmt.Errorf("table %s: primary key column %s not found", name, kp.Column)
		}
		t.PrimaryKey = append(t.PrimaryKey, KeyPart{Column: string(kp.Column), Desc: kp.Desc})
	}
	if ct.Interleave != nil {
		b.parents[name] = string(ct.Interleave.Parent)
		b.deletes[name] = ct.Interleave.OnDelete
	}
	if ct.RowDeletionPolicy != nil {
		t.RowDeletionPolicy = rowDeletionPolicyString(*ct.RowDeletionPolicy)
	}
	b.pending[name] = append(b.pending[name], ct.Constraints...)

	b.tables[name] = t
	b.schema.Tables = append(b.schema.Tables, t)
	return nil
}

func newColumn(cd spansql.ColumnDef) *Column {
	col := &Column{
		Name:    string(cd.Name),
		Type:    cd.Type,
		NotNull: cd.NotNull,
	}
	if cd.Default != nil {
		col.DefaultExpr = cd.Default.SQL()
	}
	if cd.Generated != nil {
		col.GenerationExpr = cd.Generated.SQL()
		col.genExpr = cd.Generated
	}
	if cd.Options.AllowCommitTimestamp != nil && *cd.Options.AllowCommitTimestamp {
		col.AllowCommitTimestamp = true
	}
	return col
}

func (b *builder) alterTable(at *spansql.AlterTable) error {
	name := string(at.Name)
	t := b.tables[name]
	if t == nil {
		return fmt.Errorf("alter table %s: table not defined", name)
	}
	switch a := at.Alteration.(type) {
	case spansql.AddColumn:
		t.Columns = append(t.Columns, newColumn(a.Def))
	case spansql.AddConstraint:
		b.pending[name] = append(b.pending[name], a.Constraint)
	case spansql.SetOnDelete:
		b.deletes[name] = a.Action
	case spansql.AddRowDeletionPolicy:
		t.RowDeletionPolicy = rowDeletionPolicyString(a.RowDeletionPolicy)
	case spansql.ReplaceRowDeletionPolicy:
		t.RowDeletionPolicy = rowDeletionPolicyString(a.RowDeletionPolicy)
	case spansql.DropRowDeletionPolicy:
		t.RowDeletionPolicy = ""
	default:
		return fmt.Errorf("alter table %s: unsupported alteration %T", name, at.Alteration)
	}
	return nil
}

func (b *builder) resolve() error {
	for _, t := range b.schema.Tables {
		parent, ok := b.parents[t.Name]
		if !ok {
			continue
		}
		pt := b.tables[parent]
		if pt == nil {
			return fmt.Errorf("table %s: interleave parent %s not defined", t.Name, parent)
		}
		t.Parent = pt
		t.OnDelete = b.deletes[t.Name]
	}

	for _, ci := range b.indexes {
		if err := b.addIndex(ci); err != nil {
			return err
		}
	}

	for _, t := range b.schema.Tables {
		for _, c := range t.Columns {
			if c.IsGenerated() {
				c.DependentColumns = generatedColumnRefs(t, c)
			}
		}
		for _, tc := range b.pending[t.Name] {
			switch c := tc.Constraint.(type) {
			case spansql.ForeignKey:
				if err := b.addForeignKey(t, string(tc.Name), c); err != nil {
					return err
				}
			case spansql.Check:
				b.addCheck(t, string(tc.Name), c)
			default:
				return fmt.Errorf("table %s: unsupported constraint %T", t.Name, tc.Constraint)
			}
		}
	}

	// Views go last so column resolution sees every table.
	for _, cv := range b.views {
		cols, err := resolveViewColumns(b.schema, string(cv.Name), cv.Query)
		if err != nil {
			return err
		}
		b.schema.Views = append(b.schema.Views, &View{
			Name:       string(cv.Name),
			Definition: cv.Query.SQL(),
			Columns:    cols,
		})
	}
	return nil
}

func (b *builder) addIndex(ci *spansql.CreateIndex) error {
	t := b.tables[string(ci.Table)]
	if t == nil {
		return fmt.Errorf("index %s: table %s not defined", ci.Name, ci.Table)
	}
	idx := &Index{
		Name:         string(ci.Name),
		Table:        t.Name,
		Unique:       ci.Unique,
		NullFiltered: ci.NullFiltered,
		Parent:       string(ci.Interleave),
	}
	for _, kp := range ci.Columns {
		if t.Column(string(kp.Column)) == nil {
			return fmt.Errorf("index %s: column %s not in table %s", ci.Name, kp.Column, t.Name)
		}
		idx.Keys = append(idx.Keys, KeyPart{Column: string(kp.Column), Desc: kp.Desc})
	}
	for _, st := range ci.Storing {
		if t.Column(string(st)) == nil {
			return fmt.Errorf("index %s: storing column %s not in table %s", ci.Name, st, t.Name)
		}
		idx.Storing = append(idx.Storing, string(st))
	}
	t.Indexes = append(t.Indexes, idx)
	return nil
}

func (b *builder) addCheck(t *Table, name string, c spansql.Check) {
	expr := c.Expr.SQL()
	if name == "" {
		name = fmt.Sprintf("CK_%s_%s", t.Name, fingerprint("CHECK", t.Name, expr))
	}
	t.CheckConstraints = append(t.CheckConstraints, &CheckConstraint{
		Name:             name,
		Expression:       expr,
		DependentColumns: columnRefs(t, c.Expr),
	})
}

func (b *builder) addForeignKey(t *Table, name string, fk spansql.ForeignKey) error {
	ref := b.tables[string(fk.RefTable)]
	if ref == nil {
		return fmt.Errorf("table %s: foreign key references unknown table %s", t.Name, fk.RefTable)
	}
	cols := idStrings(fk.Columns)
	refCols := idStrings(fk.RefColumns)
	if len(cols) != len(refCols) {
		return fmt.Errorf("table %s: foreign key has %d referencing but %d referenced columns", t.Name, len(cols), len(refCols))
	}
	for _, c := range cols {
		if t.Column(c) == nil {
			return fmt.Errorf("table %s: foreign key column %s not found", t.Name, c)
		}
	}
	for _, c := range refCols {
		if ref.Column(c) == nil {
			return fmt.Errorf("table %s: foreign key referenced column %s.%s not found", t.Name, ref.Name, c)
		}
	}
	if name == "" {
		name = fmt.Sprintf("FK_%s_%s_%s", t.Name, ref.Name,
			fingerprint("FK", t.Name, strings.Join(cols, ","), ref.Name, strings.Join(refCols, ",")))
	}
	t.ForeignKeys = append(t.ForeignKeys, &ForeignKey{
		Name:              name,
		Table:             t.Name,
		Columns:           cols,
		ReferencedTable:   ref,
		ReferencedColumns: refCols,
		BackingIndex:      backingIndex(ref, refCols),
	})
	return nil
}

// backingIndex resolves the unique index on ref that guarantees uniqueness
// of refCols. Returns nil when the table's primary key serves that role.
// When no declared index matches, a managed unique index is synthesized and
// attached to ref, mirroring how the database backs such foreign keys.
func backingIndex(ref *Table, refCols []string) *Index {
	if len(refCols) == len(ref.PrimaryKey) {
		match := true
		for i, kp := range ref.PrimaryKey {
			if kp.Column != refCols[i] {
				match = false
				break
			}
		}
		if match {
			return nil
		}
	}

	for _, idx := range ref.Indexes {
		if !idx.Unique || len(idx.Keys) != len(refCols) {
			continue
		}
		match := true
		for i, kp := range idx.Keys {
			if kp.Column != refCols[i] {
				match = false
				break
			}
		}
		if match {
			return idx
		}
	}

	idx := &Index{
		Name:         managedIndexName(ref.Name, refCols),
		Table:        ref.Name,
		Unique:       true,
		NullFiltered: true,
		Managed:      true,
	}
	for _, c := range refCols {
		idx.Keys = append(idx.Keys, KeyPart{Column: c})
	}
	ref.Indexes = append(ref.Indexes, idx)
	return idx
}

// generatedColumnRefs finds the columns a generated column reads, excluding
// the column itself.
func generatedColumnRefs(t *Table, c *Column) []string {
	var deps []string
	for _, r := range columnRefs(t, c.genExpr) {
		if r != c.Name {
			deps = append(deps, r)
		}
	}
	return deps
}

func rowDeletionPolicyString(p spansql.RowDeletionPolicy) string {
	return fmt.Sprintf("OLDER_THAN(%s, INTERVAL %d DAY)", p.Column, p.NumDays)
}

func managedIndexName(table string, cols []string) string {
	return fmt.Sprintf("IDX_%s_%s_U_%s", table, strings.Join(cols, "_"),
		fingerprint("IDX", table, strings.Join(cols, ",")))
}

func fingerprint(parts ...string) string {
	return fmt.Sprintf("%08X", xxhash.Sum64String(strings.Join(parts, "|"))&0xFFFFFFFF)
}

func idStrings(ids []spansql.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
