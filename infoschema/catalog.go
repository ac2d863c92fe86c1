package infoschema

import (
	"fmt"

	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"

	"github.com/spanemu/spannerschema/schema"
)

type buildStage int

const (
	stageDeclaring buildStage = iota
	stagePopulating
	stageDone
)

// Catalog is the materialized INFORMATION_SCHEMA for one schema under one
// dialect. Construction is two-phase: every table shape is declared before
// any row is derived, so fills that describe the catalog itself always see
// the complete table list.
type Catalog struct {
	Dialect databasepb.DatabaseDialect

	adapter   dialectAdapter
	schema    *schema.Schema
	stage     buildStage
	tableList []*Table
	tables    map[string]*Table
}

// New builds the complete catalog for s under dialect. An unspecified
// dialect is treated as GoogleSQL. The returned catalog is read-only.
func New(s *schema.Schema, dialect databasepb.DatabaseDialect) *Catalog {
	if dialect == databasepb.DatabaseDialect_DATABASE_DIALECT_UNSPECIFIED {
		dialect = databasepb.DatabaseDialect_GOOGLE_STANDARD_SQL
	}
	c := &Catalog{
		Dialect: dialect,
		adapter: newDialectAdapter(dialect),
		schema:  s,
		tables:  map[string]*Table{},
	}
	c.declareAll()
	c.stage = stagePopulating
	c.fillAll()
	c.stage = stageDone
	return c
}

// Table resolves a dialect-cased introspection table name.
func (c *Catalog) Table(name string) (*Table, bool) {
	t, ok := c.tables[name]
	return t, ok
}

// Tables returns every introspection table in declaration order.
func (c *Catalog) Tables() []*Table {
	return c.tableList
}

func (c *Catalog) declareAll() {
	for _, m := range metaTables {
		t := newTable(c.adapter, m)
		c.tableList = append(c.tableList, t)
		c.tables[t.Name] = t
	}
}

// fillAll derives rows table by table. The order is fixed so that a rebuilt
// catalog for the same schema is byte-for-byte identical.
func (c *Catalog) fillAll() {
	c.fillSchemata()
	c.fillDatabaseOptions()
	c.fillTables()
	c.fillColumns()
	c.fillColumnColumnUsage()
	c.fillIndexes()
	c.fillIndexColumns()
	c.fillColumnOptions()
	c.fillCheckConstraints()
	c.fillTableConstraints()
	c.fillConstraintTableUsage()
	c.fillReferentialConstraints()
	c.fillKeyColumnUsage()
	c.fillConstraintColumnUsage()
	c.fillViews()
}

// table resolves a canonical table name during fills.
func (c *Catalog) table(canonical string) *Table {
	t, ok := c.tables[c.adapter.nameFor(canonical)]
	if !ok {
		panic(fmt.Sprintf("information schema: table %s is not declared", canonical))
	}
	return t
}

// ownTables lists the catalog's own tables for self-describing fills. It is
// valid only once every shape has been declared.
func (c *Catalog) ownTables() []*Table {
	if c.stage == stageDeclaring {
		panic("information schema: self-describing fill ran before declarations completed")
	}
	return c.tableList
}

// InfoSchemaName is the dialect casing of the INFORMATION_SCHEMA namespace,
// used as the schema of self-describing rows.
func (c *Catalog) InfoSchemaName() string {
	return c.adapter.nameFor(InformationSchema)
}

func (c *Catalog) add(t *Table, overrides map[string]any) {
	t.appendRow(rowFromOverrides(t, overrides))
}

// fillSchemata reports the default schema and the introspection namespace.
func (c *Catalog) fillSchemata() {
	t := c.table(TableSchemata)
	c.add(t, map[string]any{
		colSchemaName: c.adapter.defaultSchema(),
	})
	c.add(t, map[string]any{
		colSchemaName: c.InfoSchemaName(),
	})
}

// fillDatabaseOptions reports the single database_dialect option.
func (c *Catalog) fillDatabaseOptions() {
	t := c.table(TableDatabaseOptions)
	c.add(t, map[string]any{
		colSchemaName:  c.adapter.defaultSchema(),
		colOptionName:  "database_dialect",
		colOptionType:  c.adapter.optionTypeName(),
		colOptionValue: c.Dialect.String(),
	})
}
