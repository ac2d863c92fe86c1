package infoschema

import (
	"fmt"

	"github.com/spanemu/spannerschema/schema"
)

func primaryKeyName(table string) string {
	return "PK_" + table
}

func checkNotNullName(table, column string) string {
	return fmt.Sprintf("CK_IS_NOT_NULL_%s_%s", table, column)
}

func notNullClause(column string) string {
	return column + " IS NOT NULL"
}

// fkUniqueConstraintName is the unique constraint a foreign key points at:
// the backing index when one exists, else the referenced table's primary
// key.
func fkUniqueConstraintName(fk *schema.ForeignKey) string {
	if fk.BackingIndex != nil {
		return fk.BackingIndex.Name
	}
	return primaryKeyName(fk.ReferencedTable.Name)
}

// fillCheckConstraints reports a synthesized IS NOT NULL constraint for
// every non-nullable column followed by the declared check constraints,
// for user tables and then for the catalog's own tables.
func (c *Catalog) fillCheckConstraints() {
	t := c.table(TableCheckConstraints)
	for _, ut := range c.schema.Tables {
		for _, col := range ut.Columns {
			if !col.NotNull {
				continue
			}
			c.add(t, map[string]any{
				colConstraintSchema: c.adapter.defaultSchema(),
				colConstraintName:   checkNotNullName(ut.Name, col.Name),
				colCheckClause:      notNullClause(col.Name),
				colSpannerState:     "COMMITTED",
			})
		}
		for _, ck := range ut.CheckConstraints {
			c.add(t, map[string]any{
				colConstraintSchema: c.adapter.defaultSchema(),
				colConstraintName:   ck.Name,
				colCheckClause:      ck.Expression,
				colSpannerState:     "COMMITTED",
			})
		}
	}
	for _, own := range c.ownTables() {
		for _, oc := range own.Columns {
			if !oc.NotNull {
				continue
			}
			c.add(t, map[string]any{
				colConstraintSchema: c.InfoSchemaName(),
				colConstraintName:   checkNotNullName(own.Name, oc.Name),
				colCheckClause:      notNullClause(oc.Name),
				colSpannerState:     "COMMITTED",
			})
		}
	}
}

// fillTableConstraints reports, per user table, its primary key, the
// synthesized NOT NULL constraints, declared checks, and foreign keys. A
// foreign key backed by a managed index is followed by a UNIQUE row
// attributed to the referenced table. Catalog tables contribute their
// primary key and NOT NULL constraints.
func (c *Catalog) fillTableConstraints() {
	t := c.table(TableTableConstraints)
	addConstraint := func(schemaName, constraint, tableName, typ string) {
		c.add(t, map[string]any{
			colConstraintSchema:  schemaName,
			colConstraintName:    constraint,
			colTableSchema:       schemaName,
			colTableName:         tableName,
			colConstraintType:    typ,
			colIsDeferrable:      "NO",
			colInitiallyDeferred: "NO",
			colEnforced:          "YES",
		})
	}

	ds := c.adapter.defaultSchema()
	for _, ut := range c.schema.Tables {
		addConstraint(ds, primaryKeyName(ut.Name), ut.Name, "PRIMARY KEY")
		for _, col := range ut.Columns {
			if col.NotNull {
				addConstraint(ds, checkNotNullName(ut.Name, col.Name), ut.Name, "CHECK")
			}
		}
		for _, ck := range ut.CheckConstraints {
			addConstraint(ds, ck.Name, ut.Name, "CHECK")
		}
		for _, fk := range ut.ForeignKeys {
			addConstraint(ds, fk.Name, ut.Name, "FOREIGN KEY")
			if fk.BackingIndex != nil {
				addConstraint(ds, fk.BackingIndex.Name, fk.ReferencedTable.Name, "UNIQUE")
			}
		}
	}
	for _, own := range c.ownTables() {
		addConstraint(c.InfoSchemaName(), primaryKeyName(own.Name), own.Name, "PRIMARY KEY")
		for _, oc := range own.Columns {
			if oc.NotNull {
				addConstraint(c.InfoSchemaName(), checkNotNullName(own.Name, oc.Name), own.Name, "CHECK")
			}
		}
	}
}

// fillConstraintTableUsage maps each constraint to the table it constrains.
// Foreign key rows and their backing index rows land on the referenced
// table, not the constrained one.
func (c *Catalog) fillConstraintTableUsage() {
	t := c.table(TableConstraintTableUsage)
	addUsage := func(schemaName, tableName, constraint string) {
		c.add(t, map[string]any{
			colTableSchema:      schemaName,
			colTableName:        tableName,
			colConstraintSchema: schemaName,
			colConstraintName:   constraint,
		})
	}

	ds := c.adapter.defaultSchema()
	for _, ut := range c.schema.Tables {
		addUsage(ds, ut.Name, primaryKeyName(ut.Name))
		for _, col := range ut.Columns {
			if col.NotNull {
				addUsage(ds, ut.Name, checkNotNullName(ut.Name, col.Name))
			}
		}
		for _, ck := range ut.CheckConstraints {
			addUsage(ds, ut.Name, ck.Name)
		}
		for _, fk := range ut.ForeignKeys {
			addUsage(ds, fk.ReferencedTable.Name, fk.Name)
			if fk.BackingIndex != nil {
				addUsage(ds, fk.ReferencedTable.Name, fk.BackingIndex.Name)
			}
		}
	}
	for _, own := range c.ownTables() {
		addUsage(c.InfoSchemaName(), own.Name, primaryKeyName(own.Name))
		for _, oc := range own.Columns {
			if oc.NotNull {
				addUsage(c.InfoSchemaName(), own.Name, checkNotNullName(own.Name, oc.Name))
			}
		}
	}
}

// fillReferentialConstraints reports one row per foreign key, naming the
// unique constraint that enforces the referenced side.
func (c *Catalog) fillReferentialConstraints() {
	t := c.table(TableReferentialConstraints)
	for _, ut := range c.schema.Tables {
		for _, fk := range ut.ForeignKeys {
			c.add(t, map[string]any{
				colConstraintSchema:       c.adapter.defaultSchema(),
				colConstraintName:         fk.Name,
				colUniqueConstraintSchema: c.adapter.defaultSchema(),
				colUniqueConstraintName:   fkUniqueConstraintName(fk),
				colMatchOption:            "SIMPLE",
				colUpdateRule:             "NO ACTION",
				colDeleteRule:             "NO ACTION",
				colSpannerState:           "COMMITTED",
			})
		}
	}
}

// fillKeyColumnUsage reports the key columns of primary keys, foreign
// keys, and foreign key backing indexes. POSITION_IN_UNIQUE_CONSTRAINT is
// set only on foreign key rows, where the referencing and referenced
// columns pair up position by position.
func (c *Catalog) fillKeyColumnUsage() {
	t := c.table(TableKeyColumnUsage)
	ds := c.adapter.defaultSchema()
	for _, ut := range c.schema.Tables {
		for i, key := range ut.PrimaryKey {
			c.add(t, map[string]any{
				colConstraintSchema:           ds,
				colConstraintName:             primaryKeyName(ut.Name),
				colTableSchema:                ds,
				colTableName:                  ut.Name,
				colColumnName:                 key.Column,
				colOrdinalPosition:            int64(i + 1),
				colPositionInUniqueConstraint: nullInt64,
			})
		}
		for _, fk := range ut.ForeignKeys {
			for i, name := range fk.Columns {
				c.add(t, map[string]any{
					colConstraintSchema:           ds,
					colConstraintName:             fk.Name,
					colTableSchema:                ds,
					colTableName:                  ut.Name,
					colColumnName:                 name,
					colOrdinalPosition:            int64(i + 1),
					colPositionInUniqueConstraint: int64(i + 1),
				})
			}
			if fk.BackingIndex != nil {
				for i, key := range fk.BackingIndex.Keys {
					c.add(t, map[string]any{
						colConstraintSchema:           ds,
						colConstraintName:             fk.BackingIndex.Name,
						colTableSchema:                ds,
						colTableName:                  fk.ReferencedTable.Name,
						colColumnName:                 key.Column,
						colOrdinalPosition:            int64(i + 1),
						colPositionInUniqueConstraint: nullInt64,
					})
				}
			}
		}
	}
	for _, own := range c.ownTables() {
		for _, oc := range own.Columns {
			ord := keyOrdinal(own.Canonical, oc.Canonical)
			if ord == 0 {
				continue
			}
			c.add(t, map[string]any{
				colConstraintSchema:           c.InfoSchemaName(),
				colConstraintName:             primaryKeyName(own.Name),
				colTableSchema:                c.InfoSchemaName(),
				colTableName:                  own.Name,
				colColumnName:                 oc.Name,
				colOrdinalPosition:            ord,
				colPositionInUniqueConstraint: nullInt64,
			})
		}
	}
}

// fillConstraintColumnUsage maps each constraint to the columns it
// constrains. Foreign key and backing index rows land on the referenced
// columns. The catalog's own rows come in two passes: every table's key
// columns, then every table's NOT NULL columns.
func (c *Catalog) fillConstraintColumnUsage() {
	t := c.table(TableConstraintColumnUsage)
	addUsage := func(schemaName, tableName, column, constraint string) {
		c.add(t, map[string]any{
			colTableSchema:      schemaName,
			colTableName:        tableName,
			colColumnName:       column,
			colConstraintSchema: schemaName,
			colConstraintName:   constraint,
		})
	}

	ds := c.adapter.defaultSchema()
	for _, ut := range c.schema.Tables {
		for _, key := range ut.PrimaryKey {
			addUsage(ds, ut.Name, key.Column, primaryKeyName(ut.Name))
		}
		for _, col := range ut.Columns {
			if col.NotNull {
				addUsage(ds, ut.Name, col.Name, checkNotNullName(ut.Name, col.Name))
			}
		}
		for _, ck := range ut.CheckConstraints {
			for _, dep := range ck.DependentColumns {
				addUsage(ds, ut.Name, dep, ck.Name)
			}
		}
		for _, fk := range ut.ForeignKeys {
			for _, ref := range fk.ReferencedColumns {
				addUsage(ds, fk.ReferencedTable.Name, ref, fk.Name)
			}
			if fk.BackingIndex != nil {
				for _, key := range fk.BackingIndex.Keys {
					addUsage(ds, fk.ReferencedTable.Name, key.Column, fk.BackingIndex.Name)
				}
			}
		}
	}
	for _, own := range c.ownTables() {
		for _, oc := range own.Columns {
			if keyOrdinal(own.Canonical, oc.Canonical) == 0 {
				continue
			}
			addUsage(c.InfoSchemaName(), own.Name, oc.Name, primaryKeyName(own.Name))
		}
	}
	for _, own := range c.ownTables() {
		for _, oc := range own.Columns {
			if !oc.NotNull {
				continue
			}
			addUsage(c.InfoSchemaName(), own.Name, oc.Name, checkNotNullName(own.Name, oc.Name))
		}
	}
}
