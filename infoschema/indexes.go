package infoschema

import "github.com/samber/lo"

// fillIndexes reports every secondary index followed by the owning table's
// PRIMARY_KEY pseudo-index, then a PRIMARY_KEY row for each catalog table.
func (c *Catalog) fillIndexes() {
	t := c.table(TableIndexes)
	for _, ut := range c.schema.Tables {
		for _, idx := range ut.Indexes {
			c.add(t, map[string]any{
				colTableSchema:      c.adapter.defaultSchema(),
				colTableName:        ut.Name,
				colIndexName:        idx.Name,
				colIndexType:        "INDEX",
				colParentTableName:  idx.Parent,
				colIsUnique:         idx.Unique,
				colIsNullFiltered:   idx.NullFiltered,
				colIndexState:       "READ_WRITE",
				colSpannerIsManaged: idx.Managed,
			})
		}
		c.add(t, map[string]any{
			colTableSchema: c.adapter.defaultSchema(),
			colTableName:   ut.Name,
			colIndexName:   "PRIMARY_KEY",
			colIndexType:   "PRIMARY_KEY",
			colIsUnique:    true,
			colIndexState:  nullString,
		})
	}
	for _, own := range c.ownTables() {
		c.add(t, map[string]any{
			colTableSchema: c.InfoSchemaName(),
			colTableName:   own.Name,
			colIndexName:   "PRIMARY_KEY",
			colIndexType:   "PRIMARY_KEY",
			colIsUnique:    true,
			colIndexState:  nullString,
		})
	}
}

// fillIndexColumns reports key columns then storing columns for each
// secondary index, the primary key columns of each user table, and the
// primary key columns of each catalog table. A key column of a
// null-filtered index reports IS_NULLABLE NO even when the column itself
// is nullable.
func (c *Catalog) fillIndexColumns() {
	t := c.table(TableIndexColumns)
	for _, ut := range c.schema.Tables {
		for _, idx := range ut.Indexes {
			for i, key := range idx.Keys {
				col := ut.Column(key.Column)
				c.add(t, map[string]any{
					colTableSchema:     c.adapter.defaultSchema(),
					colTableName:       ut.Name,
					colIndexName:       idx.Name,
					colIndexType:       "INDEX",
					colColumnName:      key.Column,
					colOrdinalPosition: int64(i + 1),
					colColumnOrdering:  lo.Ternary(key.Desc, "DESC", "ASC"),
					colIsNullable:      lo.Ternary(!col.NotNull && !idx.NullFiltered, "YES", "NO"),
					colSpannerType:     col.Type.SQL(),
				})
			}
			for _, stored := range idx.Storing {
				col := ut.Column(stored)
				c.add(t, map[string]any{
					colTableSchema:     c.adapter.defaultSchema(),
					colTableName:       ut.Name,
					colIndexName:       idx.Name,
					colIndexType:       "INDEX",
					colColumnName:      stored,
					colOrdinalPosition: nullInt64,
					colColumnOrdering:  nullString,
					colIsNullable:      lo.Ternary(col.NotNull, "NO", "YES"),
					colSpannerType:     col.Type.SQL(),
				})
			}
		}
		for i, key := range ut.PrimaryKey {
			col := ut.Column(key.Column)
			c.add(t, map[string]any{
				colTableSchema:     c.adapter.defaultSchema(),
				colTableName:       ut.Name,
				colIndexName:       "PRIMARY_KEY",
				colIndexType:       "PRIMARY_KEY",
				colColumnName:      key.Column,
				colOrdinalPosition: int64(i + 1),
				colColumnOrdering:  lo.Ternary(key.Desc, "DESC", "ASC"),
				colIsNullable:      lo.Ternary(col.NotNull, "NO", "YES"),
				colSpannerType:     col.Type.SQL(),
			})
		}
	}
	for _, own := range c.ownTables() {
		for _, oc := range own.Columns {
			ord := keyOrdinal(own.Canonical, oc.Canonical)
			if ord == 0 {
				continue
			}
			c.add(t, map[string]any{
				colTableSchema:     c.InfoSchemaName(),
				colTableName:       own.Name,
				colIndexName:       "PRIMARY_KEY",
				colIndexType:       "PRIMARY_KEY",
				colColumnName:      oc.Name,
				colOrdinalPosition: ord,
				colColumnOrdering:  "ASC",
				colIsNullable:      lo.Ternary(oc.NotNull, "NO", "YES"),
				colSpannerType:     oc.Type.SQL(),
			})
		}
	}
}

// fillColumnOptions reports the allow_commit_timestamp option for every
// column that sets it.
func (c *Catalog) fillColumnOptions() {
	t := c.table(TableColumnOptions)
	for _, ut := range c.schema.Tables {
		for _, col := range ut.Columns {
			if !col.AllowCommitTimestamp {
				continue
			}
			c.add(t, map[string]any{
				colTableSchema: c.adapter.defaultSchema(),
				colTableName:   ut.Name,
				colColumnName:  col.Name,
				colOptionName:  "allow_commit_timestamp",
				colOptionType:  "BOOL",
				colOptionValue: "TRUE",
			})
		}
	}
}
