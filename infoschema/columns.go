package infoschema

import (
	"cloud.google.com/go/spanner/spansql"
	"github.com/samber/lo"
)

// fillTables reports user tables first, then user views, then the catalog's
// own tables, which surface as views.
func (c *Catalog) fillTables() {
	t := c.table(TableTables)
	for _, ut := range c.schema.Tables {
		row := map[string]any{
			colTableSchema:           c.adapter.defaultSchema(),
			colTableName:             ut.Name,
			colTableType:             "BASE TABLE",
			colParentTableName:       nullString,
			colOnDeleteAction:        nullString,
			colSpannerState: "COMMITTED",
			// Interleave in parent is the only interleave form supported.
			colInterleaveType:        "IN PARENT",
			colRowDeletionPolicyExpr: nullString,
		}
		if ut.Parent != nil {
			row[colParentTableName] = ut.Parent.Name
			row[colOnDeleteAction] = lo.Ternary(ut.OnDelete == spansql.CascadeOnDelete, "CASCADE", "NO ACTION")
		}
		if !c.adapter.pg && ut.RowDeletionPolicy != "" {
			row[colRowDeletionPolicyExpr] = ut.RowDeletionPolicy
		}
		c.add(t, row)
	}

	for _, v := range c.schema.Views {
		c.add(t, map[string]any{
			colTableSchema:           c.adapter.defaultSchema(),
			colTableName:             v.Name,
			colTableType:             "VIEW",
			colParentTableName:       nullString,
			colOnDeleteAction:        nullString,
			colSpannerState:          stringOrNull(!c.adapter.pg, "COMMITTED"),
			colRowDeletionPolicyExpr: nullString,
		})
	}

	for _, own := range c.ownTables() {
		c.add(t, map[string]any{
			colTableSchema:           c.InfoSchemaName(),
			colTableName:             own.Name,
			colTableType:             "VIEW",
			colParentTableName:       nullString,
			colOnDeleteAction:        nullString,
			colSpannerState:          nullString,
			colRowDeletionPolicyExpr: nullString,
		})
	}
}

// fillColumns reports every column of every user table, user view, and
// catalog table, numbered from 1 in declaration order. The two dialects
// disagree on how types surface: GoogleSQL fills SPANNER_TYPE and leaves
// DATA_TYPE null, while Postgres leaves both null except for commit
// timestamp columns and instead fills the numeric shape columns.
func (c *Catalog) fillColumns() {
	t := c.table(TableColumns)
	for _, ut := range c.schema.Tables {
		for i, col := range ut.Columns {
			row := map[string]any{
				colTableSchema:     c.adapter.defaultSchema(),
				colTableName:       ut.Name,
				colColumnName:      col.Name,
				colOrdinalPosition: int64(i + 1),
				colIsNullable:      lo.Ternary(col.NotNull, "NO", "YES"),
				colIsGenerated:     lo.Ternary(col.IsGenerated(), "ALWAYS", "NEVER"),
				colIsStored:        stringOrNull(col.IsGenerated(), "YES"),
				colSpannerState:    "COMMITTED",
			}
			if c.adapter.pg {
				row[colColumnDefault] = nullString
				row[colDataType] = stringOrNull(col.AllowCommitTimestamp, "spanner.commit_timestamp")
				row[colSpannerType] = stringOrNull(col.AllowCommitTimestamp, "spanner.commit_timestamp")
				row[colCharacterMaximumLength] = pgCharacterMaximumLength(col.Type)
				row[colNumericPrecision] = pgNumericPrecision(col.Type)
				row[colNumericPrecisionRadix] = pgNumericPrecisionRadix(col.Type)
				row[colNumericScale] = pgNumericScale(col.Type)
				row[colGenerationExpression] = nullString
			} else {
				row[colColumnDefault] = stringOrNull(col.HasDefault(), col.DefaultExpr)
				row[colDataType] = nullString
				row[colSpannerType] = col.Type.SQL()
				row[colGenerationExpression] = stringOrNull(col.IsGenerated(), col.GenerationExpr)
			}
			c.add(t, row)
		}
	}

	for _, v := range c.schema.Views {
		for i, vc := range v.Columns {
			row := map[string]any{
				colTableSchema:          c.adapter.defaultSchema(),
				colTableName:            v.Name,
				colColumnName:           vc.Name,
				colOrdinalPosition:      int64(i + 1),
				colColumnDefault:        nullString,
				colDataType:             nullString,
				colIsNullable:           "YES",
				colIsGenerated:          "NEVER",
				colGenerationExpression: nullString,
				colIsStored:             nullString,
				colSpannerState:         "COMMITTED",
			}
			if c.adapter.pg {
				row[colSpannerType] = nullString
				row[colCharacterMaximumLength] = nullInt64
				row[colNumericPrecision] = pgNumericPrecision(vc.Type)
				row[colNumericPrecisionRadix] = pgNumericPrecisionRadix(vc.Type)
				row[colNumericScale] = pgNumericScale(vc.Type)
			} else {
				row[colSpannerType] = viewSpannerType(vc.Type)
			}
			c.add(t, row)
		}
	}

	for _, own := range c.ownTables() {
		for i, oc := range own.Columns {
			row := map[string]any{
				colTableSchema:          c.InfoSchemaName(),
				colTableName:            own.Name,
				colColumnName:           oc.Name,
				colOrdinalPosition:      int64(i + 1),
				colColumnDefault:        nullString,
				colDataType:             nullString,
				colIsNullable:           lo.Ternary(oc.NotNull, "NO", "YES"),
				colIsGenerated:          "NEVER",
				colGenerationExpression: nullString,
				colIsStored:             nullString,
				colSpannerState:         nullString,
			}
			if c.adapter.pg {
				row[colSpannerType] = nullString
				row[colCharacterMaximumLength] = nullInt64
				row[colNumericPrecision] = pgNumericPrecision(oc.Type)
				row[colNumericPrecisionRadix] = pgNumericPrecisionRadix(oc.Type)
				row[colNumericScale] = pgNumericScale(oc.Type)
			} else {
				row[colSpannerType] = oc.Type.SQL()
			}
			c.add(t, row)
		}
	}
}

// fillColumnColumnUsage reports, for every generated column, the columns
// its expression reads. COLUMN_NAME is the column being read and
// DEPENDENT_COLUMN is the generated column reading it.
func (c *Catalog) fillColumnColumnUsage() {
	t := c.table(TableColumnColumnUsage)
	for _, ut := range c.schema.Tables {
		for _, col := range ut.Columns {
			if !col.IsGenerated() {
				continue
			}
			for _, used := range col.DependentColumns {
				c.add(t, map[string]any{
					colTableSchema:     c.adapter.defaultSchema(),
					colTableName:       ut.Name,
					colColumnName:      used,
					colDependentColumn: col.Name,
				})
			}
		}
	}
}

// fillViews reports user views only; the catalog's own tables appear in
// TABLES but expose no definition.
func (c *Catalog) fillViews() {
	t := c.table(TableViews)
	for _, v := range c.schema.Views {
		c.add(t, map[string]any{
			colTableSchema:    c.adapter.defaultSchema(),
			colTableName:      v.Name,
			colViewDefinition: v.Definition,
		})
	}
}

// viewSpannerType renders a view output column type. View columns carry no
// declared length, so STRING and BYTES render at MAX.
func viewSpannerType(t spansql.Type) string {
	if t.Base == spansql.String || t.Base == spansql.Bytes {
		t.Len = spansql.MaxLen
	}
	return t.SQL()
}

// pgCharacterMaximumLength reports the declared length of a scalar STRING
// or BYTES column; MAX lengths and every other type report null.
func pgCharacterMaximumLength(t spansql.Type) any {
	if t.Array || (t.Base != spansql.String && t.Base != spansql.Bytes) {
		return nullInt64
	}
	if t.Len <= 0 || t.Len == spansql.MaxLen {
		return nullInt64
	}
	return t.Len
}

func pgNumericPrecision(t spansql.Type) any {
	if t.Array {
		return nullInt64
	}
	switch t.Base {
	case spansql.Float64:
		return int64(53)
	case spansql.Int64:
		return int64(64)
	default:
		return nullInt64
	}
}

func pgNumericPrecisionRadix(t spansql.Type) any {
	if t.Array {
		return nullInt64
	}
	switch t.Base {
	case spansql.Float64, spansql.Int64:
		return int64(2)
	default:
		return nullInt64
	}
}

func pgNumericScale(t spansql.Type) any {
	if !t.Array && t.Base == spansql.Int64 {
		return int64(0)
	}
	return nullInt64
}
