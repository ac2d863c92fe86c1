package schema

import (
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/spanemu/spannerschema/infoschema"
)

// Decode materializes the typed view of a synthesized catalog. Each raw row
// is wrapped in a *spanner.Row keyed by canonical column names and decoded
// with ToStruct, so the structs see exactly what a client querying a live
// INFORMATION_SCHEMA would.
func Decode(c *infoschema.Catalog) (*InformationSchema, error) {
	is := &InformationSchema{}
	for _, t := range c.Tables() {
		var err error
		switch t.Canonical {
		case infoschema.TableSchemata:
			is.Schemata, err = decodeRows[InformationSchemaSchema](t)
		case infoschema.TableDatabaseOptions:
			is.DatabaseOptions, err = decodeRows[InformationSchemaDatabaseOption](t)
		case infoschema.TableSpannerStatistics:
			is.SpannerStatistics, err = decodeRows[InformationSchemaSpannerStatistic](t)
		case infoschema.TableTables:
			is.Tables, err = decodeRows[InformationSchemaTable](t)
		case infoschema.TableColumns:
			is.Columns, err = decodeRows[InformationSchemaColumn](t)
		case infoschema.TableColumnColumnUsage:
			is.ColumnColumnUsage, err = decodeRows[InformationSchemaColumnColumnUsage](t)
		case infoschema.TableViews:
			is.Views, err = decodeRows[InformationSchemaView](t)
		case infoschema.TableIndexes:
			is.Indexes, err = decodeRows[InformationSchemaIndex](t)
		case infoschema.TableIndexColumns:
			is.IndexColumns, err = decodeRows[InformationSchemaIndexColumn](t)
		case infoschema.TableColumnOptions:
			is.ColumnOptions, err = decodeRows[InformationSchemaColumnOption](t)
		case infoschema.TableTableConstraints:
			is.TableConstraints, err = decodeRows[InformationSchemaTableConstraint](t)
		case infoschema.TableCheckConstraints:
			is.CheckConstraints, err = decodeRows[InformationSchemaCheckConstraint](t)
		case infoschema.TableConstraintTableUsage:
			is.ConstraintTableUsage, err = decodeRows[InformationSchemaConstraintTableUsage](t)
		case infoschema.TableReferentialConstraints:
			is.ReferentialConstraints, err = decodeRows[InformationSchemaReferentialConstraint](t)
		case infoschema.TableKeyColumnUsage:
			is.KeyColumnUsage, err = decodeRows[InformationSchemaKeyColumnUsage](t)
		case infoschema.TableConstraintColumnUsage:
			is.ConstraintColumnUsage, err = decodeRows[InformationSchemaConstraintColumnUsage](t)
		default:
			err = fmt.Errorf("no typed struct for table %s", t.Canonical)
		}
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", t.Canonical, err)
		}
	}
	return is, nil
}

func decodeRows[T any](t *infoschema.Table) ([]*T, error) {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = c.Canonical
	}
	var out []*T
	for _, raw := range t.Rows() {
		row, err := spanner.NewRow(cols, raw)
		if err != nil {
			return nil, err
		}
		var v T
		if err := row.ToStruct(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, nil
}
