// Package infoschema synthesizes a read-only INFORMATION_SCHEMA catalog from
// a resolved database schema. A Catalog is built once per (schema, dialect)
// pair: every introspection table is declared first, then populated in a
// fixed order, so that tables describing the catalog itself see the complete
// table list. After construction the catalog is immutable.
package infoschema

import (
	"fmt"

	"cloud.google.com/go/spanner/spansql"
)

// InformationSchema is the canonical name of the introspection namespace.
const InformationSchema = "INFORMATION_SCHEMA"

// Canonical introspection table names (native-dialect casing).
const (
	TableSchemata               = "SCHEMATA"
	TableDatabaseOptions        = "DATABASE_OPTIONS"
	TableSpannerStatistics      = "SPANNER_STATISTICS"
	TableTables                 = "TABLES"
	TableColumns                = "COLUMNS"
	TableColumnColumnUsage      = "COLUMN_COLUMN_USAGE"
	TableViews                  = "VIEWS"
	TableIndexes                = "INDEXES"
	TableIndexColumns           = "INDEX_COLUMNS"
	TableColumnOptions          = "COLUMN_OPTIONS"
	TableTableConstraints       = "TABLE_CONSTRAINTS"
	TableCheckConstraints       = "CHECK_CONSTRAINTS"
	TableConstraintTableUsage   = "CONSTRAINT_TABLE_USAGE"
	TableReferentialConstraints = "REFERENTIAL_CONSTRAINTS"
	TableKeyColumnUsage         = "KEY_COLUMN_USAGE"
	TableConstraintColumnUsage  = "CONSTRAINT_COLUMN_USAGE"
)

// Canonical column names. Override maps passed to the row builder must be
// keyed with these constants; lower-cased keys are rejected.
const (
	colCatalogName                = "CATALOG_NAME"
	colSchemaName                 = "SCHEMA_NAME"
	colEffectiveTimestamp         = "EFFECTIVE_TIMESTAMP"
	colOptionName                 = "OPTION_NAME"
	colOptionType                 = "OPTION_TYPE"
	colOptionValue                = "OPTION_VALUE"
	colPackageName                = "PACKAGE_NAME"
	colAllowGC                    = "ALLOW_GC"
	colTableCatalog               = "TABLE_CATALOG"
	colTableSchema                = "TABLE_SCHEMA"
	colTableName                  = "TABLE_NAME"
	colTableType                  = "TABLE_TYPE"
	colParentTableName            = "PARENT_TABLE_NAME"
	colOnDeleteAction             = "ON_DELETE_ACTION"
	colSpannerState               = "SPANNER_STATE"
	colInterleaveType             = "INTERLEAVE_TYPE"
	colRowDeletionPolicyExpr      = "ROW_DELETION_POLICY_EXPRESSION"
	colColumnName                 = "COLUMN_NAME"
	colOrdinalPosition            = "ORDINAL_POSITION"
	colColumnDefault              = "COLUMN_DEFAULT"
	colDataType                   = "DATA_TYPE"
	colCharacterMaximumLength     = "CHARACTER_MAXIMUM_LENGTH"
	colNumericPrecision           = "NUMERIC_PRECISION"
	colNumericPrecisionRadix      = "NUMERIC_PRECISION_RADIX"
	colNumericScale               = "NUMERIC_SCALE"
	colIsNullable                 = "IS_NULLABLE"
	colSpannerType                = "SPANNER_TYPE"
	colIsGenerated                = "IS_GENERATED"
	colGenerationExpression       = "GENERATION_EXPRESSION"
	colIsStored                   = "IS_STORED"
	colDependentColumn            = "DEPENDENT_COLUMN"
	colViewDefinition             = "VIEW_DEFINITION"
	colIndexName                  = "INDEX_NAME"
	colIndexType                  = "INDEX_TYPE"
	colIsUnique                   = "IS_UNIQUE"
	colIsNullFiltered             = "IS_NULL_FILTERED"
	colIndexState                 = "INDEX_STATE"
	colSpannerIsManaged           = "SPANNER_IS_MANAGED"
	colColumnOrdering             = "COLUMN_ORDERING"
	colConstraintCatalog          = "CONSTRAINT_CATALOG"
	colConstraintSchema           = "CONSTRAINT_SCHEMA"
	colConstraintName             = "CONSTRAINT_NAME"
	colConstraintType             = "CONSTRAINT_TYPE"
	colIsDeferrable               = "IS_DEFERRABLE"
	colInitiallyDeferred          = "INITIALLY_DEFERRED"
	colEnforced                   = "ENFORCED"
	colCheckClause                = "CHECK_CLAUSE"
	colUniqueConstraintCatalog    = "UNIQUE_CONSTRAINT_CATALOG"
	colUniqueConstraintSchema     = "UNIQUE_CONSTRAINT_SCHEMA"
	colUniqueConstraintName       = "UNIQUE_CONSTRAINT_NAME"
	colMatchOption                = "MATCH_OPTION"
	colUpdateRule                 = "UPDATE_RULE"
	colDeleteRule                 = "DELETE_RULE"
	colPositionInUniqueConstraint = "POSITION_IN_UNIQUE_CONSTRAINT"
)

var (
	strType   = spansql.Type{Base: spansql.String, Len: spansql.MaxLen}
	int64Type = spansql.Type{Base: spansql.Int64}
	boolType  = spansql.Type{Base: spansql.Bool}
)

// columnMeta describes one column of one introspection table. PGOnly
// columns exist only under the Postgres dialect.
type columnMeta struct {
	Name    string
	Type    spansql.Type
	NotNull bool
	PGOnly  bool
}

// tableMeta fixes the shape and key of one introspection table.
type tableMeta struct {
	Name    string
	Columns []columnMeta
	Key     []string
}

// metaTables is the immutable shape registry for every introspection table,
// in declaration order. The same entries drive both the declared shapes and
// the catalog's rows about its own tables, so the two cannot drift apart.
var metaTables = []tableMeta{
	{
		Name: TableSchemata,
		Columns: []columnMeta{
			{Name: colCatalogName, Type: strType, NotNull: true},
			{Name: colSchemaName, Type: strType, NotNull: true},
			{Name: colEffectiveTimestamp, Type: int64Type},
		},
		Key: []string{colCatalogName, colSchemaName},
	},
	{
		Name: TableDatabaseOptions,
		Columns: []columnMeta{
			{Name: colCatalogName, Type: strType, NotNull: true},
			{Name: colSchemaName, Type: strType, NotNull: true},
			{Name: colOptionName, Type: strType, NotNull: true},
			{Name: colOptionType, Type: strType, NotNull: true},
			{Name: colOptionValue, Type: strType, NotNull: true},
		},
		Key: []string{colCatalogName, colSchemaName, colOptionName},
	},
	{
		Name: TableSpannerStatistics,
		Columns: []columnMeta{
			{Name: colCatalogName, Type: strType, NotNull: true},
			{Name: colSchemaName, Type: strType, NotNull: true},
			{Name: colPackageName, Type: strType, NotNull: true},
			{Name: colAllowGC, Type: boolType, NotNull: true},
		},
		Key: []string{colCatalogName, colSchemaName, colPackageName},
	},
	{
		Name: TableTables,
		Columns: []columnMeta{
			{Name: colTableCatalog, Type: strType, NotNull: true},
			{Name: colTableSchema, Type: strType, NotNull: true},
			{Name: colTableName, Type: strType, NotNull: true},
			{Name: colTableType, Type: strType, NotNull: true},
			{Name: colParentTableName, Type: strType},
			{Name: colOnDeleteAction, Type: strType},
			{Name: colSpannerState, Type: strType},
			{Name: colInterleaveType, Type: strType},
			{Name: colRowDeletionPolicyExpr, Type: strType},
		},
		Key: []string{colTableCatalog, colTableSchema, colTableName},
	},
	{
		Name: TableColumns,
		Columns: []columnMeta{
			{Name: colTableCatalog, Type: strType, NotNull: true},
			{Name: colTableSchema, Type: strType, NotNull: true},
			{Name: colTableName, Type: strType, NotNull: true},
			{Name: colColumnName, Type: strType, NotNull: true},
			{Name: colOrdinalPosition, Type: int64Type, NotNull: true},
			{Name: colColumnDefault, Type: strType},
			{Name: colDataType, Type: strType},
			{Name: colCharacterMaximumLength, Type: int64Type, PGOnly: true},
			{Name: colNumericPrecision, Type: int64Type, PGOnly: true},
			{Name: colNumericPrecisionRadix, Type: int64Type, PGOnly: true},
			{Name: colNumericScale, Type: int64Type, PGOnly: true},
			{Name: colIsNullable, Type: strType, NotNull: true},
			{Name: colSpannerType, Type: strType},
			{Name: colIsGenerated, Type: strType, NotNull: true},
			{Name: colGenerationExpression, Type: strType},
			{Name: colIsStored, Type: strType},
			{Name: colSpannerState, Type: strType},
		},
		Key: []string{colTableCatalog, colTableSchema, colTableName, colColumnName},
	},
	{
		Name: TableColumnColumnUsage,
		Columns: []columnMeta{
			{Name: colTableCatalog, Type: strType, NotNull: true},
			{Name: colTableSchema, Type: strType, NotNull: true},
			{Name: colTableName, Type: strType, NotNull: true},
			{Name: colColumnName, Type: strType, NotNull: true},
			{Name: colDependentColumn, Type: strType, NotNull: true},
		},
		Key: []string{colTableCatalog, colTableSchema, colTableName, colColumnName, colDependentColumn},
	},
	{
		Name: TableViews,
		Columns: []columnMeta{
			{Name: colTableCatalog, Type: strType, NotNull: true},
			{Name: colTableSchema, Type: strType, NotNull: true},
			{Name: colTableName, Type: strType, NotNull: true},
			{Name: colViewDefinition, Type: strType},
		},
		Key: []string{colTableCatalog, colTableSchema, colTableName},
	},
	{
		Name: TableIndexes,
		Columns: []columnMeta{
			{Name: colTableCatalog, Type: strType, NotNull: true},
			{Name: colTableSchema, Type: strType, NotNull: true},
			{Name: colTableName, Type: strType, NotNull: true},
			{Name: colIndexName, Type: strType, NotNull: true},
			{Name: colIndexType, Type: strType, NotNull: true},
			{Name: colParentTableName, Type: strType, NotNull: true},
			{Name: colIsUnique, Type: boolType, NotNull: true},
			{Name: colIsNullFiltered, Type: boolType, NotNull: true},
			{Name: colIndexState, Type: strType},
			{Name: colSpannerIsManaged, Type: boolType, NotNull: true},
		},
		Key: []string{colTableCatalog, colTableSchema, colTableName, colIndexName, colIndexType},
	},
	{
		Name: TableIndexColumns,
		Columns: []columnMeta{
			{Name: colTableCatalog, Type: strType, NotNull: true},
			{Name: colTableSchema, Type: strType, NotNull: true},
			{Name: colTableName, Type: strType, NotNull: true},
			{Name: colIndexName, Type: strType, NotNull: true},
			{Name: colIndexType, Type: strType, NotNull: true},
			{Name: colColumnName, Type: strType, NotNull: true},
			{Name: colOrdinalPosition, Type: int64Type},
			{Name: colColumnOrdering, Type: strType},
			{Name: colIsNullable, Type: strType},
			{Name: colSpannerType, Type: strType},
		},
		Key: []string{colTableCatalog, colTableSchema, colTableName, colIndexName, colIndexType, colColumnName},
	},
	{
		Name: TableColumnOptions,
		Columns: []columnMeta{
			{Name: colTableCatalog, Type: strType, NotNull: true},
			{Name: colTableSchema, Type: strType, NotNull: true},
			{Name: colTableName, Type: strType, NotNull: true},
			{Name: colColumnName, Type: strType, NotNull: true},
			{Name: colOptionName, Type: strType, NotNull: true},
			{Name: colOptionType, Type: strType, NotNull: true},
			{Name: colOptionValue, Type: strType, NotNull: true},
		},
		Key: []string{colTableCatalog, colTableSchema, colTableName, colColumnName, colOptionName},
	},
	{
		Name: TableTableConstraints,
		Columns: []columnMeta{
			{Name: colConstraintCatalog, Type: strType, NotNull: true},
			{Name: colConstraintSchema, Type: strType, NotNull: true},
			{Name: colConstraintName, Type: strType, NotNull: true},
			{Name: colTableCatalog, Type: strType, NotNull: true},
			{Name: colTableSchema, Type: strType, NotNull: true},
			{Name: colTableName, Type: strType, NotNull: true},
			{Name: colConstraintType, Type: strType, NotNull: true},
			{Name: colIsDeferrable, Type: strType, NotNull: true},
			{Name: colInitiallyDeferred, Type: strType, NotNull: true},
			{Name: colEnforced, Type: strType, NotNull: true},
		},
		Key: []string{colConstraintCatalog, colConstraintSchema, colConstraintName},
	},
	{
		Name: TableCheckConstraints,
		Columns: []columnMeta{
			{Name: colConstraintCatalog, Type: strType, NotNull: true},
			{Name: colConstraintSchema, Type: strType, NotNull: true},
			{Name: colConstraintName, Type: strType, NotNull: true},
			{Name: colCheckClause, Type: strType, NotNull: true},
			{Name: colSpannerState, Type: strType, NotNull: true},
		},
		Key: []string{colConstraintCatalog, colConstraintSchema, colConstraintName},
	},
	{
		Name: TableConstraintTableUsage,
		Columns: []columnMeta{
			{Name: colTableCatalog, Type: strType, NotNull: true},
			{Name: colTableSchema, Type: strType, NotNull: true},
			{Name: colTableName, Type: strType, NotNull: true},
			{Name: colConstraintCatalog, Type: strType, NotNull: true},
			{Name: colConstraintSchema, Type: strType, NotNull: true},
			{Name: colConstraintName, Type: strType, NotNull: true},
		},
		Key: []string{colTableCatalog, colTableSchema, colTableName, colConstraintCatalog, colConstraintSchema, colConstraintName},
	},
	{
		Name: TableReferentialConstraints,
		Columns: []columnMeta{
			{Name: colConstraintCatalog, Type: strType, NotNull: true},
			{Name: colConstraintSchema, Type: strType, NotNull: true},
			{Name: colConstraintName, Type: strType, NotNull: true},
			{Name: colUniqueConstraintCatalog, Type: strType, NotNull: true},
			{Name: colUniqueConstraintSchema, Type: strType, NotNull: true},
			{Name: colUniqueConstraintName, Type: strType, NotNull: true},
			{Name: colMatchOption, Type: strType, NotNull: true},
			{Name: colUpdateRule, Type: strType, NotNull: true},
			{Name: colDeleteRule, Type: strType, NotNull: true},
			{Name: colSpannerState, Type: strType, NotNull: true},
		},
		Key: []string{colConstraintCatalog, colConstraintSchema, colConstraintName},
	},
	{
		Name: TableKeyColumnUsage,
		Columns: []columnMeta{
			{Name: colConstraintCatalog, Type: strType, NotNull: true},
			{Name: colConstraintSchema, Type: strType, NotNull: true},
			{Name: colConstraintName, Type: strType, NotNull: true},
			{Name: colTableCatalog, Type: strType, NotNull: true},
			{Name: colTableSchema, Type: strType, NotNull: true},
			{Name: colTableName, Type: strType, NotNull: true},
			{Name: colColumnName, Type: strType, NotNull: true},
			{Name: colOrdinalPosition, Type: int64Type, NotNull: true},
			{Name: colPositionInUniqueConstraint, Type: int64Type},
		},
		Key: []string{colConstraintCatalog, colConstraintSchema, colConstraintName, colColumnName},
	},
	{
		Name: TableConstraintColumnUsage,
		Columns: []columnMeta{
			{Name: colTableCatalog, Type: strType, NotNull: true},
			{Name: colTableSchema, Type: strType, NotNull: true},
			{Name: colTableName, Type: strType, NotNull: true},
			{Name: colColumnName, Type: strType, NotNull: true},
			{Name: colConstraintCatalog, Type: strType, NotNull: true},
			{Name: colConstraintSchema, Type: strType, NotNull: true},
			{Name: colConstraintName, Type: strType, NotNull: true},
		},
		Key: []string{colTableCatalog, colTableSchema, colTableName, colColumnName, colConstraintCatalog, colConstraintSchema, colConstraintName},
	},
}

func metaFor(table string) tableMeta {
	for _, m := range metaTables {
		if m.Name == table {
			return m
		}
	}
	panic(fmt.Sprintf("information schema: no metadata for table %s", table))
}

// keyOrdinal returns the 1-based position of column in table's key, or 0
// when the column is not part of the key.
func keyOrdinal(table, column string) int64 {
	for i, k := range metaFor(table).Key {
		if k == column {
			return int64(i + 1)
		}
	}
	return 0
}
