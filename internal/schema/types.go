// Package schema holds typed row structs for every introspection table and
// decodes a synthesized catalog into them through the Cloud Spanner row
// codec, the same path a live client takes. Field tags use the canonical
// upper-case column names so a dump decodes identically under both dialects.
package schema

// InformationSchema aggregates every introspection table's rows. It is the
// JSON dump format shared by the CLI tools.
type InformationSchema struct {
	Schemata               []*InformationSchemaSchema                `json:"SCHEMATA"`
	DatabaseOptions        []*InformationSchemaDatabaseOption        `json:"DATABASE_OPTIONS"`
	SpannerStatistics      []*InformationSchemaSpannerStatistic      `json:"SPANNER_STATISTICS"`
	Tables                 []*InformationSchemaTable                 `json:"TABLES"`
	Columns                []*InformationSchemaColumn                `json:"COLUMNS"`
	ColumnColumnUsage      []*InformationSchemaColumnColumnUsage     `json:"COLUMN_COLUMN_USAGE"`
	Views                  []*InformationSchemaView                  `json:"VIEWS"`
	Indexes                []*InformationSchemaIndex                 `json:"INDEXES"`
	IndexColumns           []*InformationSchemaIndexColumn           `json:"INDEX_COLUMNS"`
	ColumnOptions          []*InformationSchemaColumnOption          `json:"COLUMN_OPTIONS"`
	TableConstraints       []*InformationSchemaTableConstraint       `json:"TABLE_CONSTRAINTS"`
	CheckConstraints       []*InformationSchemaCheckConstraint       `json:"CHECK_CONSTRAINTS"`
	ConstraintTableUsage   []*InformationSchemaConstraintTableUsage  `json:"CONSTRAINT_TABLE_USAGE"`
	ReferentialConstraints []*InformationSchemaReferentialConstraint `json:"REFERENTIAL_CONSTRAINTS"`
	KeyColumnUsage         []*InformationSchemaKeyColumnUsage        `json:"KEY_COLUMN_USAGE"`
	ConstraintColumnUsage  []*InformationSchemaConstraintColumnUsage `json:"CONSTRAINT_COLUMN_USAGE"`
}

// UserSchema is the schema name user objects are reported under: "" for the
// GoogleSQL dialect, "public" for the Postgres dialect. SCHEMATA always
// lists the user schema first.
func (is *InformationSchema) UserSchema() string {
	if len(is.Schemata) == 0 {
		return ""
	}
	return is.Schemata[0].SchemaName
}

type InformationSchemaSchema struct {
	CatalogName        string `spanner:"CATALOG_NAME" json:"CATALOG_NAME"`
	SchemaName         string `spanner:"SCHEMA_NAME" json:"SCHEMA_NAME"`
	EffectiveTimestamp *int64 `spanner:"EFFECTIVE_TIMESTAMP" json:"EFFECTIVE_TIMESTAMP"`
}

type InformationSchemaDatabaseOption struct {
	CatalogName string `spanner:"CATALOG_NAME" json:"CATALOG_NAME"`
	SchemaName  string `spanner:"SCHEMA_NAME" json:"SCHEMA_NAME"`
	OptionName  string `spanner:"OPTION_NAME" json:"OPTION_NAME"`
	OptionType  string `spanner:"OPTION_TYPE" json:"OPTION_TYPE"`
	OptionValue string `spanner:"OPTION_VALUE" json:"OPTION_VALUE"`
}

type InformationSchemaSpannerStatistic struct {
	CatalogName string `spanner:"CATALOG_NAME" json:"CATALOG_NAME"`
	SchemaName  string `spanner:"SCHEMA_NAME" json:"SCHEMA_NAME"`
	PackageName string `spanner:"PACKAGE_NAME" json:"PACKAGE_NAME"`
	AllowGC     bool   `spanner:"ALLOW_GC" json:"ALLOW_GC"`
}

type InformationSchemaTable struct {
	TableCatalog                string  `spanner:"TABLE_CATALOG" json:"TABLE_CATALOG"`
	TableSchema                 string  `spanner:"TABLE_SCHEMA" json:"TABLE_SCHEMA"`
	TableName                   string  `spanner:"TABLE_NAME" json:"TABLE_NAME"`
	TableType                   string  `spanner:"TABLE_TYPE" json:"TABLE_TYPE"`
	ParentTableName             *string `spanner:"PARENT_TABLE_NAME" json:"PARENT_TABLE_NAME"`
	OnDeleteAction              *string `spanner:"ON_DELETE_ACTION" json:"ON_DELETE_ACTION"`
	SpannerState                *string `spanner:"SPANNER_STATE" json:"SPANNER_STATE"`
	InterleaveType              *string `spanner:"INTERLEAVE_TYPE" json:"INTERLEAVE_TYPE"`
	RowDeletionPolicyExpression *string `spanner:"ROW_DELETION_POLICY_EXPRESSION" json:"ROW_DELETION_POLICY_EXPRESSION"`
}

type InformationSchemaColumn struct {
	TableCatalog           string  `spanner:"TABLE_CATALOG" json:"TABLE_CATALOG"`
	TableSchema            string  `spanner:"TABLE_SCHEMA" json:"TABLE_SCHEMA"`
	TableName              string  `spanner:"TABLE_NAME" json:"TABLE_NAME"`
	ColumnName             string  `spanner:"COLUMN_NAME" json:"COLUMN_NAME"`
	OrdinalPosition        int64   `spanner:"ORDINAL_POSITION" json:"ORDINAL_POSITION"`
	ColumnDefault          *string `spanner:"COLUMN_DEFAULT" json:"COLUMN_DEFAULT"`
	DataType               *string `spanner:"DATA_TYPE" json:"DATA_TYPE"`
	CharacterMaximumLength *int64  `spanner:"CHARACTER_MAXIMUM_LENGTH" json:"CHARACTER_MAXIMUM_LENGTH,omitempty"`
	NumericPrecision       *int64  `spanner:"NUMERIC_PRECISION" json:"NUMERIC_PRECISION,omitempty"`
	NumericPrecisionRadix  *int64  `spanner:"NUMERIC_PRECISION_RADIX" json:"NUMERIC_PRECISION_RADIX,omitempty"`
	NumericScale           *int64  `spanner:"NUMERIC_SCALE" json:"NUMERIC_SCALE,omitempty"`
	IsNullable             string  `spanner:"IS_NULLABLE" json:"IS_NULLABLE"`
	SpannerType            *string `spanner:"SPANNER_TYPE" json:"SPANNER_TYPE"`
	IsGenerated            string  `spanner:"IS_GENERATED" json:"IS_GENERATED"`
	GenerationExpression   *string `spanner:"GENERATION_EXPRESSION" json:"GENERATION_EXPRESSION"`
	IsStored               *string `spanner:"IS_STORED" json:"IS_STORED"`
	SpannerState           *string `spanner:"SPANNER_STATE" json:"SPANNER_STATE"`
}

type InformationSchemaColumnColumnUsage struct {
	TableCatalog    string `spanner:"TABLE_CATALOG" json:"TABLE_CATALOG"`
	TableSchema     string `spanner:"TABLE_SCHEMA" json:"TABLE_SCHEMA"`
	TableName       string `spanner:"TABLE_NAME" json:"TABLE_NAME"`
	ColumnName      string `spanner:"COLUMN_NAME" json:"COLUMN_NAME"`
	DependentColumn string `spanner:"DEPENDENT_COLUMN" json:"DEPENDENT_COLUMN"`
}

type InformationSchemaView struct {
	TableCatalog   string  `spanner:"TABLE_CATALOG" json:"TABLE_CATALOG"`
	TableSchema    string  `spanner:"TABLE_SCHEMA" json:"TABLE_SCHEMA"`
	TableName      string  `spanner:"TABLE_NAME" json:"TABLE_NAME"`
	ViewDefinition *string `spanner:"VIEW_DEFINITION" json:"VIEW_DEFINITION"`
}

type InformationSchemaIndex struct {
	TableCatalog     string  `spanner:"TABLE_CATALOG" json:"TABLE_CATALOG"`
	TableSchema      string  `spanner:"TABLE_SCHEMA" json:"TABLE_SCHEMA"`
	TableName        string  `spanner:"TABLE_NAME" json:"TABLE_NAME"`
	IndexName        string  `spanner:"INDEX_NAME" json:"INDEX_NAME"`
	IndexType        string  `spanner:"INDEX_TYPE" json:"INDEX_TYPE"`
	ParentTableName  string  `spanner:"PARENT_TABLE_NAME" json:"PARENT_TABLE_NAME"`
	IsUnique         bool    `spanner:"IS_UNIQUE" json:"IS_UNIQUE"`
	IsNullFiltered   bool    `spanner:"IS_NULL_FILTERED" json:"IS_NULL_FILTERED"`
	IndexState       *string `spanner:"INDEX_STATE" json:"INDEX_STATE"`
	SpannerIsManaged bool    `spanner:"SPANNER_IS_MANAGED" json:"SPANNER_IS_MANAGED"`
}

type InformationSchemaIndexColumn struct {
	TableCatalog    string  `spanner:"TABLE_CATALOG" json:"TABLE_CATALOG"`
	TableSchema     string  `spanner:"TABLE_SCHEMA" json:"TABLE_SCHEMA"`
	TableName       string  `spanner:"TABLE_NAME" json:"TABLE_NAME"`
	IndexName       string  `spanner:"INDEX_NAME" json:"INDEX_NAME"`
	IndexType       string  `spanner:"INDEX_TYPE" json:"INDEX_TYPE"`
	ColumnName      string  `spanner:"COLUMN_NAME" json:"COLUMN_NAME"`
	OrdinalPosition *int64  `spanner:"ORDINAL_POSITION" json:"ORDINAL_POSITION"`
	ColumnOrdering  *string `spanner:"COLUMN_ORDERING" json:"COLUMN_ORDERING"`
	IsNullable      *string `spanner:"IS_NULLABLE" json:"IS_NULLABLE"`
	SpannerType     *string `spanner:"SPANNER_TYPE" json:"SPANNER_TYPE"`
}

type InformationSchemaColumnOption struct {
	TableCatalog string `spanner:"TABLE_CATALOG" json:"TABLE_CATALOG"`
	TableSchema  string `spanner:"TABLE_SCHEMA" json:"TABLE_SCHEMA"`
	TableName    string `spanner:"TABLE_NAME" json:"TABLE_NAME"`
	ColumnName   string `spanner:"COLUMN_NAME" json:"COLUMN_NAME"`
	OptionName   string `spanner:"OPTION_NAME" json:"OPTION_NAME"`
	OptionType   string `spanner:"OPTION_TYPE" json:"OPTION_TYPE"`
	OptionValue  string `spanner:"OPTION_VALUE" json:"OPTION_VALUE"`
}

type InformationSchemaTableConstraint struct {
	ConstraintCatalog string `spanner:"CONSTRAINT_CATALOG" json:"CONSTRAINT_CATALOG"`
	ConstraintSchema  string `spanner:"CONSTRAINT_SCHEMA" json:"CONSTRAINT_SCHEMA"`
	ConstraintName    string `spanner:"CONSTRAINT_NAME" json:"CONSTRAINT_NAME"`
	TableCatalog      string `spanner:"TABLE_CATALOG" json:"TABLE_CATALOG"`
	TableSchema       string `spanner:"TABLE_SCHEMA" json:"TABLE_SCHEMA"`
	TableName         string `spanner:"TABLE_NAME" json:"TABLE_NAME"`
	ConstraintType    string `spanner:"CONSTRAINT_TYPE" json:"CONSTRAINT_TYPE"`
	IsDeferrable      string `spanner:"IS_DEFERRABLE" json:"IS_DEFERRABLE"`
	InitiallyDeferred string `spanner:"INITIALLY_DEFERRED" json:"INITIALLY_DEFERRED"`
	Enforced          string `spanner:"ENFORCED" json:"ENFORCED"`
}

type InformationSchemaCheckConstraint struct {
	ConstraintCatalog string `spanner:"CONSTRAINT_CATALOG" json:"CONSTRAINT_CATALOG"`
	ConstraintSchema  string `spanner:"CONSTRAINT_SCHEMA" json:"CONSTRAINT_SCHEMA"`
	ConstraintName    string `spanner:"CONSTRAINT_NAME" json:"CONSTRAINT_NAME"`
	CheckClause       string `spanner:"CHECK_CLAUSE" json:"CHECK_CLAUSE"`
	SpannerState      string `spanner:"SPANNER_STATE" json:"SPANNER_STATE"`
}

type InformationSchemaConstraintTableUsage struct {
	TableCatalog      string `spanner:"TABLE_CATALOG" json:"TABLE_CATALOG"`
	TableSchema       string `spanner:"TABLE_SCHEMA" json:"TABLE_SCHEMA"`
	TableName         string `spanner:"TABLE_NAME" json:"TABLE_NAME"`
	ConstraintCatalog string `spanner:"CONSTRAINT_CATALOG" json:"CONSTRAINT_CATALOG"`
	ConstraintSchema  string `spanner:"CONSTRAINT_SCHEMA" json:"CONSTRAINT_SCHEMA"`
	ConstraintName    string `spanner:"CONSTRAINT_NAME" json:"CONSTRAINT_NAME"`
}

type InformationSchemaReferentialConstraint struct {
	ConstraintCatalog       string `spanner:"CONSTRAINT_CATALOG" json:"CONSTRAINT_CATALOG"`
	ConstraintSchema        string `spanner:"CONSTRAINT_SCHEMA" json:"CONSTRAINT_SCHEMA"`
	ConstraintName          string `spanner:"CONSTRAINT_NAME" json:"CONSTRAINT_NAME"`
	UniqueConstraintCatalog string `spanner:"UNIQUE_CONSTRAINT_CATALOG" json:"UNIQUE_CONSTRAINT_CATALOG"`
	UniqueConstraintSchema  string `spanner:"UNIQUE_CONSTRAINT_SCHEMA" json:"UNIQUE_CONSTRAINT_SCHEMA"`
	UniqueConstraintName    string `spanner:"UNIQUE_CONSTRAINT_NAME" json:"UNIQUE_CONSTRAINT_NAME"`
	MatchOption             string `spanner:"MATCH_OPTION" json:"MATCH_OPTION"`
	UpdateRule              string `spanner:"UPDATE_RULE" json:"UPDATE_RULE"`
	DeleteRule              string `spanner:"DELETE_RULE" json:"DELETE_RULE"`
	SpannerState            string `spanner:"SPANNER_STATE" json:"SPANNER_STATE"`
}

type InformationSchemaKeyColumnUsage struct {
	ConstraintCatalog          string `spanner:"CONSTRAINT_CATALOG" json:"CONSTRAINT_CATALOG"`
	ConstraintSchema           string `spanner:"CONSTRAINT_SCHEMA" json:"CONSTRAINT_SCHEMA"`
	ConstraintName             string `spanner:"CONSTRAINT_NAME" json:"CONSTRAINT_NAME"`
	TableCatalog               string `spanner:"TABLE_CATALOG" json:"TABLE_CATALOG"`
	TableSchema                string `spanner:"TABLE_SCHEMA" json:"TABLE_SCHEMA"`
	TableName                  string `spanner:"TABLE_NAME" json:"TABLE_NAME"`
	ColumnName                 string `spanner:"COLUMN_NAME" json:"COLUMN_NAME"`
	OrdinalPosition            int64  `spanner:"ORDINAL_POSITION" json:"ORDINAL_POSITION"`
	PositionInUniqueConstraint *int64 `spanner:"POSITION_IN_UNIQUE_CONSTRAINT" json:"POSITION_IN_UNIQUE_CONSTRAINT"`
}

type InformationSchemaConstraintColumnUsage struct {
	TableCatalog      string `spanner:"TABLE_CATALOG" json:"TABLE_CATALOG"`
	TableSchema       string `spanner:"TABLE_SCHEMA" json:"TABLE_SCHEMA"`
	TableName         string `spanner:"TABLE_NAME" json:"TABLE_NAME"`
	ColumnName        string `spanner:"COLUMN_NAME" json:"COLUMN_NAME"`
	ConstraintCatalog string `spanner:"CONSTRAINT_CATALOG" json:"CONSTRAINT_CATALOG"`
	ConstraintSchema  string `spanner:"CONSTRAINT_SCHEMA" json:"CONSTRAINT_SCHEMA"`
	ConstraintName    string `spanner:"CONSTRAINT_NAME" json:"CONSTRAINT_NAME"`
}
