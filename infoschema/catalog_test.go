package infoschema

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	"cloud.google.com/go/spanner/spansql"
	"github.com/google/go-cmp/cmp"
	"github.com/samber/lo"

	"github.com/spanemu/spannerschema/schema"
)

const testDDL = `
CREATE TABLE Singers (
  SingerId INT64 NOT NULL,
  FirstName STRING(1024),
  LastName STRING(1024) NOT NULL,
  FullName STRING(2048) AS (CONCAT(FirstName, " ", LastName)) STORED
) PRIMARY KEY (SingerId);

CREATE TABLE Albums (
  SingerId INT64 NOT NULL,
  AlbumId INT64 NOT NULL,
  AlbumTitle STRING(MAX),
  MarketingBudget INT64,
  CONSTRAINT CK_MarketingBudget CHECK (MarketingBudget > 0)
) PRIMARY KEY (SingerId, AlbumId),
  INTERLEAVE IN PARENT Singers ON DELETE CASCADE;

CREATE INDEX AlbumsByAlbumTitle ON Albums(AlbumTitle DESC) STORING (MarketingBudget);

CREATE TABLE Concerts (
  ConcertId INT64 NOT NULL,
  VenueId INT64 NOT NULL,
  SingerId INT64 NOT NULL,
  ConcertDate TIMESTAMP NOT NULL OPTIONS (allow_commit_timestamp = true),
  Notes STRING(100),
  CONSTRAINT FK_ConcertSinger FOREIGN KEY (SingerId) REFERENCES Singers (SingerId)
) PRIMARY KEY (ConcertId),
  ROW DELETION POLICY (OLDER_THAN(ConcertDate, INTERVAL 365 DAY));

CREATE UNIQUE INDEX ConcertsByVenueId ON Concerts(VenueId);

CREATE TABLE VenueBookings (
  BookingId INT64 NOT NULL,
  VenueId INT64 NOT NULL,
  CONSTRAINT FK_BookingVenue FOREIGN KEY (VenueId) REFERENCES Concerts (VenueId)
) PRIMARY KEY (BookingId);

CREATE VIEW SingerNames SQL SECURITY INVOKER AS SELECT SingerId, FullName AS Name FROM Singers;
`

func buildTestCatalog(t *testing.T, dialect databasepb.DatabaseDialect) *Catalog {
	t.Helper()
	s := lo.Must(schema.Parse("test.sql", testDDL))
	return New(s, dialect)
}

// catalogTable resolves a table by canonical name regardless of dialect.
func catalogTable(t *testing.T, c *Catalog, canonical string) *Table {
	t.Helper()
	for _, tb := range c.Tables() {
		if tb.Canonical == canonical {
			return tb
		}
	}
	t.Fatalf("catalog has no table %s", canonical)
	return nil
}

// rowMaps converts positional rows to canonical-name-keyed maps for
// assertions.
func rowMaps(tb *Table) []map[string]any {
	var out []map[string]any
	for _, r := range tb.Rows() {
		m := make(map[string]any, len(tb.Columns))
		for i, col := range tb.Columns {
			m[col.Canonical] = r[i]
		}
		out = append(out, m)
	}
	return out
}

// findRows returns the rows whose values match every key of match.
func findRows(rows []map[string]any, match map[string]any) []map[string]any {
	return lo.Filter(rows, func(row map[string]any, _ int) bool {
		for k, v := range match {
			if row[k] != v {
				return false
			}
		}
		return true
	})
}

func findOneRow(t *testing.T, rows []map[string]any, match map[string]any) map[string]any {
	t.Helper()
	got := findRows(rows, match)
	if len(got) != 1 {
		t.Fatalf("want exactly one row matching %v, got %d", match, len(got))
	}
	return got[0]
}

func TestCatalogTables(t *testing.T) {
	c := buildTestCatalog(t, databasepb.DatabaseDialect_GOOGLE_STANDARD_SQL)
	rows := rowMaps(catalogTable(t, c, TableTables))

	t.Run("base tables", func(t *testing.T) {
		base := findRows(rows, map[string]any{colTableType: "BASE TABLE"})
		got := lo.Map(base, func(r map[string]any, _ int) string { return r[colTableName].(string) })
		if diff := cmp.Diff([]string{"Singers", "Albums", "Concerts", "VenueBookings"}, got); diff != "" {
			t.Errorf("base table names mismatch (-want +got):\n%s", diff)
		}
		for _, r := range base {
			if r[colSpannerState] != "COMMITTED" {
				t.Errorf("%s: SPANNER_STATE = %v, want COMMITTED", r[colTableName], r[colSpannerState])
			}
		}
	})

	t.Run("interleaving", func(t *testing.T) {
		albums := findOneRow(t, rows, map[string]any{colTableName: "Albums"})
		if albums[colParentTableName] != "Singers" {
			t.Errorf("PARENT_TABLE_NAME = %v, want Singers", albums[colParentTableName])
		}
		if albums[colOnDeleteAction] != "CASCADE" {
			t.Errorf("ON_DELETE_ACTION = %v, want CASCADE", albums[colOnDeleteAction])
		}
		if albums[colInterleaveType] != "IN PARENT" {
			t.Errorf("INTERLEAVE_TYPE = %v, want IN PARENT", albums[colInterleaveType])
		}
		singers := findOneRow(t, rows, map[string]any{colTableName: "Singers"})
		if singers[colParentTableName] != nullString {
			t.Errorf("Singers PARENT_TABLE_NAME = %v, want null", singers[colParentTableName])
		}
		// Every base table reports the only supported interleave form.
		if singers[colInterleaveType] != "IN PARENT" {
			t.Errorf("Singers INTERLEAVE_TYPE = %v, want IN PARENT", singers[colInterleaveType])
		}
	})

	t.Run("row deletion policy", func(t *testing.T) {
		concerts := findOneRow(t, rows, map[string]any{colTableName: "Concerts"})
		want := "OLDER_THAN(ConcertDate, INTERVAL 365 DAY)"
		if concerts[colRowDeletionPolicyExpr] != want {
			t.Errorf("ROW_DELETION_POLICY_EXPRESSION = %v, want %v", concerts[colRowDeletionPolicyExpr], want)
		}
	})

	t.Run("view row", func(t *testing.T) {
		v := findOneRow(t, rows, map[string]any{colTableName: "SingerNames"})
		if v[colTableType] != "VIEW" {
			t.Errorf("TABLE_TYPE = %v, want VIEW", v[colTableType])
		}
		if v[colSpannerState] != "COMMITTED" {
			t.Errorf("SPANNER_STATE = %v, want COMMITTED", v[colSpannerState])
		}
	})

	t.Run("self rows", func(t *testing.T) {
		self := findRows(rows, map[string]any{colTableSchema: InformationSchema})
		if len(self) != len(metaTables) {
			t.Fatalf("self-describing rows = %d, want %d", len(self), len(metaTables))
		}
		for _, r := range self {
			if r[colTableType] != "VIEW" {
				t.Errorf("%s: TABLE_TYPE = %v, want VIEW", r[colTableName], r[colTableType])
			}
			if r[colSpannerState] != nullString {
				t.Errorf("%s: SPANNER_STATE = %v, want null", r[colTableName], r[colSpannerState])
			}
		}
	})
}

func TestCatalogColumns(t *testing.T) {
	c := buildTestCatalog(t, databasepb.DatabaseDialect_GOOGLE_STANDARD_SQL)
	rows := rowMaps(catalogTable(t, c, TableColumns))

	t.Run("ordinals follow declaration order", func(t *testing.T) {
		for _, tc := range []struct {
			table string
			want  []string
		}{
			{"Singers", []string{"SingerId", "FirstName", "LastName", "FullName"}},
			{"Albums", []string{"SingerId", "AlbumId", "AlbumTitle", "MarketingBudget"}},
			{"Concerts", []string{"ConcertId", "VenueId", "SingerId", "ConcertDate", "Notes"}},
			{"VenueBookings", []string{"BookingId", "VenueId"}},
		} {
			for i, col := range tc.want {
				findOneRow(t, rows, map[string]any{
					colTableName:       tc.table,
					colColumnName:      col,
					colOrdinalPosition: int64(i + 1),
				})
			}
			if got := len(findRows(rows, map[string]any{colTableSchema: "", colTableName: tc.table})); got != len(tc.want) {
				t.Errorf("%s: column rows = %d, want %d", tc.table, got, len(tc.want))
			}
		}
	})

	t.Run("nullability and types", func(t *testing.T) {
		first := findOneRow(t, rows, map[string]any{colTableName: "Singers", colColumnName: "FirstName"})
		if first[colIsNullable] != "YES" {
			t.Errorf("FirstName IS_NULLABLE = %v, want YES", first[colIsNullable])
		}
		if first[colSpannerType] != "STRING(1024)" {
			t.Errorf("FirstName SPANNER_TYPE = %v, want STRING(1024)", first[colSpannerType])
		}
		last := findOneRow(t, rows, map[string]any{colTableName: "Singers", colColumnName: "LastName"})
		if last[colIsNullable] != "NO" {
			t.Errorf("LastName IS_NULLABLE = %v, want NO", last[colIsNullable])
		}
	})

	t.Run("generated column", func(t *testing.T) {
		full := findOneRow(t, rows, map[string]any{colTableName: "Singers", colColumnName: "FullName"})
		if full[colIsGenerated] != "ALWAYS" {
			t.Errorf("IS_GENERATED = %v, want ALWAYS", full[colIsGenerated])
		}
		if full[colIsStored] != "YES" {
			t.Errorf("IS_STORED = %v, want YES", full[colIsStored])
		}
		expr, ok := full[colGenerationExpression].(string)
		if !ok || !strings.Contains(expr, "CONCAT") {
			t.Errorf("GENERATION_EXPRESSION = %v, want a CONCAT expression", full[colGenerationExpression])
		}
	})

	t.Run("view columns", func(t *testing.T) {
		id := findOneRow(t, rows, map[string]any{colTableName: "SingerNames", colColumnName: "SingerId"})
		if id[colOrdinalPosition] != int64(1) {
			t.Errorf("SingerId ordinal = %v, want 1", id[colOrdinalPosition])
		}
		name := findOneRow(t, rows, map[string]any{colTableName: "SingerNames", colColumnName: "Name"})
		if name[colIsNullable] != "YES" {
			t.Errorf("Name IS_NULLABLE = %v, want YES", name[colIsNullable])
		}
		if name[colSpannerType] != "STRING(MAX)" {
			t.Errorf("Name SPANNER_TYPE = %v, want STRING(MAX)", name[colSpannerType])
		}
	})

	t.Run("self columns match declared shapes", func(t *testing.T) {
		for _, own := range c.Tables() {
			selfRows := findRows(rows, map[string]any{colTableSchema: InformationSchema, colTableName: own.Name})
			if len(selfRows) != len(own.Columns) {
				t.Errorf("%s: self column rows = %d, want %d", own.Name, len(selfRows), len(own.Columns))
			}
		}
	})
}

func TestCatalogNotNullConstraints(t *testing.T) {
	c := buildTestCatalog(t, databasepb.DatabaseDialect_GOOGLE_STANDARD_SQL)
	checks := rowMaps(catalogTable(t, c, TableCheckConstraints))
	constraints := rowMaps(catalogTable(t, c, TableTableConstraints))
	usage := rowMaps(catalogTable(t, c, TableConstraintColumnUsage))

	// Every non-nullable column appears exactly once in all three tables.
	for _, tc := range []struct{ table, column string }{
		{"Singers", "SingerId"},
		{"Singers", "LastName"},
		{"Albums", "SingerId"},
		{"Albums", "AlbumId"},
		{"Concerts", "ConcertDate"},
		{"VenueBookings", "BookingId"},
	} {
		name := fmt.Sprintf("CK_IS_NOT_NULL_%s_%s", tc.table, tc.column)
		ck := findOneRow(t, checks, map[string]any{colConstraintName: name})
		if want := tc.column + " IS NOT NULL"; ck[colCheckClause] != want {
			t.Errorf("%s: CHECK_CLAUSE = %v, want %v", name, ck[colCheckClause], want)
		}
		tcRow := findOneRow(t, constraints, map[string]any{colConstraintName: name})
		if tcRow[colConstraintType] != "CHECK" {
			t.Errorf("%s: CONSTRAINT_TYPE = %v, want CHECK", name, tcRow[colConstraintType])
		}
		if tcRow[colTableName] != tc.table {
			t.Errorf("%s: TABLE_NAME = %v, want %v", name, tcRow[colTableName], tc.table)
		}
		cu := findOneRow(t, usage, map[string]any{colConstraintName: name})
		if cu[colColumnName] != tc.column {
			t.Errorf("%s: COLUMN_NAME = %v, want %v", name, cu[colColumnName], tc.column)
		}
	}

	t.Run("declared check keeps its expression", func(t *testing.T) {
		ck := findOneRow(t, checks, map[string]any{colConstraintName: "CK_MarketingBudget"})
		if ck[colCheckClause] != "MarketingBudget > 0" {
			t.Errorf("CHECK_CLAUSE = %v, want MarketingBudget > 0", ck[colCheckClause])
		}
		cu := findOneRow(t, usage, map[string]any{colConstraintName: "CK_MarketingBudget"})
		if cu[colColumnName] != "MarketingBudget" {
			t.Errorf("COLUMN_NAME = %v, want MarketingBudget", cu[colColumnName])
		}
	})
}

func TestCatalogForeignKeys(t *testing.T) {
	c := buildTestCatalog(t, databasepb.DatabaseDialect_GOOGLE_STANDARD_SQL)
	referential := rowMaps(catalogTable(t, c, TableReferentialConstraints))
	constraints := rowMaps(catalogTable(t, c, TableTableConstraints))
	keyUsage := rowMaps(catalogTable(t, c, TableKeyColumnUsage))
	tableUsage := rowMaps(catalogTable(t, c, TableConstraintTableUsage))

	t.Run("primary-key-backed foreign key", func(t *testing.T) {
		r := findOneRow(t, referential, map[string]any{colConstraintName: "FK_ConcertSinger"})
		if r[colUniqueConstraintName] != "PK_Singers" {
			t.Errorf("UNIQUE_CONSTRAINT_NAME = %v, want PK_Singers", r[colUniqueConstraintName])
		}
		for col, want := range map[string]string{
			colMatchOption: "SIMPLE",
			colUpdateRule:  "NO ACTION",
			colDeleteRule:  "NO ACTION",
		} {
			if r[col] != want {
				t.Errorf("%s = %v, want %v", col, r[col], want)
			}
		}
	})

	t.Run("index-backed foreign key", func(t *testing.T) {
		r := findOneRow(t, referential, map[string]any{colConstraintName: "FK_BookingVenue"})
		if r[colUniqueConstraintName] != "ConcertsByVenueId" {
			t.Errorf("UNIQUE_CONSTRAINT_NAME = %v, want ConcertsByVenueId", r[colUniqueConstraintName])
		}
		// The backing index surfaces as a UNIQUE constraint on the
		// referenced table.
		u := findOneRow(t, constraints, map[string]any{colConstraintName: "ConcertsByVenueId"})
		if u[colConstraintType] != "UNIQUE" {
			t.Errorf("CONSTRAINT_TYPE = %v, want UNIQUE", u[colConstraintType])
		}
		if u[colTableName] != "Concerts" {
			t.Errorf("TABLE_NAME = %v, want Concerts", u[colTableName])
		}
	})

	t.Run("key column usage pairs element-wise", func(t *testing.T) {
		fk := findOneRow(t, keyUsage, map[string]any{colConstraintName: "FK_BookingVenue"})
		want := map[string]any{
			colTableName:                  "VenueBookings",
			colColumnName:                 "VenueId",
			colOrdinalPosition:            int64(1),
			colPositionInUniqueConstraint: int64(1),
		}
		for k, v := range want {
			if fk[k] != v {
				t.Errorf("FK_BookingVenue %s = %v, want %v", k, fk[k], v)
			}
		}
		idx := findOneRow(t, keyUsage, map[string]any{colConstraintName: "ConcertsByVenueId"})
		if idx[colTableName] != "Concerts" || idx[colOrdinalPosition] != int64(1) {
			t.Errorf("backing index row = %v, want Concerts ordinal 1", idx)
		}
		if idx[colPositionInUniqueConstraint] != nullInt64 {
			t.Errorf("backing index POSITION_IN_UNIQUE_CONSTRAINT = %v, want null", idx[colPositionInUniqueConstraint])
		}
	})

	t.Run("constraint table usage lands on referenced table", func(t *testing.T) {
		r := findOneRow(t, tableUsage, map[string]any{colConstraintName: "FK_ConcertSinger"})
		if r[colTableName] != "Singers" {
			t.Errorf("TABLE_NAME = %v, want Singers", r[colTableName])
		}
	})
}

func TestCatalogPrimaryKeyOrdering(t *testing.T) {
	c := buildTestCatalog(t, databasepb.DatabaseDialect_GOOGLE_STANDARD_SQL)
	keyUsage := rowMaps(catalogTable(t, c, TableKeyColumnUsage))

	rows := findRows(keyUsage, map[string]any{colConstraintName: "PK_Albums"})
	type keyRow struct {
		Column  string
		Ordinal int64
	}
	got := lo.Map(rows, func(r map[string]any, _ int) keyRow {
		return keyRow{Column: r[colColumnName].(string), Ordinal: r[colOrdinalPosition].(int64)}
	})
	want := []keyRow{{"SingerId", 1}, {"AlbumId", 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PK_Albums key rows mismatch (-want +got):\n%s", diff)
	}
	for _, r := range rows {
		if r[colPositionInUniqueConstraint] != nullInt64 {
			t.Errorf("PK row POSITION_IN_UNIQUE_CONSTRAINT = %v, want null", r[colPositionInUniqueConstraint])
		}
	}
}

func TestCatalogIndexes(t *testing.T) {
	c := buildTestCatalog(t, databasepb.DatabaseDialect_GOOGLE_STANDARD_SQL)
	indexes := rowMaps(catalogTable(t, c, TableIndexes))
	indexColumns := rowMaps(catalogTable(t, c, TableIndexColumns))

	t.Run("secondary index row", func(t *testing.T) {
		r := findOneRow(t, indexes, map[string]any{colIndexName: "AlbumsByAlbumTitle"})
		if r[colIndexType] != "INDEX" || r[colIndexState] != "READ_WRITE" {
			t.Errorf("index row = %v, want INDEX/READ_WRITE", r)
		}
		if r[colIsUnique] != false || r[colSpannerIsManaged] != false {
			t.Errorf("index flags = %v/%v, want false/false", r[colIsUnique], r[colSpannerIsManaged])
		}
	})

	t.Run("primary key pseudo index per table", func(t *testing.T) {
		for _, table := range []string{"Singers", "Albums", "Concerts", "VenueBookings"} {
			r := findOneRow(t, indexes, map[string]any{colTableName: table, colIndexType: "PRIMARY_KEY"})
			if r[colIsUnique] != true {
				t.Errorf("%s PRIMARY_KEY IS_UNIQUE = %v, want true", table, r[colIsUnique])
			}
			if r[colIndexState] != nullString {
				t.Errorf("%s PRIMARY_KEY INDEX_STATE = %v, want null", table, r[colIndexState])
			}
		}
	})

	t.Run("key then storing columns", func(t *testing.T) {
		key := findOneRow(t, indexColumns, map[string]any{colIndexName: "AlbumsByAlbumTitle", colColumnName: "AlbumTitle"})
		if key[colOrdinalPosition] != int64(1) || key[colColumnOrdering] != "DESC" {
			t.Errorf("key column = %v, want ordinal 1 DESC", key)
		}
		stored := findOneRow(t, indexColumns, map[string]any{colIndexName: "AlbumsByAlbumTitle", colColumnName: "MarketingBudget"})
		if stored[colOrdinalPosition] != nullInt64 || stored[colColumnOrdering] != nullString {
			t.Errorf("storing column = %v, want null ordinal and ordering", stored)
		}
	})

	t.Run("self primary keys from registry", func(t *testing.T) {
		rows := findRows(indexColumns, map[string]any{colTableSchema: InformationSchema, colTableName: TableColumns})
		got := lo.Map(rows, func(r map[string]any, _ int) string { return r[colColumnName].(string) })
		want := []string{colTableCatalog, colTableSchema, colTableName, colColumnName}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("COLUMNS self key mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestCatalogColumnOptionsAndUsage(t *testing.T) {
	c := buildTestCatalog(t, databasepb.DatabaseDialect_GOOGLE_STANDARD_SQL)

	t.Run("commit timestamp option", func(t *testing.T) {
		rows := rowMaps(catalogTable(t, c, TableColumnOptions))
		if len(rows) != 1 {
			t.Fatalf("COLUMN_OPTIONS rows = %d, want 1", len(rows))
		}
		want := map[string]any{
			colTableName:   "Concerts",
			colColumnName:  "ConcertDate",
			colOptionName:  "allow_commit_timestamp",
			colOptionType:  "BOOL",
			colOptionValue: "TRUE",
		}
		for k, v := range want {
			if rows[0][k] != v {
				t.Errorf("%s = %v, want %v", k, rows[0][k], v)
			}
		}
	})

	t.Run("generated column dependencies", func(t *testing.T) {
		rows := rowMaps(catalogTable(t, c, TableColumnColumnUsage))
		got := lo.Map(rows, func(r map[string]any, _ int) string {
			return fmt.Sprintf("%s<-%s", r[colDependentColumn], r[colColumnName])
		})
		want := []string{"FullName<-FirstName", "FullName<-LastName"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("COLUMN_COLUMN_USAGE mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("views table", func(t *testing.T) {
		rows := rowMaps(catalogTable(t, c, TableViews))
		v := findOneRow(t, rows, map[string]any{colTableName: "SingerNames"})
		def, ok := v[colViewDefinition].(string)
		if !ok || !strings.Contains(def, "FROM Singers") {
			t.Errorf("VIEW_DEFINITION = %v, want the view query", v[colViewDefinition])
		}
	})
}

func TestCatalogSchemataAndOptions(t *testing.T) {
	for _, tc := range []struct {
		desc          string
		dialect       databasepb.DatabaseDialect
		wantSchemas   []string
		wantType      string
		wantValue     string
		wantInfoTable string
	}{
		{
			desc:          "googlesql",
			dialect:       databasepb.DatabaseDialect_GOOGLE_STANDARD_SQL,
			wantSchemas:   []string{"", "INFORMATION_SCHEMA"},
			wantType:      "STRING",
			wantValue:     "GOOGLE_STANDARD_SQL",
			wantInfoTable: "SCHEMATA",
		},
		{
			desc:          "postgresql",
			dialect:       databasepb.DatabaseDialect_POSTGRESQL,
			wantSchemas:   []string{"public", "information_schema"},
			wantType:      "character varying",
			wantValue:     "POSTGRESQL",
			wantInfoTable: "schemata",
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			c := buildTestCatalog(t, tc.dialect)

			schemata := catalogTable(t, c, TableSchemata)
			if schemata.Name != tc.wantInfoTable {
				t.Errorf("dialect-cased name = %s, want %s", schemata.Name, tc.wantInfoTable)
			}
			got := lo.Map(rowMaps(schemata), func(r map[string]any, _ int) string { return r[colSchemaName].(string) })
			if diff := cmp.Diff(tc.wantSchemas, got); diff != "" {
				t.Errorf("SCHEMATA mismatch (-want +got):\n%s", diff)
			}

			options := rowMaps(catalogTable(t, c, TableDatabaseOptions))
			opt := findOneRow(t, options, map[string]any{colOptionName: "database_dialect"})
			if opt[colOptionType] != tc.wantType {
				t.Errorf("OPTION_TYPE = %v, want %v", opt[colOptionType], tc.wantType)
			}
			if opt[colOptionValue] != tc.wantValue {
				t.Errorf("OPTION_VALUE = %v, want %v", opt[colOptionValue], tc.wantValue)
			}

			stats := catalogTable(t, c, TableSpannerStatistics)
			if len(stats.Rows()) != 0 {
				t.Errorf("SPANNER_STATISTICS rows = %d, want 0", len(stats.Rows()))
			}
		})
	}
}

func TestCatalogPostgresDialect(t *testing.T) {
	c := buildTestCatalog(t, databasepb.DatabaseDialect_POSTGRESQL)

	t.Run("lower-cased identifiers", func(t *testing.T) {
		if _, ok := c.Table("tables"); !ok {
			t.Error("table \"tables\" not addressable under the postgres dialect")
		}
		if _, ok := c.Table("TABLES"); ok {
			t.Error("upper-cased name resolvable under the postgres dialect")
		}
		if got := c.InfoSchemaName(); got != "information_schema" {
			t.Errorf("InfoSchemaName() = %s, want information_schema", got)
		}
	})

	t.Run("user schema is public", func(t *testing.T) {
		rows := rowMaps(catalogTable(t, c, TableTables))
		base := findRows(rows, map[string]any{colTableType: "BASE TABLE"})
		for _, r := range base {
			if r[colTableSchema] != "public" {
				t.Errorf("%s: TABLE_SCHEMA = %v, want public", r[colTableName], r[colTableSchema])
			}
		}
	})

	t.Run("numeric shape columns", func(t *testing.T) {
		cols := catalogTable(t, c, TableColumns)
		names := lo.Map(cols.Columns, func(col Column, _ int) string { return col.Canonical })
		for _, want := range []string{colCharacterMaximumLength, colNumericPrecision, colNumericPrecisionRadix, colNumericScale} {
			if !lo.Contains(names, want) {
				t.Errorf("COLUMNS shape is missing %s under the postgres dialect", want)
			}
		}

		rows := rowMaps(cols)
		id := findOneRow(t, rows, map[string]any{colTableName: "Singers", colColumnName: "SingerId"})
		if id[colNumericPrecision] != int64(64) || id[colNumericPrecisionRadix] != int64(2) || id[colNumericScale] != int64(0) {
			t.Errorf("INT64 numeric shape = %v/%v/%v, want 64/2/0",
				id[colNumericPrecision], id[colNumericPrecisionRadix], id[colNumericScale])
		}
		name := findOneRow(t, rows, map[string]any{colTableName: "Singers", colColumnName: "FirstName"})
		if name[colCharacterMaximumLength] != int64(1024) {
			t.Errorf("CHARACTER_MAXIMUM_LENGTH = %v, want 1024", name[colCharacterMaximumLength])
		}
		if name[colSpannerType] != nullString || name[colDataType] != nullString {
			t.Errorf("type columns = %v/%v, want null/null", name[colSpannerType], name[colDataType])
		}
	})

	t.Run("commit timestamp type does not leak into later rows", func(t *testing.T) {
		rows := rowMaps(catalogTable(t, c, TableColumns))
		date := findOneRow(t, rows, map[string]any{colTableName: "Concerts", colColumnName: "ConcertDate"})
		if date[colDataType] != "spanner.commit_timestamp" {
			t.Errorf("ConcertDate DATA_TYPE = %v, want spanner.commit_timestamp", date[colDataType])
		}
		notes := findOneRow(t, rows, map[string]any{colTableName: "Concerts", colColumnName: "Notes"})
		if notes[colDataType] != nullString {
			t.Errorf("Notes DATA_TYPE = %v, want null", notes[colDataType])
		}
	})

	t.Run("native shape drops postgres-only columns", func(t *testing.T) {
		native := buildTestCatalog(t, databasepb.DatabaseDialect_GOOGLE_STANDARD_SQL)
		cols := catalogTable(t, native, TableColumns)
		names := lo.Map(cols.Columns, func(col Column, _ int) string { return col.Canonical })
		if lo.Contains(names, colNumericPrecision) {
			t.Error("NUMERIC_PRECISION declared under the native dialect")
		}
	})
}

func TestUsersEndToEnd(t *testing.T) {
	const ddl = `
CREATE TABLE Users (
  id INT64,
  name STRING(MAX) NOT NULL
) PRIMARY KEY (id);
`
	s := lo.Must(schema.Parse("users.sql", ddl))
	c := New(s, databasepb.DatabaseDialect_GOOGLE_STANDARD_SQL)

	tables := rowMaps(catalogTable(t, c, TableTables))
	users := findOneRow(t, tables, map[string]any{colTableName: "Users"})
	if users[colTableType] != "BASE TABLE" {
		t.Errorf("TABLE_TYPE = %v, want BASE TABLE", users[colTableType])
	}

	columns := rowMaps(catalogTable(t, c, TableColumns))
	id := findOneRow(t, columns, map[string]any{colTableName: "Users", colColumnName: "id"})
	if id[colOrdinalPosition] != int64(1) {
		t.Errorf("id ordinal = %v, want 1", id[colOrdinalPosition])
	}
	name := findOneRow(t, columns, map[string]any{colTableName: "Users", colColumnName: "name"})
	if name[colOrdinalPosition] != int64(2) || name[colIsNullable] != "NO" {
		t.Errorf("name row = ordinal %v nullable %v, want 2/NO", name[colOrdinalPosition], name[colIsNullable])
	}

	constraints := rowMaps(catalogTable(t, c, TableTableConstraints))
	pk := findOneRow(t, constraints, map[string]any{colConstraintName: "PK_Users"})
	if pk[colConstraintType] != "PRIMARY KEY" {
		t.Errorf("PK_Users type = %v, want PRIMARY KEY", pk[colConstraintType])
	}
	ck := findOneRow(t, constraints, map[string]any{colConstraintName: "CK_IS_NOT_NULL_Users_name"})
	if ck[colConstraintType] != "CHECK" {
		t.Errorf("not-null constraint type = %v, want CHECK", ck[colConstraintType])
	}

	checks := rowMaps(catalogTable(t, c, TableCheckConstraints))
	clause := findOneRow(t, checks, map[string]any{colConstraintName: "CK_IS_NOT_NULL_Users_name"})
	if clause[colCheckClause] != "name IS NOT NULL" {
		t.Errorf("CHECK_CLAUSE = %v, want name IS NOT NULL", clause[colCheckClause])
	}

	keyUsage := rowMaps(catalogTable(t, c, TableKeyColumnUsage))
	key := findOneRow(t, keyUsage, map[string]any{colConstraintName: "PK_Users", colTableSchema: ""})
	if key[colColumnName] != "id" || key[colOrdinalPosition] != int64(1) {
		t.Errorf("PK_Users key row = %v, want id at ordinal 1", key)
	}
}

func TestCatalogDeterminism(t *testing.T) {
	for _, tc := range []struct {
		desc    string
		dialect databasepb.DatabaseDialect
	}{
		{"googlesql", databasepb.DatabaseDialect_GOOGLE_STANDARD_SQL},
		{"postgresql", databasepb.DatabaseDialect_POSTGRESQL},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			a := buildTestCatalog(t, tc.dialect)
			b := buildTestCatalog(t, tc.dialect)
			if len(a.Tables()) != len(b.Tables()) {
				t.Fatalf("table counts differ: %d vs %d", len(a.Tables()), len(b.Tables()))
			}
			for i, ta := range a.Tables() {
				tb := b.Tables()[i]
				if ta.Name != tb.Name {
					t.Fatalf("table order differs at %d: %s vs %s", i, ta.Name, tb.Name)
				}
				if diff := cmp.Diff(ta.Rows(), tb.Rows()); diff != "" {
					t.Errorf("%s rows mismatch (-first +second):\n%s", ta.Name, diff)
				}
			}
		})
	}
}

func TestRowFromOverrides(t *testing.T) {
	meta := tableMeta{
		Name: "T",
		Columns: []columnMeta{
			{Name: "A", Type: strType},
			{Name: "B", Type: int64Type},
			{Name: "C", Type: boolType},
			{Name: "D", Type: spansql.Type{Base: spansql.Timestamp}},
		},
	}
	tb := newTable(newDialectAdapter(databasepb.DatabaseDialect_GOOGLE_STANDARD_SQL), meta)

	t.Run("type defaults fill unset columns", func(t *testing.T) {
		got := rowFromOverrides(tb, map[string]any{"A": "x"})
		want := []any{"x", int64(0), false, time.Unix(0, 0).UTC()}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("row mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("explicit null is preserved", func(t *testing.T) {
		got := rowFromOverrides(tb, map[string]any{"A": nullString})
		if got[0] != nullString {
			t.Errorf("got %v, want a typed null", got[0])
		}
	})

	t.Run("lower-cased key panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("no panic for a lower-cased override key")
			}
		}()
		rowFromOverrides(tb, map[string]any{"a": "x"})
	})
}

func TestRegistryMissPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("no panic for an unknown table")
		}
		if !strings.Contains(fmt.Sprint(r), "NO_SUCH_TABLE") {
			t.Errorf("panic %v does not name the missing table", r)
		}
	}()
	metaFor("NO_SUCH_TABLE")
}

func TestSelfDescribingFillNeedsDeclarations(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("no panic when enumerating tables before declaration")
		}
	}()
	c := &Catalog{}
	c.ownTables()
}

func TestUnspecifiedDialectNormalizes(t *testing.T) {
	s := lo.Must(schema.Parse("empty.sql", "CREATE TABLE T (id INT64 NOT NULL) PRIMARY KEY (id);"))
	c := New(s, databasepb.DatabaseDialect_DATABASE_DIALECT_UNSPECIFIED)
	if c.Dialect != databasepb.DatabaseDialect_GOOGLE_STANDARD_SQL {
		t.Errorf("dialect = %v, want GOOGLE_STANDARD_SQL", c.Dialect)
	}
	if _, ok := c.Table("TABLES"); !ok {
		t.Error("native-cased TABLES not addressable")
	}
}
