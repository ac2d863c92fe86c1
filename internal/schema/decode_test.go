package schema

import (
	"testing"

	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	"github.com/google/go-cmp/cmp"
	"github.com/samber/lo"

	"github.com/spanemu/spannerschema/infoschema"
	ddlschema "github.com/spanemu/spannerschema/schema"
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
  AlbumTitle STRING(MAX)
) PRIMARY KEY (SingerId, AlbumId),
  INTERLEAVE IN PARENT Singers ON DELETE CASCADE;

CREATE INDEX AlbumsByAlbumTitle ON Albums(AlbumTitle);
`

func decodeTestSchema(t *testing.T, dialect databasepb.DatabaseDialect) *InformationSchema {
	t.Helper()
	s := lo.Must(ddlschema.Parse("test.sql", testDDL))
	is, err := Decode(infoschema.New(s, dialect))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return is
}

func findTable(t *testing.T, is *InformationSchema, name string) *InformationSchemaTable {
	t.Helper()
	tbl, ok := lo.Find(is.Tables, func(item *InformationSchemaTable) bool {
		return item.TableName == name
	})
	if !ok {
		t.Fatalf("no TABLES row for %s", name)
	}
	return tbl
}

func findColumn(t *testing.T, is *InformationSchema, table, column string) *InformationSchemaColumn {
	t.Helper()
	col, ok := lo.Find(is.Columns, func(item *InformationSchemaColumn) bool {
		return item.TableName == table && item.ColumnName == column
	})
	if !ok {
		t.Fatalf("no COLUMNS row for %s.%s", table, column)
	}
	return col
}

func TestDecode(t *testing.T) {
	is := decodeTestSchema(t, databasepb.DatabaseDialect_GOOGLE_STANDARD_SQL)

	t.Run("user schema", func(t *testing.T) {
		if got := is.UserSchema(); got != "" {
			t.Errorf("UserSchema() = %q, want empty", got)
		}
	})

	t.Run("nullable fields become pointers", func(t *testing.T) {
		albums := findTable(t, is, "Albums")
		if albums.ParentTableName == nil || *albums.ParentTableName != "Singers" {
			t.Errorf("ParentTableName = %v, want Singers", albums.ParentTableName)
		}
		if albums.OnDeleteAction == nil || *albums.OnDeleteAction != "CASCADE" {
			t.Errorf("OnDeleteAction = %v, want CASCADE", albums.OnDeleteAction)
		}
		singers := findTable(t, is, "Singers")
		if singers.ParentTableName != nil {
			t.Errorf("ParentTableName = %v, want nil", *singers.ParentTableName)
		}
	})

	t.Run("generated column", func(t *testing.T) {
		full := findColumn(t, is, "Singers", "FullName")
		if full.IsGenerated != "ALWAYS" {
			t.Errorf("IsGenerated = %q, want ALWAYS", full.IsGenerated)
		}
		if full.GenerationExpression == nil {
			t.Error("GenerationExpression is nil for a generated column")
		}
		if full.IsStored == nil || *full.IsStored != "YES" {
			t.Errorf("IsStored = %v, want YES", full.IsStored)
		}
		id := findColumn(t, is, "Singers", "SingerId")
		if id.GenerationExpression != nil {
			t.Errorf("GenerationExpression = %v, want nil", *id.GenerationExpression)
		}
	})

	t.Run("every table decodes", func(t *testing.T) {
		if len(is.Schemata) == 0 || len(is.Indexes) == 0 || len(is.TableConstraints) == 0 ||
			len(is.KeyColumnUsage) == 0 || len(is.CheckConstraints) == 0 {
			t.Error("some introspection tables decoded empty")
		}
		if len(is.SpannerStatistics) != 0 {
			t.Errorf("SpannerStatistics = %d rows, want 0", len(is.SpannerStatistics))
		}
	})
}

func TestDecodePostgres(t *testing.T) {
	is := decodeTestSchema(t, databasepb.DatabaseDialect_POSTGRESQL)

	if got := is.UserSchema(); got != "public" {
		t.Errorf("UserSchema() = %q, want public", got)
	}

	// Canonical field tags decode the lower-cased catalog identically.
	first := findColumn(t, is, "Singers", "FirstName")
	if first.CharacterMaximumLength == nil || *first.CharacterMaximumLength != 1024 {
		t.Errorf("CharacterMaximumLength = %v, want 1024", first.CharacterMaximumLength)
	}
	if first.SpannerType != nil {
		t.Errorf("SpannerType = %v, want nil", *first.SpannerType)
	}
	id := findColumn(t, is, "Singers", "SingerId")
	if id.NumericPrecision == nil || *id.NumericPrecision != 64 {
		t.Errorf("NumericPrecision = %v, want 64", id.NumericPrecision)
	}
}

func TestBuildMaps(t *testing.T) {
	is := decodeTestSchema(t, databasepb.DatabaseDialect_GOOGLE_STANDARD_SQL)
	userSchema := is.UserSchema()

	t.Run("columns by table", func(t *testing.T) {
		m := BuildColumnsByTableMap(is.Columns, userSchema)
		if len(m) != 2 {
			t.Fatalf("tables = %d, want 2", len(m))
		}
		got := lo.Map(m["Singers"], func(item *InformationSchemaColumn, _ int) string {
			return item.ColumnName
		})
		want := []string{"SingerId", "FirstName", "LastName", "FullName"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Singers columns mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("index map skips primary keys", func(t *testing.T) {
		m := BuildIndexMap(is.Indexes, userSchema)
		if len(m) != 1 {
			t.Fatalf("indexes = %d, want 1", len(m))
		}
		if _, ok := m["AlbumsByAlbumTitle"]; !ok {
			t.Error("AlbumsByAlbumTitle missing from the index map")
		}
	})

	t.Run("table map filters the catalog's own tables", func(t *testing.T) {
		m := BuildTableMap(is.Tables, userSchema)
		if len(m) != 2 {
			t.Fatalf("tables = %d, want 2", len(m))
		}
	})
}
