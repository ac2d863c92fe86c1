package infoschema

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/spanner"
	"cloud.google.com/go/spanner/spansql"
)

// Typed nulls for nullable introspection columns. Null is always explicit:
// a column left out of an override map takes its type default, never null.
var (
	nullString = spanner.NullString{}
	nullInt64  = spanner.NullInt64{}
)

// stringOrNull reports s when ok is true, else a typed string null.
func stringOrNull(ok bool, s string) any {
	if ok {
		return s
	}
	return nullString
}

// defaultValue is the value synthesized for a declared column with no
// override.
func defaultValue(t spansql.Type) any {
	switch t.Base {
	case spansql.String:
		return ""
	case spansql.Int64:
		return int64(0)
	case spansql.Bool:
		return false
	case spansql.Timestamp:
		return time.Unix(0, 0).UTC()
	}
	panic(fmt.Sprintf("information schema: no default for type %s", t.SQL()))
}

// rowFromOverrides builds one positional row for t. Overrides are keyed by
// canonical (native-cased) column names; keys that match no declared column
// are ignored, which drops Postgres-only overrides under the native
// dialect. A lower-cased key panics: under the Postgres dialect it would
// silently leave the column at its default.
func rowFromOverrides(t *Table, overrides map[string]any) []any {
	row := make([]any, 0, len(t.Columns))
	for _, c := range t.Columns {
		if _, ok := overrides[strings.ToLower(c.Canonical)]; ok {
			panic(fmt.Sprintf("information schema: override for %s.%s must use the canonical column name", t.Canonical, c.Canonical))
		}
		v, ok := overrides[c.Canonical]
		if !ok {
			v = defaultValue(c.Type)
		}
		row = append(row, v)
	}
	return row
}
