package infoschema

import (
	"strings"

	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
)

// dialectAdapter folds dialect-specific casing and naming into one place so
// the fill code stays dialect-neutral.
type dialectAdapter struct {
	pg bool
}

func newDialectAdapter(d databasepb.DatabaseDialect) dialectAdapter {
	return dialectAdapter{pg: d == databasepb.DatabaseDialect_POSTGRESQL}
}

// nameFor maps a canonical identifier to its dialect casing. The Postgres
// dialect folds every introspection identifier to lower case, including
// the INFORMATION_SCHEMA namespace itself.
func (a dialectAdapter) nameFor(canonical string) string {
	if a.pg {
		return strings.ToLower(canonical)
	}
	return canonical
}

// defaultSchema is the schema name user objects are reported under.
func (a dialectAdapter) defaultSchema() string {
	if a.pg {
		return "public"
	}
	return ""
}

// optionTypeName is the type name reported for string-valued options.
func (a dialectAdapter) optionTypeName() string {
	if a.pg {
		return "character varying"
	}
	return "STRING"
}
