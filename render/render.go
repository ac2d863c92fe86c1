// Package render writes a synthesized catalog in the CLI's output formats:
// typed JSON/YAML dumps, per-table ASCII tables, an interleaving tree, a
// graphviz ER diagram and mermaid text.
package render

import (
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/spanner"
)

// formatValue renders one cell of an introspection row. Typed nulls print
// as NULL so they stay distinguishable from empty strings.
func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case spanner.NullString:
		if x.Valid {
			return x.StringVal
		}
		return "NULL"
	case spanner.NullInt64:
		if x.Valid {
			return strconv.FormatInt(x.Int64, 10)
		}
		return "NULL"
	case spanner.NullTime:
		if x.Valid {
			return x.Time.UTC().Format(time.RFC3339)
		}
		return "NULL"
	default:
		return fmt.Sprint(v)
	}
}
