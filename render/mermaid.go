package render

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/spanemu/spannerschema/schema"
)

var mermaidUnsafeRe = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// mermaidType folds a rendered column type into an identifier mermaid
// accepts, e.g. STRING(MAX) becomes STRING_MAX.
func mermaidType(sql string) string {
	return strings.Trim(mermaidUnsafeRe.ReplaceAllString(sql, "_"), "_")
}

// Mermaid writes the schema as a mermaid erDiagram: one entity per table
// with key columns marked PK, interleaving edges and foreign key edges.
func Mermaid(w io.Writer, s *schema.Schema) error {
	var b strings.Builder
	b.WriteString("erDiagram\n")

	for _, t := range s.Tables {
		key := map[string]bool{}
		for _, k := range t.PrimaryKey {
			key[k.Column] = true
		}
		fmt.Fprintf(&b, "    %s {\n", t.Name)
		for _, c := range t.Columns {
			var mark string
			if key[c.Name] {
				mark = " PK"
			}
			fmt.Fprintf(&b, "        %s %s%s\n", mermaidType(c.Type.SQL()), c.Name, mark)
		}
		b.WriteString("    }\n")
	}

	for _, t := range s.Tables {
		if t.Parent != nil {
			fmt.Fprintf(&b, "    %s ||--o{ %s : interleaved\n", t.Parent.Name, t.Name)
		}
		for _, fk := range t.ForeignKeys {
			fmt.Fprintf(&b, "    %s }o--|| %s : \"%s\"\n", t.Name, fk.ReferencedTable.Name, fk.Name)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
