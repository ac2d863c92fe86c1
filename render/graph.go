package render

import (
	"fmt"
	"html"
	"io"
	"log"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/spanemu/spannerschema/schema"
)

// Graph writes the schema as an entity-relationship diagram in the given
// graphviz output format ("dot" or "svg"). Each table is a box listing its
// key and non-key columns; solid edges point from an interleaved child to
// its parent and dashed edges from a referencing table to the referenced
// one.
func Graph(w io.Writer, s *schema.Schema, format graphviz.Format) error {
	g := graphviz.New()
	graph, err := g.Graph()
	if err != nil {
		return err
	}
	defer func() {
		if err := graph.Close(); err != nil {
			log.Print(err)
		}
		g.Close()
	}()

	if err := buildGraphFromSchema(graph, s); err != nil {
		return err
	}
	return g.Render(graph, format, w)
}

func buildGraphFromSchema(graph *cgraph.Graph, s *schema.Schema) error {
	graph.SetRankDir(cgraph.BTRank)

	gvNodes := make(map[string]*cgraph.Node, len(s.Tables))
	for _, t := range s.Tables {
		n, err := graph.CreateNode(t.Name)
		if err != nil {
			return err
		}
		n.SetShape(cgraph.BoxShape)
		n.SetLabel(graph.StrdupHTML(tableNodeLabel(t)))
		gvNodes[t.Name] = n
	}

	for _, t := range s.Tables {
		if t.Parent != nil {
			e, err := graph.CreateEdge("", gvNodes[t.Name], gvNodes[t.Parent.Name])
			if err != nil {
				return err
			}
			e.SetLabel("interleaved")
		}
		for _, fk := range t.ForeignKeys {
			e, err := graph.CreateEdge("", gvNodes[t.Name], gvNodes[fk.ReferencedTable.Name])
			if err != nil {
				return err
			}
			e.SetLabel(fk.Name)
			e.SetStyle(cgraph.DashedEdgeStyle)
		}
	}
	return nil
}

func tableNodeLabel(t *schema.Table) string {
	key := map[string]bool{}
	for _, k := range t.PrimaryKey {
		key[k.Column] = true
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, `<b>%s</b><br align="CENTER" />`, html.EscapeString(t.Name))
	for _, c := range t.Columns {
		line := fmt.Sprintf("%s: %s", c.Name, c.Type.SQL())
		if key[c.Name] {
			fmt.Fprintf(&buf, `<u>%s</u><br align="left" />`, html.EscapeString(line))
		} else {
			fmt.Fprintf(&buf, `%s<br align="left" />`, html.EscapeString(line))
		}
	}
	return buf.String()
}
