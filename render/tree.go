package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/xlab/treeprint"

	"github.com/spanemu/spannerschema/schema"
)

func init() {
	// Use only ascii characters to mitigate ambiguous width problem
	treeprint.EdgeTypeLink = "|"
	treeprint.EdgeTypeMid = "+-"
	treeprint.EdgeTypeEnd = "+-"

	treeprint.IndentSize = 2
}

// Tree writes the interleaving hierarchy: top-level tables at the root,
// child tables nested under their parents, indexes as leaves and views
// listed last.
func Tree(w io.Writer, s *schema.Schema) error {
	children := map[string][]*schema.Table{}
	for _, t := range s.Tables {
		if t.Parent != nil {
			children[t.Parent.Name] = append(children[t.Parent.Name], t)
		}
	}

	tree := treeprint.New()
	for _, t := range s.Tables {
		if t.Parent == nil {
			addTableBranch(tree, t, children)
		}
	}
	for _, v := range s.Views {
		tree.AddNode("VIEW " + v.Name)
	}
	_, err := io.WriteString(w, tree.String())
	return err
}

func addTableBranch(parent treeprint.Tree, t *schema.Table, children map[string][]*schema.Table) {
	branch := parent.AddBranch(tableLabel(t))
	for _, idx := range t.Indexes {
		branch.AddNode(indexLabel(idx))
	}
	for _, child := range children[t.Name] {
		addTableBranch(branch, child, children)
	}
}

func tableLabel(t *schema.Table) string {
	return fmt.Sprintf("%s PRIMARY KEY (%s)", t.Name, keySpec(t.PrimaryKey))
}

func indexLabel(idx *schema.Index) string {
	return strings.Join(lo.WithoutEmpty([]string{
		"INDEX",
		fmt.Sprintf("%s (%s)", idx.Name, keySpec(idx.Keys)),
		lo.Ternary(len(idx.Storing) > 0, fmt.Sprintf("STORING (%s)", strings.Join(idx.Storing, ", ")), ""),
		lo.Ternary(idx.Unique, "UNIQUE", ""),
		lo.Ternary(idx.NullFiltered, "NULL_FILTERED", ""),
		lo.Ternary(idx.Managed, "MANAGED", ""),
	}), " ")
}

func keySpec(keys []schema.KeyPart) string {
	return strings.Join(lo.Map(keys, func(k schema.KeyPart, _ int) string {
		if k.Desc {
			return k.Column + " DESC"
		}
		return k.Column
	}), ", ")
}
