package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/spanemu/spannerschema/infoschema"
)

// Definition is a custom table render definition loaded from YAML. It maps
// canonical introspection table names to the subset and order of canonical
// column names to print; tables absent from the map print all columns.
type Definition struct {
	Tables map[string][]string `yaml:"tables"`
}

func LoadDefinition(path string) (*Definition, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var def Definition
	if err := yaml.Unmarshal(b, &def); err != nil {
		return nil, fmt.Errorf("parse render definition %s: %w", path, err)
	}
	return &def, nil
}

// Tables writes each catalog table as an ASCII table. When only is
// non-empty, tables whose canonical name is not listed are skipped; names
// are matched case-insensitively so both dialect casings work.
func Tables(w io.Writer, c *infoschema.Catalog, def *Definition, only []string) error {
	for _, t := range c.Tables() {
		if len(only) > 0 && !lo.ContainsBy(only, func(name string) bool {
			return strings.EqualFold(name, t.Canonical)
		}) {
			continue
		}
		indices, err := columnIndices(t, def)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "%s.%s\n", c.InfoSchemaName(), t.Name); err != nil {
			return err
		}
		tw := tablewriter.NewWriter(w)
		tw.SetAutoWrapText(false)
		tw.SetAutoFormatHeaders(false)
		tw.SetHeader(lo.Map(indices, func(i int, _ int) string { return t.Columns[i].Name }))
		for _, row := range t.Rows() {
			tw.Append(lo.Map(indices, func(i int, _ int) string { return formatValue(row[i]) }))
		}
		tw.Render()
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// columnIndices resolves the definition's column subset for t to positional
// indices, defaulting to every column in declared order.
func columnIndices(t *infoschema.Table, def *Definition) ([]int, error) {
	var wanted []string
	if def != nil {
		wanted = def.Tables[t.Canonical]
	}
	if len(wanted) == 0 {
		return lo.Range(len(t.Columns)), nil
	}

	indices := make([]int, 0, len(wanted))
	for _, name := range wanted {
		i := lo.IndexOf(lo.Map(t.Columns, func(c infoschema.Column, _ int) string { return c.Canonical }), name)
		if i < 0 {
			return nil, fmt.Errorf("render definition: table %s has no column %s", t.Canonical, name)
		}
		indices = append(indices, i)
	}
	return indices, nil
}
