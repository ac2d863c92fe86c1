package render

import (
	"encoding/json"
	"io"

	"sigs.k8s.io/yaml"

	"github.com/spanemu/spannerschema/internal/schema"
)

// JSON writes the typed dump with stable field order.
func JSON(w io.Writer, is *schema.InformationSchema) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(is)
}

// YAML writes the typed dump through its JSON tags.
func YAML(w io.Writer, is *schema.InformationSchema) error {
	b, err := yaml.Marshal(is)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
