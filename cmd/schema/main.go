// Command schema parses Cloud Spanner DDL and prints the typed
// INFORMATION_SCHEMA dump as JSON. Other tools consume this dump instead of
// querying a live database.
package main

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"

	"github.com/spanemu/spannerschema/infoschema"
	internalschema "github.com/spanemu/spannerschema/internal/schema"
	"github.com/spanemu/spannerschema/option"
	"github.com/spanemu/spannerschema/schema"
)

func main() {
	if err := run(); err != nil {
		log.Fatalln(err)
	}
}

func run() error {
	ddlFile := flag.String("ddl-file", "", "DDL file, stdin when empty")
	dialect := flag.String("dialect", "google_standard_sql", "google_standard_sql or postgresql")
	flag.Parse()

	name := *ddlFile
	var b []byte
	var err error
	if name == "" {
		name = "stdin"
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(name)
	}
	if err != nil {
		return err
	}

	s, err := schema.Parse(name, string(b))
	if err != nil {
		return err
	}

	opts := option.Options{Dialect: *dialect}
	is, err := internalschema.Decode(infoschema.New(s, opts.DatabaseDialect()))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(is)
}
