package option

import (
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
)

type Options struct {
	Positional struct {
		Input string
	} `positional-args:"yes"`
	Dialect    string   `long:"dialect" description:"database dialect" default:"google_standard_sql" choice:"google_standard_sql" choice:"postgresql"`
	Format     string   `long:"format" description:"output format" default:"table" choice:"json" choice:"yaml" choice:"table" choice:"tree" choice:"dot" choice:"svg" choice:"mermaid"`
	Tables     []string `long:"table" description:"limit table output to the named introspection tables"`
	CustomFile string   `long:"custom-file" description:"custom table render definition file"`
	Filename   string   `long:"output"`
}

func (o *Options) DatabaseDialect() databasepb.DatabaseDialect {
	if o.Dialect == "postgresql" {
		return databasepb.DatabaseDialect_POSTGRESQL
	}
	return databasepb.DatabaseDialect_GOOGLE_STANDARD_SQL
}
