// Command bootstrap parses Cloud Spanner DDL and prints Go struct
// declarations for the selected table, typed from the catalog's COLUMNS
// rows. Field tags carry the column names for the Spanner row codec.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"

	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	"github.com/kenshaw/snaker"
	"github.com/samber/lo"

	"github.com/spanemu/spannerschema/infoschema"
	internalschema "github.com/spanemu/spannerschema/internal/schema"
	"github.com/spanemu/spannerschema/schema"
)

func main() {
	if err := run(); err != nil {
		log.Fatalln(err)
	}
}

func run() error {
	ddlFile := flag.String("ddl-file", "", "DDL file, stdin when empty")
	tableName := flag.String("table-name", "", "table to generate a struct for, all tables when empty")
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
	is, err := internalschema.Decode(infoschema.New(s, databasepb.DatabaseDialect_GOOGLE_STANDARD_SQL))
	if err != nil {
		return err
	}

	columnsByTable := internalschema.BuildColumnsByTableMap(is.Columns, is.UserSchema())
	tables := lo.Map(s.Tables, func(t *schema.Table, _ int) string { return t.Name })
	if *tableName != "" {
		if _, ok := columnsByTable[*tableName]; !ok {
			return fmt.Errorf("table %v not found", *tableName)
		}
		tables = []string{*tableName}
	}

	for _, table := range tables {
		if err := printStruct(table, columnsByTable[table]); err != nil {
			return err
		}
	}
	return nil
}

func printStruct(tableName string, columns []*internalschema.InformationSchemaColumn) error {
	fmt.Printf("type %v struct {\n", snaker.SnakeToCamel(tableName))
	for _, column := range columns {
		t, err := spannerTypeToGoType(lo.FromPtr(column.SpannerType), column.IsNullable == "YES")
		if err != nil {
			return err
		}
		fmt.Printf("%v %v `spanner:\"%v\" json:\"%v\"`\n", snaker.SnakeToCamelIdentifier(column.ColumnName), t, column.ColumnName, column.ColumnName)
	}
	fmt.Println("}")
	return nil
}

var spannerBaseTypeRe = regexp.MustCompile("^([^(<]*)")

func spannerTypeToGoType(spannerType string, isNullable bool) (string, error) {
	t, err := spannerTypeToGoTypePrimitive(spannerType)
	if err != nil {
		return "", err
	}
	if !isNullable {
		return t, nil
	}
	switch t {
	case "[]byte":
		return t, nil
	default:
		return "*" + t, nil
	}
}

func spannerTypeToGoTypePrimitive(spannerType string) (string, error) {
	switch t := spannerBaseTypeRe.FindString(spannerType); t {
	case "BOOL":
		return "bool", nil
	case "INT64":
		return "int64", nil
	case "FLOAT64":
		return "float64", nil
	case "TIMESTAMP":
		return "time.Time", nil
	case "DATE":
		return "civil.Date", nil
	case "STRING":
		return "string", nil
	case "BYTES":
		return "[]byte", nil
	case "NUMERIC":
		return "*big.Rat", nil
	case "JSON":
		return "spanner.NullJSON", nil
	default:
		return "", fmt.Errorf("unsupported Cloud Spanner type: %v", t)
	}
}
