// Command schemaanalyzer reads an introspection dump produced by
// cmd/schema and prints each table's key structure: primary key, parent
// table and secondary keys with STORING/UNIQUE/NULL_FILTERED annotations.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/spanemu/spannerschema/internal/lox"
	"github.com/spanemu/spannerschema/internal/schema"
)

func main() {
	if err := run(); err != nil {
		log.Fatalln(err)
	}
}

type KeySpec struct {
	StoredColumns []string
	KeyColumns    []*schema.InformationSchemaIndexColumn
}

type TableSpec struct {
	PrimaryKey      *KeySpec
	ParentTableName string
	SecondaryKeys   map[string]*KeySpec
}

func run() error {
	schemaFile := flag.String("schema-file", "", "introspection dump, stdin when empty")
	flag.Parse()

	var is schema.InformationSchema
	{
		var b []byte
		var err error
		if *schemaFile == "" {
			b, err = io.ReadAll(os.Stdin)
		} else {
			b, err = os.ReadFile(*schemaFile)
		}
		if err != nil {
			return err
		}
		err = json.Unmarshal(b, &is)
		if err != nil {
			return err
		}
	}

	userSchema := is.UserSchema()
	columnsByTable := schema.BuildColumnsByTableMap(is.Columns, userSchema)

	tableMap := schema.BuildTableMap(is.Tables, userSchema)
	indexMap := schema.BuildIndexMap(is.Indexes, userSchema)

	tableKeys := buildTableSpecs(is, tableMap, userSchema)
	for tableName, t := range tableKeys {
		pk := t.PrimaryKey
		notExistsInCurrentPKPred := lox.Not(lox.SliceToPredicateBy(pk.KeyColumns, indexColumnToColumnName))

		tableColumnNames := lo.Map(columnsByTable[tableName], func(item *schema.InformationSchemaColumn, _ int) string {
			return item.ColumnName
		})
		columnNamesNotInPK := lox.FilterWithoutIndex(tableColumnNames, notExistsInCurrentPKPred)

		fmt.Printf("%v PRIMARY KEY (%v)%v\n",
			tableName,
			renderKey(tableKeys, lo.FromPtr(tableMap[tableName].ParentTableName), pk.KeyColumns),
			lox.IfOrEmpty(len(columnNamesNotInPK) > 0,
				fmt.Sprintf(` STORING (%v)`, strings.Join(columnNamesNotInPK, ", "))))

		for indexName, index := range t.SecondaryKeys {
			notExistsInCurrentKey := lox.Not(lox.SliceToPredicateBy(index.KeyColumns, indexColumnToColumnName))

			columnNamesNotStoring := lo.Filter(columnNamesNotInPK, func(columnName string, _ int) bool {
				return !lo.Contains(index.StoredColumns, columnName) && notExistsInCurrentKey(columnName)
			})

			pkPart := lox.FilterWithoutIndex(pk.KeyColumns, lox.Compose(notExistsInCurrentKey, indexColumnToColumnName))

			implicitPKPartStrOpt := lox.IfOrEmpty(len(pkPart) > 0,
				fmt.Sprintf("[, %v]", renderKeySpec(pkPart)))

			isIndex := indexMap[indexName]
			keyPartStr := renderKey(tableKeys, isIndex.ParentTableName, index.KeyColumns)
			fmt.Printf("  %v ON %v (%v%v) %v\n",
				indexName,
				tableName,
				keyPartStr,
				implicitPKPartStrOpt,
				strings.Join(lo.WithoutEmpty([]string{
					lox.IfOrEmpty(len(index.StoredColumns) > 0,
						fmt.Sprintf(`STORING (%v)`, strings.Join(index.StoredColumns, ", "))),
					lox.IfOrEmpty(len(columnNamesNotStoring) > 0,
						fmt.Sprintf(`NOT STORING (%v)`, strings.Join(columnNamesNotStoring, ", "))),
					lox.IfOrEmpty(isIndex.IsUnique, "UNIQUE"),
					lox.IfOrEmpty(isIndex.IsNullFiltered, "NULL_FILTERED"),
				}), " ",
				),
			)
		}
	}
	return nil
}

func buildTableSpecs(is schema.InformationSchema, tableMap map[string]*schema.InformationSchemaTable, userSchema string) map[string]*TableSpec {
	keyColumnsInUserTables := lo.Filter(is.IndexColumns, func(item *schema.InformationSchemaIndexColumn, index int) bool {
		return item.TableSchema == userSchema
	})
	indexColumnByTableName := lo.GroupBy(keyColumnsInUserTables, func(item *schema.InformationSchemaIndexColumn) string {
		return item.TableName
	})
	return lo.MapValues(indexColumnByTableName, func(indexColumnsInTable []*schema.InformationSchemaIndexColumn, tableName string) *TableSpec {
		indexColumnByIndexName := lo.GroupBy(indexColumnsInTable, indexColumnToIndexName)
		keySpecsByIndexName := lo.MapValues(indexColumnByIndexName, func(indexColumnsInIndex []*schema.InformationSchemaIndexColumn, _ string) *KeySpec {
			storedColumns := lox.MapWithoutIndex(
				lox.OnlyEmptyBy(indexColumnsInIndex, indexColumnToOrdinalPosition),
				indexColumnToColumnName)
			slices.Sort(storedColumns)

			keyColumns :=
				lox.WithoutEmptyBy(indexColumnsInIndex, indexColumnToOrdinalPosition)
			lox.SortBy(keyColumns, lox.Compose[*schema.InformationSchemaIndexColumn, *int64, int64](lo.FromPtr[int64], indexColumnToOrdinalPosition))

			return &KeySpec{
				StoredColumns: storedColumns,
				KeyColumns:    keyColumns,
			}
		})
		return &TableSpec{
			PrimaryKey:      keySpecsByIndexName["PRIMARY_KEY"],
			ParentTableName: lo.FromPtr(tableMap[tableName].ParentTableName),
			SecondaryKeys:   lo.OmitByKeys(keySpecsByIndexName, []string{"PRIMARY_KEY"}),
		}
	})
}

func renderKey(tableSpecMap map[string]*TableSpec, parentTableName string, columns []*schema.InformationSchemaIndexColumn) string {
	if parentTableName == "" {
		return renderKeySpec(columns)
	}

	parentTable := tableSpecMap[parentTableName]
	parentKeyColumns := parentTable.PrimaryKey.KeyColumns
	return strings.Join([]string{
		fmt.Sprintf("%v(%v)", parentTableName, renderKey(tableSpecMap, parentTable.ParentTableName, columns[:len(parentKeyColumns)])),
		renderKeySpec(columns[len(parentKeyColumns):]),
	}, ", ")
}

func renderKeySpec(ks []*schema.InformationSchemaIndexColumn) string {
	return strings.Join(lo.Map(ks, func(item *schema.InformationSchemaIndexColumn, _ int) string {
		if lo.FromPtr(item.ColumnOrdering) == "DESC" {
			return fmt.Sprintf("%v DESC", item.ColumnName)
		}
		return item.ColumnName
	}), ", ")
}

func indexColumnToColumnName(index *schema.InformationSchemaIndexColumn) string {
	return index.ColumnName
}

func indexColumnToIndexName(index *schema.InformationSchemaIndexColumn) string {
	return index.IndexName
}

func indexColumnToOrdinalPosition(index *schema.InformationSchemaIndexColumn) *int64 {
	return index.OrdinalPosition
}
