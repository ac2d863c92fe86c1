package schema

import (
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// BuildColumnsByTableMap groups the user-schema columns by table name,
// sorted by ordinal position.
func BuildColumnsByTableMap(columns []*InformationSchemaColumn, userSchema string) map[string][]*InformationSchemaColumn {
	filteredColumns := lo.Filter(columns, func(item *InformationSchemaColumn, _ int) bool {
		return item.TableSchema == userSchema
	})

	result := lo.GroupBy(filteredColumns, func(item *InformationSchemaColumn) string {
		return item.TableName
	})

	for _, columns := range result {
		slices.SortFunc(columns, func(a, b *InformationSchemaColumn) bool {
			return a.OrdinalPosition < b.OrdinalPosition
		})
	}

	return result
}

// BuildIndexMap keys the user-schema secondary indexes by index name.
func BuildIndexMap(indexes []*InformationSchemaIndex, userSchema string) map[string]*InformationSchemaIndex {
	secondary := lo.Filter(indexes, func(item *InformationSchemaIndex, _ int) bool {
		return item.TableSchema == userSchema && item.IndexName != "PRIMARY_KEY"
	})
	return lo.KeyBy(secondary, func(item *InformationSchemaIndex) string {
		return item.IndexName
	})
}

// BuildTableMap keys the user-schema tables by table name.
func BuildTableMap(tables []*InformationSchemaTable, userSchema string) map[string]*InformationSchemaTable {
	return lo.KeyBy(lo.Filter(tables, func(item *InformationSchemaTable, _ int) bool {
		return item.TableSchema == userSchema
	}), func(item *InformationSchemaTable) string {
		return item.TableName
	})
}
