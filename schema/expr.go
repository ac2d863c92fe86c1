package schema

import (
	"fmt"

	"cloud.google.com/go/spanner/spansql"
)

// columnRefs collects the distinct column names of table referenced by expr,
// returned in table declaration order. The walk covers the expression forms
// produced by spansql for column defaults, generated columns and check
// constraints; literals and unrecognized node kinds contribute nothing.
func columnRefs(table *Table, expr spansql.Expr) []string {
	seen := make(map[string]bool)
	walkExpr(expr, func(name string) {
		seen[name] = true
	})
	var refs []string
	for _, c := range table.Columns {
		if seen[c.Name] {
			refs = append(refs, c.Name)
		}
	}
	return refs
}

func walkExpr(expr spansql.Expr, visit func(name string)) {
	switch e := expr.(type) {
	case nil:
	case spansql.ID:
		visit(string(e))
	case spansql.PathExp:
		if len(e) > 0 {
			visit(string(e[len(e)-1]))
		}
	case spansql.Paren:
		walkExpr(e.Expr, visit)
	case spansql.ArithOp:
		walkExpr(e.LHS, visit)
		walkExpr(e.RHS, visit)
	case spansql.LogicalOp:
		walkExpr(e.LHS, visit)
		walkExpr(e.RHS, visit)
	case spansql.ComparisonOp:
		walkExpr(e.LHS, visit)
		walkExpr(e.RHS, visit)
		walkExpr(e.RHS2, visit)
	case spansql.IsOp:
		walkExpr(e.LHS, visit)
	case spansql.InOp:
		walkExpr(e.LHS, visit)
		for _, sub := range e.RHS {
			walkExpr(sub, visit)
		}
	case spansql.Func:
		for _, arg := range e.Args {
			walkExpr(arg, visit)
		}
	case spansql.TypedExpr:
		walkExpr(e.Expr, visit)
	case spansql.Case:
		walkExpr(e.Expr, visit)
		for _, w := range e.WhenClauses {
			walkExpr(w.Cond, visit)
			walkExpr(w.Result, visit)
		}
		walkExpr(e.ElseResult, visit)
	}
}

// resolveViewColumns derives the output column list of a view from its
// query. Plain column references take the referenced column's name and type;
// any other select-list entry needs an alias and falls back to STRING(MAX).
func resolveViewColumns(s *Schema, name string, q spansql.Query) ([]ViewColumn, error) {
	var base *Table
	if len(q.Select.From) == 1 {
		if from, ok := q.Select.From[0].(spansql.SelectFromTable); ok {
			base = s.Table(string(from.Table))
		}
	}

	stringMax := spansql.Type{Base: spansql.String, Len: spansql.MaxLen}
	cols := make([]ViewColumn, 0, len(q.Select.List))
	for i, expr := range q.Select.List {
		var col ViewColumn
		if i < len(q.Select.ListAliases) && q.Select.ListAliases[i] != "" {
			col.Name = string(q.Select.ListAliases[i])
		}

		ref, isRef := expr.(spansql.ID)
		if col.Name == "" {
			if !isRef {
				return nil, fmt.Errorf("view %s: output column %d must have an alias", name, i+1)
			}
			col.Name = string(ref)
		}

		col.Type = stringMax
		if isRef && base != nil {
			if src := base.Column(string(ref)); src != nil {
				col.Type = src.Type
			}
		}
		cols = append(cols, col)
	}
	return cols, nil
}
