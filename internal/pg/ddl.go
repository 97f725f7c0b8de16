package pg

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"babel/internal/dsl"

	"github.com/go-openapi/inflect"
)

// TableName maps a definition name to its SQL identifier the same way the
// source language bindings do: CamelCase to snake_case.
func TableName(name string) string {
	return inflect.Underscore(name)
}

func sqlIdent(s string) string { return `"` + strings.ToLower(s) + `"` }

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// columnType maps a parsed data type to its Postgres type. Unsigned
// integers widen one step since Postgres has no unsigned integers.
func columnType(t dsl.DataType) string {
	switch t.Kind {
	case "tinyint", "smallint":
		if t.Unsigned {
			return "integer"
		}
		return "smallint"
	case "mediumint", "int":
		if t.Unsigned {
			return "bigint"
		}
		return "integer"
	case "float":
		return "real"
	case "double":
		return "double precision"
	case "decimal":
		if len(t.Args) > 0 {
			return "numeric(" + strings.Join(t.Args, ",") + ")"
		}
		return "numeric"
	case "char", "varchar":
		if len(t.Args) > 0 {
			return t.Kind + "(" + t.Args[0] + ")"
		}
		return "text"
	case "enum":
		return "text"
	case "date":
		return "date"
	case "time":
		return "time"
	case "datetime":
		return "timestamp"
	case "timestamp":
		return "timestamp with time zone"
	case "blob", "tinyblob", "mediumblob", "longblob":
		return "bytea"
	default:
		// attach, filepath: stored as a reference into the external store
		return "text"
	}
}

type fkStmt struct {
	table    string
	name     string
	cols     []string
	refTable string
	refCols  []string
}

// GenerateDDL returns a map of sort-key -> idempotent SQL for every table.
// Dependency rows expand, via the registry lookup, into the target's
// primary-key columns; key-section dependencies additionally become part of
// the primary key and a phase-B foreign key, applied after every table
// exists.
func GenerateDDL(ctx context.Context, tables map[string]*dsl.Table, lookup dsl.KeyLookup) (map[string]string, error) {
	out := make(map[string]string, len(tables)+1)

	names := make([]string, 0, len(tables))
	for n := range tables {
		names = append(names, n)
	}
	sort.Strings(names)

	var fks []fkStmt

	for _, name := range names {
		t := tables[name]
		tbl := TableName(name)

		var cols []string
		var pk []string
		var comments []string

		addRow := func(row dsl.Row, inKeys bool) error {
			switch r := row.(type) {
			case dsl.Attribute:
				null := " null"
				if inKeys {
					null = " not null"
				}
				def := ""
				if r.Default != "" && !strings.EqualFold(r.Default, "null") {
					def = " default " + quoteLiteral(strings.Trim(r.Default, `"'`))
				}
				cols = append(cols, sqlIdent(r.Name)+" "+columnType(r.Type)+null+def)
				if inKeys {
					pk = append(pk, sqlIdent(r.Name))
				}
				if r.Comment != "" {
					comments = append(comments, fmt.Sprintf("comment on column %s.%s is %s;",
						sqlIdent(tbl), sqlIdent(r.Name), quoteLiteral(r.Comment)))
				}
			case dsl.Dependency:
				keys, err := r.ResolveKeys(ctx, lookup)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				var idents []string
				for _, k := range keys {
					cols = append(cols, sqlIdent(k)+" text not null")
					idents = append(idents, sqlIdent(k))
					if inKeys {
						pk = append(pk, sqlIdent(k))
					}
				}
				fks = append(fks, fkStmt{
					table:    tbl,
					name:     strings.ToLower(tbl + "_" + TableName(r.Target) + "_fk"),
					cols:     idents,
					refTable: TableName(r.Target),
					refCols:  idents,
				})
			}
			return nil
		}

		for _, row := range t.Keys {
			if err := addRow(row, true); err != nil {
				return nil, err
			}
		}
		for _, row := range t.Attributes {
			if err := addRow(row, false); err != nil {
				return nil, err
			}
		}

		var b strings.Builder
		fmt.Fprintf(&b, "create table if not exists %s (\n  %s,\n  primary key (%s)\n);\n",
			sqlIdent(tbl), strings.Join(cols, ",\n  "), strings.Join(pk, ", "))
		if t.Comment != nil {
			fmt.Fprintf(&b, "comment on table %s is %s;\n", sqlIdent(tbl), quoteLiteral(t.Comment.Text))
		}
		for _, c := range comments {
			b.WriteString(c + "\n")
		}
		out["100_"+tbl] = b.String()
	}

	// Foreign keys only after every referenced table exists.
	var b strings.Builder
	for _, fk := range fks {
		fmt.Fprintf(&b, "alter table %s add constraint %s foreign key (%s) references %s (%s);\n",
			sqlIdent(fk.table), sqlIdent(fk.name),
			strings.Join(fk.cols, ", "),
			sqlIdent(fk.refTable), strings.Join(fk.refCols, ", "))
	}
	if b.Len() > 0 {
		out["200_foreign_keys"] = b.String()
	}

	return out, nil
}
