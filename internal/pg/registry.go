package pg

import (
	"context"
	"database/sql"

	"babel/internal/dsl"
)

// Registry resolves dependency targets against a live database. It is the
// external collaborator behind dsl.KeyLookup: one read-only, name-to-keys
// query, nothing else.
type Registry struct {
	db *sql.DB
}

func NewRegistry(db *sql.DB) *Registry {
	return &Registry{db: db}
}

const primaryKeysQuery = `
select kcu.column_name
from information_schema.table_constraints tc
join information_schema.key_column_usage kcu
  on kcu.constraint_name = tc.constraint_name
 and kcu.table_schema = tc.table_schema
where tc.constraint_type = 'PRIMARY KEY'
  and tc.table_name = $1
order by kcu.ordinal_position`

// PrimaryKeys returns the ordered primary-key columns of the named table.
// The name is a definition name; it maps to its SQL identifier the same
// way GenerateDDL maps it. A table the database does not know, or one
// without a primary key, is a resolution failure.
func (r *Registry) PrimaryKeys(ctx context.Context, table string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, primaryKeysQuery, TableName(table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return nil, err
		}
		keys = append(keys, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, &dsl.ResolutionError{Table: table}
	}
	return keys, nil
}
