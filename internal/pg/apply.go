package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// duplicate_object and duplicate_table: re-running DDL against an existing
// schema is normal, not a failure.
var duplicateCodes = map[string]struct{}{
	"42710": {},
	"42P07": {},
}

// ApplyDDL executes a sort-key -> sql map in key order. Statements are
// expected to be idempotent (create ... if not exists); duplicates from
// re-applied constraints are skipped, anything else aborts.
func ApplyDDL(db *sql.DB, ddl map[string]string) error {
	keys := make([]string, 0, len(ddl))
	for k := range ddl {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, k := range keys {
		sqlText := strings.TrimSpace(ddl[k])
		if sqlText == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, sqlText); err != nil {
			// pgx/stdlib surfaces *pgconn.PgError
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				if _, dup := duplicateCodes[pgErr.Code]; dup {
					log.Printf("DDL skipped (already exists): %s (%s)", k, strings.TrimSpace(pgErr.Message))
					continue
				}
			}
			return fmt.Errorf("DDL apply failed (%s): %w", k, err)
		}
	}
	return nil
}
