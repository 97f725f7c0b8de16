package dsl

import "context"

// KeyLookup is the single outward contract of this package: a read-only,
// name-to-key-list lookup against whatever registry the host provides. The
// grammar never opens or manages the registry itself.
type KeyLookup interface {
	// PrimaryKeys returns the ordered primary-key column names of the
	// named table, or a *ResolutionError when the name is unknown.
	PrimaryKeys(ctx context.Context, table string) ([]string, error)
}

// ResolveKeys asks the registry for the primary-key columns this
// dependency stands for.
func (d Dependency) ResolveKeys(ctx context.Context, reg KeyLookup) ([]string, error) {
	return reg.PrimaryKeys(ctx, d.Target)
}
