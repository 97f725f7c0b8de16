package api

import (
	"context"
	"io"
	"math/rand"
	"sort"
	"sync"
	"time"

	"babel/internal/dsl"
	"babel/internal/stores"

	"github.com/oklog/ulid/v2"
)

// StoredTable is one definition held by the service, with the revision id
// minted when it was last stored.
type StoredTable struct {
	Table    *dsl.Table `json:"-"`
	Name     string     `json:"name"`
	Tier     dsl.Tier   `json:"tier"`
	Revision string     `json:"revision"`
	StoredAt time.Time  `json:"stored_at"`
}

// Storage is the in-memory definition catalog. It doubles as the registry
// for dependency resolution: stored key sections answer PrimaryKeys.
type Storage struct {
	mu      sync.RWMutex
	Tables  map[string]*StoredTable
	Stores  stores.Catalog
	entropy io.Reader
}

// NewStorage seeds the catalog with pre-loaded tables and the store
// catalog.
func NewStorage(tables map[string]*dsl.Table, catalog stores.Catalog) *Storage {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	s := &Storage{
		Tables:  make(map[string]*StoredTable, len(tables)),
		Stores:  catalog,
		entropy: ulid.Monotonic(src, 0),
	}
	for name, t := range tables {
		s.Tables[name] = &StoredTable{
			Table:    t,
			Name:     name,
			Tier:     t.Tier,
			Revision: s.newID(),
			StoredAt: time.Now().UTC(),
		}
	}
	return s
}

func (s *Storage) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// Put stores a parsed table under its name, replacing any previous
// revision.
func (s *Storage) Put(t *dsl.Table) *StoredTable {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &StoredTable{
		Table:    t,
		Name:     t.Name,
		Tier:     t.Tier,
		Revision: s.newID(),
		StoredAt: time.Now().UTC(),
	}
	s.Tables[t.Name] = st
	return st
}

// Get looks a stored table up by name, case-insensitively.
func (s *Storage) Get(name string) (*StoredTable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	canonical, ok := s.normalizeName(name)
	if !ok {
		return nil, false
	}
	return s.Tables[canonical], true
}

// Delete removes a stored table; it reports whether anything was removed.
func (s *Storage) Delete(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	canonical, ok := s.normalizeName(name)
	if !ok {
		return false
	}
	delete(s.Tables, canonical)
	return true
}

// List returns the stored tables ordered by name.
func (s *Storage) List() []*StoredTable {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*StoredTable, 0, len(s.Tables))
	for _, st := range s.Tables {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// PrimaryKeys implements dsl.KeyLookup over the stored definitions.
// Attribute key rows contribute their own name; dependency key rows
// resolve recursively. An unknown name, or a dependency cycle, is a
// resolution failure.
func (s *Storage) PrimaryKeys(_ context.Context, table string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.primaryKeys(table, make(map[string]bool))
}

func (s *Storage) primaryKeys(table string, seen map[string]bool) ([]string, error) {
	canonical, ok := s.normalizeName(table)
	if !ok || seen[canonical] {
		return nil, &dsl.ResolutionError{Table: table}
	}
	seen[canonical] = true

	var keys []string
	have := make(map[string]bool)
	add := func(k string) {
		if !have[k] {
			have[k] = true
			keys = append(keys, k)
		}
	}

	for _, row := range s.Tables[canonical].Table.Keys {
		switch r := row.(type) {
		case dsl.Attribute:
			add(r.Name)
		case dsl.Dependency:
			parent, err := s.primaryKeys(r.Target, seen)
			if err != nil {
				return nil, err
			}
			for _, k := range parent {
				add(k)
			}
		}
	}
	return keys, nil
}
