package api

import (
	"fmt"
	"sort"

	"babel/internal/dsl"
)

// Issue is one catalog-level finding. Lint flags semantic oddities the
// grammar deliberately accepts; it never rejects a definition.
type Issue struct {
	Table   string `json:"table"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Lint checks every stored definition against the store catalog and the
// rest of the catalog.
func (s *Storage) Lint() []Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var issues []Issue

	for name, st := range s.Tables {
		seen := make(map[string]bool)

		rows := make([]dsl.Row, 0, len(st.Table.Keys)+len(st.Table.Attributes))
		rows = append(rows, st.Table.Keys...)
		rows = append(rows, st.Table.Attributes...)

		for _, row := range rows {
			switch r := row.(type) {
			case dsl.Attribute:
				if seen[r.Name] {
					issues = append(issues, Issue{
						Table: name, Field: r.Name, Code: "duplicate_attribute",
						Message: fmt.Sprintf("attribute %q declared more than once", r.Name),
					})
				}
				seen[r.Name] = true

				if r.Type.Unsigned && !r.Type.Numeric() {
					issues = append(issues, Issue{
						Table: name, Field: r.Name, Code: "unsigned_non_numeric",
						Message: fmt.Sprintf("unsigned has no meaning for %s", r.Type.Kind),
					})
				}
				if r.Type.Kind == "enum" && len(r.Type.Args) == 0 {
					issues = append(issues, Issue{
						Table: name, Field: r.Name, Code: "enum_without_members",
						Message: "enum declares no members",
					})
				}
				if r.Type.Kind == dsl.KindFilepath && len(r.Type.Args) > 0 && !s.Stores.Has(r.Type.Args[0]) {
					issues = append(issues, Issue{
						Table: name, Field: r.Name, Code: "store_not_configured",
						Message: fmt.Sprintf("store %q is not in the store catalog", r.Type.Args[0]),
					})
				}
			case dsl.Dependency:
				if _, ok := s.normalizeName(r.Target); !ok {
					issues = append(issues, Issue{
						Table: name, Code: "dependency_unknown",
						Message: fmt.Sprintf("dependency target %q is not stored", r.Target),
					})
				}
			}
		}
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Table != issues[j].Table {
			return issues[i].Table < issues[j].Table
		}
		if issues[i].Field != issues[j].Field {
			return issues[i].Field < issues[j].Field
		}
		return issues[i].Code < issues[j].Code
	})
	return issues
}
