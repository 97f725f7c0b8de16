package api

import (
	"testing"

	"babel/internal/dsl"
	"babel/internal/stores"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Code)
	}
	return out
}

func TestLintClean(t *testing.T) {
	s := NewStorage(map[string]*dsl.Table{
		"Subject": mustTable(t, "Subject", "subject_id : int unsigned\n---\nspecies : varchar(60)\n", ""),
	}, stores.Catalog{})
	assert.Empty(t, s.Lint())
}

func TestLintFindings(t *testing.T) {
	s := NewStorage(map[string]*dsl.Table{
		"Odd": mustTable(t, "Odd", `
name : varchar(20) unsigned
---
name : varchar(30)
state : enum
scan : filepath@missing
-> Ghost
`, ""),
	}, stores.Catalog{"raw": {Name: "raw"}})

	issues := s.Lint()
	got := codes(issues)
	assert.ElementsMatch(t, []string{
		"unsigned_non_numeric",
		"duplicate_attribute",
		"enum_without_members",
		"store_not_configured",
		"dependency_unknown",
	}, got)

	for _, i := range issues {
		assert.Equal(t, "Odd", i.Table)
		require.NotEmpty(t, i.Message)
	}
}

func TestLintConfiguredStore(t *testing.T) {
	s := NewStorage(map[string]*dsl.Table{
		"Scan": mustTable(t, "Scan", "scan_id : int\n---\nimage : filepath@raw\n", ""),
	}, stores.Catalog{"raw": {Name: "raw", Protocol: "s3"}})
	assert.Empty(t, s.Lint())
}
