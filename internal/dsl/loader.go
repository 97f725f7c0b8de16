package dsl

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var headerRe = regexp.MustCompile(`^table\s+([A-Za-z_][A-Za-z0-9_]*)\s*(?:\(\s*([A-Za-z]+)\s*\))?\s*:\s*$`)

// LoadTables reads one .dsl file: a sequence of `table Name(Tier):`
// headers, each followed by the definition body lines for that table.
// The tier is optional and defaults to Manual.
func LoadTables(path string) ([]*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var tables []*Table

	var name, tier string
	var body []string
	started := false

	flush := func() error {
		if !started {
			return nil
		}
		t, err := ParseTable(name, strings.Join(body, "\n"), tier)
		if err != nil {
			return fmt.Errorf("table %s: %w", name, err)
		}
		tables = append(tables, t)
		return nil
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if m := headerRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			if err := flush(); err != nil {
				return nil, err
			}
			name, tier = m[1], m[2]
			body = body[:0]
			started = true
			continue
		}
		if !started {
			// Anything above the first header is ignored, so files can
			// open with free-form front matter.
			continue
		}
		body = append(body, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return tables, nil
}

// LoadAllTables walks root for .dsl files and returns every table keyed by
// name. A name that appears twice, in one file or across files, is an
// error.
func LoadAllTables(root string) (map[string]*Table, error) {
	result := make(map[string]*Table)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".dsl") {
			return nil
		}

		tables, err := LoadTables(path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		for _, t := range tables {
			if _, exists := result[t.Name]; exists {
				return fmt.Errorf("duplicate table %q (file: %s)", t.Name, path)
			}
			result[t.Name] = t
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
