package dsl

import "strings"

// Table is the parsed form of one definition body: the leading comment,
// the primary-key section and the secondary-attribute section. Row order
// within each section is significant and preserved verbatim. Tables are
// built once and read-only after that; editing means building a new one.
type Table struct {
	Name       string
	Tier       Tier
	Comment    *Comment
	Keys       []Row
	Attributes []Row
}

const divider = "---"

// ParseTable assembles a Table from a definition body. tier may be empty,
// which defaults to Manual. The first failing line aborts the whole parse
// and its error surfaces unchanged; there is no partial Table.
func ParseTable(name, definition, tier string) (*Table, error) {
	tr, err := ParseTier(tier)
	if err != nil {
		return nil, err
	}

	t := &Table{Name: name, Tier: tr}
	passedKeys := false

	for _, raw := range strings.Split(definition, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			// Only the first comment line, before any row, is the table
			// comment. A bare comment anywhere else is a malformed row.
			if t.Comment == nil && len(t.Keys) == 0 && !passedKeys {
				c, err := ParseComment(line)
				if err != nil {
					return nil, err
				}
				t.Comment = &c
				continue
			}
			return nil, parseErr(MalformedRow, attributeFormat, line)
		}

		if strings.Contains(line, divider) {
			passedKeys = true
			continue
		}

		row, err := ParseRow(line)
		if err != nil {
			return nil, err
		}
		if passedKeys {
			t.Attributes = append(t.Attributes, row)
		} else {
			t.Keys = append(t.Keys, row)
		}
	}

	if len(t.Keys) == 0 {
		return nil, parseErr(MalformedRow, "at least one key row before the --- divider", definition)
	}

	return t, nil
}

// Definition renders the canonical body text: comment, key rows, divider,
// attribute rows. An empty attribute section still renders the divider.
// Both declaration dialects embed this body verbatim.
func (t *Table) Definition() string {
	var b strings.Builder
	if t.Comment != nil {
		b.WriteString(t.Comment.Make())
		b.WriteByte('\n')
	}
	for _, k := range t.Keys {
		b.WriteString(k.Make())
		b.WriteByte('\n')
	}
	b.WriteString(divider)
	b.WriteByte('\n')
	for _, a := range t.Attributes {
		b.WriteString(a.Make())
		b.WriteByte('\n')
	}
	return b.String()
}
