package dsl

import (
	"regexp"
	"strings"
)

// Row is one line of a definition body: a comment, an attribute or a
// dependency. The variant set is closed; every consumer switches over the
// three concrete types so no line can fall through unclassified.
type Row interface {
	// Make renders the row back to its single-line text form.
	Make() string

	row()
}

const (
	commentFormat    = "# {comment}"
	dependencyFormat = "-> {table}"
	attributeFormat  = "name [= default] : type [# comment]"
)

var (
	commentRe    = regexp.MustCompile(`^# (.*)$`)
	dependencyRe = regexp.MustCompile(`^->\s*([A-Za-z_][A-Za-z0-9_.]*)\s*$`)
	indexRe      = regexp.MustCompile(`(?i)^(unique\s+)?index[^:]*$`)
	attributeRe  = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*(?:=\s*([^:]*?)\s*)?:\s*([^#]*?)\s*(?:#\s*(.*?)\s*)?$`)
)

// Comment is a free-text line. At most one attaches to a table, as its
// leading line.
type Comment struct {
	Text string
}

func (c Comment) Make() string { return "# " + c.Text }
func (c Comment) row()         {}

// ParseComment parses a "# text" line.
func ParseComment(line string) (Comment, error) {
	m := commentRe.FindStringSubmatch(line)
	if m == nil {
		return Comment{}, parseErr(MalformedComment, commentFormat, line)
	}
	return Comment{Text: m[1]}, nil
}

// Dependency references another table; its primary-key columns are copied
// into the enclosing section at resolution time, not known in isolation.
type Dependency struct {
	Target string
}

func (d Dependency) Make() string { return "-> " + d.Target }
func (d Dependency) row()         {}

// ParseDependency parses a "-> Table" line.
func ParseDependency(line string) (Dependency, error) {
	m := dependencyRe.FindStringSubmatch(line)
	if m == nil {
		return Dependency{}, parseErr(MalformedRow, dependencyFormat, line)
	}
	return Dependency{Target: m[1]}, nil
}

// Attribute declares a column: a name, a data type, and optionally a
// default literal and a trailing comment. The default stays an untyped
// string; it is never coerced to the declared type.
type Attribute struct {
	Name    string
	Type    DataType
	Default string
	Comment string
}

func (a Attribute) Make() string {
	switch {
	case a.Comment != "" && a.Default != "":
		return a.Name + " = " + a.Default + " : " + a.Type.Make() + " # " + a.Comment
	case a.Comment != "":
		return a.Name + " : " + a.Type.Make() + " # " + a.Comment
	case a.Default != "":
		return a.Name + " = " + a.Default + " : " + a.Type.Make()
	default:
		return a.Name + " : " + a.Type.Make()
	}
}

func (a Attribute) row() {}

// ParseAttribute parses "name [= default] : type [# comment]".
// Index declarations are recognized and rejected as unsupported rather
// than silently dropped or misread as attributes.
func ParseAttribute(line string) (Attribute, error) {
	if indexRe.MatchString(line) {
		return Attribute{}, parseErr(UnsupportedConstruct, attributeFormat, line)
	}

	m := attributeRe.FindStringSubmatch(line)
	if m == nil {
		return Attribute{}, parseErr(MalformedRow, attributeFormat, line)
	}

	typ, err := ParseType(m[3])
	if err != nil {
		return Attribute{}, err
	}

	return Attribute{
		Name:    m[1],
		Type:    typ,
		Default: m[2],
		Comment: m[4],
	}, nil
}

// ParseRow classifies one non-blank, non-comment line and parses it.
// The dependency marker wins the dispatch outright: a line containing
// "->" is never attempted against the attribute grammar.
func ParseRow(line string) (Row, error) {
	if strings.Contains(line, "->") {
		d, err := ParseDependency(line)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	a, err := ParseAttribute(line)
	if err != nil {
		return nil, err
	}
	return a, nil
}
