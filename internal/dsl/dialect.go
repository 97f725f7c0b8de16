package dsl

import "strings"

// Lang is a target declaration dialect. Both dialects wrap the identical
// definition body and differ only in the surrounding declaration.
type Lang string

const (
	LangPython Lang = "python"
	LangMatlab Lang = "matlab"
)

// ParseLang maps a dialect name, case-insensitively, to its Lang. There is
// no fallback dialect: an unknown name is an UnsupportedDialectError.
func ParseLang(name string) (Lang, error) {
	switch Lang(strings.ToLower(name)) {
	case LangPython:
		return LangPython, nil
	case LangMatlab:
		return LangMatlab, nil
	}
	return "", &UnsupportedDialectError{Lang: name}
}

// Make renders the full dialect-wrapped declaration for the table.
func (t *Table) Make(lang Lang) (string, error) {
	switch lang {
	case LangPython:
		return t.makePython(), nil
	case LangMatlab:
		return t.makeMatlab(), nil
	}
	return "", &UnsupportedDialectError{Lang: string(lang)}
}

func (t *Table) makePython() string {
	var b strings.Builder
	b.WriteString("@schema\n")
	b.WriteString("class " + t.Name + "(" + t.Tier.BaseClass() + "):\n")
	b.WriteString("    definition = \"\"\"\n")
	for _, line := range strings.Split(strings.TrimRight(t.Definition(), "\n"), "\n") {
		b.WriteString("    " + line + "\n")
	}
	b.WriteString("    \"\"\"\n")
	return b.String()
}

func (t *Table) makeMatlab() string {
	var b strings.Builder
	b.WriteString("%{\n")
	b.WriteString(t.Definition())
	b.WriteString("%}\n\n")
	b.WriteString("classdef " + t.Name + " < " + t.Tier.BaseClass() + "\nend\n")
	return b.String()
}
