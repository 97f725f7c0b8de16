package dsl

import (
	"regexp"
	"strings"
)

// KindFilepath is the one kind with its own parameter syntax: the store
// name attaches with '@' instead of parentheses.
const KindFilepath = "filepath"

// kinds is the closed set of recognized type keywords. Anything else is an
// UnrecognizedType error, never a passthrough.
var kinds = map[string]struct{}{
	"tinyint": {}, "smallint": {}, "mediumint": {}, "int": {},
	"enum": {}, "date": {}, "time": {}, "datetime": {}, "timestamp": {},
	"char": {}, "varchar": {}, "float": {}, "double": {}, "decimal": {},
	"blob": {}, "tinyblob": {}, "mediumblob": {}, "longblob": {},
	"attach": {}, KindFilepath: {},
}

// numericKinds are the kinds for which the unsigned flag is meaningful.
// The parser accepts unsigned on any kind (lint flags the mismatch).
var numericKinds = map[string]struct{}{
	"tinyint": {}, "smallint": {}, "mediumint": {}, "int": {},
	"float": {}, "double": {}, "decimal": {},
}

var parameterizedRe = regexp.MustCompile(`^([a-z]+)\((.*)\)$`)

const typeFormat = "datatype | datatype(args) | filepath@store [unsigned]"

// DataType is one parsed data-type token. Args stays as written: the
// grammar never coerces parameters to numbers, the same way it never
// coerces defaults to their declared type.
type DataType struct {
	Kind     string
	Args     []string
	Unsigned bool
}

// ParseType parses a trimmed type token such as "varchar(30)",
// "decimal(4,2)", "enum('a','b')", "int unsigned" or "filepath@raw".
func ParseType(input string) (DataType, error) {
	t := DataType{}
	s := strings.TrimSpace(input)

	if strings.HasSuffix(s, " unsigned") {
		t.Unsigned = true
		s = strings.TrimSuffix(s, " unsigned")
	}

	if i := strings.IndexByte(s, '@'); i >= 0 {
		kind, store := s[:i], s[i+1:]
		if kind != KindFilepath {
			return t, parseErr(UnrecognizedType, typeFormat, s)
		}
		t.Kind = kind
		t.Args = []string{store}
		return t, nil
	}

	if m := parameterizedRe.FindStringSubmatch(s); m != nil {
		kind, args := m[1], m[2]
		if _, ok := kinds[kind]; !ok {
			return t, parseErr(UnrecognizedType, typeFormat, s)
		}
		t.Kind = kind
		for _, a := range strings.Split(args, ",") {
			t.Args = append(t.Args, strings.TrimSpace(a))
		}
		return t, nil
	}

	if _, ok := kinds[s]; !ok {
		return t, parseErr(UnrecognizedType, typeFormat, s)
	}
	t.Kind = s
	return t, nil
}

// Make renders the type back to its canonical text form. Round-trip law:
// ParseType(t.Make()) equals t for any t produced by ParseType.
func (t DataType) Make() string {
	out := t.Kind
	if len(t.Args) > 0 {
		if t.Kind == KindFilepath {
			out += "@" + t.Args[0]
		} else {
			out += "(" + strings.Join(t.Args, ",") + ")"
		}
	}
	if t.Unsigned {
		out += " unsigned"
	}
	return out
}

// Numeric reports whether the unsigned flag makes sense for this kind.
func (t DataType) Numeric() bool {
	_, ok := numericKinds[t.Kind]
	return ok
}
