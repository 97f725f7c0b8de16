package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseComment(t *testing.T) {
	c, err := ParseComment("# database users")
	require.NoError(t, err)
	assert.Equal(t, "database users", c.Text)
	assert.Equal(t, "# database users", c.Make())
}

func TestParseCommentMalformed(t *testing.T) {
	for _, in := range []string{"#no space", "not a comment", "#"} {
		_, err := ParseComment(in)
		var perr *ParseError
		require.ErrorAs(t, err, &perr, in)
		assert.Equal(t, MalformedComment, perr.Kind, in)
		assert.Equal(t, in, perr.Input, in)
	}
}

func TestParseDependency(t *testing.T) {
	d, err := ParseDependency("-> Session")
	require.NoError(t, err)
	assert.Equal(t, "Session", d.Target)
	assert.Equal(t, "-> Session", d.Make())
}

func TestParseAttributeForms(t *testing.T) {
	cases := []struct {
		in   string
		want Attribute
	}{
		{
			"username : varchar(20)",
			Attribute{Name: "username", Type: DataType{Kind: "varchar", Args: []string{"20"}}},
		},
		{
			"age : int # years old",
			Attribute{Name: "age", Type: DataType{Kind: "int"}, Comment: "years old"},
		},
		{
			"count = 0 : int unsigned",
			Attribute{Name: "count", Type: DataType{Kind: "int", Unsigned: true}, Default: "0"},
		},
		{
			"role = 'viewer' : enum('admin','viewer') # access level",
			Attribute{
				Name:    "role",
				Type:    DataType{Kind: "enum", Args: []string{"'admin'", "'viewer'"}},
				Default: "'viewer'",
				Comment: "access level",
			},
		},
		{
			"scan = null : filepath@raw",
			Attribute{Name: "scan", Type: DataType{Kind: "filepath", Args: []string{"raw"}}, Default: "null"},
		},
	}
	for _, c := range cases {
		got, err := ParseAttribute(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

// Parsed rows re-render in the fixed field order with canonical spacing.
func TestAttributeRoundTrip(t *testing.T) {
	a, err := ParseAttribute("age : int # years old")
	require.NoError(t, err)
	assert.Equal(t, "age : int # years old", a.Make())

	a, err = ParseAttribute("age = 0 : int # years old")
	require.NoError(t, err)
	assert.Equal(t, "age = 0 : int # years old", a.Make())

	a, err = ParseAttribute("age=0:int")
	require.NoError(t, err)
	assert.Equal(t, "age = 0 : int", a.Make())
}

func TestParseAttributeMalformed(t *testing.T) {
	for _, in := range []string{"just words", "no type :", ": int", "name :: int"} {
		_, err := ParseAttribute(in)
		var perr *ParseError
		require.ErrorAs(t, err, &perr, in)
		assert.Contains(t, []ErrKind{MalformedRow, UnrecognizedType}, perr.Kind, in)
	}
}

func TestParseAttributeIndexUnsupported(t *testing.T) {
	for _, in := range []string{"index (a, b)", "unique index (a)", "UNIQUE INDEX (a, b)"} {
		_, err := ParseAttribute(in)
		var perr *ParseError
		require.ErrorAs(t, err, &perr, in)
		assert.Equal(t, UnsupportedConstruct, perr.Kind, in)
		assert.Equal(t, in, perr.Input, in)
	}
}

// A line with the arrow marker is classified as a dependency even when a
// colon shows up in trailing text; it never reaches the attribute grammar.
func TestRowDispatchPrecedence(t *testing.T) {
	row, err := ParseRow("-> Session")
	require.NoError(t, err)
	assert.IsType(t, Dependency{}, row)

	_, err = ParseRow("-> Session : trailing")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, dependencyFormat, perr.Format)
}
