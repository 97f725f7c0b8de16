package dsl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userDefinition = `
# database users
username : varchar(20)   # unique user name
---
first_name : varchar(30)
last_name  : varchar(30)
role : enum('admin', 'contributor', 'viewer')
`

func TestParseTable(t *testing.T) {
	tab, err := ParseTable("User", userDefinition, "")
	require.NoError(t, err)

	assert.Equal(t, "User", tab.Name)
	assert.Equal(t, Manual, tab.Tier)
	require.NotNil(t, tab.Comment)
	assert.Equal(t, "database users", tab.Comment.Text)

	require.Len(t, tab.Keys, 1)
	key := tab.Keys[0].(Attribute)
	assert.Equal(t, "username", key.Name)
	assert.Equal(t, "unique user name", key.Comment)

	require.Len(t, tab.Attributes, 3)
	role := tab.Attributes[2].(Attribute)
	assert.Equal(t, "enum", role.Type.Kind)
	assert.Equal(t, []string{"'admin'", "'contributor'", "'viewer'"}, role.Type.Args)
}

func TestParseTableDependencies(t *testing.T) {
	tab, err := ParseTable("Scan", `
-> Session
scan_id : smallint unsigned
---
-> Equipment
depth = 0 : int # microns from surface
`, "Imported")
	require.NoError(t, err)

	assert.Equal(t, Imported, tab.Tier)
	require.Len(t, tab.Keys, 2)
	assert.Equal(t, Dependency{Target: "Session"}, tab.Keys[0])
	require.Len(t, tab.Attributes, 2)
	assert.Equal(t, Dependency{Target: "Equipment"}, tab.Attributes[0])
}

func TestParseTableTierDefaultAndUnknown(t *testing.T) {
	tab, err := ParseTable("Foo", "id : int\n---\n", "")
	require.NoError(t, err)
	assert.Equal(t, Manual, tab.Tier)

	_, err = ParseTable("Foo", "id : int\n---\n", "Ephemeral")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, UnknownTier, perr.Kind)
	assert.Equal(t, "Ephemeral", perr.Input)
}

// The first failing line aborts the parse; the valid first key is never
// visible in a partial result.
func TestParseTableFailFast(t *testing.T) {
	tab, err := ParseTable("Bad", `
subject_id : int
second key line without a colon
---
name : varchar(20)
`, "")
	assert.Nil(t, tab)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, MalformedRow, perr.Kind)
	assert.Equal(t, "second key line without a colon", perr.Input)
}

func TestParseTableStrayComment(t *testing.T) {
	_, err := ParseTable("Bad", `
# leading comment
id : int
# interleaved comment
---
`, "")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, MalformedRow, perr.Kind)
	assert.Equal(t, "# interleaved comment", perr.Input)
}

func TestParseTableIndexUnsupported(t *testing.T) {
	_, err := ParseTable("Bad", "id : int\n---\nunique index (a, b)\n", "")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, UnsupportedConstruct, perr.Kind)
}

func TestParseTableEmptyKeys(t *testing.T) {
	_, err := ParseTable("Bad", "---\nname : varchar(20)\n", "")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, MalformedRow, perr.Kind)
}

func TestDefinitionRoundTrip(t *testing.T) {
	tab, err := ParseTable("User", userDefinition, "")
	require.NoError(t, err)

	want := `# database users
username : varchar(20) # unique user name
---
first_name : varchar(30)
last_name : varchar(30)
role : enum('admin','contributor','viewer')
`
	assert.Equal(t, want, tab.Definition())

	again, err := ParseTable("User", tab.Definition(), "")
	require.NoError(t, err)
	assert.Equal(t, tab, again)
}

// A table with no secondary attributes still renders its divider.
func TestDefinitionEmptyAttributes(t *testing.T) {
	tab, err := ParseTable("Subject", "subject_id : int\n", "")
	require.NoError(t, err)
	assert.Equal(t, "subject_id : int\n---\n", tab.Definition())
}

func TestMakePython(t *testing.T) {
	tab, err := ParseTable("User", userDefinition, "")
	require.NoError(t, err)

	out, err := tab.Make(LangPython)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "@schema\nclass User(dj.Manual):\n"))
	assert.Contains(t, out, "    definition = \"\"\"\n")
	assert.Contains(t, out, "    # database users\n")
	assert.Contains(t, out, "    ---\n")
	assert.Contains(t, out, "    role : enum('admin','contributor','viewer')\n")
}

func TestMakeMatlab(t *testing.T) {
	tab, err := ParseTable("Session", "-> Subject\nsession_id : int\n---\nstart : datetime\n", "Lookup")
	require.NoError(t, err)

	out, err := tab.Make(LangMatlab)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "%{\n-> Subject\n"))
	assert.Contains(t, out, "\n%}\n\nclassdef Session < dj.Lookup\nend\n")
}

func TestMakeUnsupportedDialect(t *testing.T) {
	tab, err := ParseTable("User", "id : int\n---\n", "")
	require.NoError(t, err)

	_, err = tab.Make(Lang("rust"))
	var derr *UnsupportedDialectError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "rust", derr.Lang)

	_, err = ParseLang("rust")
	require.ErrorAs(t, err, &derr)
}
