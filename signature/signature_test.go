package signature

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePlain(t *testing.T) {
	require := require.New(t)
	tbl := Default()

	require.Equal([]string{"x", "y"}, tbl.Normalize("(int x, double y)"))
	require.Equal([]string{""}, tbl.Normalize("()"))
	require.Equal("()", Format(tbl.Normalize("()")))
}

func TestNormalizeDefaults(t *testing.T) {
	require := require.New(t)
	tbl := Default()

	require.Equal([]string{"x=5", `y="a"`},
		tbl.Normalize(`(int x=5, std::string y="a")`))
	require.Equal([]string{"on=True", "off=False"},
		tbl.Normalize("(bool on=true, bool off=false)"))
	require.Equal([]string{"loci=[]", "opts={}"},
		tbl.Normalize("(vectorlu loci=vectorlu, dictionary opts=dictionary)"))
	// Constructor-call defaults are cut at the opening parenthesis.
	require.Equal([]string{"subPop=[]"},
		tbl.Normalize("(vectorlu subPop=vectorlu(10))"))
}

func TestNormalizeReferenceMarkers(t *testing.T) {
	require := require.New(t)
	require.Equal([]string{"pop"}, Default().Normalize("(population &pop)"))
	require.Equal([]string{"pop"}, Default().Normalize("(const population &pop)"))
}

func TestNormalizeTrailingQualifiers(t *testing.T) {
	require := require.New(t)
	tbl := Default()

	for _, raw := range []string{
		"(int x)const",
		"(int x) const",
		"(int x)    const",
	} {
		require.Equal([]string{"x"}, tbl.Normalize(raw), "raw=%q", raw)
	}
}

func TestNormalizeCompoundLiteralIdiom(t *testing.T) {
	require := require.New(t)
	tbl := Default()

	// The embedded comma must not split the argument, and must be
	// restored exactly once regardless of surrounding whitespace.
	got := tbl.Normalize("(vectorstr x=vectorstr(TAG_InheritFields, TAG_InheritFields+2))")
	require.Equal([]string{`x=["paternal_tag", "maternal_tag"]`}, got)

	got = tbl.Normalize("(vectorstr fields=vectorstr(ASC_AS_Fields, ASC_AS_Fields+2), bool b=true)")
	require.Equal([]string{`fields=["father_idx", "mother_idx"]`, "b=True"}, got)

	got = tbl.Normalize(`(vectorstr f=vectorstr(1, "qtrait"))`)
	require.Equal([]string{`f=["qtrait"]`}, got)
}

func TestNormalizeOrderMatters(t *testing.T) {
	// vectorl is a prefix of vectorlu; the longer rule must win.
	require.Equal(t, []string{"a=[]"},
		Default().Normalize("(vectorlu a=vectorlu)"))
}

func TestNormalizeBestEffort(t *testing.T) {
	require := require.New(t)
	tbl := Default()

	// Multiple '=' in one fragment falls back to name extraction.
	got := tbl.Normalize("(weird x=a=b)")
	require.Equal([]string{"x"}, got)

	// Garbage still yields one descriptor per comma group.
	require.Len(tbl.Normalize("(,,)"), 3)
}
