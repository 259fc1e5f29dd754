package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/sudorook/doxy2swig/config"
	"github.com/sudorook/doxy2swig/doxml"
)

func runOn(t *testing.T, cfg *config.Config, src string) []*Entry {
	t.Helper()
	root, err := doxml.Parse(strings.NewReader(src))
	require.NoError(t, err)
	entries, err := New(cfg).RunTree(root)
	require.NoError(t, err)
	return entries
}

const classDoc = `<doxygen>
<compounddef kind="class" prot="public">
  <compoundname>simuPOP::population</compoundname>
  <briefdescription><para>a simulated population</para></briefdescription>
  <detaileddescription><para>holds individuals across generations</para></detaileddescription>
  <sectiondef kind="public-func">
    <memberdef kind="function" prot="public">
      <name>population</name>
      <definition>simuPOP::population::population</definition>
      <argsstring>(ULONG size=0)</argsstring>
      <briefdescription><para>create a population</para></briefdescription>
    </memberdef>
    <memberdef kind="function" prot="public">
      <name>setAncestralDepth</name>
      <definition>void simuPOP::population::setAncestralDepth</definition>
      <argsstring>(int depth)</argsstring>
      <briefdescription><para>set how many generations to keep</para></briefdescription>
      <detaileddescription>
        <para>
          <parameterlist kind="param">
            <parametername>depth</parametername>
            <parameterdescription><para>number of generations</para></parameterdescription>
          </parameterlist>
        </para>
      </detaileddescription>
    </memberdef>
    <memberdef kind="function" prot="private">
      <name>secret</name>
      <definition>void simuPOP::population::secret</definition>
      <argsstring>()</argsstring>
    </memberdef>
    <memberdef kind="function" prot="public">
      <name>operator=</name>
      <definition>population &amp; simuPOP::population::operator=</definition>
      <argsstring>(const population &amp;)</argsstring>
    </memberdef>
  </sectiondef>
</compounddef>
</doxygen>`

func TestClassExtraction(t *testing.T) {
	require := require.New(t)

	entries := runOn(t, config.Default(), classDoc)
	require.Len(entries, 3)

	cls := entries[0]
	require.Equal("simuPOP::population", cls.Name)
	require.Equal(KindClass, cls.Kind)
	require.Equal("a simulated population", strings.TrimSpace(cls.Text(FieldDescription)))
	require.Contains(cls.Text(FieldDetails), "across generations")

	ctor := entries[1]
	require.Equal("simuPOP::population::population", ctor.Name)
	require.Equal(KindConstructor("simuPOP::population"), ctor.Kind)
	require.Equal("population(size=0)", ctor.Text(FieldUsage))

	mem := entries[2]
	require.Equal("simuPOP::population::setAncestralDepth", mem.Name)
	require.Equal(KindMember("simuPOP::population"), mem.Kind)
	require.Equal("x.setAncestralDepth(depth)", mem.Text(FieldUsage))
	require.Equal("(int depth)", mem.RawSig)
	require.Len(mem.Args, 1)
	require.Equal("depth", mem.Args[0].Name)
	require.Contains(mem.Args[0].Description, "number of generations")
}

func TestNonPublicCompoundSkipped(t *testing.T) {
	entries := runOn(t, config.Default(), `<doxygen>
<compounddef kind="class" prot="private">
  <compoundname>hidden</compoundname>
</compounddef>
</doxygen>`)
	require.Empty(t, entries)
}

func TestNamespaceFunction(t *testing.T) {
	require := require.New(t)

	entries := runOn(t, config.Default(), `<doxygen>
<compounddef kind="namespace" prot="public">
  <compoundname>simuPOP</compoundname>
  <sectiondef kind="func">
    <memberdef kind="function" prot="public">
      <name>LoadPopulation</name>
      <definition>population simuPOP::LoadPopulation</definition>
      <argsstring>(const string &amp;file)</argsstring>
      <briefdescription><para>load a population from file</para></briefdescription>
    </memberdef>
  </sectiondef>
</compounddef>
</doxygen>`)
	require.Len(entries, 1)
	require.Equal("simuPOP::LoadPopulation", entries[0].Name)
	require.Equal(KindGlobalFunction, entries[0].Kind)
	require.Equal("simuPOP::LoadPopulation(file)", entries[0].Text(FieldUsage))
}

func TestFileCompoundUsesInnerNamespace(t *testing.T) {
	require := require.New(t)

	entries := runOn(t, config.Default(), `<doxygen>
<compounddef kind="file" prot="public">
  <compoundname>utility.h</compoundname>
  <innernamespace>simuPOP</innernamespace>
  <sectiondef kind="func">
    <memberdef kind="function" prot="public">
      <name>TurnOnDebug</name>
      <definition>void simuPOP::TurnOnDebug</definition>
      <argsstring>(DBG_CODE code)</argsstring>
    </memberdef>
  </sectiondef>
</compounddef>
</doxygen>`)
	require.Len(entries, 1)
	require.Equal("simuPOP::TurnOnDebug", entries[0].Name)
}

func TestSimpleSectResetsToDetails(t *testing.T) {
	require := require.New(t)

	entries := runOn(t, config.Default(), `<doxygen>
<compounddef kind="class" prot="public">
  <compoundname>cls</compoundname>
  <detaileddescription>
    <para>first part.</para>
    <para><simplesect kind="note"><para>a note</para></simplesect></para>
    <para>second part.</para>
    <para><simplesect kind="version"><para>1.2.3</para></simplesect></para>
    <para>third part.</para>
  </detaileddescription>
</compounddef>
</doxygen>`)
	require.Len(entries, 1)
	e := entries[0]
	require.Equal("a note", strings.TrimSpace(e.Text("note")))
	// Details keeps accumulating across simple sections.
	require.Contains(e.Text(FieldDetails), "first part.")
	require.Contains(e.Text(FieldDetails), "second part.")
	require.Contains(e.Text(FieldDetails), "third part.")
	// Suppressed kinds leave no trace.
	require.NotContains(e.Text(FieldDetails), "1.2.3")
	require.NotContains(e.Fields, "version")
}

func TestSpacePaddedTags(t *testing.T) {
	require := require.New(t)

	entries := runOn(t, config.Default(), `<doxygen>
<compounddef kind="class" prot="public">
  <compoundname>cls</compoundname>
  <briefdescription><para>uses<bold>bold</bold>words</para></briefdescription>
</compounddef>
</doxygen>`)
	require.Len(entries, 1)
	require.Equal("uses boldwords", entries[0].Text(FieldDescription))
}

func TestExampleFileResolution(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	require.NoError(os.WriteFile(filepath.Join(dir, "ex.log"), []byte("example content\n"), 0666))

	cfg := config.Default()
	cfg.ExampleDirs = []string{dir}

	doc := `<doxygen>
<compounddef kind="class" prot="public">
  <compoundname>cls</compoundname>
  <detaileddescription><para>
    <xrefsect id="test_1"><xreftitle>Test</xreftitle>
    <xrefdescription><para>ex.log</para></xrefdescription></xrefsect>
  </para></detaileddescription>
</compounddef>
</doxygen>`

	entries := runOn(t, cfg, doc)
	require.Len(entries, 1)
	require.Equal("example content\n", entries[0].Text(FieldExamples))
	require.Equal(filepath.Join(dir, "ex.log"), entries[0].ExampleFile)
}

func TestExampleFileMissingIsRecovered(t *testing.T) {
	require := require.New(t)

	cfg := config.Default()
	cfg.ExampleDirs = []string{t.TempDir()}

	entries := runOn(t, cfg, `<doxygen>
<compounddef kind="class" prot="public">
  <compoundname>cls</compoundname>
  <detaileddescription><para>
    <xrefsect id="test_1"><xreftitle>Test</xreftitle>
    <xrefdescription><para>nowhere.log</para></xrefdescription></xrefsect>
  </para></detaileddescription>
</compounddef>
</doxygen>`)
	require.Len(entries, 1)
	require.Equal("nowhere.log does not exist\n", entries[0].Text(FieldExamples))
	require.Equal("", entries[0].ExampleFile)
}

func TestParameterNameOutsideListPanics(t *testing.T) {
	require := require.New(t)

	root, err := doxml.Parse(strings.NewReader(`<doxygen>
<compounddef kind="class" prot="public">
  <compoundname>cls</compoundname>
  <briefdescription><parametername>x</parametername></briefdescription>
</compounddef>
</doxygen>`))
	require.NoError(err)
	require.Panics(func() {
		_, _ = New(config.Default()).RunTree(root)
	})
}

const indexArchive = `-- index.xml --
<doxygenindex>
  <compound refid="a00001" kind="class"><name>simuPOP::alpha</name></compound>
  <compound refid="a00002" kind="class"><name>simuPOP::beta</name></compound>
</doxygenindex>
-- a00001.xml --
<doxygen>
<compounddef kind="class" prot="public">
  <compoundname>simuPOP::alpha</compoundname>
  <briefdescription><para>first class</para></briefdescription>
</compounddef>
</doxygen>
-- a00002.xml --
<doxygen>
<compounddef kind="class" prot="public">
  <compoundname>simuPOP::beta</compoundname>
  <briefdescription><para>second class</para></briefdescription>
</compounddef>
</doxygen>
`

func extractArchive(t *testing.T, archive string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range txtar.Parse([]byte(archive)).Files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f.Name), f.Data, 0666))
	}
	return dir
}

func TestDoxygenIndexFanOut(t *testing.T) {
	require := require.New(t)

	dir := extractArchive(t, indexArchive)
	entries, err := New(config.Default()).Run(filepath.Join(dir, "index.xml"))
	require.NoError(err)
	require.Len(entries, 2)
	// Relative order of sub-documents is preserved.
	require.Equal("simuPOP::alpha", entries[0].Name)
	require.Equal("simuPOP::beta", entries[1].Name)
}

func TestDoxygenIndexUnresolvableIsFatal(t *testing.T) {
	require := require.New(t)

	dir := extractArchive(t, indexArchive)
	require.NoError(os.Remove(filepath.Join(dir, "a00002.xml")))

	_, err := New(config.Default()).Run(filepath.Join(dir, "index.xml"))
	require.Error(err)
	require.Contains(err.Error(), "a00002")
}
