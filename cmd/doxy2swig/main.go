// Command doxy2swig converts a Doxygen XML documentation tree into a
// SWIG directive file plus a LaTeX reference document and a companion
// test document that exercises every generated macro.
package main

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sudorook/doxy2swig/config"
	"github.com/sudorook/doxy2swig/extract"
	"github.com/sudorook/doxy2swig/render"
)

var log = logrus.StandardLogger().WithField("subsys", "main")

const (
	defaultIndexPath    = "../doxygen_doc/xml/index.xml"
	defaultInterfaceOut = "../src/simuPOP_doc.i"
	defaultRefOut       = "../doc/simuPOP_ref.tex"
	defaultRefTestOut   = "../doc/simuPOP_ref_test.tex"
)

var opts struct {
	configPath  string
	exampleDirs []string
	wrapColumn  int
	debug       bool
	quiet       bool
}

func main() {
	root := &cobra.Command{
		Use:           "doxy2swig [index.xml [interface.i [reference.tex [reference_test.tex]]]]",
		Short:         "generate SWIG docstrings and LaTeX reference documents from Doxygen XML",
		Args:          cobra.MaximumNArgs(4),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(args)
		},
	}
	root.Flags().StringVarP(&opts.configPath, "config", "c", "", "configuration file (TOML)")
	root.Flags().StringSliceVar(&opts.exampleDirs, "example-dir", nil, "directories searched for example scripts")
	root.Flags().IntVar(&opts.wrapColumn, "wrap", 0, "docstring wrap column")
	root.Flags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	root.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "only log warnings and errors")

	// Asking for help means the real conversion did not run, which
	// callers in a build script must not mistake for success.
	defaultHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		defaultHelp(cmd, args)
		os.Exit(1)
	})

	if err := root.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run(args []string) error {
	switch {
	case opts.debug:
		logrus.SetLevel(logrus.DebugLevel)
	case opts.quiet:
		logrus.SetLevel(logrus.WarnLevel)
	}

	indexPath := defaultIndexPath
	interfacePath := defaultInterfaceOut
	refPath := defaultRefOut
	refTestPath := defaultRefTestOut
	paths := []*string{&indexPath, &interfacePath, &refPath, &refTestPath}
	for i, arg := range args {
		*paths[i] = arg
	}

	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if len(opts.exampleDirs) > 0 {
		cfg.ExampleDirs = opts.exampleDirs
	}
	if opts.wrapColumn > 0 {
		cfg.WrapColumn = opts.wrapColumn
	}

	timeStart := time.Now()

	entries, err := extract.New(cfg).Run(indexPath)
	if err != nil {
		return fmt.Errorf("extract %v: %w", indexPath, err)
	}
	entries, err = extract.PostProcess(entries, cfg)
	if err != nil {
		return err
	}

	timeExtract := time.Since(timeStart)
	timeStart = time.Now()

	// All extraction errors have been ruled out by now, so a partially
	// written output can only mean a filesystem failure.
	if err := writeFile(interfacePath, func(f *os.File) error {
		return render.WriteSWIG(f, entries, cfg)
	}); err != nil {
		return err
	}
	if err := writeFile(refPath, func(f *os.File) error {
		return render.WriteLaTeX(f, entries, cfg)
	}); err != nil {
		return err
	}
	if err := writeFile(refTestPath, func(f *os.File) error {
		return render.WriteTestDoc(f, entries, refPath, cfg)
	}); err != nil {
		return err
	}

	timeRender := time.Since(timeStart)

	printSummary(entries, timeExtract, timeRender)
	fmt.Printf("Wrote %v, %v and %v\n", interfacePath, refPath, refTestPath)
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %v: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %v: %w", path, err)
	}
	return nil
}

// category buckets an entry kind for the run summary.
func category(e *extract.Entry) string {
	switch {
	case e.Kind == extract.KindClass:
		return strcase.ToKebab("Class")
	case e.Kind == extract.KindGlobalFunction:
		return strcase.ToKebab("GlobalFunction")
	case strings.HasPrefix(e.Kind, "constructorofclass_"):
		return strcase.ToKebab("Constructor")
	case strings.HasPrefix(e.Kind, "memberofclass_"):
		return strcase.ToKebab("MemberFunction")
	}
	return strcase.ToKebab("Other")
}

func printSummary(entries []*extract.Entry, timeExtract, timeRender time.Duration) {
	numByCategory := make(map[string]int)
	numExcludedByCategory := make(map[string]int)
	for _, e := range entries {
		cat := category(e)
		numByCategory[cat]++
		if e.Ignore {
			numExcludedByCategory[cat]++
		}
	}

	fmt.Println()
	fmt.Printf("==Documentation stats==\n")
	{
		numExcluded := 0
		tbl := tablewriter.NewWriter(os.Stdout)
		tbl.SetHeader([]string{"Category", "Documented/Total"})
		for _, cat := range slices.Sorted(maps.Keys(numByCategory)) {
			numExcluded += numExcludedByCategory[cat]
			tbl.Append([]string{cat, fmt.Sprintf("%v/%v", numByCategory[cat]-numExcludedByCategory[cat], numByCategory[cat])})
		}
		tbl.Append([]string{"==TOTAL==", fmt.Sprintf("%v/%v", len(entries)-numExcluded, len(entries))})
		tbl.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})
		tbl.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
		tbl.SetCenterSeparator("|")
		tbl.Render()
	}
	fmt.Println()
	fmt.Printf("Extracted documentation in %v, rendered output in %v.\n", timeExtract, timeRender)
}
