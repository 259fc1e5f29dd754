package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/sudorook/doxy2swig/config"
	"github.com/sudorook/doxy2swig/extract"
	"github.com/sudorook/doxy2swig/textutils"
)

// swigEscape prepares free text for embedding in a SWIG docstring
// literal.
var swigEscape = strings.NewReplacer(`\`, `\\\\`, `"`, `\"`)

// WriteSWIG emits the binding-generator directive file: one block per
// entry in the given (already sorted) order. Ignored entries become
// %ignore directives, carrying the raw signature when known so the right
// overload is excluded. Everything else becomes a
// %feature("docstring") block with the fixed section order Description,
// Usage, Arguments, Details, Examples.
func WriteSWIG(out io.Writer, entries []*extract.Entry, cfg *config.Config) error {
	var w Builder
	for _, e := range entries {
		if e.Ignore {
			if e.RawSig != "" {
				w.Linef("%%ignore %s%s;", e.Name, e.RawSig)
			} else {
				w.Linef("%%ignore %s;", e.Name)
			}
			w.Blank()
			continue
		}

		w.Linef(`%%feature("docstring") %s "`, e.Name)
		w.Blank()
		if e.HasText(extract.FieldDescription) {
			w.Line("Description:")
			w.Blank()
			w.Linef("    %s", wrapField(e.Text(extract.FieldDescription), cfg.WrapColumn, 4))
			w.Blank()
		}
		if e.HasText(extract.FieldUsage) {
			w.Line("Usage:")
			w.Blank()
			w.Linef("    %s", wrapField(e.Text(extract.FieldUsage), cfg.WrapColumn, 6))
			w.Blank()
		}
		if len(e.Args) > 0 {
			w.Line("Arguments:")
			w.Blank()
			for _, arg := range e.Args {
				w.Linef("    %-16s%s", arg.Name+":", wrapField(arg.Description, cfg.WrapColumn, 20))
			}
			w.Blank()
		}
		if e.HasText(extract.FieldDetails) {
			w.Line("Details:")
			w.Blank()
			w.Linef("    %s", wrapField(e.Text(extract.FieldDetails), cfg.WrapColumn, 4))
			w.Blank()
		}
		if e.HasText(extract.FieldExamples) {
			w.Line("Examples:")
			w.Blank()
			w.Line(swigEscape.Replace(e.Text(extract.FieldExamples)))
			w.Blank()
		}
		w.Line(`";`)
		w.Blank()
	}
	_, err := w.WriteTo(out)
	if err != nil {
		return fmt.Errorf("write directive file: %w", err)
	}
	return nil
}

// wrapField wraps and escapes one free-text field for a docstring block.
func wrapField(text string, width, indent int) string {
	return swigEscape.Replace(textutils.Wrap(text, width, indent))
}
