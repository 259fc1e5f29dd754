package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sudorook/doxy2swig/config"
	"github.com/sudorook/doxy2swig/extract"
)

var log = logrus.StandardLogger().WithField("subsys", "render")

// latexSpecials are escaped in order; the backslash goes first so the
// backslashes introduced by later escapes survive untouched.
var latexSpecials = []string{`\`, "&", "$", "~", "%", "#", "_", "{", "}", "^"}

func latexEscape(text string) string {
	for _, ch := range latexSpecials {
		text = strings.ReplaceAll(text, ch, `\`+ch)
	}
	return text
}

// WriteLaTeX emits the single-reference document: one \newcommand macro
// per non-ignored global function, then one per class. Entries must
// already be in their final sorted order; macro names come from a fresh
// session-local NameTable.
func WriteLaTeX(out io.Writer, entries []*extract.Entry, cfg *config.Config) error {
	var w Builder
	nt := NewNameTable(cfg.StripPrefix)

	for _, e := range entries {
		if e.Kind != extract.KindGlobalFunction || e.Ignore {
			continue
		}
		name, err := nt.Name(e.Name)
		if err != nil {
			return err
		}
		w.Linef(`\newcommand{\%s}{`, name)
		if e.HasText(extract.FieldDescription) {
			w.Line(`\par`)
			w.Linef(`\strong{Function \texttt{%s}}`, latexEscape(strings.TrimPrefix(e.Name, cfg.StripPrefix)))
			w.Line(`\par`)
			w.Linef(`%s\par`, latexEscape(e.Text(extract.FieldDescription)))
		}
		writeUsageQuote(&w, e)
		writeArgumentList(&w, e)
		writeDetails(&w, e)
		writeExamples(&w, e)
		w.Line("}")
		w.Blank()
	}

	for _, e := range entries {
		if e.Kind != extract.KindClass || e.Ignore {
			continue
		}
		name, err := nt.Name(e.Name)
		if err != nil {
			return err
		}
		w.Linef(`\newcommand{\%s}{`, name)
		if e.HasText(extract.FieldDescription) {
			w.Line(`\par`)
			w.Linef(`\strong{Class \texttt{%s}}`, latexEscape(strings.TrimPrefix(e.Name, cfg.StripPrefix)))
			w.Line(`\par`)
			w.Line(latexEscape(e.Text(extract.FieldDescription)))
		}
		writeDetails(&w, e)

		cons := constructors(entries, e.Name)
		if len(cons) == 0 {
			w.Line("}")
			w.Blank()
			continue
		}
		if len(cons) > 1 {
			log.WithField("class", e.Name).Warn("multiple constructors, using the first")
		}
		con := cons[0]
		w.Line(`\par`)
		w.Line(`\strong{Initialization}`)
		w.Line(`\par`)
		if con.HasText(extract.FieldDescription) {
			w.Linef(`%s\par`, latexEscape(con.Text(extract.FieldDescription)))
		}
		writeUsageQuote(&w, con)
		writeArgumentList(&w, con)
		writeDetails(&w, con)

		members := classMembers(entries, e.Name)
		if len(members) == 0 {
			w.Line("}")
			w.Blank()
			continue
		}
		w.Line(`\par`)
		w.Line(`\strong{Member Functions}`)
		w.Line(`\par`)
		w.Line(`\begin{description}`)
		for _, mem := range members {
			if mem.HasText(extract.FieldUsage) {
				w.Linef(`\item [\function{%s}] `, latexEscape(mem.Text(extract.FieldUsage)))
			}
			if mem.HasText(extract.FieldDescription) {
				w.Line(latexEscape(mem.Text(extract.FieldDescription)))
			}
			if mem.HasText(extract.FieldDetails) {
				if mem.HasText(extract.FieldDescription) {
					// short description exists, keep details in their own paragraph
					w.Line(`\par`)
					w.Linef(`%s\par`, latexEscape(mem.Text(extract.FieldDetails)))
				} else {
					w.Line(latexEscape(mem.Text(extract.FieldDetails)))
				}
			}
			writeArgumentList(&w, mem)
		}
		w.Line(`\end{description}`)
		writeExamples(&w, con)
		w.Line("}")
		w.Blank()
	}

	if _, err := w.WriteTo(out); err != nil {
		return fmt.Errorf("write reference file: %w", err)
	}
	return nil
}

func writeUsageQuote(w *Builder, e *extract.Entry) {
	if !e.HasText(extract.FieldUsage) {
		return
	}
	w.Linef(`\begin{quote}\function{%s}\end{quote}`, latexEscape(e.Text(extract.FieldUsage)))
}

func writeArgumentList(w *Builder, e *extract.Entry) {
	if len(e.Args) == 0 {
		return
	}
	w.Line(`\par`)
	w.Line(`\strong{Arguments}`)
	w.Line(`\begin{description}`)
	for _, arg := range e.Args {
		w.Linef(`\item [{%s}]%s`, arg.Name, latexEscape(arg.Description))
	}
	w.Line(`\end{description}`)
}

func writeDetails(w *Builder, e *extract.Entry) {
	if !e.HasText(extract.FieldDetails) {
		return
	}
	w.Line(`\par`)
	w.Line(`\strong{Details}`)
	w.Line(`\par`)
	w.Line(latexEscape(e.Text(extract.FieldDetails)))
}

func writeExamples(w *Builder, e *extract.Entry) {
	if !e.HasText(extract.FieldExamples) {
		return
	}
	w.Line(`\strong{Examples}`)
	w.Line(`\begin{algorithm}[h]`)
	w.Linef(`\caption{\label{alg:%s}Example for %s}`, e.Name, e.Name)
	if e.ExampleFile != "" {
		w.Linef(`\verbatiminput{%s}`, e.ExampleFile)
	}
	w.Line(`\end{algorithm}`)
}

// constructors returns the non-ignored constructor entries of the named
// class, in entry order.
func constructors(entries []*extract.Entry, class string) []*extract.Entry {
	var out []*extract.Entry
	for _, e := range entries {
		if e.Kind == extract.KindConstructor(class) && !e.Ignore {
			out = append(out, e)
		}
	}
	return out
}

// classMembers returns the non-ignored member entries of the named
// class, in entry order.
func classMembers(entries []*extract.Entry, class string) []*extract.Entry {
	var out []*extract.Entry
	for _, e := range entries {
		if e.Kind == extract.KindMember(class) && !e.Ignore {
			out = append(out, e)
		}
	}
	return out
}
