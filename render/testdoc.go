package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sudorook/doxy2swig/config"
	"github.com/sudorook/doxy2swig/extract"
)

// preamble of the render-everything document. The algorithm float hosts
// the verbatim example listings.
const testDocPreamble = `\documentclass[oneside,english]{manual}
\usepackage[T1]{fontenc}
\usepackage[latin9]{inputenc}
\setcounter{secnumdepth}{3}
\setcounter{tocdepth}{3}
\usepackage{verbatim}
\usepackage{float}
\makeatletter

\providecommand{\tabularnewline}{\\}
\floatstyle{ruled}
\newfloat{algorithm}{tbp}{loa}
\floatname{algorithm}{Algorithm}

\newenvironment{lyxcode}
{\begin{list}{}{
\setlength{\rightmargin}{\leftmargin}
\setlength{\listparindent}{0pt}
\raggedright
\setlength{\itemsep}{0pt}
\setlength{\parsep}{0pt}
\normalfont\ttfamily}
 \item[]}
{\end{list}}
\floatname{algorithm}{Example}
\usepackage{babel}
\makeatother
\begin{document}`

// WriteTestDoc emits a standalone document that includes the
// single-reference file at refPath and invokes every macro it defines,
// global functions first, each separated by a horizontal rule. It exists
// for visual smoke-testing of the generated reference.
func WriteTestDoc(out io.Writer, entries []*extract.Entry, refPath string, cfg *config.Config) error {
	var w Builder
	nt := NewNameTable(cfg.StripPrefix)

	w.Line(testDocPreamble)
	base := filepath.Base(refPath)
	w.Linef(`\include{%s}`, strings.TrimSuffix(base, filepath.Ext(base)))

	for _, e := range entries {
		if e.Kind != extract.KindGlobalFunction || e.Ignore {
			continue
		}
		name, err := nt.Name(e.Name)
		if err != nil {
			return err
		}
		w.Linef(`\%s`, name)
		w.Line(`\vspace{.5in}\par\rule[.5ex]{\linewidth}{1pt}\par\vspace{0.3in}`)
	}
	for _, e := range entries {
		if e.Kind != extract.KindClass || e.Ignore {
			continue
		}
		name, err := nt.Name(e.Name)
		if err != nil {
			return err
		}
		w.Linef(`\%s`, name)
		w.Line(`\vspace{.1in}\par\rule[.3ex]{\linewidth}{1pt}\par\vspace{0.1in}`)
	}
	w.Line(`\end{document}`)

	if _, err := w.WriteTo(out); err != nil {
		return fmt.Errorf("write test document: %w", err)
	}
	return nil
}
