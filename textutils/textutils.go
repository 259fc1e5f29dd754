// Package textutils holds the plain-text formatting helpers shared by the
// output writers: whitespace collapsing, fixed-column word wrapping and
// line indentation.
package textutils

import (
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

// CollapseSpace folds every run of whitespace (including newlines) into a
// single space and trims the ends. Doxygen descriptions arrive as XML
// character data with arbitrary line breaks; the writers re-wrap them.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// IndentString prepends indent to every line of s, skipping lines that
// contain only whitespace.
func IndentString(s, indent string) string {
	lines := strings.Split(s, "\n")
	var b strings.Builder
	b.Grow(len(s) + len(lines)*len(indent))
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString(indent)
		b.WriteString(line)
	}
	return b.String()
}

// Wrap collapses the whitespace of text and wraps it so that every line
// fits within width columns, with continuation lines indented by indent
// spaces. The first line carries no indentation; the caller places it
// after its own prefix (a section header or an argument-name column),
// so the returned first line is flush left.
func Wrap(text string, width, indent int) string {
	text = CollapseSpace(text)
	if text == "" {
		return ""
	}
	limit := width - indent
	if limit < 1 {
		limit = 1
	}
	wrapped := wordwrap.WrapString(text, uint(limit))
	lines := strings.Split(wrapped, "\n")
	if len(lines) == 1 {
		return lines[0]
	}
	rest := IndentString(strings.Join(lines[1:], "\n"), strings.Repeat(" ", indent))
	return lines[0] + "\n" + rest
}
