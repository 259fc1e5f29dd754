package render

import (
	"fmt"
	"io"
	"strings"
)

// Builder is a wrapper around [strings.Builder] that simplifies building
// line-oriented output documents.
//
// The zero value is safely ready to use.
type Builder struct {
	b strings.Builder
}

// Write appends a raw string.
func (w *Builder) Write(s string) {
	w.b.WriteString(s)
}

// Linef writes a single line. Takes format and args like [fmt.Printf].
func (w *Builder) Linef(format string, args ...any) {
	w.b.WriteString(fmt.Sprintf(format, args...))
	w.b.WriteString("\n")
}

// Line writes s followed by a newline.
func (w *Builder) Line(s string) {
	w.b.WriteString(s)
	w.b.WriteString("\n")
}

// Blank writes an empty line.
func (w *Builder) Blank() {
	w.b.WriteString("\n")
}

// String returns the accumulated document.
func (w *Builder) String() string {
	return w.b.String()
}

// WriteTo copies the accumulated document to out.
func (w *Builder) WriteTo(out io.Writer) (int64, error) {
	n, err := io.WriteString(out, w.b.String())
	return int64(n), err
}
