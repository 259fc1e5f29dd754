package render

import (
	"fmt"
	"strings"
)

// macro-name characters LaTeX cannot digest, and their spellings
var sanitizer = strings.NewReplacer(
	":", "",
	"~", "tld",
	"_", "us",
	"0", "o",
	"1", "l",
	"2", "z",
)

// NameTable assigns deterministic, unique LaTeX macro names to qualified
// symbol names. Overloads of the same base name receive single-letter
// suffixes 'a' through 'z' in order of appearance. The issued set is
// local to one rendering session; both LaTeX writers build their own and
// therefore agree on names as long as they see entries in the same
// order.
type NameTable struct {
	prefix string
	used   map[string]bool
}

// NewNameTable returns a table that strips prefix from qualified names
// before uniquifying.
func NewNameTable(prefix string) *NameTable {
	return &NameTable{
		prefix: prefix,
		used:   make(map[string]bool),
	}
}

// Name returns the macro name for qualified. It fails once a base name
// has been issued 27 times; a collision set that large means the input
// documentation needs renaming, not more suffixes.
func (t *NameTable) Name(qualified string) (string, error) {
	base := strings.TrimPrefix(qualified, t.prefix)
	for suffix := ""; ; {
		cand := base + suffix
		if !t.used[cand] {
			t.used[cand] = true
			return sanitizer.Replace(cand), nil
		}
		switch {
		case suffix == "":
			suffix = "a"
		case suffix == "z":
			return "", fmt.Errorf("%v has too many overloads to assign a unique macro name", qualified)
		default:
			suffix = string(suffix[0] + 1)
		}
	}
}
