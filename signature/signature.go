// Package signature turns the raw argsstring of a Doxygen member
// definition (e.g. `(int x=5, std::string y="a") const`) into a list of
// canonical `name` / `name=default` parameter descriptors suitable for a
// Python-style usage line.
//
// The rewrite is purely textual. It runs three ordered rule lists:
// compound-literal idioms first (so their embedded commas survive the
// comma split), then trailing-qualifier removal, then per-default-value
// substitutions. Order within each list matters because some patterns
// are substrings of others; tables are applied exactly in declaration
// order.
package signature

import "strings"

// sep temporarily stands in for commas that belong to a rewritten
// compound literal, so the argument split on "," leaves them alone.
const sep = "\x00"

// Rule is a literal from→to substitution.
type Rule struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

// Table holds the ordered rewrite rules used by Normalize.
type Table struct {
	// Idioms maps recognized compound-literal spellings to their
	// canonical bracket/brace literal. The To side may contain commas.
	Idioms []Rule
	// Qualifiers are trailing qualifier spellings replaced by a bare
	// closing parenthesis, longest match first.
	Qualifiers []string
	// Cleanups run after qualifier removal, before the comma split.
	Cleanups []Rule
	// Defaults rewrite container-type markers and literal casing inside
	// default values.
	Defaults []Rule
}

// Default returns the table for the simuPOP source conventions.
func Default() *Table {
	return &Table{
		Idioms: []Rule{
			{`vectorstr(TAG_InheritFields, TAG_InheritFields+2)`, `["paternal_tag", "maternal_tag"]`},
			{`vectorstr(TAG_ParentsFields, TAG_ParentsFields+2)`, `["father_idx", "mother_idx"]`},
			{`vectorstr(ASC_AS_Fields, ASC_AS_Fields+2)`, `["father_idx", "mother_idx"]`},
			{`vectorstr(1, "qtrait")`, `["qtrait"]`},
			{`vectorstr(1, "fitness")`, `["fitness"]`},
		},
		Qualifiers: []string{")    const", ") const", ")const"},
		Cleanups: []Rule{
			// single-element constructor with an unrecognized payload
			{`vectorstr(1,`, ``},
		},
		Defaults: []Rule{
			{`vectorlu`, `[]`},
			{`vectoru`, `[]`},
			{`vectorl`, `[]`},
			{`vectori`, `[]`},
			{`vectorf`, `[]`},
			{`vectora`, `[]`},
			{`vectorop`, `[]`},
			{`vectorstr`, `[]`},
			{`dictionary`, `{}`},
			{`matrix`, `[]`},
			{`true`, `True`},
			{`false`, `False`},
		},
	}
}

// Normalize splits raw into parameter descriptors. Malformed fragments
// degrade to best-effort token extraction; Normalize never fails.
func (t *Table) Normalize(raw string) []string {
	txt := raw
	for _, r := range t.Idioms {
		txt = strings.ReplaceAll(txt, r.From, strings.ReplaceAll(r.To, ",", sep))
	}
	for _, q := range t.Qualifiers {
		txt = strings.ReplaceAll(txt, q, ")")
	}
	for _, r := range t.Cleanups {
		txt = strings.ReplaceAll(txt, r.From, r.To)
	}

	out := make([]string, 0, strings.Count(txt, ",")+1)
	for _, piece := range strings.Split(txt, ",") {
		piece = strings.ReplaceAll(piece, sep, ",")
		parts := strings.Split(piece, "=")
		name := paramName(parts[0])
		if len(parts) == 2 {
			out = append(out, name+"="+t.defaultValue(parts[1]))
		} else {
			out = append(out, name)
		}
	}
	return out
}

// paramName extracts the rightmost identifier token of a declaration
// fragment: last whitespace-delimited token, trimmed of surrounding
// parentheses and reference markers.
func paramName(decl string) string {
	tok := decl
	if i := strings.LastIndex(tok, " "); i >= 0 {
		tok = tok[i+1:]
	}
	if i := strings.Index(tok, ")"); i >= 0 {
		tok = tok[:i]
	}
	if i := strings.LastIndex(tok, "("); i >= 0 {
		tok = tok[i+1:]
	}
	return strings.ReplaceAll(tok, "&", "")
}

func (t *Table) defaultValue(v string) string {
	if i := strings.Index(v, "("); i >= 0 {
		v = v[:i]
	}
	if i := strings.Index(v, ")"); i >= 0 {
		v = v[:i]
	}
	for _, r := range t.Defaults {
		v = strings.ReplaceAll(v, r.From, r.To)
	}
	return v
}

// Format joins normalized descriptors into a call-style parameter list.
func Format(params []string) string {
	return "(" + strings.Join(params, ", ") + ")"
}
