package extract

// Field names used both as active-field cursors during the tree walk and
// as keys of Entry.Fields. Simple-section kinds (warning, see, note,
// return) are additional valid keys.
const (
	FieldDescription = "Description"
	FieldDetails     = "Details"
	FieldUsage       = "Usage"
	FieldExamples    = "Examples"

	// FieldArguments is a cursor value only; argument text accumulates
	// on the last element of Entry.Args instead of Entry.Fields.
	FieldArguments = "Arguments"
)

// Entry kinds. Member and constructor kinds encode their owning class
// name; renderers reconstruct the grouping by string comparison.
const (
	KindClass          = "class"
	KindGlobalFunction = "global_function"
)

// KindMember returns the kind string of a member of the named class.
func KindMember(class string) string {
	return "memberofclass_" + class
}

// KindConstructor returns the kind string of a constructor of the named
// class.
func KindConstructor(class string) string {
	return "constructorofclass_" + class
}

// Arg is one documented parameter. Arguments are ordered and unique by
// position, not by name.
type Arg struct {
	Name        string
	Description string
}

// Entry is the unit of extracted documentation for one symbol.
type Entry struct {
	// Name is the qualified symbol name. Never empty.
	Name string
	// Kind is one of the Kind* values above.
	Kind string
	// Fields holds the accumulated free-text fields. Map presence
	// distinguishes a field that was opened but stayed empty from one
	// that never appeared.
	Fields map[string]string
	// Args is the documented parameter list, in document order.
	Args []Arg
	// ExampleFile is the resolved path of the example referenced by a
	// Test cross-reference section, or empty if none resolved.
	ExampleFile string
	// RawSig is the unparsed parameter-list text, kept for
	// disambiguating overloads in exclude directives.
	RawSig string
	// Ignore is computed during post-processing.
	Ignore bool
}

// Text returns the value of the named field, with absent fields reading
// as empty.
func (e *Entry) Text(field string) string {
	return e.Fields[field]
}

// HasText reports whether the named field is present and non-empty.
func (e *Entry) HasText(field string) bool {
	return e.Fields[field] != ""
}
