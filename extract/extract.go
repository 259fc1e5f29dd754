// Package extract walks a Doxygen XML tree and accumulates one Entry per
// documented symbol. The walk is tag-driven: a fixed handler table routes
// each element to its handler, a fixed ignore set drops presentation-only
// tags, and everything else recurses generically. Handlers mutate the
// Extractor's explicit cursor state (current entry, active field).
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sudorook/doxy2swig/config"
	"github.com/sudorook/doxy2swig/doxml"
	"github.com/sudorook/doxy2swig/signature"
)

var log = logrus.StandardLogger().WithField("subsys", "extract")

// compoundCtx is the enclosing compound-definition context, set by the
// compounddef handler so the memberdef handler can classify entries
// without climbing parent pointers.
type compoundCtx struct {
	kind      string // class, struct, file or namespace
	name      string // compound name
	namespace string // enclosing namespace, if any
}

// Extractor holds the extraction state for one document. Create a fresh
// one per document; sub-documents referenced by a doxygenindex each get
// their own.
type Extractor struct {
	cfg *config.Config
	sig *signature.Table

	// docDir is the input document's directory, the fallback location
	// for sub-document files.
	docDir string

	entries  []*Entry
	cur      *Entry // most recently created entry
	field    string // active field receiving text
	compound compoundCtx
}

// New returns an Extractor using the given configuration.
func New(cfg *config.Config) *Extractor {
	return &Extractor{
		cfg: cfg,
		sig: cfg.SignatureTable(),
	}
}

// Run loads the XML document at path, walks it and returns the
// accumulated entries. The returned list is not post-processed.
func (x *Extractor) Run(path string) ([]*Entry, error) {
	root, err := doxml.Load(path)
	if err != nil {
		return nil, err
	}
	x.docDir = filepath.Dir(path)
	return x.RunTree(root)
}

// RunTree walks an already-parsed document tree.
func (x *Extractor) RunTree(root *doxml.Node) ([]*Entry, error) {
	if err := x.walk(root); err != nil {
		return nil, err
	}
	return x.entries, nil
}

// tags with no documentation value; their subtrees are skipped entirely
var ignoreTags = map[string]struct{}{
	"inheritancegraph": {}, "param": {}, "listofallmembers": {},
	"innerclass": {}, "name": {}, "declname": {}, "incdepgraph": {},
	"invincdepgraph": {}, "programlisting": {}, "type": {},
	"references": {}, "referencedby": {}, "location": {},
	"collaborationgraph": {}, "reimplements": {}, "reimplementedby": {},
	"derivedcompoundref": {}, "basecompoundref": {}, "header": {},
	"includes": {},
}

type handlerFunc func(*Extractor, *doxml.Node) error

// handlers is the tag-to-handler table. Declared as data so the handled
// tag set is auditable; assigned in init because the handlers recurse
// through walk.
var handlers map[string]handlerFunc

func init() {
	handlers = map[string]handlerFunc{
		"compoundname":        (*Extractor).doCompoundName,
		"compounddef":         (*Extractor).doCompoundDef,
		"memberdef":           (*Extractor).doMemberDef,
		"sectiondef":          (*Extractor).doSectionDef,
		"briefdescription":    (*Extractor).doBriefDescription,
		"detaileddescription": (*Extractor).doDetailedDescription,
		"simplesect":          (*Extractor).doSimpleSect,
		"parameterlist":       (*Extractor).doParameterList,
		"parametername":       (*Extractor).doParameterName,
		"argsstring":          (*Extractor).doArgsString,
		"xrefsect":            (*Extractor).doXRefSect,
		"member":              (*Extractor).doMember,
		"doxygenindex":        (*Extractor).doDoxygenIndex,
		"ref":                 (*Extractor).spacePad,
		"emphasis":            (*Extractor).spacePad,
		"bold":                (*Extractor).spacePad,
		"computeroutput":      (*Extractor).spacePad,
		"formula":             (*Extractor).spacePad,
	}
}

// walk dispatches a single node: text accumulates into the active field
// (whitespace-only text is dropped), registered tags go to their
// handler, ignored tags are skipped, and anything else recurses.
func (x *Extractor) walk(n *doxml.Node) error {
	if n.IsText() {
		if strings.TrimSpace(n.Text) != "" {
			x.addText(n.Text)
		}
		return nil
	}
	if _, ok := ignoreTags[n.Tag]; ok {
		return nil
	}
	if h, ok := handlers[n.Tag]; ok {
		return h(x, n)
	}
	return x.walkChildren(n)
}

func (x *Extractor) walkChildren(n *doxml.Node) error {
	for _, c := range n.Children {
		if err := x.walk(c); err != nil {
			return err
		}
	}
	return nil
}

// addText appends text to the active field of the current entry.
func (x *Extractor) addText(s string) {
	if x.cur == nil {
		return
	}
	if x.field == FieldArguments {
		if len(x.cur.Args) == 0 {
			return
		}
		x.cur.Args[len(x.cur.Args)-1].Description += s
		return
	}
	x.cur.Fields[x.field] += s
}

// newEntry appends a fresh entry and makes it current.
func (x *Extractor) newEntry(name, kind string) *Entry {
	e := &Entry{
		Name:   name,
		Kind:   kind,
		Fields: make(map[string]string),
	}
	x.entries = append(x.entries, e)
	x.cur = e
	return e
}

// childElement returns the first direct child element with the given
// tag, or nil.
func childElement(n *doxml.Node, tag string) *doxml.Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

func (x *Extractor) spacePad(n *doxml.Node) error {
	x.addText(" ")
	return x.walkChildren(n)
}

func (x *Extractor) doCompoundName(n *doxml.Node) error {
	x.newEntry(n.FlatText(), KindClass)
	return nil
}

func (x *Extractor) doCompoundDef(n *doxml.Node) error {
	switch kind := n.Attr("kind"); kind {
	case "class", "struct":
		if n.Attr("prot") != "public" {
			return nil
		}
		prev := x.compound
		defer func() { x.compound = prev }()
		x.compound = compoundCtx{kind: kind}
		if c := childElement(n, "compoundname"); c != nil {
			x.compound.name = c.FlatText()
		}

		// compoundname, brief and detailed description come first in a
		// fixed order, then every remaining child in document order.
		first := make(map[*doxml.Node]bool)
		for _, tag := range []string{"compoundname", "briefdescription", "detaileddescription", "includes"} {
			c := childElement(n, tag)
			if c == nil {
				continue
			}
			first[c] = true
			if err := x.walk(c); err != nil {
				return err
			}
		}
		for _, c := range n.Children {
			if first[c] {
				continue
			}
			if err := x.walk(c); err != nil {
				return err
			}
		}
	case "file", "namespace":
		prev := x.compound
		defer func() { x.compound = prev }()
		x.compound = compoundCtx{kind: kind}
		if c := n.Find("compoundname"); c != nil {
			x.compound.name = c.FlatText()
		}
		if ns := n.Find("innernamespace"); ns != nil {
			x.compound.namespace = ns.FlatText()
		} else if kind == "namespace" {
			x.compound.namespace = x.compound.name
		}
		for _, sec := range n.FindAll("sectiondef") {
			if err := x.walk(sec); err != nil {
				return err
			}
		}
	}
	return nil
}

func (x *Extractor) doSectionDef(n *doxml.Node) error {
	switch n.Attr("kind") {
	case "public-func", "func", "user-defined":
		return x.walkChildren(n)
	}
	return nil
}

func (x *Extractor) doMemberDef(n *doxml.Node) error {
	if n.Attr("prot") != "public" {
		return nil
	}
	nameNode := childElement(n, "name")
	defNode := childElement(n, "definition")
	if nameNode == nil {
		return nil
	}
	name := nameNode.FlatText()
	// operator overloads are not documented
	if strings.HasPrefix(name, "operator") {
		return nil
	}
	var defn string
	if defNode != nil {
		defn = defNode.FlatText()
	}

	switch x.compound.kind {
	case "file", "namespace":
		if ns := x.compound.namespace; ns != "" {
			full := ns + "::" + name
			e := x.newEntry(full, KindGlobalFunction)
			e.Fields[FieldUsage] = full
			x.field = FieldUsage
		} else {
			log.WithField("member", name).Warn("member without enclosing namespace, treating as global")
			e := x.newEntry(name, KindGlobalFunction)
			e.Fields[FieldUsage] = ""
			x.field = FieldUsage
			x.addText(lastSpaceToken(defn))
		}
	case "class", "struct":
		cname := x.compound.name
		className := lastColonSegment(cname)
		if className == name {
			e := x.newEntry(cname+"::"+name, KindConstructor(cname))
			e.Fields[FieldUsage] = name
		} else {
			e := x.newEntry(cname+"::"+name, KindMember(cname))
			e.Fields[FieldUsage] = "x." + name
		}
		x.field = FieldUsage
	default:
		return nil
	}

	for _, c := range n.Children {
		if c == nameNode || c == defNode {
			continue
		}
		if err := x.walk(c); err != nil {
			return err
		}
	}
	return nil
}

func (x *Extractor) doBriefDescription(n *doxml.Node) error {
	if x.cur == nil {
		return nil
	}
	x.field = FieldDescription
	x.cur.Fields[FieldDescription] = ""
	return x.walkChildren(n)
}

func (x *Extractor) doDetailedDescription(n *doxml.Node) error {
	if x.cur == nil {
		return nil
	}
	x.field = FieldDetails
	x.cur.Fields[FieldDetails] = ""
	return x.walkChildren(n)
}

func (x *Extractor) doSimpleSect(n *doxml.Node) error {
	if x.cur == nil {
		return nil
	}
	var err error
	switch kind := n.Attr("kind"); kind {
	case "date", "rcs", "version":
		// suppressed
	case "warning", "see", "note", "return":
		x.field = kind
		x.cur.Fields[kind] = ""
		err = x.walkChildren(n)
	default:
		err = x.walkChildren(n)
	}
	// sibling text after any simple section extends Details
	x.field = FieldDetails
	return err
}

func (x *Extractor) doParameterList(n *doxml.Node) error {
	if x.cur == nil || len(n.Children) == 0 {
		return nil
	}
	x.field = FieldArguments
	x.cur.Args = []Arg{}
	return x.walkChildren(n)
}

func (x *Extractor) doParameterName(n *doxml.Node) error {
	if x.field != FieldArguments {
		panic("extract: parametername encountered outside an active parameter list")
	}
	x.cur.Args = append(x.cur.Args, Arg{Name: strings.TrimSpace(n.FlatText())})
	return nil
}

func (x *Extractor) doArgsString(n *doxml.Node) error {
	if x.cur == nil {
		return nil
	}
	raw := n.FlatText()
	x.cur.RawSig = raw
	x.addText(signature.Format(x.sig.Normalize(raw)))
	return nil
}

// doXRefSect handles cross-reference sections. Only the "Test" kind is
// of interest: it names an example file whose content is inlined into
// the Examples field. A missing example file is recovered with a
// placeholder notice.
func (x *Extractor) doXRefSect(n *doxml.Node) error {
	if x.cur == nil {
		return nil
	}
	elems := n.ChildElements()
	if len(elems) == 0 || strings.TrimSpace(elems[0].FlatText()) != "Test" {
		return nil
	}
	x.field = FieldExamples
	x.cur.Fields[FieldExamples] = ""
	if len(elems) < 2 {
		return nil
	}
	filename := elems[1].FlatText()
	if ps := elems[1].ChildElements(); len(ps) > 0 {
		filename = ps[0].FlatText()
	}
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return nil
	}

	for _, dir := range x.cfg.ExampleDirs {
		cand := filepath.Join(dir, filename)
		if content, err := os.ReadFile(cand); err == nil {
			x.cur.ExampleFile = cand
			x.addText(string(content))
			return nil
		}
	}
	if content, err := os.ReadFile(filename); err == nil {
		x.cur.ExampleFile = filename
		x.addText(string(content))
		return nil
	}

	log.WithField("file", filename).Warn("example file does not exist")
	x.cur.ExampleFile = ""
	x.addText(filename + " does not exist\n")
	return nil
}

// doMember handles member references inside index compounds. Only
// namespace-scoped functions recurse; everything of interest in them is
// extracted from the referenced sub-document anyway.
func (x *Extractor) doMember(n *doxml.Node) error {
	if n.Attr("kind") == "function" && strings.HasPrefix(n.Attr("refid"), "namespace") {
		return x.walkChildren(n)
	}
	return nil
}

// doDoxygenIndex fans out over the compounds referenced by an index
// document. Each referenced sub-document runs through a fresh Extractor;
// sub-pipelines execute strictly one after another and their entries are
// concatenated in reference order. An unresolvable reference is fatal.
func (x *Extractor) doDoxygenIndex(n *doxml.Node) error {
	for _, c := range n.FindAll("compound") {
		refid := c.Attr("refid")
		fname := refid + ".xml"
		path := fname
		if _, err := os.Stat(path); err != nil {
			path = filepath.Join(x.docDir, fname)
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("compound %v: cannot locate %v in working directory or %v", refid, fname, x.docDir)
		}
		log.WithField("file", path).Info("parsing sub-document")
		sub := New(x.cfg)
		entries, err := sub.Run(path)
		if err != nil {
			return fmt.Errorf("compound %v: %w", refid, err)
		}
		x.entries = append(x.entries, entries...)
	}
	return nil
}

// lastSpaceToken returns the rightmost space-delimited token of s.
func lastSpaceToken(s string) string {
	if i := strings.LastIndex(s, " "); i >= 0 {
		return s[i+1:]
	}
	return s
}

// lastColonSegment returns the part of s after the last colon.
func lastColonSegment(s string) string {
	if i := strings.LastIndex(s, ":"); i >= 0 {
		return s[i+1:]
	}
	return s
}
