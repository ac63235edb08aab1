// Package docmodel defines the document model shared by the parser,
// traversal, tangle, and reverse-tangle packages: a Document is an ordered
// sequence of Nodes, each either a block of prose, a fenced code block, or
// a transclusion directive.
//
// This mirrors internal/mdparser's Node/Document split, generalized from
// generic markdown structure to the literate-programming node kinds the
// tangle engine needs (CodeBlock with names, variables, and a Line/Source
// model; Transclusion with a resolved target).
package docmodel

// Newline is the line-ending style detected in a document's source text.
type Newline string

const (
	NewlineLF   Newline = "\n"
	NewlineCRLF Newline = "\r\n"
)

// Node is implemented by every element of a Document's body.
type Node interface {
	node()
}

// Document is the parsed form of one source file.
type Document struct {
	// SourceFile is the path this document was parsed from, relative to
	// the traversal root.
	SourceFile string
	// Newline is the line-ending style used throughout this document.
	Newline Newline
	// Nodes is the ordered sequence of top-level elements.
	Nodes []Node
}

// TextBlock is a run of prose lines emitted verbatim in documentation
// output.
type TextBlock struct {
	Lines []string
}

func (*TextBlock) node() {}

// CodeBlock is a fenced code block: a named (or unnamed) fragment that
// participates in macro expansion and tangle output.
type CodeBlock struct {
	// Indent is the whitespace preceding the opening fence.
	Indent string
	// Name is the block's declared name, or empty for an unnamed block.
	Name string
	// IsUnnamed marks a block that was given a synthetic name because it
	// came from an unnamed fence in a transcluded document. Unnamed blocks
	// of the document itself keep an empty Name and leave this false.
	IsUnnamed bool
	// Language is the fence's language tag, if any.
	Language string
	// Hidden marks a block excluded from documentation output.
	Hidden bool
	// Alternative marks a block opened with the alternate fence sequence.
	// It only selects which fence is re-emitted; the block is tangled and
	// looked up by name like any other.
	Alternative bool
	// Vars are the meta-variable names declared on the block's name line,
	// in positional order.
	Vars []string
	// Defaults are positionally aligned with Vars; a nil entry means no
	// default was given for that variable.
	Defaults []*string
	// Source is the block's body.
	Source []Line
	// SourceFile is the file this block's text originated from: the
	// document being parsed, or (after transclusion) the file it was
	// transcluded from.
	SourceFile string
}

func (*CodeBlock) node() {}

// LineNumber returns the number of Source lines in the block.
func (c *CodeBlock) LineNumber() int {
	return len(c.Source)
}

// Transclusion is a directive that splices another document's nodes into
// this one at parse time (forward traversal) or is re-emitted verbatim
// (reverse mode).
type Transclusion struct {
	// Target is the resolved, root-relative path of the transcluded file.
	Target string
	// Original is the untouched directive text, used to re-emit the
	// directive verbatim during reverse-mode printing.
	Original string
}

func (*Transclusion) node() {}

// Line is one line of a CodeBlock's body.
type Line struct {
	Indent string
	// LineNo is the 1-based line number in SourceFile, used to locate
	// unknown-macro and unknown-meta-variable errors during tangling.
	LineNo  int
	Source  Source
	Comment string
}

// Source is either a macro invocation or a literal text line split into
// segments for meta-variable interpolation.
type Source struct {
	// Macro, when non-empty, names the block this line invokes; Scope
	// holds the positional call arguments.
	Macro string
	Scope []string

	// Segments holds this line's literal text when Macro is empty.
	Segments []Segment
}

// IsMacro reports whether this Source is a macro invocation rather than a
// literal text line.
func (s Source) IsMacro() bool {
	return s.Macro != ""
}

// Segment is one piece of a text line: either literal text or a
// meta-variable placeholder to be substituted from the enclosing call's
// scope.
type Segment struct {
	Text       string
	MetaVar    string
	IsMetaVar  bool
}
