// Package traversal recursively follows the transclusions and links
// discovered by the parser, starting from a root document, to build the
// full set of documents a tangle or weave pass needs.
//
// Forward traversal inlines each transcluded document's nodes into its
// host, synthesising names for unnamed blocks; link targets are peers
// queued for independent parsing, never inlined. Reverse dry-run traversal
// performs the identical walk without inlining, so reverse-tangle can
// enumerate the code files forward tangling would have produced.
//
// Grounded in the reference implementation's compile/forward.rs and
// compile/reverse.rs, collapsed into one walker parameterised by an Inline
// flag per this repository's resolution of that duplication (see
// DESIGN.md).
package traversal

import (
	"path"
	"strings"

	"github.com/connerohnesorge/litweave/internal/config"
	"github.com/connerohnesorge/litweave/internal/docmodel"
	"github.com/connerohnesorge/litweave/internal/parser"
	"github.com/connerohnesorge/litweave/internal/tangleerrs"
)

// ReadFile loads the raw content of a root-relative path.
type ReadFile func(relPath string) (string, error)

// Options controls how the walk behaves.
type Options struct {
	// Inline selects forward-mode transclusion inlining (true) or
	// reverse-mode dry-run enumeration (false).
	Inline bool
}

// Set is the result of a traversal: every document reached from the root,
// keyed by its root-relative path.
type Set struct {
	Documents map[string]*docmodel.Document
	// Order lists document paths in first-visited order, for deterministic
	// iteration.
	Order []string
}

// Walk performs one traversal starting at rootFile.
func Walk(cfg *config.Config, read ReadFile, rootFile string, opts Options) (*Set, error) {
	w := &walker{
		cfg:    cfg,
		read:   read,
		set:    &Set{Documents: map[string]*docmodel.Document{}},
		follow: map[string][]string{},
	}

	if err := w.collect(rootFile, rootFile, opts); err != nil {
		return nil, err
	}

	return w.set, nil
}

type walker struct {
	cfg    *config.Config
	read   ReadFile
	set    *Set
	follow map[string][]string
}

// collect visits file (queueing its outgoing links), unless already visited.
func (w *walker) collect(rootFile, file string, opts Options) error {
	if _, ok := w.set.Documents[file]; ok {
		return nil
	}

	if err := w.transclude(rootFile, file, map[string]bool{}, opts); err != nil {
		return err
	}

	for _, link := range w.follow[file] {
		if _, err := w.read(link); err != nil {
			continue
		}
		if err := w.collect(rootFile, link, opts); err != nil {
			return err
		}
	}

	return nil
}

// transclude parses file and recursively inlines (forward mode) or
// separately registers (dry-run mode) every document it transcludes,
// recording the result in w.set.
func (w *walker) transclude(rootFile, file string, trace map[string]bool, opts Options) error {
	if trace[file] {
		return &tangleerrs.CycleError{File: file}
	}
	trace[file] = true

	src, err := w.read(file)
	if err != nil {
		return &tangleerrs.IOError{Path: file, Err: err}
	}

	res, err := parser.Parse(&w.cfg.Parser, rootFile, file, src)
	if err != nil {
		return err
	}
	doc := res.Document
	w.follow[file] = res.Follow

	transSoFar := map[string]bool{}

	for _, t := range doc.Transclusions() {
		if transSoFar[t.Target] {
			return &tangleerrs.DuplicateTransclusionError{Host: file, Target: t.Target}
		}
		transSoFar[t.Target] = true

		if err := w.transclude(rootFile, t.Target, cloneTrace(trace), opts); err != nil {
			return err
		}
		sub := w.set.Documents[t.Target]

		if sub.Newline != doc.Newline {
			return &tangleerrs.NewlineMismatchError{Host: file, Target: t.Target}
		}

		if opts.Inline {
			stem := strings.TrimSuffix(path.Base(t.Target), path.Ext(t.Target))
			prefix := w.cfg.Parser.FilePrefix + stem
			inlineInto(doc, t, sub, prefix, t.Target)
			delete(w.set.Documents, t.Target)
			w.set.Order = removeFromOrder(w.set.Order, t.Target)
		}
	}

	w.set.Documents[file] = doc
	if !contains(w.set.Order, file) {
		w.set.Order = append(w.set.Order, file)
	}

	return nil
}

// inlineInto splices with's nodes in place of the Transclusion node replace
// inside into, stamping unnamed blocks with prefix and SourceFile from.
func inlineInto(into *docmodel.Document, replace *docmodel.Transclusion, with *docmodel.Document, prefix, from string) {
	idx := -1
	for i, n := range into.Nodes {
		if t, ok := n.(*docmodel.Transclusion); ok && t == replace {
			idx = i

			break
		}
	}
	if idx < 0 {
		return
	}

	inserted := make([]docmodel.Node, len(with.Nodes))
	for i, n := range with.Nodes {
		if cb, ok := n.(*docmodel.CodeBlock); ok {
			c := *cb
			if c.Name == "" {
				c.Name = prefix
				c.IsUnnamed = true
			}
			if c.SourceFile == "" {
				c.SourceFile = from
			}
			inserted[i] = &c
		} else {
			inserted[i] = n
		}
	}

	out := make([]docmodel.Node, 0, len(into.Nodes)-1+len(inserted))
	out = append(out, into.Nodes[:idx]...)
	out = append(out, inserted...)
	out = append(out, into.Nodes[idx+1:]...)
	into.Nodes = out
}

func cloneTrace(t map[string]bool) map[string]bool {
	out := make(map[string]bool, len(t))
	for k, v := range t {
		out[k] = v
	}

	return out
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}

	return false
}

func removeFromOrder(order []string, v string) []string {
	out := order[:0]
	for _, x := range order {
		if x != v {
			out = append(out, x)
		}
	}

	return out
}
