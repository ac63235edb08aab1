package docmodel

import (
	"path/filepath"
	"strings"
)

// EntryPoint names a tangle entry: either the document's own implicit
// default entry (Name == "") or an explicit file-prefixed block.
type EntryPoint struct {
	// Name is the entry's block name, or "" for the document's implicit
	// default entry (named after the document's own file stem).
	Name string
	// OutFile is the path code tangled from this entry should be written
	// to, relative to the configured code output directory.
	OutFile string
}

// EntryPoints returns every tangle entry point this document exposes: the
// document's own default entry named after its basename, plus one entry per
// file-prefixed block name, matching yarner's own-basename-plus-file:
// -prefixed-names convention.
//
// The default entry expands the document's unnamed top-level block, unless
// defaultEntrypoint names a code block present in the document, in which
// case that named block is used instead (the paths.entrypoint config
// setting / --entrypoint flag override).
func (d *Document) EntryPoints(filePrefix, defaultEntrypoint string) []EntryPoint {
	var entries []EntryPoint
	seen := map[string]bool{}

	stem := stemOf(d.SourceFile)
	hasDefault := false
	hasNamedDefault := false

	for _, n := range d.Nodes {
		cb, ok := n.(*CodeBlock)
		if !ok {
			continue
		}
		if cb.Name == "" {
			hasDefault = true

			continue
		}
		if defaultEntrypoint != "" && cb.Name == defaultEntrypoint {
			hasNamedDefault = true
		}
		if strings.HasPrefix(cb.Name, filePrefix) {
			out := strings.TrimPrefix(cb.Name, filePrefix)
			if !seen[cb.Name] {
				seen[cb.Name] = true
				entries = append(entries, EntryPoint{Name: cb.Name, OutFile: out})
			}
		}
	}

	switch {
	case hasNamedDefault:
		entries = append([]EntryPoint{{Name: defaultEntrypoint, OutFile: stem}}, entries...)
	case hasDefault:
		entries = append([]EntryPoint{{Name: "", OutFile: stem}}, entries...)
	}

	return entries
}

func stemOf(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CodeBlocksByName returns, in document order, every CodeBlock whose Name
// matches, filtered additionally by language when language is non-empty.
func (d *Document) CodeBlocksByName(name, language string) []*CodeBlock {
	var out []*CodeBlock
	for _, n := range d.Nodes {
		cb, ok := n.(*CodeBlock)
		if !ok {
			continue
		}
		if cb.Name != name {
			continue
		}
		if language != "" && cb.Language != "" && cb.Language != language {
			continue
		}
		out = append(out, cb)
	}

	return out
}

// AllCodeBlocks returns every CodeBlock node, in document order.
func (d *Document) AllCodeBlocks() []*CodeBlock {
	var out []*CodeBlock
	for _, n := range d.Nodes {
		if cb, ok := n.(*CodeBlock); ok {
			out = append(out, cb)
		}
	}

	return out
}

// Transclusions returns every Transclusion node, in document order.
func (d *Document) Transclusions() []*Transclusion {
	var out []*Transclusion
	for _, n := range d.Nodes {
		if t, ok := n.(*Transclusion); ok {
			out = append(out, t)
		}
	}

	return out
}
