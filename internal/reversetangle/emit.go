package reversetangle

import (
	"strings"

	"github.com/connerohnesorge/litweave/internal/config"
	"github.com/connerohnesorge/litweave/internal/docmodel"
)

// Emit re-renders doc as source text, substituting each code block's body
// with the matching recovered Block (by (name, per-name occurrence index)
// recounted in document order), and leaving everything else — prose,
// transclusion directives, fence/name lines — untouched.
//
// Grounded in the reference implementation's print.rs::print_reverse.
func Emit(doc *docmodel.Document, parser config.ParserSettings, blocks map[BlockKey]*Block) string {
	var sb strings.Builder
	count := map[string]int{}

	for _, n := range doc.Nodes {
		switch node := n.(type) {
		case *docmodel.TextBlock:
			sb.WriteString(strings.Join(node.Lines, "\n"))
			sb.WriteString("\n")
		case *docmodel.Transclusion:
			sb.WriteString(node.Original)
			sb.WriteString("\n")
		case *docmodel.CodeBlock:
			idx := count[node.Name]
			count[node.Name]++

			key := BlockKey{File: doc.SourceFile, Name: node.Name, Named: !node.IsUnnamed && node.Name != "", Index: idx}
			emitCodeBlock(&sb, node, blocks[key], parser)
		}
	}

	return sb.String()
}

func emitCodeBlock(sb *strings.Builder, cb *docmodel.CodeBlock, alt *Block, parser config.ParserSettings) {
	f := parser.FenceSequence
	if cb.Alternative {
		f = parser.FenceSequenceAlt
	}

	sb.WriteString(cb.Indent)
	sb.WriteString(f)
	sb.WriteString(cb.Language)
	sb.WriteString("\n")

	if !cb.IsUnnamed && cb.Name != "" {
		sb.WriteString(cb.Indent)
		sb.WriteString(parser.BlockNamePrefix)
		sb.WriteString(" ")
		if cb.Hidden {
			sb.WriteString(parser.HiddenPrefix)
		}
		sb.WriteString(cb.Name)
		sb.WriteString("\n")
	}

	if alt != nil {
		for _, line := range alt.Lines {
			sb.WriteString(cb.Indent)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	} else {
		for _, ln := range cb.Source {
			sb.WriteString(cb.Indent)
			sb.WriteString(ln.Indent)
			sb.WriteString(renderSource(ln, parser))
			sb.WriteString("\n")
		}
	}

	sb.WriteString(cb.Indent)
	sb.WriteString(f)
	sb.WriteString("\n")
}

func renderSource(ln docmodel.Line, parser config.ParserSettings) string {
	if ln.Source.IsMacro() {
		call := ln.Source.Macro
		if len(ln.Source.Scope) > 0 {
			call += "(" + strings.Join(ln.Source.Scope, ", ") + ")"
		}

		return parser.MacroStart + " " + call + parser.MacroEnd
	}

	var sb strings.Builder
	for _, seg := range ln.Source.Segments {
		if seg.IsMetaVar {
			sb.WriteString(parser.InterpolationStart + seg.MetaVar + parser.InterpolationEnd)
		} else {
			sb.WriteString(seg.Text)
		}
	}

	return sb.String()
}
