package tangle

import (
	"strings"

	"github.com/connerohnesorge/litweave/internal/config"
	"github.com/connerohnesorge/litweave/internal/docmodel"
)

// Weave renders a Document back out as prose interleaved with fenced code
// blocks, skipping hidden blocks and re-emitting the original transclusion
// directive text verbatim (transclusions are never inlined in
// documentation output once woven — the inlining already happened during
// traversal, so by this point any transclusion node still present was
// link-followed, not inlined, and prints as a plain marker).
//
// Grounded in the reference implementation's print.rs::print_docs.
func Weave(doc *docmodel.Document, parser config.ParserSettings) string {
	var sb strings.Builder

	for _, n := range doc.Nodes {
		switch node := n.(type) {
		case *docmodel.TextBlock:
			sb.WriteString(strings.Join(node.Lines, "\n"))
			sb.WriteString("\n")
		case *docmodel.CodeBlock:
			if node.Hidden {
				continue
			}
			writeFencedBlock(&sb, node, parser)
		case *docmodel.Transclusion:
			sb.WriteString(node.Original)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func writeFencedBlock(sb *strings.Builder, cb *docmodel.CodeBlock, parser config.ParserSettings) {
	fence := parser.FenceSequence
	if cb.Alternative {
		fence = parser.FenceSequenceAlt
	}

	sb.WriteString(cb.Indent)
	sb.WriteString(fence)
	sb.WriteString(cb.Language)
	sb.WriteString("\n")

	for _, ln := range cb.Source {
		sb.WriteString(cb.Indent)
		sb.WriteString(ln.Indent)
		sb.WriteString(renderLineVerbatim(ln, parser))
		sb.WriteString("\n")
	}

	sb.WriteString(cb.Indent)
	sb.WriteString(fence)
	sb.WriteString("\n")
}

func renderLineVerbatim(ln docmodel.Line, parser config.ParserSettings) string {
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
