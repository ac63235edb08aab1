// Package tangle composes named code fragments into tangled source files:
// macro expansion, meta-variable interpolation, block-label emission, and
// entry-point resolution, plus the documentation ("weave") renderer.
//
// The compilation algorithm — depth-first macro expansion in insertion
// order, positional meta-variable scope binding with NAME:default
// fallback, and per-call re-indentation of expanded sub-blocks — is
// grounded directly in the reference implementation's
// document/code.rs::compile_with/assign_vars.
package tangle

import (
	"strings"

	"github.com/connerohnesorge/litweave/internal/docmodel"
	"github.com/connerohnesorge/litweave/internal/tangleerrs"
)

// byName indexes a document's code blocks by name, in document order, so
// macro invocations can find every block matching a given name. Alternative
// only records which fence token opened a block, not whether it
// participates in tangling, so it plays no part in this lookup.
func byName(doc *docmodel.Document) map[string][]*docmodel.CodeBlock {
	idx := map[string][]*docmodel.CodeBlock{}
	for _, cb := range doc.AllCodeBlocks() {
		idx[cb.Name] = append(idx[cb.Name], cb)
	}

	return idx
}

// compile expands one CodeBlock's body under the given meta-variable
// scope, returning the joined source text (no trailing newline).
func compile(file string, blocks map[string][]*docmodel.CodeBlock, cb *docmodel.CodeBlock, scope map[string]string, blankLines bool) (string, error) {
	var lines []string

	for _, ln := range cb.Source {
		if ln.Source.IsMacro() {
			expanded, err := expandMacro(file, blocks, ln, blankLines)
			if err != nil {
				return "", err
			}
			lines = append(lines, reindent(expanded, ln.Indent, blankLines)...)

			continue
		}

		text, err := interpolate(file, ln, scope)
		if err != nil {
			return "", err
		}
		lines = append(lines, emitLine(ln.Indent, text, blankLines))
	}

	return strings.Join(lines, "\n"), nil
}

func expandMacro(file string, blocks map[string][]*docmodel.CodeBlock, ln docmodel.Line, blankLines bool) (string, error) {
	matches, ok := blocks[ln.Source.Macro]
	if !ok || len(matches) == 0 {
		return "", &tangleerrs.UnknownMacroError{Name: ln.Source.Macro, File: file, Line: ln.LineNo}
	}

	var parts []string
	for _, m := range matches {
		scope := assignVars(m, ln.Source.Scope)
		body, err := compile(file, blocks, m, scope, blankLines)
		if err != nil {
			return "", err
		}
		parts = append(parts, body)
	}

	return strings.Join(parts, "\n"), nil
}

// assignVars zips a block's declared variable names and defaults against
// the caller-supplied positional arguments: an empty (or missing)
// argument falls back to the declared default, or to empty string if
// there is none.
func assignVars(block *docmodel.CodeBlock, scope []string) map[string]string {
	out := map[string]string{}
	for i, name := range block.Vars {
		value := ""
		if i < len(scope) {
			value = scope[i]
		}
		if value == "" && i < len(block.Defaults) && block.Defaults[i] != nil {
			value = *block.Defaults[i]
		}
		out[name] = value
	}

	return out
}

func interpolate(file string, ln docmodel.Line, scope map[string]string) (string, error) {
	var sb strings.Builder
	for _, seg := range ln.Source.Segments {
		if !seg.IsMetaVar {
			sb.WriteString(seg.Text)

			continue
		}
		val, ok := scope[seg.MetaVar]
		if !ok {
			return "", &tangleerrs.UnknownMetaVariableError{Name: seg.MetaVar, File: file, Line: ln.LineNo}
		}
		sb.WriteString(val)
	}

	return sb.String(), nil
}

func emitLine(indent, code string, blankLines bool) string {
	if blankLines && strings.TrimSpace(code) == "" {
		return ""
	}

	return indent + code
}

// reindent applies indent to every line of a multi-line expansion result,
// blanking lines that are themselves blank when blankLines is set.
func reindent(body, indent string, blankLines bool) []string {
	lines := strings.Split(body, "\n")
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = emitLine(indent, l, blankLines)
	}

	return out
}
