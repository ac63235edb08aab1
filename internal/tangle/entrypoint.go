package tangle

import (
	"fmt"
	"strings"

	"github.com/connerohnesorge/litweave/internal/config"
	"github.com/connerohnesorge/litweave/internal/docmodel"
)

// CompileEntry tangles every top-level occurrence of entry.Name (or, for
// the implicit default entry, every top-level unnamed block) in document
// order, wrapping each run of same-named occurrences in block-start/
// block-next/block-end labels per lang's configuration, and returns the
// final code text.
//
// Grounded in the reference implementation's print.rs::print_code: labels
// are only emitted around the code actually belonging to the resolved
// entry point, not around every nested macro expansion.
func CompileEntry(doc *docmodel.Document, entry docmodel.EntryPoint, lang config.LanguageSettings, blankLines bool) (string, error) {
	blocks := byName(doc)

	var targets []*docmodel.CodeBlock
	for _, cb := range doc.AllCodeBlocks() {
		if cb.Name == entry.Name {
			targets = append(targets, cb)
		}
	}

	clean := !lang.BlockLabels || lang.CleanCode

	var out []string
	occurrence := map[string]int{}
	key := func(cb *docmodel.CodeBlock) string { return cb.SourceFile + "#" + cb.Name }

	for i, cb := range targets {
		idx := occurrence[key(cb)]
		occurrence[key(cb)] = idx + 1

		if !clean && (i == 0) {
			out = append(out, label(lang, lang.BlockStart, cb.SourceFile, cb.Name, idx))
		}

		body, err := compile(doc.SourceFile, blocks, cb, map[string]string{}, blankLines)
		if err != nil {
			return "", err
		}
		out = append(out, body)

		if !clean && i == len(targets)-1 {
			out = append(out, label(lang, lang.BlockEnd, cb.SourceFile, cb.Name, idx))
		} else if !clean && i+1 < len(targets) {
			nxt := targets[i+1]
			out = append(out, label(lang, lang.BlockNext, nxt.SourceFile, nxt.Name, occurrence[key(nxt)]))
		}
	}

	result := strings.Join(out, "\n")
	if lang.EOFNewlineOrDefault() && !strings.HasSuffix(result, "\n") {
		result += "\n"
	}

	return result, nil
}

func label(lang config.LanguageSettings, marker, path, name string, index int) string {
	return fmt.Sprintf("%s %s%s#%s#%d%s", lang.CommentStart, marker, path, name, index, lang.CommentEnd)
}
