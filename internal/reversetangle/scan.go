// Package reversetangle recovers edits made directly to tangled code by
// scanning block-label comments back out of code files and substituting the
// captured bodies back into the originating source document.
//
// Grounded directly in the reference implementation's src/code.rs: the
// label-line state machine (block_start opens a frame, block_next closes the
// current frame and opens a sibling at index+1, block_end closes the frame,
// and a nested block_start synthesizes a macro-invocation line in its
// parent's captured body) is a line-by-line port of that file's `parse`.
package reversetangle

import (
	"strconv"
	"strings"

	"github.com/connerohnesorge/litweave/internal/config"
	"github.com/connerohnesorge/litweave/internal/tangleerrs"
)

// BlockKey identifies one captured occurrence of a named (or unnamed) code
// block within a particular source document.
type BlockKey struct {
	File  string
	Name  string
	Named bool
	Index int
}

// Block is one code block recovered from a tangled file's block-label
// comments.
type Block struct {
	File   string
	Name   string
	Named  bool
	Index  int
	Lines  []string
	Indent string
}

// CollectFromFiles scans every (path, source) pair whose extension has
// block-label comments configured, merging the recovered blocks into one
// keyed table. Differing duplicate occurrences of the same block are fatal;
// identical duplicates are tolerated (the caller should log a warning).
func CollectFromFiles(cfg *config.Config, files map[string]string) (map[BlockKey]*Block, []string, error) {
	out := map[BlockKey]*Block{}
	var warnings []string

	for path, source := range files {
		ext := extensionOf(path)
		lang, ok := cfg.LanguageFor(ext)
		if !ok || !lang.BlockLabels {
			continue
		}

		blocks, err := parseLabels(path, source, &cfg.Parser, lang)
		if err != nil {
			return nil, nil, err
		}

		for _, b := range blocks {
			key := BlockKey{File: b.File, Name: b.Name, Named: b.Named, Index: b.Index}
			existing, dup := out[key]
			if !dup {
				out[key] = b

				continue
			}
			if !sameLines(existing.Lines, b.Lines) {
				return nil, nil, &tangleerrs.ReverseConflictError{File: b.File, Name: b.Name, Index: b.Index}
			}
			warnings = append(warnings, "multiple identical occurrences of a code block: "+b.File+"#"+nameOrEmpty(b)+"#"+strconv.Itoa(b.Index))
		}
	}

	return out, warnings, nil
}

func nameOrEmpty(b *Block) string {
	if !b.Named {
		return ""
	}

	return b.Name
}

func sameLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func extensionOf(path string) string {
	idx := strings.LastIndex(path, ".")
	if idx < 0 || idx == len(path)-1 {
		return ""
	}

	return path[idx+1:]
}

// parseLabels runs the block-label state machine over one file's source.
// path identifies the scanned code file, solely for error reporting.
func parseLabels(path, source string, parser *config.ParserSettings, lang config.LanguageSettings) ([]*Block, error) {
	start := lang.CommentStart + " " + lang.BlockStart
	next := lang.CommentStart + " " + lang.BlockNext
	end := lang.CommentStart + " " + lang.BlockEnd

	var blocks []*Block
	var stack []*Block

	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lineNo := i + 1
		trimmed := strings.TrimLeft(line, " \t")
		indent := line[:len(line)-len(trimmed)]

		switch {
		case strings.HasPrefix(trimmed, next):
			if len(stack) > 0 {
				blocks = append(blocks, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			nb, err := openBlock(path, lineNo, trimmed[len(next):], lang, indent)
			if err != nil {
				return nil, err
			}
			stack = append(stack, nb)
		case strings.HasPrefix(trimmed, start):
			nb, err := openBlock(path, lineNo, trimmed[len(start):], lang, indent)
			if err != nil {
				return nil, err
			}
			if nb.Named && len(stack) > 0 {
				parent := stack[len(stack)-1]
				macroLine := indent + parser.MacroStart
				if !strings.HasSuffix(parser.MacroStart, " ") {
					macroLine += " "
				}
				macroLine += nb.Name + parser.MacroEnd
				parent.Lines = append(parent.Lines, macroLine)
			}
			stack = append(stack, nb)
		case strings.HasPrefix(trimmed, end):
			if len(stack) > 0 {
				blocks = append(blocks, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
		case len(stack) > 0:
			cur := stack[len(stack)-1]
			if strings.HasPrefix(line, cur.Indent) {
				cur.Lines = append(cur.Lines, line[len(cur.Indent):])
			} else {
				cur.Lines = append(cur.Lines, line)
			}
		}
	}

	return blocks, nil
}

func openBlock(path string, lineNo int, rest string, lang config.LanguageSettings, indent string) (*Block, error) {
	full := strings.TrimSpace(rest)
	if lang.CommentEnd != "" {
		if idx := strings.Index(full, lang.CommentEnd); idx >= 0 {
			full = strings.TrimSpace(full[:idx])
		}
	}

	parts := strings.SplitN(full, "#", 3)
	if len(parts) < 3 {
		return nil, &tangleerrs.ReverseLabelError{File: path, Line: lineNo, Msg: "malformed block label: " + full}
	}

	file := parts[0]
	name := parts[1]
	index, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, &tangleerrs.ReverseLabelError{File: path, Line: lineNo, Msg: "invalid block index in label: " + full}
	}

	return &Block{File: file, Name: name, Named: name != "", Index: index, Indent: indent}, nil
}
