// Package parser lexes and parses one literate source document into a
// docmodel.Document, rewriting cross-document links as it goes.
//
// Architecturally this follows internal/mdparser: a small state machine
// scans the source (here, line by line rather than rune by rune, since the
// line is the natural unit for fence/name/macro detection) and emits nodes
// that a thin parser assembles into a Document. The scanning rules
// themselves — fence/alt-fence matching, the block_name_prefix first-body-
// line convention, macro call syntax, and link rewriting — are grounded in
// the reference literate-programming implementation's parse.rs and
// document/code.rs, not invented.
package parser

import (
	"regexp"
	"strings"

	"github.com/connerohnesorge/litweave/internal/config"
	"github.com/connerohnesorge/litweave/internal/docmodel"
	"github.com/connerohnesorge/litweave/internal/tangleerrs"
	"github.com/hashicorp/go-multierror"
)

// Result is everything parsing one document produces.
type Result struct {
	Document *docmodel.Document
	// Follow holds link targets discovered via the marker-prefixed link
	// syntax, root-relative, to be queued by the traversal package.
	Follow []string
}

// Parse lexes and parses source (the raw bytes of file, whose path relative
// to root is file) using the tokens configured in cfg.Parser.
func Parse(cfg *config.ParserSettings, root, file, source string) (*Result, error) {
	p := &parser{cfg: cfg, root: root, file: file, linkRe: compileLinkPattern(cfg.LinkFollowingMarker)}

	return p.run(source)
}

type parser struct {
	cfg    *config.ParserSettings
	root   string
	file   string
	linkRe *regexp.Regexp

	doc     docmodel.Document
	errs    *multierror.Error
	follow  []string
	textBuf []string

	inCode  bool
	current *docmodel.CodeBlock
	alt     bool
}

func (p *parser) run(source string) (*Result, error) {
	nl := detectNewline(source)
	p.doc.SourceFile = p.file
	p.doc.Newline = nl

	lines := splitLines(source, nl)

	for i, raw := range lines {
		lineNo := i + 1
		if p.inCode {
			p.scanCodeLine(lineNo, raw)
		} else {
			p.scanTextLine(raw)
		}
	}

	if p.inCode {
		p.errs = multierror.Append(p.errs, &tangleerrs.ParseError{
			File: p.file, Line: len(lines), Msg: "unterminated code fence",
		})
	}
	p.flushText()

	if p.errs != nil {
		return nil, p.errs.ErrorOrNil()
	}

	return &Result{Document: &p.doc, Follow: p.follow}, nil
}

func (p *parser) flushText() {
	if len(p.textBuf) == 0 {
		return
	}
	p.doc.Nodes = append(p.doc.Nodes, &docmodel.TextBlock{Lines: p.textBuf})
	p.textBuf = nil
}

func (p *parser) scanTextLine(raw string) {
	trimmed := strings.TrimSpace(raw)

	if target, original, ok := p.matchTransclusion(trimmed); ok {
		p.flushText()
		resolved := absoluteLink(p.file, target)
		p.doc.Nodes = append(p.doc.Nodes, &docmodel.Transclusion{
			Target:   resolved,
			Original: original,
		})

		return
	}

	if indent, lang, alt, ok := p.matchFenceOpen(raw); ok {
		p.flushText()
		p.inCode = true
		p.alt = alt

		hidden := false
		if strings.HasPrefix(lang, p.cfg.HiddenPrefix) {
			hidden = true
			lang = strings.TrimPrefix(lang, p.cfg.HiddenPrefix)
		}

		p.current = &docmodel.CodeBlock{
			Indent:      indent,
			Language:    lang,
			Hidden:      hidden,
			Alternative: alt,
			SourceFile:  p.file,
		}

		return
	}

	rewritten, follow := rewriteLinks(p.linkRe, raw, p.root, p.file, p.cfg.LinkFollowingMarker)
	p.follow = append(p.follow, follow...)
	p.textBuf = append(p.textBuf, rewritten)
}

func (p *parser) scanCodeLine(lineNo int, raw string) {
	trimmed := strings.TrimSpace(raw)
	fence := p.cfg.FenceSequence
	if p.alt {
		fence = p.cfg.FenceSequenceAlt
	}

	if trimmed == fence {
		p.doc.Nodes = append(p.doc.Nodes, p.current)
		p.current = nil
		p.inCode = false

		return
	}

	if p.current.Name == "" && len(p.current.Source) == 0 &&
		strings.HasPrefix(trimmed, p.cfg.BlockNamePrefix) {
		name, vars, defaults := parseBlockName(trimmed, p.cfg.BlockNamePrefix)
		if p.cfg.HiddenPrefix != "" && strings.HasPrefix(name, p.cfg.HiddenPrefix) {
			p.current.Hidden = true
			name = strings.TrimPrefix(name, p.cfg.HiddenPrefix)
		}
		p.current.Name = name
		p.current.Vars = vars
		p.current.Defaults = defaults

		return
	}

	if !strings.HasPrefix(raw, p.current.Indent) {
		p.errs = multierror.Append(p.errs, &tangleerrs.ParseError{
			File: p.file, Line: lineNo, Msg: "incorrect indentation",
		})

		return
	}
	rest := raw[len(p.current.Indent):]

	indent := leadingWhitespace(rest)
	body := strings.TrimPrefix(rest, indent)

	if mname, scope, ok := p.matchMacro(strings.TrimSpace(body)); ok {
		p.current.Source = append(p.current.Source, docmodel.Line{
			Indent: indent,
			LineNo: lineNo,
			Source: docmodel.Source{Macro: mname, Scope: scope},
		})

		return
	}

	p.current.Source = append(p.current.Source, docmodel.Line{
		Indent: indent,
		LineNo: lineNo,
		Source: docmodel.Source{Segments: splitSegments(body, p.cfg.InterpolationStart, p.cfg.InterpolationEnd)},
	})
}

func (p *parser) matchFenceOpen(raw string) (indent, lang string, alt, ok bool) {
	trimmed := strings.TrimLeft(raw, " \t")
	indent = raw[:len(raw)-len(trimmed)]

	switch {
	case strings.HasPrefix(trimmed, p.cfg.FenceSequence):
		return indent, strings.TrimSpace(strings.TrimPrefix(trimmed, p.cfg.FenceSequence)), false, true
	case strings.HasPrefix(trimmed, p.cfg.FenceSequenceAlt):
		return indent, strings.TrimSpace(strings.TrimPrefix(trimmed, p.cfg.FenceSequenceAlt)), true, true
	default:
		return "", "", false, false
	}
}

func (p *parser) matchTransclusion(trimmed string) (target, original string, ok bool) {
	if !strings.HasPrefix(trimmed, p.cfg.TransclusionStart) || !strings.HasSuffix(trimmed, p.cfg.TransclusionEnd) {
		return "", "", false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, p.cfg.TransclusionStart), p.cfg.TransclusionEnd)
	inner = strings.TrimSpace(inner)

	return inner, trimmed, true
}

func (p *parser) matchMacro(body string) (name string, scope []string, ok bool) {
	if !strings.HasPrefix(body, p.cfg.MacroStart) || !strings.HasSuffix(body, p.cfg.MacroEnd) {
		return "", nil, false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(body, p.cfg.MacroStart), p.cfg.MacroEnd)
	inner = strings.TrimSpace(inner)

	name, scope = splitNameAndArgs(inner)

	return name, scope, true
}

func parseBlockName(trimmed, prefix string) (name string, vars []string, defaults []*string) {
	inner := strings.TrimSpace(strings.TrimPrefix(trimmed, prefix))
	base, args := splitNameAndArgs(inner)

	vars = make([]string, len(args))
	defaults = make([]*string, len(args))
	for i, a := range args {
		if idx := strings.Index(a, ":"); idx >= 0 {
			vars[i] = strings.TrimSpace(a[:idx])
			d := strings.TrimSpace(a[idx+1:])
			defaults[i] = &d
		} else {
			vars[i] = strings.TrimSpace(a)
		}
	}

	return base, vars, defaults
}

func splitNameAndArgs(s string) (name string, args []string) {
	open := strings.Index(s, "(")
	if open < 0 || !strings.HasSuffix(s, ")") {
		return s, nil
	}
	name = strings.TrimSpace(s[:open])
	inner := s[open+1 : len(s)-1]
	if strings.TrimSpace(inner) == "" {
		return name, nil
	}
	for _, part := range strings.Split(inner, ",") {
		args = append(args, strings.TrimSpace(part))
	}

	return name, args
}

func leadingWhitespace(s string) string {
	trimmed := strings.TrimLeft(s, " \t")

	return s[:len(s)-len(trimmed)]
}

func splitSegments(body, start, end string) []docmodel.Segment {
	var segs []docmodel.Segment
	rest := body
	for {
		i := strings.Index(rest, start)
		if i < 0 {
			segs = append(segs, docmodel.Segment{Text: rest})

			return segs
		}
		j := strings.Index(rest[i:], end)
		if j < 0 {
			segs = append(segs, docmodel.Segment{Text: rest})

			return segs
		}
		j += i

		if i > 0 {
			segs = append(segs, docmodel.Segment{Text: rest[:i]})
		}
		name := rest[i+len(start) : j]
		segs = append(segs, docmodel.Segment{MetaVar: name, IsMetaVar: true})
		rest = rest[j+len(end):]
	}
}

func detectNewline(source string) docmodel.Newline {
	if i := strings.IndexByte(source, '\n'); i > 0 && source[i-1] == '\r' {
		return docmodel.NewlineCRLF
	}

	return docmodel.NewlineLF
}

func splitLines(source string, nl docmodel.Newline) []string {
	s := source
	if nl == docmodel.NewlineCRLF {
		s = strings.ReplaceAll(s, "\r\n", "\n")
	}
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}

	return strings.Split(s, "\n")
}
