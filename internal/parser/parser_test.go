package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/connerohnesorge/litweave/internal/config"
	"github.com/connerohnesorge/litweave/internal/docmodel"
)

func defaultSettings() *config.ParserSettings {
	return &config.Default().Parser
}

func TestParseSimpleNamedBlock(t *testing.T) {
	src := "Some prose.\n\n```go\n//- greet\nfmt.Println(\"hi\")\n```\n"

	res, err := Parse(defaultSettings(), "doc.md", "doc.md", src)
	assert.NoError(t, err)

	blocks := res.Document.AllCodeBlocks()
	assert.Equal(t, 1, len(blocks))
	assert.Equal(t, "greet", blocks[0].Name)
	assert.Equal(t, 1, len(blocks[0].Source))
}

func TestParseBlockWithVarsAndDefaults(t *testing.T) {
	src := "```go\n//- greet(name, greeting:Hello)\nfmt.Println(greeting, name)\n```\n"

	res, err := Parse(defaultSettings(), "doc.md", "doc.md", src)
	assert.NoError(t, err)

	cb := res.Document.AllCodeBlocks()[0]
	assert.Equal(t, []string{"name", "greeting"}, cb.Vars)
	assert.True(t, cb.Defaults[0] == nil)
	assert.True(t, cb.Defaults[1] != nil && *cb.Defaults[1] == "Hello")
}

func TestParseMacroInvocation(t *testing.T) {
	src := "```go\n//- main\nfunc main() {\n    // ==> greet(\"world\").\n}\n```\n"

	res, err := Parse(defaultSettings(), "doc.md", "doc.md", src)
	assert.NoError(t, err)

	cb := res.Document.AllCodeBlocks()[0]
	var macroLine *docmodel.Line
	for i := range cb.Source {
		if cb.Source[i].Source.IsMacro() {
			macroLine = &cb.Source[i]
		}
	}
	assert.True(t, macroLine != nil, "no macro line found")
	assert.Equal(t, "greet", macroLine.Source.Macro)
	assert.Equal(t, []string{`"world"`}, macroLine.Source.Scope)
}

func TestParseHiddenBlock(t *testing.T) {
	src := "```hidden:go\n//- setup\nimport \"fmt\"\n```\n"

	res, err := Parse(defaultSettings(), "doc.md", "doc.md", src)
	assert.NoError(t, err)

	cb := res.Document.AllCodeBlocks()[0]
	assert.True(t, cb.Hidden)
	assert.Equal(t, "go", cb.Language)
}

func TestParseAlternativeFence(t *testing.T) {
	src := "~~~go\n//- sample\nfmt.Println(1)\n~~~\n"

	res, err := Parse(defaultSettings(), "doc.md", "doc.md", src)
	assert.NoError(t, err)

	cb := res.Document.AllCodeBlocks()[0]
	assert.True(t, cb.Alternative)
}

func TestParseTransclusion(t *testing.T) {
	src := "Intro.\n\n@{{sub/part.md}}\n\nOutro.\n"

	res, err := Parse(defaultSettings(), "doc.md", "doc.md", src)
	assert.NoError(t, err)

	trans := res.Document.Transclusions()
	assert.Equal(t, 1, len(trans))
	assert.Equal(t, "sub/part.md", trans[0].Target)
}

func TestParseLinkRewriteAndFollow(t *testing.T) {
	src := "See @[details](sub/details.md) for more.\n"

	res, err := Parse(defaultSettings(), "doc.md", "doc.md", src)
	assert.NoError(t, err)
	assert.Equal(t, []string{"sub/details.md"}, res.Follow)

	tb, ok := res.Document.Nodes[0].(*docmodel.TextBlock)
	assert.True(t, ok, "expected TextBlock, got %T", res.Document.Nodes[0])
	assert.Equal(t, "See [details](sub/details.md) for more.", tb.Lines[0])
}

func TestParseCRLFNewlineDetected(t *testing.T) {
	src := "line one\r\nline two\r\n"

	res, err := Parse(defaultSettings(), "doc.md", "doc.md", src)
	assert.NoError(t, err)
	assert.Equal(t, docmodel.NewlineCRLF, res.Document.Newline)
}

func TestParseUnterminatedFenceIsError(t *testing.T) {
	src := "```go\nfmt.Println(1)\n"

	_, err := Parse(defaultSettings(), "doc.md", "doc.md", src)
	assert.Error(t, err)
}
