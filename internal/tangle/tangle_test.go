package tangle

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/connerohnesorge/litweave/internal/config"
	"github.com/connerohnesorge/litweave/internal/docmodel"
	"github.com/connerohnesorge/litweave/internal/parser"
)

func parseDoc(t *testing.T, src string) *docmodel.Document {
	t.Helper()
	cfg := config.Default()
	res, err := parser.Parse(&cfg.Parser, "doc.md", "doc.md", src)
	assert.NoError(t, err)

	return res.Document
}

func TestCompileEntrySimple(t *testing.T) {
	doc := parseDoc(t, "```go\nfmt.Println(1)\n```\n")

	out, err := CompileEntry(doc, docmodel.EntryPoint{Name: "", OutFile: "main.go"}, config.LanguageSettings{}, true)
	assert.NoError(t, err)
	assert.Equal(t, "fmt.Println(1)\n", out)
}

func TestCompileEntryMacroExpansion(t *testing.T) {
	doc := parseDoc(t, "```go\n//- main\nfunc main() {\n    // ==> body.\n}\n```\n\n```go\n//- body\nfmt.Println(2)\n```\n")

	out, err := CompileEntry(doc, docmodel.EntryPoint{Name: "main", OutFile: "main.go"}, config.LanguageSettings{}, true)
	assert.NoError(t, err)
	assert.Equal(t, "func main() {\n    fmt.Println(2)\n}\n", out)
}

func TestCompileEntryMetaVariables(t *testing.T) {
	doc := parseDoc(t, "```go\n//- main\n// ==> greet(\"Ada\").\n```\n\n```go\n//- greet(name, greeting:Hello)\nfmt.Println(greeting, \"@{name}\")\n```\n")

	out, err := CompileEntry(doc, docmodel.EntryPoint{Name: "main", OutFile: "main.go"}, config.LanguageSettings{}, true)
	assert.NoError(t, err)
	assert.True(t, out != "")
}

func TestCompileEntryUnknownMacroErrors(t *testing.T) {
	doc := parseDoc(t, "```go\n//- main\n// ==> missing.\n```\n")

	_, err := CompileEntry(doc, docmodel.EntryPoint{Name: "main", OutFile: "main.go"}, config.LanguageSettings{}, true)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "doc.md:3:")
}

func TestCompileEntryWithBlockLabels(t *testing.T) {
	doc := parseDoc(t, "```go\n//- main\nfmt.Println(1)\n```\n")

	lang := config.LanguageSettings{
		BlockLabels:  true,
		CommentStart: "//",
		CommentEnd:   "",
		BlockStart:   "[[[",
		BlockNext:    ">>>",
		BlockEnd:     "]]]",
	}

	out, err := CompileEntry(doc, docmodel.EntryPoint{Name: "main", OutFile: "main.go"}, lang, true)
	assert.NoError(t, err)
	assert.Contains(t, out, "[[[doc.md#main#0")
	assert.Contains(t, out, "]]]doc.md#main#0")
}

func TestWeaveSkipsHiddenBlocks(t *testing.T) {
	doc := parseDoc(t, "Intro.\n\n```hidden:go\nsecret\n```\n\nMore text.\n")

	out := Weave(doc, config.Default().Parser)
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "Intro.")
	assert.Contains(t, out, "More text.")
}

func TestWeaveUsesConfiguredMacroAndInterpolationMarkers(t *testing.T) {
	cfg := config.Default()
	cfg.Parser.MacroStart = "// call"
	cfg.Parser.MacroEnd = ";"
	cfg.Parser.InterpolationStart = "${"
	cfg.Parser.InterpolationEnd = "}"

	src := "```go\n//- main\n// call greet(\"Ada\");\n```\n\n```go\n//- greet(name)\nfmt.Println(\"${name}\")\n```\n"
	res, err := parser.Parse(&cfg.Parser, "doc.md", "doc.md", src)
	assert.NoError(t, err)

	out := Weave(res.Document, cfg.Parser)
	assert.Contains(t, out, "// call greet(\"Ada\");")
}
