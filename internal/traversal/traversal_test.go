package traversal

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/connerohnesorge/litweave/internal/config"
)

func memReader(files map[string]string) ReadFile {
	return func(p string) (string, error) {
		s, ok := files[p]
		if !ok {
			return "", errors.New("not found")
		}

		return s, nil
	}
}

func TestWalkInlinesTransclusion(t *testing.T) {
	cfg := config.Default()
	files := map[string]string{
		"root.md": "Intro.\n\n@{{sub.md}}\n",
		"sub.md":  "```go\nfmt.Println(1)\n```\n",
	}

	set, err := Walk(cfg, memReader(files), "root.md", Options{Inline: true})
	assert.NoError(t, err)

	root := set.Documents["root.md"]
	assert.True(t, root != nil, "root.md missing from set")
	_, ok := set.Documents["sub.md"]
	assert.False(t, ok, "sub.md should have been inlined, not kept as a separate document")

	blocks := root.AllCodeBlocks()
	assert.Equal(t, 1, len(blocks))
	assert.True(t, blocks[0].IsUnnamed, "inlined unnamed block should be marked IsUnnamed")
}

func TestWalkDryRunKeepsSeparateDocuments(t *testing.T) {
	cfg := config.Default()
	files := map[string]string{
		"root.md": "@{{sub.md}}\n",
		"sub.md":  "```go\nfmt.Println(1)\n```\n",
	}

	set, err := Walk(cfg, memReader(files), "root.md", Options{Inline: false})
	assert.NoError(t, err)

	_, ok := set.Documents["sub.md"]
	assert.True(t, ok, "sub.md should remain a separate document in dry-run mode")
}

func TestWalkDetectsCycle(t *testing.T) {
	cfg := config.Default()
	files := map[string]string{
		"a.md": "@{{b.md}}\n",
		"b.md": "@{{a.md}}\n",
	}

	_, err := Walk(cfg, memReader(files), "a.md", Options{Inline: true})
	assert.Error(t, err)
}

func TestWalkDetectsDuplicateTransclusion(t *testing.T) {
	cfg := config.Default()
	files := map[string]string{
		"root.md": "@{{sub.md}}\n\n@{{sub.md}}\n",
		"sub.md":  "text\n",
	}

	_, err := Walk(cfg, memReader(files), "root.md", Options{Inline: true})
	assert.Error(t, err)
}

func TestWalkFollowsLinkWithoutInlining(t *testing.T) {
	cfg := config.Default()
	files := map[string]string{
		"root.md": "See @[more](more.md) here.\n",
		"more.md": "```go\nfmt.Println(2)\n```\n",
	}

	set, err := Walk(cfg, memReader(files), "root.md", Options{Inline: true})
	assert.NoError(t, err)

	_, ok := set.Documents["more.md"]
	assert.True(t, ok, "followed link should produce a separate document")
	root := set.Documents["root.md"]
	assert.Equal(t, 0, len(root.AllCodeBlocks()))
}
