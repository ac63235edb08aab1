package reversetangle

import (
	"github.com/connerohnesorge/litweave/internal/config"
	"github.com/connerohnesorge/litweave/internal/docmodel"
)

// Reconstitute scans codeFiles for block-label comments and re-renders doc's
// source text with every code block's body replaced by whatever was
// recovered for its (name, occurrence) key; blocks with no recovered
// counterpart are re-emitted from the parsed document unchanged.
func Reconstitute(cfg *config.Config, doc *docmodel.Document, codeFiles map[string]string) (string, []string, error) {
	blocks, warnings, err := CollectFromFiles(cfg, codeFiles)
	if err != nil {
		return "", nil, err
	}

	out := Emit(doc, cfg.Parser, blocks)

	return out, warnings, nil
}
