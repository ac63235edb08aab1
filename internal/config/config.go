// Package config handles loading and validating the TOML configuration that
// drives the parser's tokens, the per-language tangle/reverse-tangle label
// syntax, the path layout, and the plugin table.
//
// The upward-search-with-fallback-defaults loading strategy mirrors the
// teacher's internal/config package; the TOML format itself follows
// yarner's own configuration (src/config.rs), the only literate-programming
// config shape available in the retrieval corpus.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/connerohnesorge/litweave/internal/tangleerrs"
)

// FileName is the configuration file searched for on disk.
const FileName = "litweave.toml"

// ParserSettings carries every token the parser recognizes.
type ParserSettings struct {
	FenceSequence       string `toml:"fence_sequence"`
	FenceSequenceAlt    string `toml:"fence_sequence_alt"`
	BlockNamePrefix     string `toml:"block_name_prefix"`
	MacroStart          string `toml:"macro_start"`
	MacroEnd            string `toml:"macro_end"`
	TransclusionStart   string `toml:"transclusion_start"`
	TransclusionEnd     string `toml:"transclusion_end"`
	InterpolationStart  string `toml:"interpolation_start"`
	InterpolationEnd    string `toml:"interpolation_end"`
	VariableSep         string `toml:"variable_sep"`
	LinkFollowingMarker string `toml:"link_following_marker"`
	FilePrefix          string `toml:"file_prefix"`
	HiddenPrefix        string `toml:"hidden_prefix"`
	CommentsAsAside     bool   `toml:"comments_as_aside"`
	BlankLines          bool   `toml:"blank_lines"`
}

// LanguageSettings carries the block-label comment syntax used to tangle
// and reverse-tangle one target language, plus the file extension it maps
// to.
type LanguageSettings struct {
	Extension    string  `toml:"extension"`
	CommentStart string  `toml:"comment_start"`
	CommentEnd   string  `toml:"comment_end"`
	BlockStart   string  `toml:"block_start"`
	BlockNext    string  `toml:"block_next"`
	BlockEnd     string  `toml:"block_end"`
	BlockLabels  bool    `toml:"block_labels"`
	CleanCode    bool    `toml:"clean_code"`
	EOFNewline   *bool   `toml:"eof_newline"`
	Comment      *string `toml:"comment"`
}

// PathSettings lays out where source documents, tangled code, and rendered
// documentation live.
type PathSettings struct {
	Root       string   `toml:"root"`
	Files      []string `toml:"files"`
	CodeDir    string   `toml:"code_dir"`
	CodeFiles  []string `toml:"code_files"`
	DocDir     string   `toml:"doc_dir"`
	DocFiles   []string `toml:"doc_files"`
	Entrypoint string   `toml:"entrypoint"`
}

// PluginSettings configures one external plugin invocation.
type PluginSettings struct {
	Command   string   `toml:"command"`
	Arguments []string `toml:"arguments"`
}

// Config is the fully parsed, validated configuration.
type Config struct {
	Parser ParserSettings              `toml:"parser"`
	Paths  PathSettings                `toml:"paths"`
	Lang   map[string]LanguageSettings `toml:"language"`
	Plugin map[string]PluginSettings   `toml:"plugin"`
	Strict bool                       `toml:"strict"`

	// ProjectRoot is the absolute directory containing the config file
	// (or the starting directory, if none was found).
	ProjectRoot string `toml:"-"`
}

// Default returns the built-in default configuration, matching yarner's
// own default_settings() fixture.
func Default() *Config {
	return &Config{
		Parser: ParserSettings{
			FenceSequence:       "```",
			FenceSequenceAlt:    "~~~",
			BlockNamePrefix:     "//-",
			MacroStart:          "// ==>",
			MacroEnd:            ".",
			TransclusionStart:   "@{{",
			TransclusionEnd:     "}}",
			InterpolationStart:  "@{",
			InterpolationEnd:    "}",
			VariableSep:         ":",
			LinkFollowingMarker: "@",
			FilePrefix:          "file:",
			HiddenPrefix:        "hidden:",
			CommentsAsAside:     false,
			BlankLines:          true,
		},
		Paths: PathSettings{
			Root:      ".",
			Files:     []string{"**/*.md"},
			CodeDir:   ".",
			DocDir:    "docs",
			CodeFiles: []string{"**/*"},
			DocFiles:  []string{"**/*"},
		},
		Lang:   map[string]LanguageSettings{},
		Plugin: map[string]PluginSettings{},
	}
}

// Load searches for FileName starting from the current working directory,
// walking up the tree, and falls back to Default() with ProjectRoot set to
// cwd if none is found.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	return LoadFromPath(cwd)
}

// LoadFromPath searches for FileName starting at startPath, walking up the
// directory tree.
func LoadFromPath(startPath string) (*Config, error) {
	absPath, err := filepath.Abs(startPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for %q: %w", startPath, err)
	}

	currentPath := absPath
	for {
		configPath := filepath.Join(currentPath, FileName)
		if _, statErr := os.Stat(configPath); statErr == nil {
			cfg, parseErr := parseConfigFile(configPath)
			if parseErr != nil {
				return nil, parseErr
			}
			cfg.ProjectRoot = currentPath

			if validateErr := cfg.Validate(); validateErr != nil {
				return nil, validateErr
			}

			return cfg, nil
		}

		parentPath := filepath.Dir(currentPath)
		if parentPath == currentPath {
			break
		}
		currentPath = parentPath
	}

	cfg := Default()
	cfg.ProjectRoot = absPath

	return cfg, nil
}

func parseConfigFile(configPath string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, &tangleerrs.ConfigInvalidError{Path: configPath, Reason: err.Error()}
	}

	return cfg, nil
}

// Validate checks prefix-distinctness of every language's block labels and
// rejects comments_as_aside, matching yarner's own BlockLabels::check().
func (c *Config) Validate() error {
	if c.Parser.CommentsAsAside {
		return &tangleerrs.ConfigInvalidError{
			Reason: "comments_as_aside is not supported; rename comment_start to block_name_prefix",
		}
	}

	langs := make([]string, 0, len(c.Lang))
	for ext := range c.Lang {
		langs = append(langs, ext)
	}
	sort.Strings(langs)

	for _, ext := range langs {
		ls := c.Lang[ext]
		if !ls.BlockLabels {
			continue
		}
		if ls.BlockStart != "" && ls.BlockNext != "" && hasPrefix(ls.BlockStart, ls.BlockNext) {
			return &tangleerrs.ConfigInvalidError{
				Reason: fmt.Sprintf(
					"language %q: block_start %q must not start with the same sequence as block_next %q",
					ext, ls.BlockStart, ls.BlockNext,
				),
			}
		}
		if ls.BlockEnd != "" && ls.BlockStart != "" && hasPrefix(ls.BlockEnd, ls.BlockStart) {
			return &tangleerrs.ConfigInvalidError{
				Reason: fmt.Sprintf(
					"language %q: block_end %q must not start with the same sequence as block_start %q",
					ext, ls.BlockEnd, ls.BlockStart,
				),
			}
		}
	}

	return nil
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// LanguageFor resolves the LanguageSettings for a file extension (without
// the leading dot), returning ok=false if none is configured.
func (c *Config) LanguageFor(ext string) (LanguageSettings, bool) {
	ls, ok := c.Lang[ext]

	return ls, ok
}

// EOFNewlineOrDefault reports whether a trailing newline should be appended to
// tangled output for this language, defaulting to true when unset.
func (l LanguageSettings) EOFNewlineOrDefault() bool {
	if l.EOFNewline == nil {
		return true
	}

	return *l.EOFNewline
}
