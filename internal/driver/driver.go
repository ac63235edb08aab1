// Package driver orchestrates the pipeline: load config, parse and walk the
// document graph, optionally run plugins, then tangle, weave, or reverse,
// writing output files only when their content actually changed.
//
// The write-only-if-differs idiom is grounded in the teacher's
// internal/sync/markdown.go (a file is only rewritten when its computed
// content diverges from what's on disk).
package driver

import (
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/connerohnesorge/litweave/internal/config"
	"github.com/connerohnesorge/litweave/internal/docmodel"
	"github.com/connerohnesorge/litweave/internal/lock"
	"github.com/connerohnesorge/litweave/internal/pluginhost"
	"github.com/connerohnesorge/litweave/internal/reversetangle"
	"github.com/connerohnesorge/litweave/internal/tangle"
	"github.com/connerohnesorge/litweave/internal/traversal"
)

// Driver ties configuration, filesystem, and the per-stage packages
// together into the tangle/weave/reverse entry points the CLI calls.
type Driver struct {
	Config *config.Config
	FS     afero.Fs
	Runner pluginhost.Runner
}

// New builds a Driver that reads and writes through fs; configured paths are
// resolved by fs as given, not against cfg's project root.
func New(cfg *config.Config, fs afero.Fs) *Driver {
	return &Driver{Config: cfg, FS: fs}
}

// Report accumulates the paths of files written and the human-readable
// warning lines produced by a pipeline run.
type Report struct {
	Written  []string
	Warnings []string
}

func (r *Report) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

func (r *Report) wrote(path string) {
	r.Written = append(r.Written, path)
}

func (d *Driver) readFile(path string) (string, error) {
	data, err := afero.ReadFile(d.FS, path)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// walkAll discovers every source document reachable from the configured
// entry files, running plugins afterward when configured.
func (d *Driver) walkAll(inline bool) (*traversal.Set, *Report, error) {
	report := &Report{}

	roots, err := d.entryFiles()
	if err != nil {
		return nil, nil, err
	}

	merged := &traversal.Set{Documents: map[string]*docmodel.Document{}}
	for _, root := range roots {
		set, err := traversal.Walk(d.Config, d.readFile, root, traversal.Options{Inline: inline})
		if err != nil {
			return nil, nil, fmt.Errorf("walking %s: %w", root, err)
		}
		for _, name := range set.Order {
			if _, exists := merged.Documents[name]; exists {
				continue
			}
			merged.Documents[name] = set.Documents[name]
			merged.Order = append(merged.Order, name)
		}
	}

	final, warnings, err := pluginhost.RunPlugins(d.Config, d.Runner, merged.Documents)
	if err != nil {
		return nil, nil, err
	}
	report.Warnings = append(report.Warnings, warnings...)
	merged.Documents = final

	return merged, report, nil
}

func (d *Driver) entryFiles() ([]string, error) {
	if len(d.Config.Paths.Files) == 0 {
		return nil, fmt.Errorf("no source files configured")
	}

	var matched []string
	for _, pattern := range d.Config.Paths.Files {
		files, err := doublestar.Glob(afero.NewIOFS(d.FS), pattern)
		if err != nil {
			return nil, fmt.Errorf("globbing %q: %w", pattern, err)
		}
		matched = append(matched, files...)
	}
	sort.Strings(matched)

	return matched, nil
}

// Tangle walks every configured source document and writes one file per
// resolved entry point under Paths.CodeDir, skipping files whose content is
// unchanged.
func (d *Driver) Tangle() (*Report, error) {
	set, report, err := d.walkAll(true)
	if err != nil {
		return nil, err
	}

	for _, name := range set.Order {
		doc := set.Documents[name]
		for _, entry := range doc.EntryPoints(d.Config.Parser.FilePrefix, d.Config.Paths.Entrypoint) {
			lang, _ := d.Config.LanguageFor(extOf(entry.OutFile))

			content, err := tangle.CompileEntry(doc, entry, lang, d.Config.Parser.BlankLines)
			if err != nil {
				return nil, fmt.Errorf("tangling %s: %w", entry.OutFile, err)
			}

			outPath := joinDir(d.Config.Paths.CodeDir, entry.OutFile)
			if err := d.writeIfChanged(outPath, content, report); err != nil {
				return nil, err
			}
		}
	}

	if err := lock.WriteLock(d.FS, lock.FileName, d.Config.Paths.CodeDir); err != nil {
		report.warn(fmt.Sprintf("failed to update lock file: %v", err))
	}

	return report, nil
}

// Weave walks every configured source document (inlining transclusions into
// their host, as Tangle does) and writes a rendered documentation file per
// resulting document under Paths.DocDir.
func (d *Driver) Weave() (*Report, error) {
	set, report, err := d.walkAll(true)
	if err != nil {
		return nil, err
	}

	for _, name := range set.Order {
		doc := set.Documents[name]
		content := tangle.Weave(doc, d.Config.Parser)
		outPath := joinDir(d.Config.Paths.DocDir, name)
		if err := d.writeIfChanged(outPath, content, report); err != nil {
			return nil, err
		}
	}

	return report, nil
}

// Reverse scans Paths.CodeDir for block-label comments and writes back each
// source document with the recovered block bodies substituted, refusing to
// proceed if the lock indicates the code tree changed since the last
// tangle (unless force is set).
func (d *Driver) Reverse(force bool) (*Report, error) {
	report := &Report{}

	if !force {
		changed, err := lock.CodeChanged(d.FS, lock.FileName, d.Config.Paths.CodeDir)
		if err != nil {
			return nil, err
		}
		if changed {
			return nil, fmt.Errorf("code directory changed since last tangle; pass force to overwrite")
		}
	}

	codeFiles, err := d.readTree(d.Config.Paths.CodeDir)
	if err != nil {
		return nil, err
	}

	set, _, err := d.walkAll(false)
	if err != nil {
		return nil, err
	}

	for _, name := range set.Order {
		doc := set.Documents[name]
		content, warnings, err := reversetangle.Reconstitute(d.Config, doc, codeFiles)
		if err != nil {
			return nil, fmt.Errorf("reversing %s: %w", name, err)
		}
		report.Warnings = append(report.Warnings, warnings...)

		if err := d.writeIfChanged(name, content, report); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func (d *Driver) readTree(root string) (map[string]string, error) {
	out := map[string]string{}

	files, err := doublestar.Glob(afero.NewIOFS(d.FS), joinDir(root, "**/*"))
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		isDir, err := afero.IsDir(d.FS, f)
		if err != nil || isDir {
			continue
		}
		content, err := d.readFile(f)
		if err != nil {
			return nil, err
		}
		out[f] = content
	}

	return out, nil
}

func (d *Driver) writeIfChanged(path, content string, report *Report) error {
	exists, err := afero.Exists(d.FS, path)
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if exists {
		existing, err := d.readFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if existing == content {
			return nil
		}
	}

	if err := d.FS.MkdirAll(dirOf(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := afero.WriteFile(d.FS, path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	report.wrote(path)

	return nil
}

func extOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i+1:]
		}
		if path[i] == '/' {
			break
		}
	}

	return ""
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}

	return "."
}

func joinDir(dir, name string) string {
	if dir == "" || dir == "." {
		return name
	}
	if dir[len(dir)-1] == '/' {
		return dir + name
	}

	return dir + "/" + name
}
