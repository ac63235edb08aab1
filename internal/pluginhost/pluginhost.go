// Package pluginhost runs external plugin processes that transform the
// parsed document set before tangle/weave, exchanging a JSON document
// payload over stdin/stdout.
//
// The subprocess wiring (exec.Command, collecting stderr for diagnostics)
// follows the teacher's internal/pr platform-CLI invocations; the
// serialized stdin/stdout document-exchange protocol is grounded in the
// reference implementation's src/lib.rs plugin block (plugins receive the
// full document set as JSON on stdin and must emit a replacement set as
// JSON on stdout).
package pluginhost

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"sort"

	"github.com/connerohnesorge/litweave/internal/config"
	"github.com/connerohnesorge/litweave/internal/docmodel"
	"github.com/connerohnesorge/litweave/internal/tangleerrs"
)

// Payload is the JSON envelope sent to a plugin on stdin.
type Payload struct {
	Documents map[string]*docmodel.Document `json:"documents"`
}

// Result is the JSON envelope a plugin must emit on stdout.
type Result struct {
	Documents map[string]*docmodel.Document `json:"documents"`
}

// Runner invokes a single named plugin subprocess. It is a thin seam over
// exec.Command so tests can substitute a fake.
type Runner func(name string, settings config.PluginSettings, payload Payload) (Result, error)

// RunPlugins invokes every configured plugin in ascending order of plugin
// name, each receiving the previous plugin's output as its input document
// set; the order of the plugin tables in the configuration file is not
// used. A
// plugin that fails to spawn or exits non-zero is always fatal; one whose
// stdout isn't a valid response is fatal only in strict mode, otherwise the
// prior document set is kept and a warning is returned.
func RunPlugins(cfg *config.Config, run Runner, documents map[string]*docmodel.Document) (map[string]*docmodel.Document, []string, error) {
	if run == nil {
		run = ExecRunner
	}

	current := documents
	var warnings []string

	names := sortedPluginNames(cfg.Plugin)
	for _, name := range names {
		settings := cfg.Plugin[name]

		result, err := run(name, settings, Payload{Documents: current})
		if err != nil {
			var invalid *tangleerrs.ResponseInvalidError
			if errors.As(err, &invalid) && !cfg.Strict {
				warnings = append(warnings, fmt.Sprintf("plugin %q returned an invalid response, keeping prior output: %v", name, err))

				continue
			}

			return nil, nil, &tangleerrs.PluginError{Name: name, Reason: err.Error()}
		}

		current = result.Documents
	}

	return current, warnings, nil
}

// ExecRunner spawns the plugin's configured command as a subprocess,
// writing Payload as JSON to stdin and parsing its stdout as Result.
func ExecRunner(name string, settings config.PluginSettings, payload Payload) (Result, error) {
	command := settings.Command
	if command == "" {
		command = "litweave-" + name
	}

	cmd := exec.Command(command, settings.Arguments...)

	in, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("encoding plugin payload: %w", err)
	}
	cmd.Stdin = bytes.NewReader(in)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return Result{}, fmt.Errorf("running plugin %q: %w: %s", name, err, stderr.String())
	}

	var result Result
	if err := json.Unmarshal(out, &result); err != nil {
		return Result{}, &tangleerrs.ResponseInvalidError{Name: name, Reason: err.Error()}
	}

	return result, nil
}

func sortedPluginNames(plugins map[string]config.PluginSettings) []string {
	names := make([]string, 0, len(plugins))
	for name := range plugins {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
