package pluginhost

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/connerohnesorge/litweave/internal/config"
	"github.com/connerohnesorge/litweave/internal/docmodel"
	"github.com/connerohnesorge/litweave/internal/tangleerrs"
)

func TestRunPluginsChainsInOrder(t *testing.T) {
	cfg := config.Default()
	cfg.Plugin["a"] = config.PluginSettings{Command: "plugin-a"}
	cfg.Plugin["b"] = config.PluginSettings{Command: "plugin-b"}

	var calls []string
	run := func(name string, settings config.PluginSettings, payload Payload) (Result, error) {
		calls = append(calls, name)

		return Result{Documents: payload.Documents}, nil
	}

	docs := map[string]*docmodel.Document{"root.md": {SourceFile: "root.md"}}

	out, warnings, err := RunPlugins(cfg, run, docs)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(warnings))
	assert.Equal(t, []string{"a", "b"}, calls)
	assert.True(t, out["root.md"] != nil, "expected root.md to survive the chain")
}

func TestRunPluginsNonStrictKeepsPriorOnInvalidResponse(t *testing.T) {
	cfg := config.Default()
	cfg.Plugin["broken"] = config.PluginSettings{Command: "plugin-broken"}
	cfg.Strict = false

	run := func(name string, settings config.PluginSettings, payload Payload) (Result, error) {
		return Result{}, &tangleerrs.ResponseInvalidError{Name: name, Reason: "not json"}
	}

	docs := map[string]*docmodel.Document{"root.md": {SourceFile: "root.md"}}

	out, warnings, err := RunPlugins(cfg, run, docs)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(warnings))
	assert.True(t, out["root.md"] != nil, "expected prior documents to survive a non-strict invalid response")
}

func TestRunPluginsStrictFailsFatallyOnInvalidResponse(t *testing.T) {
	cfg := config.Default()
	cfg.Plugin["broken"] = config.PluginSettings{Command: "plugin-broken"}
	cfg.Strict = true

	run := func(name string, settings config.PluginSettings, payload Payload) (Result, error) {
		return Result{}, &tangleerrs.ResponseInvalidError{Name: name, Reason: "not json"}
	}

	docs := map[string]*docmodel.Document{"root.md": {SourceFile: "root.md"}}

	_, _, err := RunPlugins(cfg, run, docs)
	assert.Error(t, err)
}

func TestRunPluginsNonZeroExitAlwaysFatal(t *testing.T) {
	cfg := config.Default()
	cfg.Plugin["broken"] = config.PluginSettings{Command: "plugin-broken"}
	cfg.Strict = false

	run := func(name string, settings config.PluginSettings, payload Payload) (Result, error) {
		return Result{}, errors.New("exit status 1")
	}

	docs := map[string]*docmodel.Document{"root.md": {SourceFile: "root.md"}}

	_, _, err := RunPlugins(cfg, run, docs)
	assert.Error(t, err, "a plugin that fails to spawn or exit cleanly must always be fatal")
}

func TestRunPluginsNoPluginsIsNoop(t *testing.T) {
	cfg := config.Default()
	docs := map[string]*docmodel.Document{"root.md": {SourceFile: "root.md"}}

	out, warnings, err := RunPlugins(cfg, nil, docs)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(warnings))
	assert.True(t, out["root.md"] != nil, "expected documents unchanged when no plugins are configured")
}
