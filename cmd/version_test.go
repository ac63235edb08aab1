package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestVersionCmdRunDefault(t *testing.T) {
	output := captureStdout(t, func() {
		c := &VersionCmd{}
		assert.NoError(t, c.Run(&CLI{}))
	})

	assert.Contains(t, output, "Version:")
}

func TestVersionCmdRunShort(t *testing.T) {
	output := captureStdout(t, func() {
		c := &VersionCmd{Short: true}
		assert.NoError(t, c.Run(&CLI{}))
	})

	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Equal(t, 1, len(lines))
}

func TestVersionCmdRunJSON(t *testing.T) {
	output := captureStdout(t, func() {
		c := &VersionCmd{JSON: true}
		assert.NoError(t, c.Run(&CLI{}))
	})

	var result map[string]string
	assert.NoError(t, json.Unmarshal([]byte(output), &result))
	for _, field := range []string{"version", "commit", "date"} {
		_, ok := result[field]
		assert.True(t, ok, "JSON output missing field %q", field)
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	assert.NoError(t, err)
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)

	return buf.String()
}
