package lock

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/spf13/afero"
)

func TestCodeChangedFalseWhenNoLockFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "out/main.go", []byte("package main"), 0o644)

	changed, err := CodeChanged(fs, "litweave.lock", "out")
	assert.NoError(t, err)
	assert.False(t, changed, "expected unchanged when no lock file exists yet")
}

func TestWriteLockThenCodeUnchanged(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "out/main.go", []byte("package main"), 0o644)

	assert.NoError(t, WriteLock(fs, "litweave.lock", "out"))

	changed, err := CodeChanged(fs, "litweave.lock", "out")
	assert.NoError(t, err)
	assert.False(t, changed, "expected unchanged right after writing the lock")
}

func TestWriteLockThenCodeChanged(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "out/main.go", []byte("package main"), 0o644)

	assert.NoError(t, WriteLock(fs, "litweave.lock", "out"))

	_ = afero.WriteFile(fs, "out/main.go", []byte("package main\n\nfunc main() {}"), 0o644)

	changed, err := CodeChanged(fs, "litweave.lock", "out")
	assert.NoError(t, err)
	assert.True(t, changed, "expected changed after editing a file in the code directory")
}

func TestHashDirIsOrderInsensitiveToDirReadOrder(t *testing.T) {
	fsA := afero.NewMemMapFs()
	_ = afero.WriteFile(fsA, "out/a.go", []byte("a"), 0o644)
	_ = afero.WriteFile(fsA, "out/b.go", []byte("b"), 0o644)

	fsB := afero.NewMemMapFs()
	_ = afero.WriteFile(fsB, "out/b.go", []byte("b"), 0o644)
	_ = afero.WriteFile(fsB, "out/a.go", []byte("a"), 0o644)

	hashA, err := hashDir(fsA, "out")
	assert.NoError(t, err)
	hashB, err := hashDir(fsB, "out")
	assert.NoError(t, err)
	assert.Equal(t, hashA, hashB, "hash should be independent of file creation/read order")
}
