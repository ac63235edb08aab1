// Package lock detects out-of-band edits to tangled code by hashing a code
// directory's contents and comparing it against a stored digest, guarding
// reverse-tangle against silently discarding changes the lock file never
// saw.
//
// Grounded in the reference implementation's src/lock.rs: a single hasher
// accumulated over every file in a directory walked in sorted order. BLAKE3
// is replaced with crypto/sha256 — no Go BLAKE3 implementation appears
// anywhere in the retrieval corpus, and sha256 gives the same
// order-sensitive whole-tree digest property the algorithm needs.
package lock

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"

	"github.com/connerohnesorge/litweave/internal/tangleerrs"
)

// FileName is the default lock file name, matching the teacher's
// configuration-file-beside-the-project convention.
const FileName = "litweave.lock"

// Lock is the persisted content-hash record.
type Lock struct {
	SourceHash string `toml:"source_hash"`
	CodeHash   string `toml:"code_hash"`
}

// CodeChanged reports whether codeDir's contents differ from the hash
// recorded in lockFile. A missing lock file or code directory is treated as
// "unchanged" (nothing to compare against yet), matching the reference
// implementation's behavior.
func CodeChanged(fs afero.Fs, lockFile, codeDir string) (bool, error) {
	codeExists, err := afero.DirExists(fs, codeDir)
	if err != nil {
		return false, &tangleerrs.IOError{Path: codeDir, Err: err}
	}
	lockExists, err := afero.Exists(fs, lockFile)
	if err != nil {
		return false, &tangleerrs.IOError{Path: lockFile, Err: err}
	}
	if !codeExists || !lockExists {
		return false, nil
	}

	codeHash, err := hashDir(fs, codeDir)
	if err != nil {
		return false, err
	}

	l, err := readLock(fs, lockFile)
	if err != nil {
		return false, err
	}

	return l.CodeHash != codeHash, nil
}

// WriteLock hashes codeDir and writes the result to lockFile.
func WriteLock(fs afero.Fs, lockFile, codeDir string) error {
	codeHash, err := hashDir(fs, codeDir)
	if err != nil {
		return err
	}

	l := Lock{CodeHash: codeHash}

	return writeLock(fs, lockFile, l)
}

func hashDir(fs afero.Fs, root string) (string, error) {
	h := sha256.New()

	var walk func(path string) error
	walk = func(path string) error {
		info, err := fs.Stat(path)
		if err != nil {
			return &tangleerrs.IOError{Path: path, Err: err}
		}
		if !info.IsDir() {
			data, err := afero.ReadFile(fs, path)
			if err != nil {
				return &tangleerrs.IOError{Path: path, Err: err}
			}
			h.Write(data)

			return nil
		}

		entries, err := afero.ReadDir(fs, path)
		if err != nil {
			return &tangleerrs.IOError{Path: path, Err: err}
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
		for _, e := range entries {
			if err := walk(joinPath(path, e.Name())); err != nil {
				return err
			}
		}

		return nil
	}

	if err := walk(root); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

func joinPath(dir, name string) string {
	if dir == "" || dir == "." {
		return name
	}
	if dir[len(dir)-1] == '/' {
		return dir + name
	}

	return dir + "/" + name
}

func readLock(fs afero.Fs, path string) (*Lock, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, &tangleerrs.IOError{Path: path, Err: err}
	}

	var l Lock
	if err := toml.Unmarshal(data, &l); err != nil {
		return nil, &tangleerrs.LockMismatchError{LockFile: path}
	}

	return &l, nil
}

func writeLock(fs afero.Fs, path string, l Lock) error {
	var buf strings.Builder
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(l); err != nil {
		return &tangleerrs.IOError{Path: path, Err: err}
	}

	if err := afero.WriteFile(fs, path, []byte(buf.String()), 0o644); err != nil {
		return &tangleerrs.IOError{Path: path, Err: err}
	}

	return nil
}
