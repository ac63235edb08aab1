package tangleerrs

import "fmt"

// LockMismatchError indicates the generated code tree's current content
// hash does not match the last recorded lock, meaning something other
// than this tool modified it since the last run.
type LockMismatchError struct {
	LockFile string
}

func (e *LockMismatchError) Error() string {
	return fmt.Sprintf(
		"%s: code directory does not match lock; pass force to overwrite",
		e.LockFile,
	)
}

// IOError wraps an underlying filesystem error with the path it occurred on.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
