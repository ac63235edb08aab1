package tangleerrs

import "fmt"

// ReverseConflictError indicates a labelled code block was scanned more
// than once with differing content, making reverse-tangle impossible
// without a human resolving the conflict.
type ReverseConflictError struct {
	File  string
	Name  string
	Index int
}

func (e *ReverseConflictError) Error() string {
	return fmt.Sprintf(
		"reverse mode impossible: multiple, differing occurrences of %s#%s#%d",
		e.File, e.Name, e.Index,
	)
}

// ReverseLabelError indicates a malformed block label line.
type ReverseLabelError struct {
	File string
	Line int
	Msg  string
}

func (e *ReverseLabelError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// MissingReverseConfigError indicates strict mode requires block-label
// configuration for a language that has none.
type MissingReverseConfigError struct {
	Language string
}

func (e *MissingReverseConfigError) Error() string {
	return fmt.Sprintf("%s: no block-label configuration for reverse mode", e.Language)
}
