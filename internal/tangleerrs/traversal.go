package tangleerrs

import "fmt"

// TraversalError indicates a fatal problem discovered while following
// transclusions or links starting from a root document.
type TraversalError struct {
	File   string
	Reason string
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Reason)
}

// CycleError indicates a transclusion or link cycle was detected.
type CycleError struct {
	File string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: cyclic transclusion", e.File)
}

// DuplicateTransclusionError indicates the same target was transcluded
// into the same host document more than once.
type DuplicateTransclusionError struct {
	Host   string
	Target string
}

func (e *DuplicateTransclusionError) Error() string {
	return fmt.Sprintf("%s: multiple transclusions of %s", e.Host, e.Target)
}

// NewlineMismatchError indicates a transcluded document uses a different
// newline style than its host.
type NewlineMismatchError struct {
	Host   string
	Target string
}

func (e *NewlineMismatchError) Error() string {
	return fmt.Sprintf("%s: newline style of %s does not match host", e.Host, e.Target)
}
