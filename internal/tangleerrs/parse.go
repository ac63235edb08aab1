package tangleerrs

import "fmt"

// ParseError indicates a source document failed to parse at a known line.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
	}

	return fmt.Sprintf("%s: %s", e.File, e.Msg)
}
