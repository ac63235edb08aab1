package tangleerrs

import "fmt"

// UnknownMacroError indicates a macro invocation names a block that was
// never defined.
type UnknownMacroError struct {
	Name string
	File string
	Line int
}

func (e *UnknownMacroError) Error() string {
	return fmt.Sprintf("%s:%d: unknown macro %q", e.File, e.Line, e.Name)
}

// UnknownMetaVariableError indicates a line interpolates a meta-variable
// that is not bound in the enclosing call's scope and has no default.
type UnknownMetaVariableError struct {
	Name string
	File string
	Line int
}

func (e *UnknownMetaVariableError) Error() string {
	return fmt.Sprintf("%s:%d: unknown meta-variable %q", e.File, e.Line, e.Name)
}

// LabelPrefixError indicates the configured block-label markers are not
// mutually prefix-distinct, making them impossible to disambiguate while
// scanning generated code.
type LabelPrefixError struct {
	Language string
	A, B     string
}

func (e *LabelPrefixError) Error() string {
	return fmt.Sprintf(
		"%s: block labels %q and %q must not be a prefix of one another",
		e.Language, e.A, e.B,
	)
}

// NoEntryPointError is a non-fatal condition: a document produced zero
// tangled outputs.
type NoEntryPointError struct {
	File string
}

func (e *NoEntryPointError) Error() string {
	return fmt.Sprintf("%s: no entry point, skipping code output", e.File)
}

// ConflictingOutputError indicates two distinct entry points resolve to
// the same output file path.
type ConflictingOutputError struct {
	Path string
}

func (e *ConflictingOutputError) Error() string {
	return fmt.Sprintf("%s: multiple distinct locations point to this code file", e.Path)
}
