package tangleerrs

import "fmt"

// PluginError indicates an external plugin process failed to spawn or
// exited non-zero. Always fatal, regardless of strict mode.
type PluginError struct {
	Name   string
	Reason string
}

func (e *PluginError) Error() string {
	return fmt.Sprintf("plugin %q: %s", e.Name, e.Reason)
}

// ResponseInvalidError indicates a plugin exited cleanly but its stdout was
// not a valid document-set response. Non-fatal unless strict mode is set.
type ResponseInvalidError struct {
	Name   string
	Reason string
}

func (e *ResponseInvalidError) Error() string {
	return fmt.Sprintf("plugin %q: invalid response: %s", e.Name, e.Reason)
}
