// Package tangleerrs defines the typed error taxonomy for configuration
// loading, parsing, traversal, tangling, reverse-tangling, locking, and
// plugin invocation.
package tangleerrs

import "fmt"

// ConfigInvalidError indicates the loaded configuration failed validation.
type ConfigInvalidError struct {
	Path   string
	Reason string
}

func (e *ConfigInvalidError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid configuration in %s: %s", e.Path, e.Reason)
	}

	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}
