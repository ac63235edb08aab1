package cmd

import (
	"fmt"

	"github.com/connerohnesorge/litweave/internal/version"
)

// VersionCmd displays build information.
type VersionCmd struct {
	JSON  bool `kong:"help='Output in JSON format'"`
	Short bool `kong:"help='Output version number only'"`
}

// Run executes the version command.
func (c *VersionCmd) Run(cli *CLI) error {
	info := version.GetBuildInfo()

	switch {
	case c.JSON:
		jsonBytes, err := info.JSON()
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(jsonBytes))
	case c.Short:
		fmt.Println(info.Short())
	default:
		fmt.Println(info.String())
	}

	return nil
}
