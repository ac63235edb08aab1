package cmd

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/connerohnesorge/litweave/internal/lock"
)

// LockCmd writes the content-hash lock file for the current code tree,
// without tangling anything.
type LockCmd struct{}

// Run executes the lock command.
func (c *LockCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	fs := afero.NewOsFs()
	if err := lock.WriteLock(fs, lock.FileName, cfg.Paths.CodeDir); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", lock.FileName)

	return nil
}
