package cmd

import (
	"github.com/spf13/afero"

	"github.com/connerohnesorge/litweave/internal/driver"
)

// ReverseCmd propagates edits made directly to tangled code files back into
// the documents they were tangled from.
type ReverseCmd struct {
	Force bool `help:"Overwrite even if the code tree changed since the last tangle" name:"force" short:"f"` //nolint:lll // Kong struct tag
}

// Run executes the reverse command.
func (c *ReverseCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	d := driver.New(cfg, afero.NewOsFs())

	report, err := d.Reverse(c.Force)
	if err != nil {
		return err
	}

	printReport(report)

	return nil
}
