package cmd

import (
	"github.com/spf13/afero"

	"github.com/connerohnesorge/litweave/internal/driver"
)

// WeaveCmd renders source documents into woven documentation.
type WeaveCmd struct{}

// Run executes the weave command.
func (c *WeaveCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	d := driver.New(cfg, afero.NewOsFs())

	report, err := d.Weave()
	if err != nil {
		return err
	}

	printReport(report)

	return nil
}
