package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/connerohnesorge/litweave/internal/config"
	"github.com/connerohnesorge/litweave/internal/driver"
)

// TangleCmd compiles source documents into tangled code files.
type TangleCmd struct{}

// Run executes the tangle command.
func (c *TangleCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	d := driver.New(cfg, afero.NewOsFs())

	report, err := d.Tangle()
	if err != nil {
		return err
	}

	printReport(report)

	return nil
}

func loadConfig(cli *CLI) (*config.Config, error) {
	if cli.Config != "" {
		return config.LoadFromPath(cli.Config)
	}

	return config.Load()
}

func printReport(report *driver.Report) {
	for _, path := range report.Written {
		fmt.Printf("wrote %s\n", path)
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if len(report.Written) == 0 {
		fmt.Println("nothing to do, all outputs up to date")
	}
}
