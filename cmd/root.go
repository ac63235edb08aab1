// Package cmd provides the command-line interface for the litweave
// literate-programming compiler: tangle, weave, and reverse-tangle
// subcommands layered over internal/driver, plus shell completion.
package cmd

import (
	kongcompletion "github.com/jotaen/kong-completion"
)

// CLI is the root command structure parsed by Kong.
type CLI struct {
	Config string `help:"Path to the configuration file's containing directory" name:"config" short:"c"` //nolint:lll // Kong struct tag

	Tangle     TangleCmd                 `cmd:"" help:"Compile source documents into tangled code files"`
	Weave      WeaveCmd                  `cmd:"" help:"Render source documents into woven documentation"`
	Reverse    ReverseCmd                `cmd:"" help:"Propagate edits from tangled code back into source documents"`
	Lock       LockCmd                   `cmd:"" help:"Write the content-hash lock for the current code tree"`
	Version    VersionCmd                `cmd:"" help:"Show version info"`
	Completion kongcompletion.Completion `cmd:"" help:"Generate shell completions"`
}
