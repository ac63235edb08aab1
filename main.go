/*
Copyright © 2025 Conner Ohnesorge
*/
package main

import (
	"os"

	"github.com/alecthomas/kong"
	kongcompletion "github.com/jotaen/kong-completion"

	"github.com/connerohnesorge/litweave/cmd"
)

func main() {
	cli := &cmd.CLI{}
	parser := kong.Must(cli,
		kong.Name("litweave"),
		kong.Description("A literate-programming compiler: tangle, weave, and reverse-tangle Markdown source documents"),
		kong.UsageOnError(),
	)
	kongcompletion.Register(parser)

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = ctx.Run(cli)
	ctx.FatalIfErrorf(err)
}
