package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/confdocs/cmd/confdocs/commands"
	"git.home.luguber.info/inful/confdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/confdocs/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := commands.NewGlobal()

	parser := kong.Parse(cli,
		kong.Name("confdocs"),
		kong.Description("Generate conformance implementation tables for the documentation site."),
		kong.UsageOnError(),
		kong.Bind(global),
		commands.Vars(version.String()),
	)

	if err := parser.Run(global, cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
