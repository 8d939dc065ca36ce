package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/doctheme/cmd/doctheme/commands"
	"git.home.luguber.info/inful/doctheme/internal/foundation/errors"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{}
	parser := kong.Parse(cli,
		kong.Name("doctheme"),
		kong.Description("Render Markdown docs with mode-aware code blocks and admonitions."),
		kong.UsageOnError(),
		kong.Bind(global),
	)
	err := parser.Run(cli)
	errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
