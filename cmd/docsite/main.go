package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/OpenStickCommunity/gp2040-ce-docs/cmd/docsite/commands"
	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("docsite"),
		kong.Description("Manage the GP2040-CE documentation site definition."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := ctx.Run(&commands.Global{Logger: slog.Default(), Out: os.Stdout}, &cli)
	derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
