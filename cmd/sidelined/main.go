package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version    kong.VersionFlag `short:"v" help:"Show version"`
	Run        RunCmd           `cmd:"" help:"Run the sideline console for a match"`
	Report     ReportCmd        `cmd:"" help:"Print a playing-time report for a saved match"`
	Formations FormationsCmd    `cmd:"" help:"List the built-in formations"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("sidelined"),
		kong.Description("Sideline timekeeper for tracking playing time during a match"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
