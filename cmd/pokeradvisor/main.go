package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Equity  EquityCmd        `cmd:"" help:"Estimate hand equity by simulation"`
	Outs    OutsCmd          `cmd:"" help:"List the cards that improve a hand"`
	Odds    OddsCmd          `cmd:"" help:"Pot odds and call EV"`
	Range   RangeCmd         `cmd:"" help:"Estimate an opponent's range"`
	Advise  AdviseCmd        `cmd:"" help:"Recommend an action for a spot"`
	Serve   ServeCmd         `cmd:"" help:"Run the websocket advice service"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokeradvisor"),
		kong.Description("Texas Hold'em decision advisor"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
