package main

import (
	"github.com/lox/pokeradvisor/potodds"
)

// OddsCmd analyzes a call against the pot.
type OddsCmd struct {
	Pot    float64  `required:"" help:"Pot size before the call"`
	Call   float64  `required:"" help:"Amount to call"`
	Equity *float64 `help:"Hero equity as a fraction, e.g. 0.35"`
	Outs   int      `help:"Number of outs, to estimate equity"`
	ToCome int      `default:"2" help:"Cards to come for --outs (1 or 2)"`
}

func (c *OddsCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}

	var draw *potodds.OutsEquity
	eq := c.Equity
	if c.Outs > 0 {
		d, err := potodds.OutsToEquity(c.Outs, c.ToCome)
		if err != nil {
			return err
		}
		draw = &d
		if eq == nil {
			eq = &d.Exact
		}
	}

	res, err := potodds.Analyze(c.Pot, c.Call, eq)
	if err != nil {
		return err
	}
	e.printer.Odds(res, draw)
	return nil
}
