package main

import (
	"github.com/lox/pokeradvisor/potodds"
)

// OutsCmd lists improving cards on a flop or turn.
type OutsCmd struct {
	Hero  string `arg:"" help:"Hero hole cards, e.g. AhKh"`
	Board string `short:"b" required:"" help:"Community cards (3 to 5)"`
}

func (c *OutsCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	hero, board, err := parseSpot(c.Hero, c.Board)
	if err != nil {
		return err
	}
	outs, err := e.calculator().EnumerateOuts(hero, board)
	if err != nil {
		return err
	}

	var hit *potodds.OutsEquity
	if toCome := 5 - len(board); toCome > 0 {
		h, err := potodds.OutsToEquity(outs.Count, toCome)
		if err != nil {
			return err
		}
		hit = &h
	}
	e.printer.Outs(hero, board, outs, hit)
	return nil
}
