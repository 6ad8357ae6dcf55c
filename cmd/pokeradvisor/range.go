package main

import (
	"fmt"

	"github.com/lox/pokeradvisor/game"
	"github.com/lox/pokeradvisor/poker"
	"github.com/lox/pokeradvisor/ranges"
)

// RangeCmd estimates an opponent's range from position, profile and the
// actions they have taken.
type RangeCmd struct {
	Position string   `arg:"" help:"Opponent position (UTG, HJ, CO, BTN, SB, BB)"`
	Profile  string   `short:"p" default:"default" help:"Opponent profile name"`
	Action   []string `short:"a" help:"Observed action as street:kind[:amount[:pot]], repeatable"`
	Board    string   `short:"b" help:"Community cards"`
	Hero     string   `help:"Hero starting hand (e.g. AKs) for an exploit suggestion"`
	Chart    string   `help:"Range chart file (.hcl or .json)"`
}

func (c *RangeCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	pos, err := game.ParsePosition(c.Position)
	if err != nil {
		return err
	}
	profile, err := e.cfg.Profile(c.Profile)
	if err != nil {
		return err
	}
	actions := make([]game.PlayerAction, len(c.Action))
	for i, s := range c.Action {
		if actions[i], err = game.ParseAction(s); err != nil {
			return err
		}
	}
	var board []poker.Card
	if c.Board != "" {
		if board, err = poker.ParseCards(c.Board); err != nil {
			return fmt.Errorf("board: %w", err)
		}
	}

	chart := e.loadChart(c.Chart)
	est := ranges.NewEstimator(chart.Chart, ranges.WithLogger(e.logger))
	r := est.ReplayActions(est.OpeningRange(pos, &profile), actions, board, &profile)
	e.logger.Debug("Estimated range", "position", pos, "profile", profile.Name, "style", profile.Style(), "hands", r.Len())

	var exploit *ranges.Exploit
	if c.Hero != "" {
		hero, err := poker.ParseStartingHand(c.Hero)
		if err != nil {
			return err
		}
		ex := ranges.SuggestExploit(r, hero, &profile)
		exploit = &ex
	}
	e.printer.Range(pos, r, exploit)
	return nil
}
