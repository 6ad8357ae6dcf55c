package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/lox/pokeradvisor/advisor"
	"github.com/lox/pokeradvisor/game"
)

// AdviseCmd recommends an action for one decision point.
type AdviseCmd struct {
	Hand             string   `short:"H" required:"" help:"Hero hole cards, e.g. AsKd"`
	Position         string   `short:"p" required:"" help:"Hero position"`
	Board            string   `short:"b" help:"Community cards"`
	Pot              float64  `default:"1.5" help:"Pot size"`
	Call             float64  `help:"Amount to call"`
	Stack            float64  `default:"100" help:"Hero stack"`
	BigBlind         float64  `default:"1" help:"Big blind size"`
	Opponents        int      `default:"1" help:"Number of opponents"`
	OpponentPosition []string `help:"Opponent positions, repeatable"`
	Action           []string `short:"a" help:"First opponent's actions as street:kind[:amount[:pot]]"`
	Profile          string   `default:"default" help:"Opponent profile name"`
	Chart            string   `help:"Range chart file (.hcl or .json)"`
	Seed             *int64   `help:"Random seed for reproducible advice"`
	JSON             bool     `help:"Print the recommendation as JSON"`
}

func (c *AdviseCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	hero, board, err := parseSpot(c.Hand, c.Board)
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

	state := advisor.GameState{
		Position:  pos,
		Stack:     c.Stack,
		Pot:       c.Pot,
		ToCall:    c.Call,
		BigBlind:  c.BigBlind,
		Opponents: c.Opponents,
	}
	for _, card := range hero {
		state.Hole = append(state.Hole, card.String())
	}
	for _, card := range board {
		state.Board = append(state.Board, card.String())
	}
	for _, s := range c.OpponentPosition {
		p, err := game.ParsePosition(s)
		if err != nil {
			return err
		}
		state.OpponentPositions = append(state.OpponentPositions, p)
	}
	if len(c.Action) > 0 {
		actions := make([]game.PlayerAction, len(c.Action))
		for i, s := range c.Action {
			if actions[i], err = game.ParseAction(s); err != nil {
				return err
			}
		}
		state.History = [][]game.PlayerAction{actions}
	}

	chart := e.loadChart(c.Chart)
	a := e.newAdvisor(chart.Chart, e.seed(c.Seed))
	rec, err := a.Recommend(context.Background(), state, &profile)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}
	e.printer.Recommendation(rec)
	return nil
}
