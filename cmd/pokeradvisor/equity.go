package main

import (
	"context"
	"fmt"

	"github.com/coder/quartz"

	"github.com/lox/pokeradvisor/equity"
	"github.com/lox/pokeradvisor/internal/randutil"
	"github.com/lox/pokeradvisor/poker"
	"github.com/lox/pokeradvisor/ranges"
)

// EquityCmd runs a Monte Carlo equity simulation.
type EquityCmd struct {
	Hero       string   `arg:"" help:"Hero hole cards, e.g. AsKd"`
	Board      string   `short:"b" help:"Community cards, e.g. Td7s8h"`
	Opponents  int      `short:"o" default:"1" help:"Number of opponents with random hands"`
	Range      []string `short:"r" help:"Opponent range in hand notation, once per opponent (overrides --opponents)"`
	Iterations int      `short:"i" help:"Number of trials (defaults to config)"`
	Seed       *int64   `help:"Random seed for reproducible results"`
}

func (c *EquityCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	hero, board, err := parseSpot(c.Hero, c.Board)
	if err != nil {
		return err
	}
	iterations := c.Iterations
	if iterations == 0 {
		iterations = e.cfg.Advisor.Iterations
	}

	seed := e.seed(c.Seed)
	e.logger.Debug("Running equity simulation", "iterations", iterations, "seed", seed)
	rng := randutil.New(seed)
	calc := e.calculator()
	clock := quartz.NewReal()
	ctx := context.Background()

	start := clock.Now()
	var res equity.Result
	if len(c.Range) > 0 {
		rs := make([]ranges.Range, len(c.Range))
		for i, notation := range c.Range {
			if rs[i], err = ranges.Parse(notation); err != nil {
				return err
			}
		}
		res, err = ranges.EquityVsRanges(ctx, calc, hero, board, rs, iterations, rng)
	} else {
		res, err = calc.Simulate(ctx, equity.Request{
			Hero:       hero,
			Board:      board,
			Opponents:  equity.Uniform(c.Opponents),
			Iterations: iterations,
		}, rng)
	}
	if err != nil {
		return err
	}

	e.printer.Equity(hero, board, res, clock.Since(start))
	return nil
}

// parseSpot reads hero's two cards and an optional board.
func parseSpot(heroStr, boardStr string) (hero, board []poker.Card, err error) {
	hero, err = poker.ParseCards(heroStr)
	if err != nil {
		return nil, nil, fmt.Errorf("hero: %w", err)
	}
	if len(hero) != 2 {
		return nil, nil, fmt.Errorf("%w: hero needs 2 cards, got %d", poker.ErrInvalidHandShape, len(hero))
	}
	if boardStr != "" {
		board, err = poker.ParseCards(boardStr)
		if err != nil {
			return nil, nil, fmt.Errorf("board: %w", err)
		}
	}
	if _, err := poker.CardSet(hero, board); err != nil {
		return nil, nil, err
	}
	return hero, board, nil
}
