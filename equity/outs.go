package equity

import (
	"fmt"
	"slices"

	"github.com/lox/pokeradvisor/poker"
)

// Outs is the exact result of trying every unseen card as the next board card.
// Improvements counts out cards by the hand class they make.
type Outs struct {
	Count        int
	Cards        []poker.Card
	CurrentRank  poker.HandRank
	CurrentClass poker.HandClass
	Unseen       int
	Improvements map[string]int
}

// CardStrings returns the out cards in wire notation.
func (o Outs) CardStrings() []string {
	s := make([]string, len(o.Cards))
	for i, c := range o.Cards {
		s[i] = c.String()
	}
	return s
}

// EnumerateOuts checks each unseen card exactly once. A card is an out when
// adding it to the board gives hero a strictly stronger best hand. When
// targets are given, the improved hand must also land in one of those
// classes. A complete board has no cards to come and returns zero outs.
func (c *Calculator) EnumerateOuts(hero, board []poker.Card, targets ...poker.HandClass) (Outs, error) {
	if len(hero) != 2 || len(board) < 3 || len(board) > 5 {
		return Outs{}, fmt.Errorf("%w: outs need 2 hole cards and 3-5 board cards, got %d and %d",
			poker.ErrInvalidHandShape, len(hero), len(board))
	}
	used, err := poker.CardSet(hero, board)
	if err != nil {
		return Outs{}, err
	}

	current := c.eval.EvaluateHand(used)
	out := Outs{
		CurrentRank:  current,
		CurrentClass: current.Class(),
		Improvements: map[string]int{},
	}
	if len(board) == 5 {
		return out, nil
	}

	for _, card := range (poker.FullDeck &^ used).Cards() {
		out.Unseen++
		next := c.eval.EvaluateHand(used | poker.Hand(card))
		if !next.Beats(current) {
			continue
		}
		if len(targets) > 0 && !slices.Contains(targets, next.Class()) {
			continue
		}
		out.Cards = append(out.Cards, card)
		out.Improvements[next.Name()]++
	}
	out.Count = len(out.Cards)
	return out, nil
}
