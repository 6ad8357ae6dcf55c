package poker

import (
	rand "math/rand/v2"
)

// Deck holds the cards not yet dealt. It is built from the full deck minus
// any dead cards, so simulations can draw without replacement. Each deal
// picks uniformly from the undealt cards, so a freshly reset deck needs no
// up-front shuffle.
type Deck struct {
	cards [52]Card
	size  int
	next  int
	rng   *rand.Rand
}

// NewDeck creates a deck of every card not in dead.
func NewDeck(rng *rand.Rand, dead Hand) *Deck {
	d := &Deck{rng: rng}
	d.Reset(dead)
	return d
}

// Reset refills the deck with every card not in dead.
func (d *Deck) Reset(dead Hand) {
	d.size, d.next = 0, 0
	for v := uint64(FullDeck &^ dead); v != 0; v &= v - 1 {
		d.cards[d.size] = Card(v & -v)
		d.size++
	}
}

// Deal deals n cards from the deck, or nil if too few remain. The slice
// aliases the deck and is only valid until the next Reset.
func (d *Deck) Deal(n int) []Card {
	if d.next+n > d.size {
		return nil
	}
	start := d.next
	for i := 0; i < n; i++ {
		d.DealOne()
	}
	return d.cards[start:d.next]
}

// DealOne deals a single card from the deck, or 0 when empty.
func (d *Deck) DealOne() Card {
	if d.next >= d.size {
		return 0
	}
	// One step of Fisher-Yates over the undealt tail.
	j := d.next + d.rng.IntN(d.size-d.next)
	d.cards[d.next], d.cards[j] = d.cards[j], d.cards[d.next]
	card := d.cards[d.next]
	d.next++
	return card
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return d.size - d.next
}
