// Package poker provides bit-packed card and hand types plus a 5-7 card
// hand evaluator.
package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card is a single bit in a 64-bit mask: bit index = suit*13 + rank.
type Card uint64

// Hand is a set of cards stored as the union of their bits.
type Hand uint64

// Rank constants (0-based, deuce is lowest).
const (
	Two uint8 = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Suit constants.
const (
	Clubs uint8 = iota
	Diamonds
	Hearts
	Spades
)

const (
	rankChars   = "23456789TJQKA"
	suitChars   = "cdhs"
	suitSymbols = "♣♦♥♠"
	rankMask13  = 0x1FFF
)

// NewCard builds a card from a 0-based rank and suit.
func NewCard(rank, suit uint8) Card {
	return Card(1) << (uint(suit)*13 + uint(rank))
}

func (c Card) index() int {
	return bits.TrailingZeros64(uint64(c))
}

// Rank returns the 0-based rank (Two=0 .. Ace=12).
func (c Card) Rank() uint8 {
	return uint8(c.index() % 13)
}

// Suit returns the suit index (Clubs=0 .. Spades=3).
func (c Card) Suit() uint8 {
	return uint8(c.index() / 13)
}

// Ordinal returns the conventional rank value, 2 through 14.
func (c Card) Ordinal() int {
	return int(c.Rank()) + 2
}

// Valid reports whether c is exactly one of the 52 cards.
func (c Card) Valid() bool {
	return c != 0 && bits.OnesCount64(uint64(c)) == 1 && c.index() < 52
}

// String returns the two-character wire form, e.g. "As" or "Td".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string([]byte{rankChars[c.Rank()], suitChars[c.Suit()]})
}

// Pretty returns the card with a suit symbol, e.g. "A♠".
func (c Card) Pretty() string {
	if !c.Valid() {
		return "??"
	}
	symbols := []rune(suitSymbols)
	return string(rankChars[c.Rank()]) + string(symbols[c.Suit()])
}

// FormatCard is the inverse of ParseCard.
func FormatCard(c Card) string {
	return c.String()
}

// ParseRank converts a rank character to its 0-based rank.
func ParseRank(ch byte) (uint8, bool) {
	if ch >= 'a' && ch <= 'z' {
		ch -= 'a' - 'A'
	}
	idx := strings.IndexByte(rankChars, ch)
	if idx < 0 {
		return 0, false
	}
	return uint8(idx), true
}

func parseSuit(ch byte) (uint8, bool) {
	idx := strings.IndexByte(suitChars, ch)
	if idx < 0 {
		return 0, false
	}
	return uint8(idx), true
}

// ParseCard parses the two-character notation used on the wire ("As", "Td").
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: %q must be two characters", ErrInvalidCard, s)
	}
	rank, ok := ParseRank(s[0])
	if !ok {
		return 0, fmt.Errorf("%w: unknown rank %q in %q", ErrInvalidCard, s[0], s)
	}
	suit, ok := parseSuit(s[1])
	if !ok {
		return 0, fmt.Errorf("%w: unknown suit %q in %q", ErrInvalidCard, s[1], s)
	}
	return NewCard(rank, suit), nil
}

// ParseCards parses concatenated notation such as "AsKd" or "As Kd Qh".
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length card string %q", ErrInvalidCard, s)
	}
	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// ParseCardList parses a slice of individual card strings.
func ParseCardList(strs []string) ([]Card, error) {
	cards := make([]Card, 0, len(strs))
	for _, s := range strs {
		c, err := ParseCard(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards %q: %v", s, err))
	}
	return cards
}

// FormatCards joins cards in wire notation without separators.
func FormatCards(cards []Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.String())
	}
	return b.String()
}

// NewHand builds a hand from the given cards.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// AddCard adds a card to the hand.
func (h *Hand) AddCard(c Card) {
	*h |= Hand(c)
}

// RemoveCard removes a card from the hand.
func (h *Hand) RemoveCard(c Card) {
	*h &^= Hand(c)
}

// HasCard reports whether the card is in the hand.
func (h Hand) HasCard(c Card) bool {
	return h&Hand(c) != 0
}

// Overlaps reports whether the two hands share any card.
func (h Hand) Overlaps(other Hand) bool {
	return h&other != 0
}

// CountCards returns the number of cards in the hand.
func (h Hand) CountCards() int {
	return bits.OnesCount64(uint64(h))
}

// GetSuitMask returns the 13-bit rank mask for one suit.
func (h Hand) GetSuitMask(suit uint8) uint16 {
	return uint16(uint64(h)>>(uint(suit)*13)) & rankMask13
}

// GetRankMask returns the union of ranks present across all suits.
func (h Hand) GetRankMask() uint16 {
	var mask uint16
	for suit := range uint8(4) {
		mask |= h.GetSuitMask(suit)
	}
	return mask
}

// Cards returns the cards in ascending bit order.
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.CountCards())
	for v := uint64(h); v != 0; v &= v - 1 {
		cards = append(cards, Card(v&-v))
	}
	return cards
}

// String formats the hand in wire notation.
func (h Hand) String() string {
	return FormatCards(h.Cards())
}

// CardSet validates that cards are distinct and returns them as a Hand.
func CardSet(cards ...[]Card) (Hand, error) {
	var h Hand
	for _, group := range cards {
		for _, c := range group {
			if !c.Valid() {
				return 0, fmt.Errorf("%w: %d", ErrInvalidCard, uint64(c))
			}
			if h.HasCard(c) {
				return 0, fmt.Errorf("%w: duplicate card %s", ErrInvalidCardSet, c)
			}
			h.AddCard(c)
		}
	}
	return h, nil
}

// FullDeck is every one of the 52 cards.
const FullDeck Hand = (1 << 52) - 1
