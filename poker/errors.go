package poker

import "errors"

var (
	// ErrInvalidCard is returned for notation that is not a rank letter followed by a suit letter.
	ErrInvalidCard = errors.New("invalid card")
	// ErrInvalidHandShape is returned when hole or board sizes are outside hole=2, board=0..5, total=5..7.
	ErrInvalidHandShape = errors.New("invalid hand shape")
	// ErrInvalidCardSet is returned when a card repeats within one evaluation.
	ErrInvalidCardSet = errors.New("invalid card set")
	// ErrInvalidStartingHand is returned for unparsable grid notation such as "AAs".
	ErrInvalidStartingHand = errors.New("invalid starting hand")
)
