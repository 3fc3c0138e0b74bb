package cards

import (
	"fmt"
	"math/rand"
)

// Deck is an ordered sequence of distinct cards. The zero value is not
// usable; construct one with NewDeck or NewLimitedDeck.
type Deck struct {
	cards []Card
}

// NewDeck returns a full 52-card deck in canonical order (rank-major,
// suit-minor).
func NewDeck() *Deck {
	return &Deck{cards: allCards(Two)}
}

// NewLimitedDeck returns a 24-card deck holding only ranks 9..Ace, the
// "limited" configuration used to shrink H for faster iteration.
func NewLimitedDeck() *Deck {
	return &Deck{cards: allCards(Nine)}
}

func allCards(lowestRank Rank) []Card {
	suits := []Suit{Spades, Hearts, Diamonds, Clubs}
	cards := make([]Card, 0, (int(Ace-lowestRank)+1)*len(suits))
	for r := lowestRank; r <= Ace; r++ {
		for _, s := range suits {
			cards = append(cards, NewCard(r, s))
		}
	}
	return cards
}

// Len returns the number of cards remaining in the deck.
func (d *Deck) Len() int { return len(d.cards) }

// Cards returns the deck's remaining cards in current order. The
// returned slice aliases the deck's internal storage and must not be
// mutated by the caller.
func (d *Deck) Cards() []Card { return d.cards }

// Shuffle randomizes the deck order in place using the supplied RNG,
// so that callers can reproduce a deal deterministically by seeding rng
// themselves.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal pops n cards from the top of the deck. It returns an error if
// fewer than n cards remain.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("deal %d cards: only %d remain", n, len(d.cards))
	}
	dealt := make([]Card, n)
	copy(dealt, d.cards[:n])
	d.cards = d.cards[n:]
	return dealt, nil
}

// Exclude removes every card in known from the deck in place. It is
// used to remove the board and both players' hole cards before
// sampling opponent hands or a rollout completion.
func (d *Deck) Exclude(known []Card) {
	if len(known) == 0 {
		return
	}
	excluded := make(map[Card]struct{}, len(known))
	for _, c := range known {
		excluded[c] = struct{}{}
	}
	remaining := d.cards[:0]
	for _, c := range d.cards {
		if _, skip := excluded[c]; !skip {
			remaining = append(remaining, c)
		}
	}
	d.cards = remaining
}
