package eval

import (
	"fmt"

	"github.com/hansjhaland/deepstack-holdem/pkg/cards"
)

// Showdown classifies public+hole1 against public+hole2 and returns
// -1, 0, or +1 from hole1's point of view. If public has fewer than 5
// cards it is completed by drawing randomly from the remaining deck
// using rng, so the result is stochastic for incomplete boards — the
// caller is responsible for only invoking it on complete boards where
// determinism matters, e.g. when constructing a utility matrix.
func Showdown(public []cards.Card, hole1, hole2 [2]cards.Card, deckLimited bool, rng randFn) (int, error) {
	board := public
	if len(board) < 5 {
		completed, err := completeBoard(board, hole1, hole2, deckLimited, rng)
		if err != nil {
			return 0, err
		}
		board = completed
	}
	if len(board) != 5 {
		return 0, fmt.Errorf("showdown: board must resolve to exactly 5 cards, got %d", len(board))
	}

	best1, v1, err := Best5(append(append([]cards.Card(nil), board...), hole1[0], hole1[1]))
	if err != nil {
		return 0, err
	}
	best2, v2, err := Best5(append(append([]cards.Card(nil), board...), hole2[0], hole2[1]))
	if err != nil {
		return 0, err
	}

	// Tie-break step (a): category (lower Rank is stronger).
	if v1.Category != v2.Category {
		if v1.Category.Rank() < v2.Category.Rank() {
			return 1, nil
		}
		return -1, nil
	}
	// Step (b): the highest card of the best-5 subset only.
	if v1.HighCard() != v2.HighCard() {
		if v1.HighCard() > v2.HighCard() {
			return 1, nil
		}
		return -1, nil
	}

	h1 := highestUnusedHole(hole1, best1)
	h2 := highestUnusedHole(hole2, best2)
	if h1 != h2 {
		if h1 > h2 {
			return 1, nil
		}
		return -1, nil
	}
	return 0, nil
}

// randFn draws one card at random from a supplied pool, used only to
// complete a partial board. Kept as a function type (rather than
// importing math/rand directly here) so callers can inject a
// deterministic source.
type randFn func(pool []cards.Card) cards.Card

func completeBoard(board []cards.Card, hole1, hole2 [2]cards.Card, limited bool, rng randFn) ([]cards.Card, error) {
	need := 5 - len(board)
	if need <= 0 {
		return board, nil
	}
	deck := cards.NewDeck()
	if limited {
		deck = cards.NewLimitedDeck()
	}
	deck.Exclude(board)
	deck.Exclude([]cards.Card{hole1[0], hole1[1], hole2[0], hole2[1]})

	pool := append([]cards.Card(nil), deck.Cards()...)
	out := append([]cards.Card(nil), board...)
	for i := 0; i < need; i++ {
		if len(pool) == 0 {
			return nil, fmt.Errorf("showdown: deck exhausted completing board")
		}
		drawn := rng(pool)
		out = append(out, drawn)
		for j, c := range pool {
			if c == drawn {
				pool = append(pool[:j], pool[j+1:]...)
				break
			}
		}
	}
	return out, nil
}

// highestUnusedHole returns the higher-ranked hole card that did not
// make it into the best-5 subset (tie-break step (c)). If both hole
// cards made the best-5, the lower of the two is returned as the
// "leftover" contribution, matching the Python original's behavior of
// always comparing one designated leftover card.
func highestUnusedHole(hole [2]cards.Card, best5 []cards.Card) cards.Rank {
	used := map[cards.Card]bool{}
	for _, c := range best5 {
		used[c] = true
	}
	var leftover []cards.Rank
	for _, c := range hole {
		if !used[c] {
			leftover = append(leftover, c.Rank)
		}
	}
	if len(leftover) == 0 {
		if hole[0].Rank < hole[1].Rank {
			return hole[0].Rank
		}
		return hole[1].Rank
	}
	max := leftover[0]
	for _, r := range leftover[1:] {
		if r > max {
			max = r
		}
	}
	return max
}
