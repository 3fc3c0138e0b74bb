package eval

import (
	"fmt"
	"sort"

	"github.com/hansjhaland/deepstack-holdem/pkg/cards"
)

// Value is the result of classifying a 5-card hand: its category, the
// category's 1..10 rank, and the high-card tiebreak ladder within the
// category (trip rank, kicker ranks, and so on, descending).
type Value struct {
	Category Category
	Values   [5]cards.Rank
}

// Compare returns -1 if v is weaker than other, 0 if equal, 1 if v is
// stronger. Lower Category.Rank() is stronger, so categories compare
// inverted relative to their numeric index.
func (v Value) Compare(other Value) int {
	if v.Category != other.Category {
		if v.Category.Rank() < other.Category.Rank() {
			return 1
		}
		return -1
	}
	for i := 0; i < 5; i++ {
		if v.Values[i] != other.Values[i] {
			if v.Values[i] > other.Values[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// HighCard returns the highest card value contributes toward its
// category (the first nonzero slot of Values), used by Showdown's
// tie-break step (b): "highest card in the best 5-card subset".
func (v Value) HighCard() cards.Rank { return v.Values[0] }

// Classify evaluates exactly 5 cards and returns their category and
// tiebreak ladder. It does not enumerate subsets; callers with 6 or 7
// cards should use Best5.
func Classify(hand []cards.Card) (Value, error) {
	if len(hand) != 5 {
		return Value{}, fmt.Errorf("classify: want 5 cards, got %d", len(hand))
	}
	return classify5(hand), nil
}

func classify5(hand []cards.Card) Value {
	var rankCounts [13]int
	var suitCounts [4]int
	for _, c := range hand {
		rankCounts[c.Rank]++
		suitCounts[c.Suit]++
	}

	isFlush := false
	for _, n := range suitCounts {
		if n == 5 {
			isFlush = true
			break
		}
	}

	isStraight, straightHigh := checkStraight(rankCounts)

	if isFlush && isStraight {
		if straightHigh == cards.Ace {
			return Value{Category: RoyalFlush, Values: [5]cards.Rank{straightHigh}}
		}
		return Value{Category: StraightFlush, Values: [5]cards.Rank{straightHigh}}
	}

	groups := rankGroupsByCount(rankCounts)

	if len(groups) >= 1 && groups[0].count == 4 {
		return Value{Category: FourOfAKind, Values: [5]cards.Rank{groups[0].rank, groups[1].rank}}
	}
	if len(groups) >= 2 && groups[0].count == 3 && groups[1].count == 2 {
		return Value{Category: FullHouse, Values: [5]cards.Rank{groups[0].rank, groups[1].rank}}
	}
	if isFlush {
		ranks := descendingRanks(rankCounts)
		return Value{Category: Flush, Values: [5]cards.Rank{ranks[0], ranks[1], ranks[2], ranks[3], ranks[4]}}
	}
	if isStraight {
		return Value{Category: Straight, Values: [5]cards.Rank{straightHigh}}
	}
	if len(groups) >= 1 && groups[0].count == 3 {
		return Value{Category: ThreeOfAKind, Values: [5]cards.Rank{groups[0].rank, groups[1].rank, groups[2].rank}}
	}
	if len(groups) >= 2 && groups[0].count == 2 && groups[1].count == 2 {
		return Value{Category: TwoPair, Values: [5]cards.Rank{groups[0].rank, groups[1].rank, groups[2].rank}}
	}
	if len(groups) >= 1 && groups[0].count == 2 {
		return Value{Category: Pair, Values: [5]cards.Rank{groups[0].rank, groups[1].rank, groups[2].rank, groups[3].rank}}
	}
	return Value{Category: HighCard, Values: [5]cards.Rank{groups[0].rank, groups[1].rank, groups[2].rank, groups[3].rank, groups[4].rank}}
}

// checkStraight reports whether the rank-count histogram contains a
// straight and its high card. Ace is only ever treated as high (rank
// 14); the wheel (A-2-3-4-5) is not recognized, per the explicit Open
// Question decision recorded in DESIGN.md.
func checkStraight(rankCounts [13]int) (bool, cards.Rank) {
	for h := int(cards.Ace); h >= int(cards.Six); h-- {
		ok := true
		for i := 0; i < 5; i++ {
			if rankCounts[h-i] == 0 {
				ok = false
				break
			}
		}
		if ok {
			return true, cards.Rank(h)
		}
	}
	return false, 0
}

type rankGroup struct {
	rank  cards.Rank
	count int
}

func rankGroupsByCount(rankCounts [13]int) []rankGroup {
	groups := make([]rankGroup, 0, 5)
	for r := int(cards.Ace); r >= int(cards.Two); r-- {
		if rankCounts[r] > 0 {
			groups = append(groups, rankGroup{rank: cards.Rank(r), count: rankCounts[r]})
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})
	return groups
}

func descendingRanks(rankCounts [13]int) []cards.Rank {
	ranks := make([]cards.Rank, 0, 5)
	for r := int(cards.Ace); r >= int(cards.Two); r-- {
		if rankCounts[r] > 0 {
			ranks = append(ranks, cards.Rank(r))
		}
	}
	return ranks
}
