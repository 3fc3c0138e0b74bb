package holdem

import (
	"fmt"
	"strings"

	"github.com/hansjhaland/deepstack-holdem/pkg/cards"
)

// Combo is a specific two-card hole-pair combination.
type Combo struct {
	Card1 cards.Card
	Card2 cards.Card
}

func (c Combo) String() string {
	return fmt.Sprintf("%s%s", c.Card1, c.Card2)
}

// Key returns the combo's canonical hole-pair key.
func (c Combo) Key() string { return cards.HolePairKey(c.Card1, c.Card2) }

// ParseRange parses a comma-separated range string into all matching
// combos. Examples: "AA" (6 combos), "AKs" (4), "AKo" (12),
// "KK-JJ" (18), "AA,KK,AKs" (16).
func ParseRange(rangeStr string) ([]Combo, error) {
	rangeStr = strings.TrimSpace(rangeStr)
	if rangeStr == "" {
		return nil, fmt.Errorf("empty range string")
	}

	var all []Combo
	for _, part := range strings.Split(rangeStr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var combos []Combo
		var err error
		if strings.Contains(part, "-") {
			combos, err = parseRangeWithDash(part)
		} else {
			combos, err = parseSingleHand(part)
		}
		if err != nil {
			return nil, fmt.Errorf("error parsing range component %q: %w", part, err)
		}
		all = append(all, combos...)
	}
	return all, nil
}

func parseSingleHand(hand string) ([]Combo, error) {
	rank1, rank2, suited, err := parseHandComponents(hand)
	if err != nil {
		return nil, err
	}
	return generateCombos(rank1, rank2, suited), nil
}

func parseRangeWithDash(rangeStr string) ([]Combo, error) {
	parts := strings.Split(rangeStr, "-")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid range format: %q (expected AA-KK)", rangeStr)
	}
	startRank1, startRank2, startSuited, err := parseHandComponents(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid start hand: %w", err)
	}
	endRank1, endRank2, endSuited, err := parseHandComponents(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid end hand: %w", err)
	}
	if startSuited != endSuited {
		return nil, fmt.Errorf("mismatched suited/offsuit in range %q", rangeStr)
	}

	var all []Combo
	if startRank1 == startRank2 && endRank1 == endRank2 {
		for r := int(startRank1); r >= int(endRank1); r-- {
			rank := cards.Rank(r)
			all = append(all, generateCombos(rank, rank, startSuited)...)
		}
		return all, nil
	}
	if startRank1 != endRank1 {
		return nil, fmt.Errorf("invalid range %q (first rank must match)", rangeStr)
	}
	for r := int(startRank2); r >= int(endRank2); r-- {
		all = append(all, generateCombos(startRank1, cards.Rank(r), startSuited)...)
	}
	return all, nil
}

func parseHandComponents(hand string) (cards.Rank, cards.Rank, bool, error) {
	hand = strings.TrimSpace(hand)
	if len(hand) < 2 || len(hand) > 3 {
		return 0, 0, false, fmt.Errorf("invalid hand notation: %q", hand)
	}
	rank1, err := parseRankChar(hand[0])
	if err != nil {
		return 0, 0, false, err
	}
	rank2, err := parseRankChar(hand[1])
	if err != nil {
		return 0, 0, false, err
	}
	var suited bool
	if len(hand) == 3 {
		if rank1 == rank2 {
			return 0, 0, false, fmt.Errorf("pair %q cannot have suited/offsuit indicator", hand)
		}
		switch hand[2] {
		case 's', 'S':
			suited = true
		case 'o', 'O':
			suited = false
		default:
			return 0, 0, false, fmt.Errorf("invalid suited/offsuit indicator: %c", hand[2])
		}
	} else if rank1 != rank2 {
		return 0, 0, false, fmt.Errorf("ambiguous hand %q (use 's' or 'o')", hand)
	}
	return rank1, rank2, suited, nil
}

func parseRankChar(b byte) (cards.Rank, error) {
	switch b {
	case 'A', 'a':
		return cards.Ace, nil
	case 'K', 'k':
		return cards.King, nil
	case 'Q', 'q':
		return cards.Queen, nil
	case 'J', 'j':
		return cards.Jack, nil
	case 'T', 't':
		return cards.Ten, nil
	case '9':
		return cards.Nine, nil
	case '8':
		return cards.Eight, nil
	case '7':
		return cards.Seven, nil
	case '6':
		return cards.Six, nil
	case '5':
		return cards.Five, nil
	case '4':
		return cards.Four, nil
	case '3':
		return cards.Three, nil
	case '2':
		return cards.Two, nil
	default:
		return 0, fmt.Errorf("invalid rank: %c", b)
	}
}

func generateCombos(rank1, rank2 cards.Rank, suited bool) []Combo {
	suits := []cards.Suit{cards.Spades, cards.Hearts, cards.Diamonds, cards.Clubs}
	var combos []Combo

	switch {
	case rank1 == rank2:
		for i := 0; i < len(suits); i++ {
			for j := i + 1; j < len(suits); j++ {
				combos = append(combos, Combo{Card1: cards.NewCard(rank1, suits[i]), Card2: cards.NewCard(rank2, suits[j])})
			}
		}
	case suited:
		for _, s := range suits {
			combos = append(combos, Combo{Card1: cards.NewCard(rank1, s), Card2: cards.NewCard(rank2, s)})
		}
	default:
		for _, s1 := range suits {
			for _, s2 := range suits {
				if s1 != s2 {
					combos = append(combos, Combo{Card1: cards.NewCard(rank1, s1), Card2: cards.NewCard(rank2, s2)})
				}
			}
		}
	}
	return combos
}
