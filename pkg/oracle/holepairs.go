// Package oracle enumerates hole-pair keys, builds per-board utility
// matrices, and estimates rollout win probabilities — the facts the
// resolver and value network both need about a fixed public board.
package oracle

import (
	"sync"

	"github.com/hansjhaland/deepstack-holdem/pkg/cards"
)

// Oracle caches the canonical hole-pair key order for one deck
// configuration (full or limited). The key order is immutable after
// first computation, matching spec §5's "canonical hole-pair key list
// (immutable after init)".
type Oracle struct {
	limited bool

	once      sync.Once
	keys      []string
	combos    []cards.Combo2
	keyIndex  map[string]int
}

// New returns an Oracle for the full (52-card) or limited (24-card,
// ranks 9..Ace) deck.
func New(limited bool) *Oracle {
	return &Oracle{limited: limited}
}

// Limited reports whether this oracle operates over the limited deck.
func (o *Oracle) Limited() bool { return o.limited }

func (o *Oracle) init() {
	o.once.Do(func() {
		deck := cards.NewDeck()
		if o.limited {
			deck = cards.NewLimitedDeck()
		}
		all := deck.Cards()
		o.keyIndex = make(map[string]int)
		for i := 0; i < len(all); i++ {
			for j := i + 1; j < len(all); j++ {
				c1, c2 := all[i], all[j]
				key := cards.HolePairKey(c1, c2)
				o.keyIndex[key] = len(o.keys)
				o.keys = append(o.keys, key)
				o.combos = append(o.combos, cards.Combo2{C1: c1, C2: c2})
			}
		}
	})
}

// AllHolePairKeys returns the canonical, fixed-order list of every
// unordered hole-pair key drawable from the active deck. H is
// len(result): 1326 for the full deck, 276 for the limited deck.
func (o *Oracle) AllHolePairKeys() []string {
	o.init()
	return o.keys
}

// H returns the number of distinct hole-pair keys (1326 full, 276
// limited).
func (o *Oracle) H() int {
	o.init()
	return len(o.keys)
}

// Combo returns the two cards behind hole-pair index h.
func (o *Oracle) Combo(h int) cards.Combo2 {
	o.init()
	return o.combos[h]
}

// IndexOf returns the hole-pair index for a given key, or -1 if the
// key is not part of this oracle's deck configuration.
func (o *Oracle) IndexOf(key string) int {
	o.init()
	if idx, ok := o.keyIndex[key]; ok {
		return idx
	}
	return -1
}
