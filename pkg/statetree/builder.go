package statetree

import (
	"math/rand"
	"strings"

	"github.com/hansjhaland/deepstack-holdem/pkg/cards"
	"github.com/hansjhaland/deepstack-holdem/pkg/holdem"
)

// postflopOpener is the player index who acts first on every
// post-flop street in heads-up limit hold'em (the non-button/big
// blind); the button/small blind acts first pre-flop, as set by the
// caller's RootConfig.
const postflopOpener = 1

// RootConfig describes the decision point a resolve call starts from.
type RootConfig struct {
	ActingPlayer int
	Stacks       [2]float64
	Pot          float64
	RaisesLeft   int
	BetToCall    float64
	Stage        holdem.Stage
	Board        []cards.Card
	RoundHistory []holdem.Action
	Depth        int
}

// BuildConfig controls tree construction independent of any one root.
type BuildConfig struct {
	MaxEvents      int
	RaisesPerStage int
	Limited        bool
}

// GenerateRootState creates a new tree containing only the root
// PlayerState, with a uniform initial strategy and zeroed regret, per
// spec §4.6 step 1 and §6's generate_root_state.
func GenerateRootState(cfg RootConfig, h int) (*Tree, int) {
	tree := &Tree{}
	root := &Node{
		Kind:              PlayerNode,
		Board:             append([]cards.Card(nil), cfg.Board...),
		Pot:               cfg.Pot,
		Stage:             cfg.Stage,
		ActingPlayer:      cfg.ActingPlayer,
		Stacks:            cfg.Stacks,
		RaisesLeft:        cfg.RaisesLeft,
		BetToCall:         cfg.BetToCall,
		RoundHistory:      append([]holdem.Action(nil), cfg.RoundHistory...),
		Depth:             cfg.Depth,
		Sigma:             newUniformMatrix(h),
		CumulativeRegret:  newZeroMatrix(h),
		PositiveRegret:    newZeroMatrix(h),
		VActing:           make([]float64, h),
		VOther:            make([]float64, h),
		ActionsToChildren: nil,
	}
	idx := tree.add(root)
	return tree, idx
}

// GenerateSubtree expands tree from rootIdx down to (endStage,
// endDepth), per spec §4.4: every leaf is beyond end_stage, in
// end_stage at depth >= end_depth, a TerminalState, or a leaf of a
// pruned-events chance node.
func GenerateSubtree(tree *Tree, rootIdx int, endStage holdem.Stage, endDepth int, build BuildConfig, rng *rand.Rand) {
	tree.Limited = build.Limited
	h := len(tree.Nodes[rootIdx].Sigma)
	buildNode(tree, rootIdx, endStage, endDepth, build, rng, h)
}

func buildNode(tree *Tree, idx int, endStage holdem.Stage, endDepth int, build BuildConfig, rng *rand.Rand, h int) {
	n := tree.Nodes[idx]
	if n.Kind != PlayerNode {
		return
	}
	if n.Stage > endStage || (n.Stage == endStage && n.Depth >= endDepth) {
		n.Cutoff = true
		return
	}

	n.ActionsToChildren = make(map[holdem.Action]int, holdem.NumActions)
	n.ActionsToChildren[holdem.Fold] = attachAction(tree, n, holdem.Fold, handleFold(n), endStage, endDepth, build, rng, h)
	n.ActionsToChildren[holdem.Call] = attachAction(tree, n, holdem.Call, handleCall(n), endStage, endDepth, build, rng, h)
	n.ActionsToChildren[holdem.Raise] = attachAction(tree, n, holdem.Raise, handleRaise(n), endStage, endDepth, build, rng, h)
}

// attachAction builds and links the child (or terminal) reached by
// requestedAction, dispatching on what the action handler actually
// realized (a raise or call may be downgraded per spec §7 kind 2).
func attachAction(tree *Tree, n *Node, requestedAction holdem.Action, res handleResult, endStage holdem.Stage, endDepth int, build BuildConfig, rng *rand.Rand, h int) int {
	switch res.realized {
	case holdem.Fold:
		return tree.add(&Node{
			Kind:         TerminalNode,
			Board:        n.Board,
			Pot:          res.pot,
			Stage:        n.Stage,
			ParentAction: requestedAction,
			FoldWinner:   otherPlayer(n.ActingPlayer),
		})

	case holdem.Call:
		newHistory := appendToRoundHistory(n.RoundHistory, holdem.Call)
		if roundCloses(newHistory) {
			if n.Stage == holdem.River {
				return tree.add(&Node{
					Kind:         TerminalNode,
					Board:        n.Board,
					Pot:          res.pot,
					Stage:        holdem.Showdown,
					ParentAction: requestedAction,
					FoldWinner:   -1,
				})
			}
			return buildChanceNode(tree, n, res, requestedAction, build, rng, h, endStage, endDepth)
		}
		childIdx := buildPlayerChild(tree, n, res, newHistory, requestedAction, h)
		buildNode(tree, childIdx, endStage, endDepth, build, rng, h)
		return childIdx

	default: // holdem.Raise
		newHistory := appendToRoundHistory(n.RoundHistory, holdem.Raise)
		childIdx := buildPlayerChild(tree, n, res, newHistory, requestedAction, h)
		buildNode(tree, childIdx, endStage, endDepth, build, rng, h)
		return childIdx
	}
}

func buildPlayerChild(tree *Tree, parent *Node, res handleResult, newHistory []holdem.Action, parentAction holdem.Action, h int) int {
	child := &Node{
		Kind:              PlayerNode,
		Board:             parent.Board,
		Pot:               res.pot,
		Stage:             parent.Stage,
		ParentAction:      parentAction,
		ActingPlayer:      otherPlayer(parent.ActingPlayer),
		Stacks:            res.stacks,
		RaisesLeft:        res.raises,
		BetToCall:         res.betToCall,
		RoundHistory:      newHistory,
		Depth:             parent.Depth + 1,
		Sigma:             newUniformMatrix(h),
		CumulativeRegret:  newZeroMatrix(h),
		PositiveRegret:    newZeroMatrix(h),
		VActing:           make([]float64, h),
		VOther:            make([]float64, h),
		ActionsToChildren: nil,
	}
	return tree.add(child)
}

func buildChanceNode(tree *Tree, parent *Node, res handleResult, parentAction holdem.Action, build BuildConfig, rng *rand.Rand, h int, endStage holdem.Stage, endDepth int) int {
	nextStage := parent.Stage.Next()
	chance := &Node{
		Kind:         ChanceNode,
		Board:        parent.Board,
		Pot:          res.pot,
		Stage:        parent.Stage,
		ParentAction: parentAction,
		NextStage:    nextStage,
	}
	idx := tree.add(chance)

	numNew := nextStage.NumCardsRevealed()
	events := sampleEvents(parent.Board, numNew, build.MaxEvents, build.Limited, rng)

	for _, ev := range events {
		newBoard := append(append([]cards.Card(nil), parent.Board...), ev...)
		child := &Node{
			Kind:              PlayerNode,
			Board:             newBoard,
			Pot:               res.pot,
			Stage:             nextStage,
			ParentAction:      parentAction,
			ActingPlayer:      postflopOpener,
			Stacks:            res.stacks,
			RaisesLeft:        build.RaisesPerStage,
			BetToCall:         0,
			RoundHistory:      nil,
			Depth:             1,
			Sigma:             newUniformMatrix(h),
			CumulativeRegret:  newZeroMatrix(h),
			PositiveRegret:    newZeroMatrix(h),
			VActing:           make([]float64, h),
			VOther:            make([]float64, h),
			ActionsToChildren: nil,
		}
		childIdx := tree.add(child)
		buildNode(tree, childIdx, endStage, endDepth, build, rng, h)
		chance.Events = append(chance.Events, ChanceEvent{Cards: ev, Child: childIdx})
	}

	tree.Nodes[idx] = chance
	return idx
}

// sampleEvents draws up to maxEvents distinct combinations of numNew
// cards from the cards remaining in the deck after board, bounding
// the chance node's branching factor per spec §4.4 instead of
// enumerating the full combinatorial set of outcomes.
func sampleEvents(board []cards.Card, numNew, maxEvents int, limited bool, rng *rand.Rand) [][]cards.Card {
	if numNew == 0 {
		return nil
	}
	deck := cards.NewDeck()
	if limited {
		deck = cards.NewLimitedDeck()
	}
	deck.Exclude(board)
	pool := deck.Cards()

	seen := make(map[string]bool, maxEvents)
	var events [][]cards.Card
	maxAttempts := maxEvents * 25
	for attempt := 0; attempt < maxAttempts && len(events) < maxEvents; attempt++ {
		shuffled := append([]cards.Card(nil), pool...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		draw := append([]cards.Card(nil), shuffled[:numNew]...)
		key := eventKey(draw)
		if seen[key] {
			continue
		}
		seen[key] = true
		events = append(events, draw)
	}
	return events
}

func eventKey(cs []cards.Card) string {
	sorted := append([]cards.Card(nil), cs...)
	cards.SortCards(sorted)
	var b strings.Builder
	for _, c := range sorted {
		b.WriteString(c.String())
	}
	return b.String()
}
